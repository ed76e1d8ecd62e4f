// Package natskv implements the task store on NATS JetStream KeyValue buckets.
//
// Three buckets back the store: one for task rows, one for the staff roster
// and one for the equipment inventory. Task rows are stored as JSON under a
// deterministic key derived from the task key, so a re-run of the allocation
// engine lands on the same row it wrote last time.
//
// Completion uses the bucket revision for optimistic concurrency: two
// concurrent completions of the same row cannot both win.
package natskv
