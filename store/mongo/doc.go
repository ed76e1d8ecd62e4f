// Package mongo implements the task store on a shared MongoDB database.
//
// Three collections back the store: "tasks" for maintenance task rows,
// "staff" for the roster and "equipment" for the inventory. Task rows use
// the rendered task key as their _id, so SaveTask is an upsert and a re-run
// of the allocation engine lands on the row it wrote last time.
//
// The store implements types.BulkSweeper: the overdue sweep is a single
// UpdateMany instead of a list-then-save round trip per row.
package mongo
