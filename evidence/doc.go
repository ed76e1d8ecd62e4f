// Package evidence stores completion evidence (typically photos uploaded
// through the messaging front-end) in an S3-compatible object store and
// returns the opaque reference written into the task row.
package evidence
