// Package docstore provides a small document collection persisted in SQLite.
//
// Each document has an identifier, a version counter and creation/update
// timestamps in addition to its free-form fields. Documents convert to plain
// maps (_id, __v, createdAt, updatedAt plus fields) so they can be compared
// with the matcher and verified with the collection package.
package docstore
