// Package collection verifies the state of a document collection after a
// declared change.
//
// Given the documents a collection held before an operation and a
// description of the change (created, updated or deleted document), it
// fetches the live collection, applies the change to a copy of the initial
// documents and compares both with the structural matcher.
package collection
