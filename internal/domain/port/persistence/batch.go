package persistence

import "context"

// MutationOp is the kind of staged write
type MutationOp int

const (
	// OpUpdate merges Fields into an existing document
	OpUpdate MutationOp = iota
	// OpInsert creates a new document from Fields
	OpInsert
	// OpDelete removes the document
	OpDelete
)

// Mutation is one staged write against a document.
// Fields are keyed by store column name.
type Mutation struct {
	Collection string
	ID         string
	Op         MutationOp
	Fields     map[string]any
}

// Update stages a field merge on an existing document
func Update(collection, id string, fields map[string]any) Mutation {
	return Mutation{Collection: collection, ID: id, Op: OpUpdate, Fields: fields}
}

// Insert stages a new document
func Insert(collection, id string, fields map[string]any) Mutation {
	return Mutation{Collection: collection, ID: id, Op: OpInsert, Fields: fields}
}

// Delete stages a document removal
func Delete(collection, id string) Mutation {
	return Mutation{Collection: collection, ID: id, Op: OpDelete}
}

// ChunkCommitter applies one bounded chunk of mutations as a single atomic
// multi-document write. Chunk boundaries are not atomic with each other; the
// batch writer above this port owns the chunking.
type ChunkCommitter interface {
	CommitChunk(ctx context.Context, muts []Mutation) error
}
