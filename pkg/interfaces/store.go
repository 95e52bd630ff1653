package interfaces

import (
	"context"
	"time"
)

// Document is one record in a remote collection. The identifier is assigned
// by the store on creation and treated as opaque by every caller. Fields
// carries the entity payload as a JSON-like map; CreatedAt and UpdatedAt are
// store-level stamps used for snapshot ordering, independent of any
// timestamp fields the payload itself may carry.
type Document struct {
	ID         string
	Collection string
	Fields     map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Snapshot is one full delivery of a collection's current state. Documents
// is the complete membership at the time of the event; receivers replace
// their local mirror wholesale rather than patching it. A non-nil Err marks
// the subscription as terminally failed; no further snapshots follow.
type Snapshot struct {
	Collection string
	Documents  []Document
	Err        error
}

// DocumentStore is the collection-based remote store the admin console
// reads and writes. Create assigns the identifier; Merge overwrites only
// the supplied fields and leaves the rest untouched; Upsert applies merge
// semantics against a caller-chosen identifier (used for singleton
// documents). Subscribe delivers a Snapshot for the collection's current
// state immediately and again after every change, until the supplied
// context is cancelled.
type DocumentStore interface {
	Create(ctx context.Context, collection string, fields map[string]any) (*Document, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Merge(ctx context.Context, collection, id string, fields map[string]any) (*Document, error)
	Upsert(ctx context.Context, collection, id string, fields map[string]any) (*Document, error)
	Delete(ctx context.Context, collection, id string) error
	Subscribe(ctx context.Context, collection string) (<-chan Snapshot, error)
}
