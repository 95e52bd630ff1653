package store

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DocumentRecord is the persisted shape of one collection document. The
// entity payload lives in a JSON column so every collection shares one
// table, mirroring the hosted store's schemaless documents.
type DocumentRecord struct {
	bun.BaseModel `bun:"table:admin_documents,alias:ad"`

	ID         uuid.UUID      `bun:",pk,type:uuid"                 json:"id"`
	Collection string         `bun:"collection,notnull"            json:"collection"`
	Fields     map[string]any `bun:"fields,type:jsonb,notnull"     json:"fields"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NewDocumentRepository creates a repository for persisted documents.
func NewDocumentRepository(db *bun.DB) repository.Repository[*DocumentRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*DocumentRecord]{
		NewRecord: func() *DocumentRecord { return &DocumentRecord{} },
		GetID: func(d *DocumentRecord) uuid.UUID {
			return d.ID
		},
		SetID: func(d *DocumentRecord, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(d *DocumentRecord) string {
			if d == nil {
				return ""
			}
			return d.ID.String()
		},
	})
}

// CreateSchema provisions the documents table when it does not exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*DocumentRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
