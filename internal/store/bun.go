package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/goliatone/go-repository-cache/cache"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/mattn/go-sqlite3"

	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// BunStore persists collections through bun. Writes flow through the shared
// document repository; each mutation re-reads the collection and broadcasts
// the fresh snapshot, so subscribers observe the same full-replacement
// semantics the hosted store provides.
type BunStore struct {
	repo        repository.Repository[*DocumentRecord]
	broadcaster *snapshotBroadcaster
	now         func() time.Time
	logger      interfaces.Logger
}

// BunOption customises the bun-backed store.
type BunOption func(*BunStore)

// BunWithClock overrides the clock used for store-level timestamps.
func BunWithClock(clock func() time.Time) BunOption {
	return func(s *BunStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// BunWithLogger attaches a logger for diagnostic traces.
func BunWithLogger(logger interfaces.Logger) BunOption {
	return func(s *BunStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewBunStore constructs a document store backed by the supplied bun DB.
func NewBunStore(db *bun.DB, opts ...BunOption) *BunStore {
	return NewBunStoreWithCache(db, nil, nil, opts...)
}

// NewBunStoreWithCache wraps the document repository with a read-through
// cache when both a cache service and key serializer are supplied.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...BunOption) *BunStore {
	base := NewDocumentRepository(db)
	s := &BunStore{
		repo:        wrapWithCache(base, cacheService, keySerializer),
		broadcaster: newSnapshotBroadcaster(),
		now:         time.Now,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.DocumentStore = (*BunStore)(nil)

// Singleton documents carry caller-chosen names like "gym_info" rather
// than UUIDs. Those names map to a deterministic v5 UUID so the same
// name always resolves to the same row.
var documentIDNamespace = uuid.MustParse("8f3c1a2e-5b74-4d0a-9c61-2e4f8a7b3d15")

func documentID(id string) (uuid.UUID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.Nil, ErrDocumentIDRequired
	}
	if uid, err := uuid.Parse(id); err == nil {
		return uid, nil
	}
	return uuid.NewSHA1(documentIDNamespace, []byte(id)), nil
}

// NewSQLiteDB opens a sqlite database and wraps it for bun.
func NewSQLiteDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// NewPostgresDB wraps a host-provided postgres connection for bun. The
// caller owns driver selection and pooling.
func NewPostgresDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

// Create inserts a new document and assigns its identifier.
func (s *BunStore) Create(ctx context.Context, collection string, fields map[string]any) (*interfaces.Document, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return nil, ErrCollectionRequired
	}

	now := s.now()
	record := &DocumentRecord{
		ID:         uuid.New(),
		Collection: collection,
		Fields:     cloneFields(fields),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, collection, "")
	}

	s.publish(ctx, collection)
	return recordToDocument(created), nil
}

// Get retrieves one document by identifier.
func (s *BunStore) Get(ctx context.Context, collection, id string) (*interfaces.Document, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}
	uid, err := documentID(id)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(ctx, uid.String())
	if err != nil {
		return nil, mapRepositoryError(err, collection, id)
	}
	if record.Collection != collection {
		return nil, &NotFoundError{Collection: collection, ID: id}
	}
	return recordToDocument(record), nil
}

// List returns the collection ordered by creation time, identifier tiebreak.
func (s *BunStore) List(ctx context.Context, collection string) ([]interfaces.Document, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}
	return s.list(ctx, collection)
}

// Merge overwrites only the supplied fields on an existing document.
func (s *BunStore) Merge(ctx context.Context, collection, id string, fields map[string]any) (*interfaces.Document, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}
	uid, err := documentID(id)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(ctx, uid.String())
	if err != nil {
		return nil, mapRepositoryError(err, collection, id)
	}
	if record.Collection != collection {
		return nil, &NotFoundError{Collection: collection, ID: id}
	}

	if record.Fields == nil {
		record.Fields = make(map[string]any, len(fields))
	}
	for key, value := range fields {
		record.Fields[key] = value
	}
	record.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("fields", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, collection, id)
	}

	s.publish(ctx, collection)
	return recordToDocument(updated), nil
}

// Upsert applies merge semantics against a caller-chosen identifier,
// creating the document when absent.
func (s *BunStore) Upsert(ctx context.Context, collection, id string, fields map[string]any) (*interfaces.Document, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}
	uid, err := documentID(id)
	if err != nil {
		return nil, err
	}

	existing, getErr := s.repo.GetByID(ctx, uid.String())
	if getErr == nil && existing.Collection == collection {
		return s.Merge(ctx, collection, id, fields)
	}

	now := s.now()
	record := &DocumentRecord{
		ID:         uid,
		Collection: collection,
		Fields:     cloneFields(fields),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, collection, id)
	}

	s.publish(ctx, collection)
	return recordToDocument(created), nil
}

// Delete removes a document. Unconditional once invoked.
func (s *BunStore) Delete(ctx context.Context, collection, id string) error {
	if strings.TrimSpace(collection) == "" {
		return ErrCollectionRequired
	}
	uid, err := documentID(id)
	if err != nil {
		return err
	}

	record, err := s.repo.GetByID(ctx, uid.String())
	if err != nil {
		return mapRepositoryError(err, collection, id)
	}
	if record.Collection != collection {
		return &NotFoundError{Collection: collection, ID: id}
	}

	if err := s.repo.Delete(ctx, record); err != nil {
		return mapRepositoryError(err, collection, id)
	}

	s.publish(ctx, collection)
	return nil
}

// Subscribe delivers the current snapshot immediately and again after every
// local write until ctx is cancelled.
func (s *BunStore) Subscribe(ctx context.Context, collection string) (<-chan interfaces.Snapshot, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}

	ch := s.broadcaster.Subscribe(ctx, collection)

	docs, err := s.list(ctx, collection)
	initial := interfaces.Snapshot{Collection: collection, Documents: docs, Err: err}
	s.broadcaster.Send(ch, initial)
	return ch, nil
}

// Close releases every live subscription.
func (s *BunStore) Close() {
	s.broadcaster.Close()
}

func (s *BunStore) list(ctx context.Context, collection string) ([]interfaces.Document, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.collection = ?", collection).
				Order("created_at ASC", "id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, collection, "")
	}

	docs := make([]interfaces.Document, 0, len(records))
	for _, record := range records {
		docs = append(docs, *recordToDocument(record))
	}
	return docs, nil
}

func (s *BunStore) publish(ctx context.Context, collection string) {
	docs, err := s.list(ctx, collection)
	if err != nil {
		s.logger.Error("store.snapshot.refresh_failed", "collection", collection, "error", err)
		return
	}
	s.logger.Debug("store.snapshot.publish", "collection", collection, "documents", len(docs))
	s.broadcaster.Broadcast(interfaces.Snapshot{Collection: collection, Documents: docs})
}

func recordToDocument(record *DocumentRecord) *interfaces.Document {
	if record == nil {
		return nil
	}
	return &interfaces.Document{
		ID:         record.ID.String(),
		Collection: record.Collection,
		Fields:     cloneFields(record.Fields),
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}
