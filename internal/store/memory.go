package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// MemoryStore keeps collections in-memory. It backs tests and embedded
// deployments, and doubles as the reference implementation of the
// DocumentStore contract: every mutation re-broadcasts the full collection
// snapshot to live subscribers.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]*interfaces.Document
	broadcaster *snapshotBroadcaster
	now         func() time.Time
	id          func() string
	logger      interfaces.Logger
	closed      bool
}

// MemoryOption customises the in-memory store.
type MemoryOption func(*MemoryStore)

// WithClock overrides the clock used for store-level timestamps.
func WithClock(clock func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides how document identifiers are minted.
func WithIDGenerator(generator func() string) MemoryOption {
	return func(s *MemoryStore) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger attaches a logger for diagnostic traces.
func WithLogger(logger interfaces.Logger) MemoryOption {
	return func(s *MemoryStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewMemoryStore constructs an empty in-memory document store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		collections: make(map[string]map[string]*interfaces.Document),
		broadcaster: newSnapshotBroadcaster(),
		now:         time.Now,
		id:          func() string { return uuid.New().String() },
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.DocumentStore = (*MemoryStore)(nil)

// Create inserts a new document and assigns its identifier.
func (s *MemoryStore) Create(_ context.Context, collection string, fields map[string]any) (*interfaces.Document, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return nil, ErrCollectionRequired
	}

	now := s.now()
	doc := &interfaces.Document{
		ID:         s.id(),
		Collection: collection,
		Fields:     cloneFields(fields),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStoreClosed
	}
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]*interfaces.Document)
	}
	s.collections[collection][doc.ID] = doc
	s.mu.Unlock()

	s.publish(collection)
	return cloneDocument(doc), nil
}

// Get retrieves one document by identifier.
func (s *MemoryStore) Get(_ context.Context, collection, id string) (*interfaces.Document, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrDocumentIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, &NotFoundError{Collection: collection, ID: id}
	}
	return cloneDocument(doc), nil
}

// List returns the collection ordered by creation time, identifier tiebreak.
func (s *MemoryStore) List(_ context.Context, collection string) ([]interfaces.Document, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(collection), nil
}

// Merge overwrites only the supplied fields on an existing document.
func (s *MemoryStore) Merge(_ context.Context, collection, id string, fields map[string]any) (*interfaces.Document, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrDocumentIDRequired
	}

	s.mu.Lock()
	doc, ok := s.collections[collection][id]
	if !ok {
		s.mu.Unlock()
		return nil, &NotFoundError{Collection: collection, ID: id}
	}
	mergeFields(doc, fields, s.now())
	result := cloneDocument(doc)
	s.mu.Unlock()

	s.publish(collection)
	return result, nil
}

// Upsert applies merge semantics against a caller-chosen identifier,
// creating the document when absent. Singleton documents use this.
func (s *MemoryStore) Upsert(_ context.Context, collection, id string, fields map[string]any) (*interfaces.Document, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrDocumentIDRequired
	}

	now := s.now()
	s.mu.Lock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]*interfaces.Document)
	}
	doc, ok := s.collections[collection][id]
	if !ok {
		doc = &interfaces.Document{
			ID:         id,
			Collection: collection,
			Fields:     cloneFields(fields),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		s.collections[collection][id] = doc
	} else {
		mergeFields(doc, fields, now)
	}
	result := cloneDocument(doc)
	s.mu.Unlock()

	s.publish(collection)
	return result, nil
}

// Delete removes a document. Unconditional once invoked.
func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	if strings.TrimSpace(collection) == "" {
		return ErrCollectionRequired
	}
	if strings.TrimSpace(id) == "" {
		return ErrDocumentIDRequired
	}

	s.mu.Lock()
	if _, ok := s.collections[collection][id]; !ok {
		s.mu.Unlock()
		return &NotFoundError{Collection: collection, ID: id}
	}
	delete(s.collections[collection], id)
	s.mu.Unlock()

	s.publish(collection)
	return nil
}

// Subscribe delivers the current snapshot immediately and again after every
// change until ctx is cancelled.
func (s *MemoryStore) Subscribe(ctx context.Context, collection string) (<-chan interfaces.Snapshot, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, ErrCollectionRequired
	}

	ch := s.broadcaster.Subscribe(ctx, collection)

	s.mu.RLock()
	initial := interfaces.Snapshot{
		Collection: collection,
		Documents:  s.snapshotLocked(collection),
	}
	s.mu.RUnlock()

	// Initial state rides the same channel as later events.
	s.broadcaster.Send(ch, initial)
	return ch, nil
}

// Close releases every live subscription.
func (s *MemoryStore) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.broadcaster.Close()
}

func (s *MemoryStore) publish(collection string) {
	s.mu.RLock()
	docs := s.snapshotLocked(collection)
	s.mu.RUnlock()

	s.logger.Debug("store.snapshot.publish", "collection", collection, "documents", len(docs))
	s.broadcaster.Broadcast(interfaces.Snapshot{Collection: collection, Documents: docs})
}

func (s *MemoryStore) snapshotLocked(collection string) []interfaces.Document {
	docs := make([]interfaces.Document, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		docs = append(docs, *cloneDocument(doc))
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs
}

func mergeFields(doc *interfaces.Document, fields map[string]any, now time.Time) {
	if doc.Fields == nil {
		doc.Fields = make(map[string]any, len(fields))
	}
	for key, value := range fields {
		doc.Fields[key] = value
	}
	doc.UpdatedAt = now
}

func cloneDocument(src *interfaces.Document) *interfaces.Document {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Fields = cloneFields(src.Fields)
	return &copied
}

func cloneFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		switch typed := value.(type) {
		case []string:
			copied[key] = append([]string(nil), typed...)
		case []any:
			copied[key] = append([]any(nil), typed...)
		default:
			copied[key] = value
		}
	}
	return copied
}
