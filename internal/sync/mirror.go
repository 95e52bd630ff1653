package sync

import (
	"context"
	"sync"

	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// Mirror maintains a live read-only copy of one remote collection. It
// consumes the store's snapshot feed on a background goroutine and exposes
// the latest state synchronously. Consumers never see partial updates;
// every snapshot replaces the previous one wholesale.
type Mirror struct {
	collection string
	logger     interfaces.Logger

	mu   sync.RWMutex
	docs []interfaces.Document
	err  error

	updates chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}

	closeOnce sync.Once
}

// NewMirror subscribes to the collection and starts tracking it. The
// returned mirror holds the initial snapshot as soon as the store delivers
// it. Close releases the subscription.
func NewMirror(ctx context.Context, store interfaces.DocumentStore, collection string, logger interfaces.Logger) (*Mirror, error) {
	if logger == nil {
		logger = logging.NoOp()
	}
	subCtx, cancel := context.WithCancel(ctx)
	feed, err := store.Subscribe(subCtx, collection)
	if err != nil {
		cancel()
		return nil, err
	}

	m := &Mirror{
		collection: collection,
		logger:     logger,
		updates:    make(chan struct{}, 1),
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	go m.consume(feed)
	return m, nil
}

func (m *Mirror) consume(feed <-chan interfaces.Snapshot) {
	defer close(m.done)
	for snap := range feed {
		m.mu.Lock()
		if snap.Err != nil {
			m.err = snap.Err
			m.logger.Error("mirror.snapshot.failed", "collection", m.collection, "error", snap.Err)
		} else {
			m.docs = snap.Documents
			m.err = nil
		}
		m.mu.Unlock()
		m.notify()
	}
}

// notify coalesces: a pending wakeup already covers this snapshot because
// readers always fetch the latest state.
func (m *Mirror) notify() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

// Snapshot returns the current mirrored documents. The slice is shared with
// the store's snapshot and must be treated as read-only.
func (m *Mirror) Snapshot() []interfaces.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.docs
}

// Len returns the current record count, used for creation caps.
func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// Err returns the last subscription error, cleared by the next good
// snapshot.
func (m *Mirror) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Get finds a mirrored document by identifier.
func (m *Mirror) Get(id string) (*interfaces.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.docs {
		if m.docs[i].ID == id {
			doc := m.docs[i]
			return &doc, true
		}
	}
	return nil, false
}

// Updates signals that a new snapshot has arrived. The channel is
// coalescing: one pending signal may cover several snapshots.
func (m *Mirror) Updates() <-chan struct{} {
	return m.updates
}

// Close cancels the subscription and waits for the feed to drain.
func (m *Mirror) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		<-m.done
	})
}
