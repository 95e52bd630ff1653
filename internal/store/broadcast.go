package store

import (
	"context"
	"sync"

	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// snapshotBroadcaster fans collection snapshots out to live subscribers.
// Delivery is lossy in the same way the hosted subscription is: when a
// subscriber lags, the pending snapshot is replaced by the newer one, so
// the last snapshot observed always reflects the latest collection state.
type snapshotBroadcaster struct {
	mu       sync.Mutex
	watchers map[string]map[uint64]chan interfaces.Snapshot
	nextID   uint64
	closed   bool
}

func newSnapshotBroadcaster() *snapshotBroadcaster {
	return &snapshotBroadcaster{
		watchers: make(map[string]map[uint64]chan interfaces.Snapshot),
	}
}

// Subscribe registers a watcher for the collection. The channel closes when
// the supplied context is cancelled or the broadcaster shuts down.
func (b *snapshotBroadcaster) Subscribe(ctx context.Context, collection string) chan interfaces.Snapshot {
	if ctx == nil {
		ctx = context.Background()
	}
	ch := make(chan interfaces.Snapshot, 1)
	if err := ctx.Err(); err != nil {
		close(ch)
		return ch
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	id := b.nextID
	b.nextID++
	if b.watchers[collection] == nil {
		b.watchers[collection] = make(map[uint64]chan interfaces.Snapshot)
	}
	b.watchers[collection][id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		if set, ok := b.watchers[collection]; ok {
			if _, live := set[id]; live {
				delete(set, id)
				close(ch)
			}
		}
		b.mu.Unlock()
	}()

	return ch
}

// Broadcast delivers a snapshot to every watcher of its collection. Sends
// stay under the lock so no delivery races a channel close; they never
// block because every watcher channel is buffered and drained on overflow.
func (b *snapshotBroadcaster) Broadcast(snap interfaces.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.watchers[snap.Collection] {
		deliver(ch, snap)
	}
}

// Send pushes a snapshot to a single watcher if it is still registered.
func (b *snapshotBroadcaster) Send(ch chan interfaces.Snapshot, snap interfaces.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, set := range b.watchers {
		for _, registered := range set {
			if registered == ch {
				deliver(ch, snap)
				return
			}
		}
	}
}

// Close terminates every watcher. Used by stores that own their broadcaster.
func (b *snapshotBroadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, set := range b.watchers {
		for id, ch := range set {
			delete(set, id)
			close(ch)
		}
	}
}

func deliver(ch chan interfaces.Snapshot, snap interfaces.Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	// Drop the stale pending snapshot and try once more.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
