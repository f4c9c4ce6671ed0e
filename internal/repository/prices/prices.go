package prices

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"bullion/internal/model"
)

// Listener receives a snapshot after every state change.
type Listener = func(state model.PollerState)

// Repository keeps the single in-memory PollerState and publishes its changes.
type Repository struct {
	// notifyMu keeps notifications in the order of the mutations.
	notifyMu sync.Mutex
	mu       sync.RWMutex

	state     model.PollerState
	listeners map[uint64]Listener
	nextID    uint64

	attempts *atomic.Int64
	failures *atomic.Int64
}

func NewRepository() *Repository {
	return &Repository{
		listeners: make(map[uint64]Listener),
		attempts:  atomic.NewInt64(0),
		failures:  atomic.NewInt64(0),
	}
}

// GetState returns a copy of the current state.
func (that *Repository) GetState() model.PollerState {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.snapshot()
}

// GetLatestPrices returns the last successfully fetched records, possibly stale.
func (that *Repository) GetLatestPrices() []model.CommodityRecord {
	return that.GetState().Records
}

// StartFetch marks a fetch as in flight and clears the previous error.
func (that *Repository) StartFetch(locale string) {
	that.attempts.Inc()

	that.update(func(state *model.PollerState) {
		state.IsLoading = true
		state.Error = ""
		state.ErrorKind = model.ErrorKindNone
		state.Locale = locale
	})
}

// SavePrices replaces the records with the result of a successful fetch.
func (that *Repository) SavePrices(records []model.CommodityRecord, updatedAt time.Time) {
	stored := make([]model.CommodityRecord, len(records))
	copy(stored, records)

	that.update(func(state *model.PollerState) {
		state.Records = stored
		state.LastUpdated = updatedAt
	})
}

// SaveError records a failed fetch. Records of an earlier success are kept.
func (that *Repository) SaveError(kind model.ErrorKind) {
	that.failures.Inc()

	that.update(func(state *model.PollerState) {
		state.Error = kind.Message()
		state.ErrorKind = kind
	})
}

// FinishFetch clears the loading flag.
func (that *Repository) FinishFetch() {
	that.update(func(state *model.PollerState) {
		state.IsLoading = false
	})
}

// Subscribe registers a listener and returns the function removing it.
// Listeners are called synchronously and must not mutate the repository.
func (that *Repository) Subscribe(listener Listener) func() {
	that.mu.Lock()
	id := that.nextID
	that.nextID++
	that.listeners[id] = listener
	that.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			that.mu.Lock()
			delete(that.listeners, id)
			that.mu.Unlock()
		})
	}
}

func (that *Repository) update(mutate func(state *model.PollerState)) {
	that.notifyMu.Lock()
	defer that.notifyMu.Unlock()

	that.mu.Lock()
	mutate(&that.state)
	snapshot := that.snapshot()
	listeners := make([]Listener, 0, len(that.listeners))
	for _, listener := range that.listeners {
		listeners = append(listeners, listener)
	}
	that.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot.Clone())
	}
}

// snapshot must be called with mu held.
func (that *Repository) snapshot() model.PollerState {
	state := that.state.Clone()
	state.Attempts = that.attempts.Load()
	state.Failures = that.failures.Load()
	return state
}
