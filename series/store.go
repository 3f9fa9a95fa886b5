package series

import (
	"fmt"
	"sync"

	"github.com/seriesorg/libseries-go/token"
)

// Store persists series records and supports paginated enumeration in
// insertion order. Series are never deleted.
type Store interface {
	// Create stores a new series. Returns ErrDuplicateSeries if the id is
	// already assigned.
	Create(s *Series) error

	// Put overwrites an existing series. Returns ErrSeriesNotFound if the
	// series was never created.
	Put(s *Series) error

	// Get retrieves a series by id.
	Get(id token.SeriesID) (*Series, error)

	// Has reports whether a series id is assigned.
	Has(id token.SeriesID) (bool, error)

	// Count returns the number of registered series.
	Count() (uint64, error)

	// List returns up to limit series starting at fromIndex in insertion
	// order. Fails with token.ErrOutOfBounds / token.ErrZeroLimit on bad
	// pagination.
	List(fromIndex, limit uint64) ([]*Series, error)
}

// MemStore is an in-memory implementation of Store for testing.
type MemStore struct {
	mu    sync.RWMutex
	byID  map[token.SeriesID]*Series
	order []token.SeriesID
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates a new in-memory series store.
func NewMemStore() *MemStore {
	return &MemStore{byID: make(map[token.SeriesID]*Series)}
}

// Create stores a new series.
func (m *MemStore) Create(s *Series) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[s.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSeries, s.ID)
	}
	m.byID[s.ID] = s.Clone()
	m.order = append(m.order, s.ID)
	return nil
}

// Put overwrites an existing series.
func (m *MemStore) Put(s *Series) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[s.ID]; !exists {
		return fmt.Errorf("%w: %s", ErrSeriesNotFound, s.ID)
	}
	m.byID[s.ID] = s.Clone()
	return nil
}

// Get retrieves a series by id.
func (m *MemStore) Get(id token.SeriesID) (*Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSeriesNotFound, id)
	}
	return s.Clone(), nil
}

// Has reports whether a series id is assigned.
func (m *MemStore) Has(id token.SeriesID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byID[id]
	return ok, nil
}

// Count returns the number of registered series.
func (m *MemStore) Count() (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.order)), nil
}

// List returns series in insertion order.
func (m *MemStore) List(fromIndex, limit uint64) ([]*Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := token.CheckPage(fromIndex, limit, uint64(len(m.order))); err != nil {
		return nil, err
	}

	end := fromIndex + limit
	if end > uint64(len(m.order)) {
		end = uint64(len(m.order))
	}
	out := make([]*Series, 0, end-fromIndex)
	for _, id := range m.order[fromIndex:end] {
		out = append(out, m.byID[id].Clone())
	}
	return out, nil
}
