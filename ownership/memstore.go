package ownership

import (
	"fmt"
	"sync"

	"github.com/seriesorg/libseries-go/token"
)

// MemStore is an in-memory implementation of Store for testing.
type MemStore struct {
	mu      sync.RWMutex
	byID    map[token.ID]*Record
	order   []token.ID
	byOwner map[token.AccountID][]token.ID
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates a new in-memory ownership store.
func NewMemStore() *MemStore {
	return &MemStore{
		byID:    make(map[token.ID]*Record),
		byOwner: make(map[token.AccountID][]token.ID),
	}
}

func (m *MemStore) put(rec *Record) error {
	if _, exists := m.byID[rec.TokenID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateToken, rec.TokenID)
	}
	m.byID[rec.TokenID] = rec.Clone()
	m.order = append(m.order, rec.TokenID)
	m.byOwner[rec.OwnerID] = append(m.byOwner[rec.OwnerID], rec.TokenID)
	return nil
}

// Mint creates the ownership record for a freshly minted token.
func (m *MemStore) Mint(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.put(rec)
}

// Restore re-creates a record exactly as supplied.
func (m *MemStore) Restore(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.put(rec)
}

// Get retrieves the ownership record of a token.
func (m *MemStore) Get(tokenID token.ID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byID[tokenID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}
	return rec.Clone(), nil
}

// Owner returns the current owner of a token.
func (m *MemStore) Owner(tokenID token.ID) (token.AccountID, error) {
	rec, err := m.Get(tokenID)
	if err != nil {
		return "", err
	}
	return rec.OwnerID, nil
}

func (m *MemStore) removeFromOwner(owner token.AccountID, tokenID token.ID) {
	ids := m.byOwner[owner]
	for i, id := range ids {
		if id == tokenID {
			m.byOwner[owner] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(m.byOwner[owner]) == 0 {
		delete(m.byOwner, owner)
	}
}

// Transfer moves the token from its current owner to receiver.
func (m *MemStore) Transfer(sender, receiver token.AccountID, tokenID token.ID, approvalID *uint64) (token.AccountID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[tokenID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}
	if err := rec.approvedFor(sender, approvalID); err != nil {
		return "", fmt.Errorf("%w: %s", err, tokenID)
	}
	if receiver == rec.OwnerID {
		return "", fmt.Errorf("%w: %s", ErrSelfTransfer, tokenID)
	}

	prev := rec.OwnerID
	m.removeFromOwner(prev, tokenID)
	rec.OwnerID = receiver
	rec.Approvals = nil
	m.byOwner[receiver] = append(m.byOwner[receiver], tokenID)
	return prev, nil
}

// Approve grants account permission to transfer the token.
func (m *MemStore) Approve(owner, account token.AccountID, tokenID token.ID) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[tokenID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}
	if rec.OwnerID != owner {
		return 0, fmt.Errorf("%w: %s", ErrNotOwner, tokenID)
	}
	if rec.Approvals == nil {
		rec.Approvals = make(map[token.AccountID]uint64)
	}
	id := rec.NextApprovalID
	rec.NextApprovalID++
	rec.Approvals[account] = id
	return id, nil
}

// Revoke removes an account's approval.
func (m *MemStore) Revoke(owner, account token.AccountID, tokenID token.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[tokenID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}
	if rec.OwnerID != owner {
		return fmt.Errorf("%w: %s", ErrNotOwner, tokenID)
	}
	delete(rec.Approvals, account)
	return nil
}

// Burn removes the ownership record.
func (m *MemStore) Burn(owner token.AccountID, tokenID token.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.byID[tokenID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
	}
	if rec.OwnerID != owner {
		return fmt.Errorf("%w: %s", ErrNotOwner, tokenID)
	}

	m.removeFromOwner(owner, tokenID)
	delete(m.byID, tokenID)
	for i, id := range m.order {
		if id == tokenID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// TokensForOwner returns token ids owned by owner.
func (m *MemStore) TokensForOwner(owner token.AccountID, fromIndex, limit uint64) ([]token.ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byOwner[owner]
	if len(ids) == 0 {
		return nil, nil
	}
	if err := token.CheckPage(fromIndex, limit, uint64(len(ids))); err != nil {
		return nil, err
	}

	end := fromIndex + limit
	if end > uint64(len(ids)) {
		end = uint64(len(ids))
	}
	return append([]token.ID(nil), ids[fromIndex:end]...), nil
}

// SupplyForOwner returns how many tokens owner holds.
func (m *MemStore) SupplyForOwner(owner token.AccountID) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.byOwner[owner])), nil
}

// TotalSupply returns the number of live ownership records.
func (m *MemStore) TotalSupply() (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return uint64(len(m.byID)), nil
}

// List returns token ids in insertion order.
func (m *MemStore) List(fromIndex, limit uint64) ([]token.ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := token.CheckPage(fromIndex, limit, uint64(len(m.order))); err != nil {
		return nil, err
	}
	end := fromIndex + limit
	if end > uint64(len(m.order)) {
		end = uint64(len(m.order))
	}
	return append([]token.ID(nil), m.order[fromIndex:end]...), nil
}
