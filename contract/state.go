package contract

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"go.etcd.io/bbolt"

	"github.com/seriesorg/libseries-go/fee"
	"github.com/seriesorg/libseries-go/token"
)

// MetadataSpec is the contract metadata spec identifier.
const MetadataSpec = "nft-1.0.0"

// Metadata describes the registry at the contract level.
type Metadata struct {
	Spec          string `json:"spec"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Icon          string `json:"icon,omitempty"`
	BaseURI       string `json:"base_uri,omitempty"`
	Reference     string `json:"reference,omitempty"`
	ReferenceHash string `json:"reference_hash,omitempty"`
}

// State is the registry's mutable singleton record: the privileged owner,
// the fee treasury, the contract metadata, and the transaction-fee schedule.
type State struct {
	OwnerID    token.AccountID
	TreasuryID token.AccountID
	Meta       Metadata
	Fee        fee.Schedule
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	out := *s
	if s.Fee.Pending != nil {
		p := *s.Fee.Pending
		out.Fee.Pending = &p
	}
	return &out
}

// StateStore persists the singleton state record.
type StateStore interface {
	// Load retrieves the state, or nil when none has been saved.
	Load() (*State, error)

	// Save overwrites the state.
	Save(s *State) error
}

// MemStateStore is an in-memory StateStore for testing.
type MemStateStore struct {
	mu    sync.Mutex
	state *State
}

var _ StateStore = (*MemStateStore)(nil)

// NewMemStateStore returns an empty in-memory state store.
func NewMemStateStore() *MemStateStore { return &MemStateStore{} }

func (m *MemStateStore) Load() (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	return m.state.Clone(), nil
}

func (m *MemStateStore) Save(s *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s.Clone()
	return nil
}

var (
	bucketState = []byte("state")
	keyState    = []byte("state")
)

// BoltStateStore persists the state record in a bbolt bucket.
type BoltStateStore struct {
	db *bbolt.DB
}

var _ StateStore = (*BoltStateStore)(nil)

// NewBoltStateStore wraps an already-open bbolt database. The caller retains
// ownership of the database.
func NewBoltStateStore(db *bbolt.DB) (*BoltStateStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("contract: create state bucket: %w", err)
	}
	return &BoltStateStore{db: db}, nil
}

func (b *BoltStateStore) Load() (*State, error) {
	var state *State
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketState).Get(keyState)
		if data == nil {
			return nil
		}
		var s State
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
			return fmt.Errorf("contract: decode state: %w", err)
		}
		state = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (b *BoltStateStore) Save(s *State) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("contract: encode state: %w", err)
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketState).Put(keyState, buf.Bytes())
	})
}
