package contract

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"sync"

	"go.etcd.io/bbolt"

	"github.com/seriesorg/libseries-go/ownership"
	"github.com/seriesorg/libseries-go/token"
)

// PendingTransfer is the durable record joining the two atomic steps of a
// deferred transfer. The first step moves the token to the receiver and
// writes this record; the second step either confirms the move or uses the
// saved snapshot to restore the previous owner.
type PendingTransfer struct {
	ID         uint64
	TokenID    token.ID
	SenderID   token.AccountID
	ReceiverID token.AccountID
	// AuthorizedID is set when the sender acted under an approval.
	AuthorizedID token.AccountID
	// Previous is the ownership record as it was before the first step,
	// approvals included.
	Previous *ownership.Record
	Memo     string
}

// PendingStore persists in-flight deferred transfers.
type PendingStore interface {
	// Put stores the record under a fresh id and returns that id.
	Put(p *PendingTransfer) (uint64, error)

	// Take retrieves and removes the record. Returns ErrPendingNotFound
	// for unknown ids.
	Take(id uint64) (*PendingTransfer, error)

	// Count returns the number of unresolved transfers.
	Count() (uint64, error)
}

// MemPendingStore is an in-memory PendingStore for testing.
type MemPendingStore struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]*PendingTransfer
}

var _ PendingStore = (*MemPendingStore)(nil)

// NewMemPendingStore returns an empty in-memory pending store.
func NewMemPendingStore() *MemPendingStore {
	return &MemPendingStore{nextID: 1, byID: make(map[uint64]*PendingTransfer)}
}

func (m *MemPendingStore) Put(p *PendingTransfer) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *p
	stored.ID = m.nextID
	if p.Previous != nil {
		stored.Previous = p.Previous.Clone()
	}
	m.byID[stored.ID] = &stored
	m.nextID++
	return stored.ID, nil
}

func (m *MemPendingStore) Take(id uint64) (*PendingTransfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrPendingNotFound, id)
	}
	delete(m.byID, id)
	return p, nil
}

func (m *MemPendingStore) Count() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint64(len(m.byID)), nil
}

var bucketPending = []byte("pending_transfers")

// BoltPendingStore persists pending transfers in a bbolt bucket keyed by a
// big-endian sequence number.
type BoltPendingStore struct {
	db *bbolt.DB
}

var _ PendingStore = (*BoltPendingStore)(nil)

// NewBoltPendingStore wraps an already-open bbolt database. The caller
// retains ownership of the database.
func NewBoltPendingStore(db *bbolt.DB) (*BoltPendingStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPending)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("contract: create pending bucket: %w", err)
	}
	return &BoltPendingStore{db: db}, nil
}

func pendingKey(id uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], id)
	return k[:]
}

func (b *BoltPendingStore) Put(p *PendingTransfer) (uint64, error) {
	var id uint64
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bk := tx.Bucket(bucketPending)
		seq, err := bk.NextSequence()
		if err != nil {
			return fmt.Errorf("contract: pending sequence: %w", err)
		}
		id = seq

		stored := *p
		stored.ID = id
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(&stored); err != nil {
			return fmt.Errorf("contract: encode pending: %w", err)
		}
		return bk.Put(pendingKey(id), buf.Bytes())
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (b *BoltPendingStore) Take(id uint64) (*PendingTransfer, error) {
	var p *PendingTransfer
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bk := tx.Bucket(bucketPending)
		data := bk.Get(pendingKey(id))
		if data == nil {
			return fmt.Errorf("%w: %d", ErrPendingNotFound, id)
		}
		var rec PendingTransfer
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
			return fmt.Errorf("contract: decode pending: %w", err)
		}
		p = &rec
		return bk.Delete(pendingKey(id))
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (b *BoltPendingStore) Count() (uint64, error) {
	var count uint64
	err := b.db.View(func(tx *bbolt.Tx) error {
		count = uint64(tx.Bucket(bucketPending).Stats().KeyN)
		return nil
	})
	return count, err
}
