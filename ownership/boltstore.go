package ownership

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
	"golang.org/x/crypto/blake2b"

	"github.com/seriesorg/libseries-go/token"
)

var (
	bucketTokens      = []byte("tokens")
	bucketOwnerTokens = []byte("owner_tokens")
)

// ownerHashSize is the width of the hashed owner prefix in the per-owner
// index keys.
const ownerHashSize = 32

// BoltStore is a bbolt-backed implementation of Store. Records are
// gob-encoded under their token id; the per-owner index uses composite keys
// of blake2b(owner) + token id for prefix scanning, so owner ids of any
// length produce fixed-width prefixes.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ownership: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ownership: open bolt db: %w", err)
	}
	store, err := NewBoltStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewBoltStore wraps an already-open bbolt database, creating the ownership
// buckets if needed. The caller retains ownership of the database.
func NewBoltStore(db *bbolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketTokens, bucketOwnerTokens} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ownership: create buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (b *BoltStore) Close() error { return b.db.Close() }

// ownerKey builds the composite per-owner index key blake2b(owner)+tokenID.
func ownerKey(owner token.AccountID, tokenID token.ID) []byte {
	h := blake2b.Sum256([]byte(owner))
	k := make([]byte, 0, ownerHashSize+len(tokenID))
	k = append(k, h[:]...)
	return append(k, tokenID...)
}

func ownerPrefix(owner token.AccountID) []byte {
	h := blake2b.Sum256([]byte(owner))
	return h[:]
}

func encodeRecord(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, fmt.Errorf("boltstore: encode record: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("boltstore: decode record: %w", err)
	}
	return &rec, nil
}

func (b *BoltStore) putNew(rec *Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTokens)
		if tb.Get([]byte(rec.TokenID)) != nil {
			return fmt.Errorf("%w: %s", ErrDuplicateToken, rec.TokenID)
		}
		if err := tb.Put([]byte(rec.TokenID), data); err != nil {
			return fmt.Errorf("boltstore: put record: %w", err)
		}
		if err := tx.Bucket(bucketOwnerTokens).Put(ownerKey(rec.OwnerID, rec.TokenID), []byte{}); err != nil {
			return fmt.Errorf("boltstore: put owner index: %w", err)
		}
		return nil
	})
}

// Mint creates the ownership record for a freshly minted token.
func (b *BoltStore) Mint(rec *Record) error { return b.putNew(rec) }

// Restore re-creates a record exactly as supplied.
func (b *BoltStore) Restore(rec *Record) error { return b.putNew(rec) }

// Get retrieves the ownership record of a token.
func (b *BoltStore) Get(tokenID token.ID) (*Record, error) {
	var rec *Record
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTokens).Get([]byte(tokenID))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
		}
		var err error
		rec, err = decodeRecord(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Owner returns the current owner of a token.
func (b *BoltStore) Owner(tokenID token.ID) (token.AccountID, error) {
	rec, err := b.Get(tokenID)
	if err != nil {
		return "", err
	}
	return rec.OwnerID, nil
}

// Transfer moves the token from its current owner to receiver.
func (b *BoltStore) Transfer(sender, receiver token.AccountID, tokenID token.ID, approvalID *uint64) (token.AccountID, error) {
	var prev token.AccountID
	err := b.db.Update(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTokens)
		data := tb.Get([]byte(tokenID))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
		}
		rec, err := decodeRecord(data)
		if err != nil {
			return err
		}
		if err := rec.approvedFor(sender, approvalID); err != nil {
			return fmt.Errorf("%w: %s", err, tokenID)
		}
		if receiver == rec.OwnerID {
			return fmt.Errorf("%w: %s", ErrSelfTransfer, tokenID)
		}

		prev = rec.OwnerID
		rec.OwnerID = receiver
		rec.Approvals = nil
		updated, err := encodeRecord(rec)
		if err != nil {
			return err
		}
		if err := tb.Put([]byte(tokenID), updated); err != nil {
			return fmt.Errorf("boltstore: update record: %w", err)
		}

		ob := tx.Bucket(bucketOwnerTokens)
		if err := ob.Delete(ownerKey(prev, tokenID)); err != nil {
			return fmt.Errorf("boltstore: delete owner index: %w", err)
		}
		if err := ob.Put(ownerKey(receiver, tokenID), []byte{}); err != nil {
			return fmt.Errorf("boltstore: put owner index: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return prev, nil
}

// Approve grants account permission to transfer the token.
func (b *BoltStore) Approve(owner, account token.AccountID, tokenID token.ID) (uint64, error) {
	var id uint64
	err := b.db.Update(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTokens)
		data := tb.Get([]byte(tokenID))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
		}
		rec, err := decodeRecord(data)
		if err != nil {
			return err
		}
		if rec.OwnerID != owner {
			return fmt.Errorf("%w: %s", ErrNotOwner, tokenID)
		}
		if rec.Approvals == nil {
			rec.Approvals = make(map[token.AccountID]uint64)
		}
		id = rec.NextApprovalID
		rec.NextApprovalID++
		rec.Approvals[account] = id

		updated, err := encodeRecord(rec)
		if err != nil {
			return err
		}
		return tb.Put([]byte(tokenID), updated)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Revoke removes an account's approval.
func (b *BoltStore) Revoke(owner, account token.AccountID, tokenID token.ID) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTokens)
		data := tb.Get([]byte(tokenID))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
		}
		rec, err := decodeRecord(data)
		if err != nil {
			return err
		}
		if rec.OwnerID != owner {
			return fmt.Errorf("%w: %s", ErrNotOwner, tokenID)
		}
		delete(rec.Approvals, account)

		updated, err := encodeRecord(rec)
		if err != nil {
			return err
		}
		return tb.Put([]byte(tokenID), updated)
	})
}

// Burn removes the ownership record and its owner index entry.
func (b *BoltStore) Burn(owner token.AccountID, tokenID token.ID) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTokens)
		data := tb.Get([]byte(tokenID))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
		}
		rec, err := decodeRecord(data)
		if err != nil {
			return err
		}
		if rec.OwnerID != owner {
			return fmt.Errorf("%w: %s", ErrNotOwner, tokenID)
		}

		if err := tb.Delete([]byte(tokenID)); err != nil {
			return fmt.Errorf("boltstore: delete record: %w", err)
		}
		if err := tx.Bucket(bucketOwnerTokens).Delete(ownerKey(owner, tokenID)); err != nil {
			return fmt.Errorf("boltstore: delete owner index: %w", err)
		}
		return nil
	})
}

// TokensForOwner returns token ids owned by owner.
func (b *BoltStore) TokensForOwner(owner token.AccountID, fromIndex, limit uint64) ([]token.ID, error) {
	var out []token.ID
	err := b.db.View(func(tx *bbolt.Tx) error {
		prefix := ownerPrefix(owner)
		c := tx.Bucket(bucketOwnerTokens).Cursor()

		var total uint64
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			total++
		}
		if total == 0 {
			return nil
		}
		if err := token.CheckPage(fromIndex, limit, total); err != nil {
			return err
		}

		var index, taken uint64
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix) && taken < limit; k, _ = c.Next() {
			if index < fromIndex {
				index++
				continue
			}
			index++
			out = append(out, token.ID(k[ownerHashSize:]))
			taken++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SupplyForOwner returns how many tokens owner holds.
func (b *BoltStore) SupplyForOwner(owner token.AccountID) (uint64, error) {
	var count uint64
	err := b.db.View(func(tx *bbolt.Tx) error {
		prefix := ownerPrefix(owner)
		c := tx.Bucket(bucketOwnerTokens).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// TotalSupply returns the number of live ownership records.
func (b *BoltStore) TotalSupply() (uint64, error) {
	var count uint64
	err := b.db.View(func(tx *bbolt.Tx) error {
		count = uint64(tx.Bucket(bucketTokens).Stats().KeyN)
		return nil
	})
	return count, err
}

// List returns token ids in lexicographic order.
func (b *BoltStore) List(fromIndex, limit uint64) ([]token.ID, error) {
	var out []token.ID
	err := b.db.View(func(tx *bbolt.Tx) error {
		tb := tx.Bucket(bucketTokens)
		if err := token.CheckPage(fromIndex, limit, uint64(tb.Stats().KeyN)); err != nil {
			return err
		}

		c := tb.Cursor()
		var index, taken uint64
		for k, _ := c.First(); k != nil && taken < limit; k, _ = c.Next() {
			if index < fromIndex {
				index++
				continue
			}
			index++
			out = append(out, token.ID(k))
			taken++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
