package series

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/seriesorg/libseries-go/token"
)

var (
	bucketSeries      = []byte("series")
	bucketSeriesOrder = []byte("series_order")
)

// BoltStore is a bbolt-backed implementation of Store. Series records are
// gob-encoded under their id; a secondary bucket maps a big-endian insertion
// sequence to the id for ordered pagination.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("series: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("series: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSeries, bucketSeriesOrder} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("series: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// NewBoltStore wraps an already-open bbolt database, creating the series
// buckets if needed. The caller retains ownership of the database.
func NewBoltStore(db *bbolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSeries, bucketSeriesOrder} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("boltstore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("series: create buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (b *BoltStore) Close() error { return b.db.Close() }

// DB exposes the underlying database so other stores can share it.
func (b *BoltStore) DB() *bbolt.DB { return b.db }

// seqKey encodes an insertion sequence as an 8-byte big-endian key for
// sorted iteration.
func seqKey(n uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, n)
	return k
}

func encodeSeries(s *Series) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("boltstore: encode series: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeSeries(data []byte) (*Series, error) {
	var s Series
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, fmt.Errorf("boltstore: decode series: %w", err)
	}
	return &s, nil
}

// Create stores a new series.
func (b *BoltStore) Create(s *Series) error {
	data, err := encodeSeries(s)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		sb := tx.Bucket(bucketSeries)
		if sb.Get([]byte(s.ID)) != nil {
			return fmt.Errorf("%w: %s", ErrDuplicateSeries, s.ID)
		}
		if err := sb.Put([]byte(s.ID), data); err != nil {
			return fmt.Errorf("boltstore: put series: %w", err)
		}

		ob := tx.Bucket(bucketSeriesOrder)
		seq, err := ob.NextSequence()
		if err != nil {
			return fmt.Errorf("boltstore: next sequence: %w", err)
		}
		if err := ob.Put(seqKey(seq), []byte(s.ID)); err != nil {
			return fmt.Errorf("boltstore: put series order: %w", err)
		}
		return nil
	})
}

// Put overwrites an existing series.
func (b *BoltStore) Put(s *Series) error {
	data, err := encodeSeries(s)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		sb := tx.Bucket(bucketSeries)
		if sb.Get([]byte(s.ID)) == nil {
			return fmt.Errorf("%w: %s", ErrSeriesNotFound, s.ID)
		}
		if err := sb.Put([]byte(s.ID), data); err != nil {
			return fmt.Errorf("boltstore: update series: %w", err)
		}
		return nil
	})
}

// Get retrieves a series by id.
func (b *BoltStore) Get(id token.SeriesID) (*Series, error) {
	var s *Series
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSeries).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrSeriesNotFound, id)
		}
		var err error
		s, err = decodeSeries(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Has reports whether a series id is assigned.
func (b *BoltStore) Has(id token.SeriesID) (bool, error) {
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketSeries).Get([]byte(id)) != nil
		return nil
	})
	return found, err
}

// Count returns the number of registered series.
func (b *BoltStore) Count() (uint64, error) {
	var count uint64
	err := b.db.View(func(tx *bbolt.Tx) error {
		count = uint64(tx.Bucket(bucketSeries).Stats().KeyN)
		return nil
	})
	return count, err
}

// List returns series in insertion order.
func (b *BoltStore) List(fromIndex, limit uint64) ([]*Series, error) {
	var out []*Series
	err := b.db.View(func(tx *bbolt.Tx) error {
		sb := tx.Bucket(bucketSeries)
		ob := tx.Bucket(bucketSeriesOrder)

		if err := token.CheckPage(fromIndex, limit, uint64(sb.Stats().KeyN)); err != nil {
			return err
		}

		c := ob.Cursor()
		var index, taken uint64
		for k, id := c.First(); k != nil && taken < limit; k, id = c.Next() {
			if index < fromIndex {
				index++
				continue
			}
			index++
			data := sb.Get(id)
			if data == nil {
				return fmt.Errorf("boltstore: order entry for missing series %q", id)
			}
			s, err := decodeSeries(data)
			if err != nil {
				return err
			}
			out = append(out, s)
			taken++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
