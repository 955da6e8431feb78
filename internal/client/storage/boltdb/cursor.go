package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

// GetCursor returns the last seen message id for a server
func (s *Storage) GetCursor(ctx context.Context, server string) (int64, error) {
	var id int64

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}

		data := bucket.Get([]byte(server))
		if data == nil {
			return nil
		}
		if len(data) != 8 {
			return fmt.Errorf("corrupted cursor for %s", server)
		}
		id = int64(binary.BigEndian.Uint64(data))
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// SaveCursor moves the cursor forward, never back
func (s *Storage) SaveCursor(ctx context.Context, server string, id int64) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}

		key := []byte(server)
		if data := bucket.Get(key); len(data) == 8 && int64(binary.BigEndian.Uint64(data)) >= id {
			return nil
		}

		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(id))
		if err := bucket.Put(key, buf); err != nil {
			return fmt.Errorf("failed to save cursor: %w", err)
		}
		return nil
	})
}

// ResetCursor forgets the cursor of a server
func (s *Storage) ResetCursor(ctx context.Context, server string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCursors)
		if bucket == nil {
			return fmt.Errorf("cursors bucket not found")
		}
		return bucket.Delete([]byte(server))
	})
}
