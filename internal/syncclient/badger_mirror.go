package syncclient

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerMirror persists mirror entries in an embedded badger database, so
// the last local state survives between CLI runs.
type BadgerMirror struct {
	db *badger.DB
}

// OpenBadgerMirror opens (or creates) the mirror database in dir.
func OpenBadgerMirror(dir string) (*BadgerMirror, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open mirror %s: %w", dir, err)
	}
	return &BadgerMirror{db: db}, nil
}

func (m *BadgerMirror) Get(key string) (string, bool, error) {
	var value []byte
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mirror get %s: %w", key, err)
	}
	return string(value), true, nil
}

func (m *BadgerMirror) Set(key, value string) error {
	err := m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("mirror set %s: %w", key, err)
	}
	return nil
}

// Close releases the database lock.
func (m *BadgerMirror) Close() error {
	return m.db.Close()
}
