//go:generate go run go.uber.org/mock/mockgen -source=settings_repository.go -destination=../../mocks/mock_settings_repository.go -package=mocks
package storage

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const discardKey = "settings:discard"

// ISettingsRepository keeps operator settings across restarts.
type ISettingsRepository interface {
	// LoadDiscard returns found=false when the setting was never stored.
	LoadDiscard() (enabled bool, found bool, err error)
	StoreDiscard(enabled bool) error
}

type SettingsRepository struct {
	db *badger.DB
}

func NewSettingsRepository(db *badger.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (s SettingsRepository) LoadDiscard() (bool, bool, error) {
	var enabled, found bool
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(discardKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			found = true
			enabled = len(v) == 1 && v[0] == 1
			return nil
		})
	})
	if err != nil {
		return false, false, fmt.Errorf("failed to load discard setting: %w", err)
	}
	return enabled, found, nil
}

func (s SettingsRepository) StoreDiscard(enabled bool) error {
	value := []byte{0}
	if enabled {
		value[0] = 1
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(discardKey), value)
	})
}
