// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage"
)

// PracticeRepository implements storage.PracticeRepository for BadgerDB.
type PracticeRepository struct {
	backend *Backend
}

var _ storage.PracticeRepository = (*PracticeRepository)(nil)

// NewPracticeRepository creates a new PracticeRepository.
func NewPracticeRepository(backend *Backend) (*PracticeRepository, error) {
	return &PracticeRepository{
		backend: backend,
	}, nil
}

// Close releases resources. PracticeRepository has no resources to release.
func (r *PracticeRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *PracticeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddPractices adds one or more practices to storage.
func (r *PracticeRepository) AddPractices(ctx context.Context, practices ...*core.Practice) ([]*core.Practice, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, practice := range practices {
			if err := core.ValidatePractice(practice); err != nil {
				return err
			}
			// Use content-based ID if not set
			if practice.Id == 0 {
				practice.Id = core.IDFromContent(practice.Name)
			}

			key := makePracticeKey(practice.Id)
			nameKey := makePracticeNameKey(practice.Name)
			for _, k := range [][]byte{key, nameKey} {
				found, err := exists(tx, k)
				if err != nil {
					return err
				}
				if found {
					return fmt.Errorf("%w: practice %q", storage.ErrDuplicateKey, practice.Name)
				}
			}

			practice.InsertedAt = time.Now().UTC()
			practice.UpdatedAt = practice.InsertedAt

			value, err := storage.MarshalPractice(practice)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
			if err := tx.Set(nameKey, storage.MarshalID(practice.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return practices, err
}

// UpdatePractices updates existing practices.
func (r *PracticeRepository) UpdatePractices(ctx context.Context, practices ...*core.Practice) ([]*core.Practice, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, practice := range practices {
			if err := core.ValidatePractice(practice); err != nil {
				return err
			}
			key := makePracticeKey(practice.Id)

			// Read old practice to detect a rename
			old, err := readPractice(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			practice.InsertedAt = old.InsertedAt
			practice.UpdatedAt = time.Now().UTC()

			value, err := storage.MarshalPractice(practice)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}

			if normalizeName(old.Name) != normalizeName(practice.Name) {
				if err := tx.Delete(makePracticeNameKey(old.Name)); err != nil {
					return err
				}
				if err := tx.Set(makePracticeNameKey(practice.Name), storage.MarshalID(practice.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return practices, err
}

// DeletePractices removes practices by their IDs.
func (r *PracticeRepository) DeletePractices(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePracticeKey(id)

			practice, err := readPractice(tx, key)
			if err != nil {
				return err
			}
			if practice == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makePracticeNameKey(practice.Name)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetPractice retrieves a single practice by ID.
func (r *PracticeRepository) GetPractice(ctx context.Context, id core.ID) (*core.Practice, error) {
	var result *core.Practice
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readPractice(tx, makePracticeKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetPracticeByName retrieves a practice through the name index.
func (r *PracticeRepository) GetPracticeByName(ctx context.Context, name string) (*core.Practice, error) {
	var result *core.Practice
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makePracticeNameKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var practiceID core.ID
		err = item.Value(func(val []byte) error {
			practiceID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readPractice(tx, makePracticeKey(practiceID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListPractices returns every practice ordered by ID.
func (r *PracticeRepository) ListPractices(ctx context.Context) ([]*core.Practice, error) {
	var results []*core.Practice
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(tx, []byte(practicePrefix), func(val []byte) error {
			practice, err := storage.UnmarshalPractice(val)
			if err != nil {
				return err
			}
			results = append(results, practice)
			return nil
		})
	}, false)
	return results, err
}

// CountPractices returns the number of stored practices.
func (r *PracticeRepository) CountPractices(ctx context.Context) (int, error) {
	var count int
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		count = countPrefix(tx, []byte(practicePrefix))
		return nil
	}, false)
	return count, err
}

// readPractice reads a practice from the transaction.
// Returns nil, nil when the key is absent.
func readPractice(tx *badger.Txn, key []byte) (*core.Practice, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var practice *core.Practice
	err = item.Value(func(val []byte) error {
		var err error
		practice, err = storage.UnmarshalPractice(val)
		return err
	})
	return practice, err
}
