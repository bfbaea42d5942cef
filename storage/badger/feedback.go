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
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage"
)

// FeedbackRepository implements storage.FeedbackRepository for BadgerDB.
type FeedbackRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(backend *Backend) (*FeedbackRepository, error) {
	idSeq, err := backend.GetSequence(feedbackIDSeq)
	if err != nil {
		return nil, err
	}

	return &FeedbackRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *FeedbackRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *FeedbackRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddFeedback appends one or more feedback records.
func (r *FeedbackRepository) AddFeedback(ctx context.Context, records ...*core.Feedback) ([]*core.Feedback, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.CreatedAt.IsZero() {
				record.CreatedAt = time.Now().UTC()
			}
			if err := core.ValidateFeedback(record); err != nil {
				return err
			}

			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			record.Id = core.ID(nextID)

			value, err := storage.MarshalFeedback(record)
			if err != nil {
				return err
			}
			if err := tx.Set(makeFeedbackKey(record.Id), value); err != nil {
				return err
			}

			indexKey := makeFeedbackPracticeKey(record.PracticeName, record.Id)
			if err := tx.Set(indexKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// ListFeedback returns every feedback record ordered by ID.
func (r *FeedbackRepository) ListFeedback(ctx context.Context) ([]*core.Feedback, error) {
	var results []*core.Feedback
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(tx, []byte(feedbackPrefix), func(val []byte) error {
			record, err := storage.UnmarshalFeedback(val)
			if err != nil {
				return err
			}
			results = append(results, record)
			return nil
		})
	}, false)
	return results, err
}

// ListFeedbackByPractice walks the per-practice index.
func (r *FeedbackRepository) ListFeedbackByPractice(ctx context.Context, practiceName string) ([]*core.Feedback, error) {
	var ids []core.ID
	var results []*core.Feedback
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialFeedbackPracticeKey(practiceName)
		err := scanPrefix(tx, prefix, func(val []byte) error {
			id, err := storage.UnmarshalID(val)
			if err != nil {
				return err
			}
			ids = append(ids, id)
			return nil
		})
		if err != nil {
			return err
		}

		for _, id := range ids {
			record, err := readFeedback(tx, makeFeedbackKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// readFeedback reads a feedback record from the transaction.
func readFeedback(tx *badger.Txn, key []byte) (*core.Feedback, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.Feedback
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalFeedback(val)
		return err
	})
	return record, err
}
