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


package reembed

import "context"

// DefaultBatchSize is the number of records handed to each callback.
const DefaultBatchSize = 100

// RecordIterator walks the records of a store in fixed-size batches.
type RecordIterator[T Record] struct {
	store       Store[T]
	batchSize   int
	onlyMissing bool
}

// NewRecordIterator creates an iterator. A non-positive batchSize means
// DefaultBatchSize. When onlyMissing is set, records that already have a
// vector are skipped.
func NewRecordIterator[T Record](store Store[T], batchSize int, onlyMissing bool) *RecordIterator[T] {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &RecordIterator[T]{
		store:       store,
		batchSize:   batchSize,
		onlyMissing: onlyMissing,
	}
}

// Records returns the records the iterator would visit.
func (it *RecordIterator[T]) Records(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := it.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if !it.onlyMissing {
		return records, nil
	}
	pending := records[:0:0]
	for _, r := range records {
		if !r.Embedded() {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// ForEach calls fn with consecutive batches of records. It stops at the
// first error from fn and checks ctx between batches.
func (it *RecordIterator[T]) ForEach(ctx context.Context, fn func([]T) error) error {
	records, err := it.Records(ctx)
	if err != nil {
		return err
	}
	return forEachBatch(ctx, records, it.batchSize, fn)
}

func forEachBatch[T any](ctx context.Context, records []T, size int, fn func([]T) error) error {
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		if err := fn(records[start:end]); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
