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

import (
	"context"

	"github.com/poiesic/praxis/core"
	"github.com/poiesic/praxis/storage"
)

// Record is a stored entity whose vector can be recomputed.
type Record interface {
	EmbeddingText() string
	SetVector(v []float32)
	Embedded() bool
}

// Store lists and persists records of one kind.
type Store[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, records ...T) error
}

type practiceStore struct {
	repo storage.PracticeRepository
}

// PracticeStore adapts a practice repository. Practices are embedded from
// their full description.
func PracticeStore(repo storage.PracticeRepository) Store[*core.Practice] {
	return &practiceStore{repo: repo}
}

func (s *practiceStore) List(ctx context.Context) ([]*core.Practice, error) {
	return s.repo.ListPractices(ctx)
}

func (s *practiceStore) Update(ctx context.Context, practices ...*core.Practice) error {
	_, err := s.repo.UpdatePractices(ctx, practices...)
	return err
}

type documentStore struct {
	repo storage.DocumentRepository
}

// DocumentStore adapts a document repository. Documents are embedded from
// their content.
func DocumentStore(repo storage.DocumentRepository) Store[*core.Document] {
	return &documentStore{repo: repo}
}

func (s *documentStore) List(ctx context.Context) ([]*core.Document, error) {
	return s.repo.ListDocuments(ctx)
}

func (s *documentStore) Update(ctx context.Context, docs ...*core.Document) error {
	_, err := s.repo.UpdateDocuments(ctx, docs...)
	return err
}
