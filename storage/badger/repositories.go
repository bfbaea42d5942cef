package badger

import "errors"

// Repositories bundles every repository opened on one backend.
type Repositories struct {
	Practices   *PracticeRepository
	Feedback    *FeedbackRepository
	Documents   *DocumentRepository
	Checkpoints *CheckpointRepository
	Backend     *Backend
}

// OpenRepositories creates every repository on top of backend.
// The backend is not closed on failure.
func OpenRepositories(backend *Backend) (*Repositories, error) {
	practices, err := NewPracticeRepository(backend)
	if err != nil {
		return nil, err
	}
	feedback, err := NewFeedbackRepository(backend)
	if err != nil {
		return nil, err
	}
	documents, err := NewDocumentRepository(backend)
	if err != nil {
		feedback.Close()
		return nil, err
	}
	return &Repositories{
		Practices:   practices,
		Feedback:    feedback,
		Documents:   documents,
		Checkpoints: NewCheckpointRepository(backend),
		Backend:     backend,
	}, nil
}

// Close closes the repositories, then the backend.
func (r *Repositories) Close() error {
	return errors.Join(
		r.Documents.Close(),
		r.Feedback.Close(),
		r.Practices.Close(),
		r.Backend.Close(),
	)
}
