package annotationmock

import (
	"context"

	domain "proofreview-service/internal/domain/annotation"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, a *domain.Annotation) error
	ListByProofIDFn     func(ctx context.Context, proofID uint64) ([]domain.Annotation, error)
	GetByAnnotationIDFn func(ctx context.Context, proofID uint64, annotationID string) (*domain.Annotation, error)
	DeleteFn            func(ctx context.Context, a *domain.Annotation) error
	MarkResolvedFn      func(ctx context.Context, proofID uint64, annotationID string, resolved bool) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Annotation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListByProofID(ctx context.Context, proofID uint64) ([]domain.Annotation, error) {
	if m.ListByProofIDFn != nil {
		return m.ListByProofIDFn(ctx, proofID)
	}
	return nil, nil
}

func (m *Repo) GetByAnnotationID(ctx context.Context, proofID uint64, annotationID string) (*domain.Annotation, error) {
	if m.GetByAnnotationIDFn != nil {
		return m.GetByAnnotationIDFn(ctx, proofID, annotationID)
	}
	return nil, context.Canceled
}

func (m *Repo) Delete(ctx context.Context, a *domain.Annotation) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, a)
	}
	return nil
}

func (m *Repo) MarkResolved(ctx context.Context, proofID uint64, annotationID string, resolved bool) error {
	if m.MarkResolvedFn != nil {
		return m.MarkResolvedFn(ctx, proofID, annotationID, resolved)
	}
	return nil
}
