package annotation

import "context"

type Repository interface {
	Create(ctx context.Context, a *Annotation) error
	// ListByProofID returns every annotation of one proof version in
	// creation order (id ascending). Display numbering is derived from
	// this unfiltered order.
	ListByProofID(ctx context.Context, proofID uint64) ([]Annotation, error)
	GetByAnnotationID(ctx context.Context, proofID uint64, annotationID string) (*Annotation, error)
	Delete(ctx context.Context, a *Annotation) error
	// MarkResolved flips the resolved flag. Back-office tooling only;
	// nothing else about an annotation is ever mutated.
	MarkResolved(ctx context.Context, proofID uint64, annotationID string, resolved bool) error
}
