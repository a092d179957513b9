package annotation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainAnnotation "proofreview-service/internal/domain/annotation"
	domainProof "proofreview-service/internal/domain/proof"
	"proofreview-service/internal/usecase/review"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Usecase struct {
	proofRepo domainProof.Repository
	annotRepo domainAnnotation.Repository
	now       func() time.Time
}

func NewUsecase(proofs domainProof.Repository, annots domainAnnotation.Repository) *Usecase {
	return &Usecase{proofRepo: proofs, annotRepo: annots, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// loadWritable resolves the token and checks the capability gate shared by
// create and delete: a frozen proof (approved or expired) permits neither.
func (u *Usecase) loadWritable(ctx context.Context, token string) (*domainProof.Proof, error) {
	p, err := u.proofRepo.GetByAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProof.ErrNotFound
		}
		return nil, err
	}
	if p.DeletedAt.Valid {
		return nil, domainProof.ErrGone
	}
	if p.Frozen(u.now()) {
		return nil, domainProof.ErrForbidden
	}
	return p, nil
}

// Create validates and persists a committed draft, returning the annotation
// with its display index over the proof-wide creation order.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*review.AnnotationDTO, error) {
	p, err := u.loadWritable(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	a, err := buildAnnotation(p, in)
	if err != nil {
		return nil, err
	}
	if err := u.annotRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	// Number the new annotation from the unfiltered list so "comment #4"
	// stays stable across page navigation.
	all, err := u.annotRepo.ListByProofID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	dtos := review.ToAnnotationDTOs(all)
	for i := range dtos {
		if dtos[i].AnnotationID == a.AnnotationID {
			return &dtos[i], nil
		}
	}
	return nil, domainAnnotation.ErrNotFound
}

func buildAnnotation(p *domainProof.Proof, in CreateInput) (*domainAnnotation.Annotation, error) {
	if strings.TrimSpace(in.Comment) == "" {
		return nil, fmt.Errorf("%w: comment is required", domainAnnotation.ErrValidation)
	}
	if strings.TrimSpace(in.AuthorName) == "" {
		return nil, fmt.Errorf("%w: author_name is required", domainAnnotation.ErrValidation)
	}

	a := &domainAnnotation.Annotation{
		AnnotationID: uuid.NewString(),
		ProofID:      p.ID,
		// Positions are clamped into the box, never rejected. Rectangle
		// extents are left alone: x+width may overflow past 100.
		X:           clampPercent(in.X),
		Y:           clampPercent(in.Y),
		Comment:     in.Comment,
		AuthorName:  in.AuthorName,
		AuthorEmail: in.AuthorEmail,
	}

	switch domainAnnotation.Type(in.Type) {
	case domainAnnotation.TypePin:
		a.Type = domainAnnotation.TypePin
	case domainAnnotation.TypeRectangle:
		if in.Width <= domainAnnotation.MinRectSize || in.Height <= domainAnnotation.MinRectSize {
			return nil, fmt.Errorf("%w: rectangle smaller than %.0f%% per side", domainAnnotation.ErrValidation, domainAnnotation.MinRectSize)
		}
		a.Type = domainAnnotation.TypeRectangle
		a.Width = in.Width
		a.Height = in.Height
	default:
		return nil, fmt.Errorf("%w: unknown type %q", domainAnnotation.ErrValidation, in.Type)
	}

	if p.FileType == domainProof.FileTypeDocument {
		if in.Page < 1 || in.Page > p.PageCount {
			return nil, fmt.Errorf("%w: page %d outside 1..%d", domainAnnotation.ErrValidation, in.Page, p.PageCount)
		}
		a.Page = in.Page
	}
	return a, nil
}

// Delete removes an unresolved annotation of the token holder's proof.
func (u *Usecase) Delete(ctx context.Context, token, annotationID string) error {
	p, err := u.loadWritable(ctx, token)
	if err != nil {
		return err
	}
	a, err := u.annotRepo.GetByAnnotationID(ctx, p.ID, annotationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainAnnotation.ErrNotFound
		}
		return err
	}
	if a.Resolved {
		return domainAnnotation.ErrResolved
	}
	return u.annotRepo.Delete(ctx, a)
}

// List returns all annotations of the proof in creation order, numbered.
func (u *Usecase) List(ctx context.Context, token string) ([]review.AnnotationDTO, error) {
	p, err := u.loadProof(ctx, token)
	if err != nil {
		return nil, err
	}
	all, err := u.annotRepo.ListByProofID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return review.ToAnnotationDTOs(all), nil
}

// ListForPage filters to one page of a paginated document while keeping
// the proof-wide display indices. Single-image proofs get the full list.
func (u *Usecase) ListForPage(ctx context.Context, token string, page int) ([]review.AnnotationDTO, error) {
	p, err := u.loadProof(ctx, token)
	if err != nil {
		return nil, err
	}
	all, err := u.annotRepo.ListByProofID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	dtos := review.ToAnnotationDTOs(all)
	if p.FileType != domainProof.FileTypeDocument {
		return dtos, nil
	}
	out := make([]review.AnnotationDTO, 0, len(dtos))
	for _, d := range dtos {
		if d.Page == page {
			out = append(out, d)
		}
	}
	return out, nil
}

func (u *Usecase) loadProof(ctx context.Context, token string) (*domainProof.Proof, error) {
	p, err := u.proofRepo.GetByAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProof.ErrNotFound
		}
		return nil, err
	}
	if p.DeletedAt.Valid {
		return nil, domainProof.ErrGone
	}
	return p, nil
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
