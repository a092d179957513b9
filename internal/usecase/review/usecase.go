package review

import (
	"context"
	"errors"
	"time"

	domainAnnotation "proofreview-service/internal/domain/annotation"
	domainProof "proofreview-service/internal/domain/proof"

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

// WithClock overrides the time source; tests use this to pin expiry checks.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Resolve is the single entry point of the review surface: token in, full
// session state out. Read-only and idempotent, called on initial load and
// again after sign-off so capability flags flip off.
func (u *Usecase) Resolve(ctx context.Context, token string) (*ResolveResult, error) {
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

	annots, err := u.annotRepo.ListByProofID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	siblings, err := u.proofRepo.ListByOrderID(ctx, p.OrderID)
	if err != nil {
		return nil, err
	}

	expired := p.Expired(u.now())
	// Both capability flags collapse to false once the proof is frozen,
	// no matter what else is true.
	can := !expired && p.Status == domainProof.StatusPending

	return &ResolveResult{
		Proof:       ToProofDTO(p),
		Annotations: ToAnnotationDTOs(annots),
		Versions:    toVersionSummaries(siblings),
		CanAnnotate: can,
		CanSignOff:  can,
		IsExpired:   expired,
	}, nil
}

func ToProofDTO(p *domainProof.Proof) ProofDTO {
	return ProofDTO{
		ProofID:      p.ProofID,
		OrderID:      p.OrderID,
		OrderNumber:  p.OrderNumber,
		Version:      p.Version,
		Title:        p.Title,
		FileURL:      p.FileURL,
		FileType:     string(p.FileType),
		PageCount:    p.PageCount,
		Status:       string(p.Status),
		ExpiresAt:    p.ExpiresAt,
		ContactName:  p.ContactName,
		ContactEmail: p.ContactEmail,
		SignedOffBy:  p.SignedOffBy,
		SignedOffAt:  p.SignedOffAt,
		Signature:    p.Signature,
		CreatedAt:    p.CreatedAt,
	}
}

// ToAnnotationDTOs numbers the unfiltered creation-order list 1..N. The
// index is computed here, once, and carried with the annotation; callers
// that filter by page keep the original numbering.
func ToAnnotationDTOs(annots []domainAnnotation.Annotation) []AnnotationDTO {
	out := make([]AnnotationDTO, 0, len(annots))
	for i, a := range annots {
		out = append(out, AnnotationDTO{
			AnnotationID: a.AnnotationID,
			Index:        i + 1,
			Type:         string(a.Type),
			X:            a.X,
			Y:            a.Y,
			Width:        a.Width,
			Height:       a.Height,
			Page:         a.Page,
			Comment:      a.Comment,
			AuthorName:   a.AuthorName,
			AuthorEmail:  a.AuthorEmail,
			Resolved:     a.Resolved,
			CreatedAt:    a.CreatedAt,
		})
	}
	return out
}

func toVersionSummaries(proofs []domainProof.Proof) []VersionSummaryDTO {
	out := make([]VersionSummaryDTO, 0, len(proofs))
	for _, p := range proofs {
		out = append(out, VersionSummaryDTO{
			ProofID:     p.ProofID,
			Version:     p.Version,
			AccessToken: p.AccessToken,
			Status:      string(p.Status),
			CreatedAt:   p.CreatedAt,
		})
	}
	return out
}
