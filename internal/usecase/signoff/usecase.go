package signoff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainProof "proofreview-service/internal/domain/proof"
	"proofreview-service/internal/domain/uow"

	"gorm.io/gorm"
)

// ErrInvalidInput rejects a sign-off before it reaches the state machine.
var ErrInvalidInput = errors.New("invalid sign-off input")

type Usecase struct {
	proofRepo domainProof.Repository
	uow       uow.UnitOfWork
	now       func() time.Time
}

func NewUsecase(proofs domainProof.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{proofRepo: proofs, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

type SignOffInput struct {
	Token       string
	SignedOffBy string
	Signature   string
}

type SignOffDTO struct {
	ProofID     string    `json:"proof_id"`
	Status      string    `json:"status"`
	SignedOffBy string    `json:"signed_off_by"`
	SignedOffAt time.Time `json:"signed_off_at"`
}

// SignOff drives the one forward transition pending -> approved. The proof
// row is locked for the duration, so of two racing attempts the first
// write wins and the second surfaces ErrAlreadyApproved. There is no
// un-approve.
func (u *Usecase) SignOff(ctx context.Context, in SignOffInput) (*SignOffDTO, error) {
	if strings.TrimSpace(in.SignedOffBy) == "" {
		return nil, fmt.Errorf("%w: signed_off_by is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Signature) == "" {
		return nil, fmt.Errorf("%w: signature is required", ErrInvalidInput)
	}

	// Pre-check outside the tx so withdrawn proofs map to Gone instead of
	// vanishing behind the non-unscoped locking read.
	pre, err := u.proofRepo.GetByAccessToken(ctx, in.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProof.ErrNotFound
		}
		return nil, err
	}
	if pre.DeletedAt.Valid {
		return nil, domainProof.ErrGone
	}

	var dto *SignOffDTO
	err = u.uow.WithinProofTx(ctx, in.Token, func(r uow.Repos, p *domainProof.Proof) error {
		if p.Status == domainProof.StatusApproved {
			return domainProof.ErrAlreadyApproved
		}
		if p.Expired(u.now()) {
			return domainProof.ErrForbidden
		}

		signedAt := u.now()
		p.Status = domainProof.StatusApproved
		p.SignedOffBy = in.SignedOffBy
		p.SignedOffAt = &signedAt
		p.Signature = in.Signature
		if err := r.Proofs.Save(ctx, p); err != nil {
			return err
		}

		dto = &SignOffDTO{
			ProofID:     p.ProofID,
			Status:      string(p.Status),
			SignedOffBy: p.SignedOffBy,
			SignedOffAt: signedAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProof.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}
