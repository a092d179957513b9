package signoff

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainProof "proofreview-service/internal/domain/proof"
	"proofreview-service/internal/domain/uow"
	"proofreview-service/internal/testutil/proofmock"
	"proofreview-service/internal/testutil/uowmock"

	"gorm.io/gorm"
)

var (
	fixedNow  = time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)
	testToken = strings.Repeat("a", 64)
)

func pendingProof() *domainProof.Proof {
	return &domainProof.Proof{
		ID:          9,
		ProofID:     strings.Repeat("1", 32),
		Status:      domainProof.StatusPending,
		AccessToken: testToken,
	}
}

func fixture(p *domainProof.Proof) (*proofmock.Repo, *uowmock.UoW, *bool) {
	saved := false
	proofs := &proofmock.Repo{
		GetByAccessTokenFn: func(ctx context.Context, token string) (*domainProof.Proof, error) {
			if token != p.AccessToken {
				return nil, gorm.ErrRecordNotFound
			}
			return p, nil
		},
		SaveFn: func(ctx context.Context, pp *domainProof.Proof) error {
			saved = true
			return nil
		},
	}
	tx := &uowmock.UoW{
		WithinProofTxFn: func(ctx context.Context, token string, fn func(r uow.Repos, pp *domainProof.Proof) error) error {
			return fn(uow.Repos{Proofs: proofs}, p)
		},
	}
	return proofs, tx, &saved
}

func TestUsecase_SignOff(t *testing.T) {
	in := SignOffInput{Token: testToken, SignedOffBy: "Jane Doe", Signature: "Jane Doe"}

	t.Run("pending proof approved exactly once", func(t *testing.T) {
		p := pendingProof()
		proofs, tx, saved := fixture(p)
		uc := NewUsecase(proofs, tx).WithClock(func() time.Time { return fixedNow })

		dto, err := uc.SignOff(context.Background(), in)
		if err != nil {
			t.Fatalf("SignOff: %v", err)
		}
		if !*saved {
			t.Fatal("proof was not saved")
		}
		if p.Status != domainProof.StatusApproved {
			t.Fatalf("status = %q, want approved", p.Status)
		}
		if p.SignedOffBy != "Jane Doe" || p.Signature != "Jane Doe" {
			t.Fatalf("sign-off record: %+v", p)
		}
		if p.SignedOffAt == nil || !p.SignedOffAt.Equal(fixedNow) {
			t.Fatalf("SignedOffAt = %v, want server clock %v", p.SignedOffAt, fixedNow)
		}
		if dto.Status != "approved" || !dto.SignedOffAt.Equal(fixedNow) {
			t.Fatalf("dto = %+v", dto)
		}

		// Second attempt on the now-approved row loses: first write wins.
		_, err = uc.SignOff(context.Background(), in)
		if !errors.Is(err, domainProof.ErrAlreadyApproved) {
			t.Fatalf("second attempt: want ErrAlreadyApproved, got %v", err)
		}
		// The lost race is still a permission failure.
		if !errors.Is(err, domainProof.ErrForbidden) {
			t.Fatalf("ErrAlreadyApproved must classify as ErrForbidden, got %v", err)
		}
	})

	t.Run("empty fields rejected before any repo access", func(t *testing.T) {
		touched := false
		proofs := &proofmock.Repo{
			GetByAccessTokenFn: func(ctx context.Context, token string) (*domainProof.Proof, error) {
				touched = true
				return pendingProof(), nil
			},
		}
		uc := NewUsecase(proofs, &uowmock.UoW{}).WithClock(func() time.Time { return fixedNow })

		for _, bad := range []SignOffInput{
			{Token: testToken, SignedOffBy: "", Signature: "sig"},
			{Token: testToken, SignedOffBy: "Jane", Signature: ""},
			{Token: testToken, SignedOffBy: "  ", Signature: "sig"},
		} {
			if _, err := uc.SignOff(context.Background(), bad); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		}
		if touched {
			t.Fatal("invalid input must not reach the repository")
		}
	})

	t.Run("expired token forbidden", func(t *testing.T) {
		p := pendingProof()
		past := fixedNow.Add(-time.Minute)
		p.ExpiresAt = &past
		proofs, tx, saved := fixture(p)
		uc := NewUsecase(proofs, tx).WithClock(func() time.Time { return fixedNow })

		_, err := uc.SignOff(context.Background(), in)
		if !errors.Is(err, domainProof.ErrForbidden) {
			t.Fatalf("want ErrForbidden, got %v", err)
		}
		if *saved {
			t.Fatal("expired proof must not be written")
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		proofs := &proofmock.Repo{
			GetByAccessTokenFn: func(ctx context.Context, token string) (*domainProof.Proof, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		uc := NewUsecase(proofs, &uowmock.UoW{}).WithClock(func() time.Time { return fixedNow })

		_, err := uc.SignOff(context.Background(), in)
		if !errors.Is(err, domainProof.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("withdrawn proof gone", func(t *testing.T) {
		p := pendingProof()
		p.DeletedAt = gorm.DeletedAt{Time: fixedNow, Valid: true}
		proofs, tx, _ := fixture(p)
		uc := NewUsecase(proofs, tx).WithClock(func() time.Time { return fixedNow })

		_, err := uc.SignOff(context.Background(), in)
		if !errors.Is(err, domainProof.ErrGone) {
			t.Fatalf("want ErrGone, got %v", err)
		}
	})
}
