package uow

import (
	"context"

	"proofreview-service/internal/domain/annotation"
	"proofreview-service/internal/domain/proof"
)

type Repos struct {
	Proofs      proof.Repository
	Annotations annotation.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the proof row first, then pass it in
	WithinProofTx(ctx context.Context, token string, fn func(r Repos, p *proof.Proof) error) error
}
