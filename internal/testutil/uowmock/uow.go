package uowmock

import (
	"context"
	"errors"

	"proofreview-service/internal/domain/proof"
	"proofreview-service/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn      func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinProofTxFn func(ctx context.Context, token string, fn func(r uow.Repos, p *proof.Proof) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinProofTx(ctx context.Context, token string, fn func(r uow.Repos, p *proof.Proof) error) error {
	if m.WithinProofTxFn != nil {
		return m.WithinProofTxFn(ctx, token, fn)
	}
	return errUnimplemented
}
