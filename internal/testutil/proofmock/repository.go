package proofmock

import (
	"context"

	domain "proofreview-service/internal/domain/proof"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                    func(ctx context.Context, p *domain.Proof) error
	GetByAccessTokenFn          func(ctx context.Context, token string) (*domain.Proof, error)
	GetByAccessTokenForUpdateFn func(ctx context.Context, token string) (*domain.Proof, error)
	ListByOrderIDFn             func(ctx context.Context, orderID string) ([]domain.Proof, error)
	SaveFn                      func(ctx context.Context, p *domain.Proof) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Proof) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByAccessToken(ctx context.Context, token string) (*domain.Proof, error) {
	if m.GetByAccessTokenFn != nil {
		return m.GetByAccessTokenFn(ctx, token)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAccessTokenForUpdate(ctx context.Context, token string) (*domain.Proof, error) {
	if m.GetByAccessTokenForUpdateFn != nil {
		return m.GetByAccessTokenForUpdateFn(ctx, token)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByOrderID(ctx context.Context, orderID string) ([]domain.Proof, error) {
	if m.ListByOrderIDFn != nil {
		return m.ListByOrderIDFn(ctx, orderID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Proof) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
