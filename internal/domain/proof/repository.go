package proof

import "context"

type Repository interface {
	Create(ctx context.Context, p *Proof) error
	// GetByAccessToken includes withdrawn (soft-deleted) rows so the caller
	// can distinguish Gone from NotFound.
	GetByAccessToken(ctx context.Context, token string) (*Proof, error)
	// GetByAccessTokenForUpdate locks the row for the sign-off transaction.
	GetByAccessTokenForUpdate(ctx context.Context, token string) (*Proof, error)
	// ListByOrderID returns all versions for an order, ascending by version.
	ListByOrderID(ctx context.Context, orderID string) ([]Proof, error)
	Save(ctx context.Context, p *Proof) error
}
