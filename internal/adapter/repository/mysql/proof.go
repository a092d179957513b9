package mysql

import (
	"context"

	proofDomain "proofreview-service/internal/domain/proof"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProofRepository struct{ db *gorm.DB }

func NewProofRepository(db *gorm.DB) *ProofRepository { return &ProofRepository{db: db} }

func (r *ProofRepository) Create(ctx context.Context, p *proofDomain.Proof) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProofRepository) Save(ctx context.Context, p *proofDomain.Proof) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// GetByAccessToken loads the proof for a token. Withdrawn (soft-deleted)
// rows are included on purpose: the usecase maps them to Gone rather than
// NotFound.
func (r *ProofRepository) GetByAccessToken(ctx context.Context, token string) (*proofDomain.Proof, error) {
	var out proofDomain.Proof
	res := r.db.WithContext(ctx).Unscoped().
		Where("access_token = ?", token).
		First(&out)
	return &out, res.Error
}

func (r *ProofRepository) GetByAccessTokenForUpdate(ctx context.Context, token string) (*proofDomain.Proof, error) {
	var out proofDomain.Proof
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("access_token = ?", token).
		First(&out)
	return &out, res.Error
}

func (r *ProofRepository) ListByOrderID(ctx context.Context, orderID string) ([]proofDomain.Proof, error) {
	var out []proofDomain.Proof
	res := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("version ASC").
		Find(&out)
	return out, res.Error
}
