package mysql

import (
	"context"

	"proofreview-service/internal/domain/proof"
	"proofreview-service/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Proofs:      &ProofRepository{db: tx},
			Annotations: &AnnotationRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinProofTx(ctx context.Context, token string, fn func(r uow.Repos, p *proof.Proof) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Proofs:      &ProofRepository{db: tx},
			Annotations: &AnnotationRepository{db: tx},
		}
		// lock the proof row up-front so concurrent sign-offs serialize
		p, err := r.Proofs.GetByAccessTokenForUpdate(ctx, token)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
