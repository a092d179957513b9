package mysql

import (
	"context"

	annotationDomain "proofreview-service/internal/domain/annotation"

	"gorm.io/gorm"
)

type AnnotationRepository struct{ db *gorm.DB }

func NewAnnotationRepository(db *gorm.DB) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

func (r *AnnotationRepository) Create(ctx context.Context, a *annotationDomain.Annotation) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// ListByProofID returns the full creation-order list; id ascending matches
// insertion order and is what display numbering hangs off.
func (r *AnnotationRepository) ListByProofID(ctx context.Context, proofID uint64) ([]annotationDomain.Annotation, error) {
	var out []annotationDomain.Annotation
	res := r.db.WithContext(ctx).
		Where("proof_id = ?", proofID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *AnnotationRepository) GetByAnnotationID(ctx context.Context, proofID uint64, annotationID string) (*annotationDomain.Annotation, error) {
	var out annotationDomain.Annotation
	res := r.db.WithContext(ctx).
		Where("proof_id = ? AND annotation_id = ?", proofID, annotationID).
		First(&out)
	return &out, res.Error
}

func (r *AnnotationRepository) Delete(ctx context.Context, a *annotationDomain.Annotation) error {
	return r.db.WithContext(ctx).Delete(a).Error
}

func (r *AnnotationRepository) MarkResolved(ctx context.Context, proofID uint64, annotationID string, resolved bool) error {
	res := r.db.WithContext(ctx).
		Model(&annotationDomain.Annotation{}).
		Where("proof_id = ? AND annotation_id = ?", proofID, annotationID).
		Update("resolved", resolved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
