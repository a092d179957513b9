package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	annotationDomain "proofreview-service/internal/domain/annotation"
	"proofreview-service/pkg/id"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func makeAnnotation(proofID uint64, page int, comment string) *annotationDomain.Annotation {
	return &annotationDomain.Annotation{
		AnnotationID: uuid.NewString(),
		ProofID:      proofID,
		Type:         annotationDomain.TypePin,
		X:            25.5,
		Y:            74.2,
		Page:         page,
		Comment:      comment,
		AuthorName:   "Jane Doe",
	}
}

func TestAnnotationCreateAndListOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewAnnotationRepository(db)
	ctx := context.Background()

	const proofID = 11
	for i := 0; i < 4; i++ {
		a := makeAnnotation(proofID, 0, fmt.Sprintf("comment %d", i+1))
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	// Annotations of other proofs must not leak in.
	if err := repo.Create(ctx, makeAnnotation(99, 0, "other proof")); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	got, err := repo.ListByProofID(ctx, proofID)
	if err != nil {
		t.Fatalf("ListByProofID: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	for i, a := range got {
		if want := fmt.Sprintf("comment %d", i+1); a.Comment != want {
			t.Errorf("position %d = %q, want %q (creation order broken)", i, a.Comment, want)
		}
	}
}

func TestAnnotationGetByAnnotationID_ScopedToProof(t *testing.T) {
	db := openTestDB(t)
	repo := NewAnnotationRepository(db)
	ctx := context.Background()

	a := makeAnnotation(11, 0, "mine")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByAnnotationID(ctx, 11, a.AnnotationID)
	if err != nil {
		t.Fatalf("GetByAnnotationID: %v", err)
	}
	if got.Comment != "mine" {
		t.Errorf("unexpected annotation: %+v", got)
	}

	// A valid id under the wrong proof is invisible: tokens must not
	// reach across proof versions.
	if _, err := repo.GetByAnnotationID(ctx, 12, a.AnnotationID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound for foreign proof, got %v", err)
	}
}

func TestAnnotationDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewAnnotationRepository(db)
	ctx := context.Background()

	a := makeAnnotation(11, 0, "remove me")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, a); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByAnnotationID(ctx, 11, a.AnnotationID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("annotation still present after delete: %v", err)
	}
}

func TestAnnotationMarkResolved(t *testing.T) {
	db := openTestDB(t)
	repo := NewAnnotationRepository(db)
	ctx := context.Background()

	a := makeAnnotation(11, 0, "resolve me")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.MarkResolved(ctx, 11, a.AnnotationID, true); err != nil {
		t.Fatalf("MarkResolved: %v", err)
	}
	got, err := repo.GetByAnnotationID(ctx, 11, a.AnnotationID)
	if err != nil {
		t.Fatalf("GetByAnnotationID: %v", err)
	}
	if !got.Resolved {
		t.Fatal("resolved flag not set")
	}
	// Only the flag may change.
	if got.Comment != "resolve me" || got.X != a.X || got.Y != a.Y {
		t.Errorf("MarkResolved mutated other fields: %+v", got)
	}

	if err := repo.MarkResolved(ctx, 11, id.NewID32(), true); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound for unknown id, got %v", err)
	}
}
