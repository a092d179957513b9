package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	proofDomain "proofreview-service/internal/domain/proof"
	"proofreview-service/internal/domain/uow"
	"proofreview-service/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type proofSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	ProofID      string         `gorm:"size:32;column:proof_id"`
	OrderID      string         `gorm:"size:32;column:order_id"`
	OrderNumber  string         `gorm:"size:32;column:order_number"`
	Version      int            `gorm:"column:version"`
	Title        string         `gorm:"column:title"`
	FileURL      string         `gorm:"column:file_url"`
	FileType     string         `gorm:"type:text;column:file_type"` // ← no enum
	PageCount    int            `gorm:"column:page_count"`
	Status       string         `gorm:"type:text;column:status"` // ← no enum
	AccessToken  string         `gorm:"size:64;column:access_token"`
	ExpiresAt    *time.Time     `gorm:"column:expires_at"`
	ContactName  string         `gorm:"column:contact_name"`
	ContactEmail string         `gorm:"column:contact_email"`
	SignedOffBy  string         `gorm:"column:signed_off_by"`
	SignedOffAt  *time.Time     `gorm:"column:signed_off_at"`
	Signature    string         `gorm:"column:signature"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (proofSQLite) TableName() string { return "proofs" }

type annotationSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	AnnotationID string    `gorm:"size:36;column:annotation_id"`
	ProofID      uint64    `gorm:"column:proof_id"`
	Type         string    `gorm:"type:text;column:type"` // ← no enum
	X            float64   `gorm:"column:x"`
	Y            float64   `gorm:"column:y"`
	Width        float64   `gorm:"column:width"`
	Height       float64   `gorm:"column:height"`
	Page         int       `gorm:"column:page"`
	Comment      string    `gorm:"column:comment"`
	AuthorName   string    `gorm:"column:author_name"`
	AuthorEmail  string    `gorm:"column:author_email"`
	Resolved     bool      `gorm:"column:resolved"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (annotationSQLite) TableName() string { return "annotations" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&proofSQLite{}, &annotationSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeProof(orderID string, version int) *proofDomain.Proof {
	return &proofDomain.Proof{
		ProofID:     id.NewID32(),
		OrderID:     orderID,
		OrderNumber: "ORD-1001",
		Version:     version,
		Title:       "Spirit Wear Proof",
		FileURL:     "https://assets.example.com/proofs/p.png",
		FileType:    proofDomain.FileTypeImage,
		PageCount:   1,
		Status:      proofDomain.StatusPending,
		AccessToken: id.NewToken(),
	}
}

func TestProofCreateAndGetByAccessToken(t *testing.T) {
	db := openTestDB(t)
	repo := NewProofRepository(db)
	ctx := context.Background()

	p := makeProof(id.NewID32(), 1)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByAccessToken(ctx, p.AccessToken)
	if err != nil {
		t.Fatalf("GetByAccessToken: %v", err)
	}
	if got.ProofID != p.ProofID || got.AccessToken != p.AccessToken {
		t.Errorf("unexpected proof: %+v", got)
	}
}

func TestProofGetByAccessToken_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewProofRepository(db)

	_, err := repo.GetByAccessToken(context.Background(), id.NewToken())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestProofGetByAccessToken_IncludesWithdrawn(t *testing.T) {
	db := openTestDB(t)
	repo := NewProofRepository(db)
	ctx := context.Background()

	p := makeProof(id.NewID32(), 1)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.Delete(&proofSQLite{}, p.ID).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	// Withdrawn proofs must still resolve so the caller can answer Gone.
	got, err := repo.GetByAccessToken(ctx, p.AccessToken)
	if err != nil {
		t.Fatalf("GetByAccessToken after withdraw: %v", err)
	}
	if !got.DeletedAt.Valid {
		t.Fatal("expected DeletedAt to be set")
	}
}

func TestProofSaveSignOffFields(t *testing.T) {
	db := openTestDB(t)
	repo := NewProofRepository(db)
	ctx := context.Background()

	p := makeProof(id.NewID32(), 1)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	signedAt := time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)
	p.Status = proofDomain.StatusApproved
	p.SignedOffBy = "Jane Doe"
	p.SignedOffAt = &signedAt
	p.Signature = "Jane Doe"
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByAccessToken(ctx, p.AccessToken)
	if err != nil {
		t.Fatalf("GetByAccessToken: %v", err)
	}
	if got.Status != proofDomain.StatusApproved || got.SignedOffBy != "Jane Doe" {
		t.Errorf("sign-off fields not persisted: %+v", got)
	}
}

func TestProofListByOrderID_AscendingVersions(t *testing.T) {
	db := openTestDB(t)
	repo := NewProofRepository(db)
	ctx := context.Background()

	orderID := id.NewID32()
	// Insert out of order on purpose.
	for _, v := range []int{3, 1, 2} {
		if err := repo.Create(ctx, makeProof(orderID, v)); err != nil {
			t.Fatalf("Create v%d: %v", v, err)
		}
	}
	// An unrelated order must not leak in.
	if err := repo.Create(ctx, makeProof(id.NewID32(), 1)); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	got, err := repo.ListByOrderID(ctx, orderID)
	if err != nil {
		t.Fatalf("ListByOrderID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, p := range got {
		if p.Version != i+1 {
			t.Errorf("position %d has version %d", i, p.Version)
		}
	}
}

func TestGormUoW_WithinTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	u := NewGormUoW(db)
	ctx := context.Background()

	orderID := id.NewID32()
	boom := errors.New("boom")
	err := u.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Proofs.Create(ctx, makeProof(orderID, 1)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	got, err := NewProofRepository(db).ListByOrderID(ctx, orderID)
	if err != nil {
		t.Fatalf("ListByOrderID: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("tx did not roll back, found %d proofs", len(got))
	}
}
