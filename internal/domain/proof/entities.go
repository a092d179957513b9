package proof

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("proof not found")
	ErrGone      = errors.New("proof withdrawn")
	ErrForbidden = errors.New("action not permitted for this proof")
	// ErrAlreadyApproved is the Forbidden subclass a losing sign-off race
	// surfaces; it maps to its own HTTP status but still answers true to
	// errors.Is(err, ErrForbidden).
	ErrAlreadyApproved = fmt.Errorf("proof already approved: %w", ErrForbidden)
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeDocument FileType = "document"
)

// Proof is one reviewable version of an order's design artifact. Rows are
// immutable after creation except the sign-off fields, which are written
// exactly once on the pending -> approved transition.
type Proof struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	ProofID string `gorm:"column:proof_id;type:char(32);not null;uniqueIndex:ux_proofs_proof_id"`
	// Order grouping: at most one proof per (order_id, version)
	OrderID     string `gorm:"column:order_id;type:char(32);not null;uniqueIndex:ux_proofs_order_version,priority:1;index:idx_proofs_order"`
	OrderNumber string `gorm:"column:order_number;size:32;not null"`
	Version     int    `gorm:"column:version;not null;uniqueIndex:ux_proofs_order_version,priority:2"`
	Title       string `gorm:"column:title;size:255;not null"`
	FileURL     string `gorm:"column:file_url;type:text;not null"`
	FileType    FileType `gorm:"column:file_type;type:enum('image','document');default:'image'"`
	// 1 for images; page count of the rendered document otherwise
	PageCount int    `gorm:"column:page_count;not null;default:1"`
	Status    Status `gorm:"column:status;type:enum('pending','approved');default:'pending'"`
	// Capability token: gates anonymous access to exactly this version
	AccessToken string     `gorm:"column:access_token;type:char(64);not null;uniqueIndex:ux_proofs_access_token"`
	ExpiresAt   *time.Time `gorm:"column:expires_at"`
	// Shipping contact, used only to prefill the reviewer identity fields
	ContactName  string `gorm:"column:contact_name;size:255"`
	ContactEmail string `gorm:"column:contact_email;size:255"`
	// Sign-off record, set once
	SignedOffBy string         `gorm:"column:signed_off_by;size:255"`
	SignedOffAt *time.Time     `gorm:"column:signed_off_at"`
	Signature   string         `gorm:"column:signature;type:text"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Proof) TableName() string { return "proofs" }

// Expired reports whether the access token is past its expiry at the given
// instant. Proofs without an expiry never expire.
func (p *Proof) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// Frozen reports whether the proof accepts no further annotation or sign-off.
func (p *Proof) Frozen(now time.Time) bool {
	return p.Status == StatusApproved || p.Expired(now)
}
