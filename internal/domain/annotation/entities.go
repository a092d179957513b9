package annotation

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("annotation not found")
	// ErrResolved guards deletes: resolved feedback is part of the audit
	// trail and may only be removed by back-office tooling.
	ErrResolved   = errors.New("annotation already resolved")
	ErrValidation = errors.New("invalid annotation")
)

type Type string

const (
	TypePin       Type = "pin"
	TypeRectangle Type = "rect"
)

// MinRectSize is the smallest committed rectangle dimension, in percent of
// the content box. Drags at or below this on either axis are accidental
// clicks and are never persisted.
const MinRectSize = 2.0

// Annotation is spatially-anchored reviewer feedback on one proof version.
// Coordinates are percentages of the rendered content box, top-left origin,
// so responsive scaling never invalidates stored positions. Position, type
// and comment are never edited in place; correction is delete-then-recreate.
type Annotation struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (UUID)
	AnnotationID string `gorm:"column:annotation_id;type:char(36);not null;uniqueIndex:ux_annotations_annotation_id"`
	// FK to proofs.id (numeric)
	ProofID uint64  `gorm:"column:proof_id;not null;index:idx_annotations_proof"`
	Type    Type    `gorm:"column:type;type:enum('pin','rect');not null"`
	X       float64 `gorm:"column:x;type:decimal(7,4);not null"`
	Y       float64 `gorm:"column:y;type:decimal(7,4);not null"`
	// Zero for pins
	Width  float64 `gorm:"column:width;type:decimal(7,4);not null;default:0"`
	Height float64 `gorm:"column:height;type:decimal(7,4);not null;default:0"`
	// 1-indexed page for documents, 0 for single images
	Page        int       `gorm:"column:page;not null;default:0"`
	Comment     string    `gorm:"column:comment;type:text;not null"`
	AuthorName  string    `gorm:"column:author_name;size:255;not null"`
	AuthorEmail string    `gorm:"column:author_email;size:255"`
	Resolved    bool      `gorm:"column:resolved;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Annotation) TableName() string { return "annotations" }
