package review

import "time"

// ProofDTO is the reviewer-facing projection of a proof version. The access
// token is deliberately absent: the caller already holds it.
type ProofDTO struct {
	ProofID      string     `json:"proof_id"`
	OrderID      string     `json:"order_id"`
	OrderNumber  string     `json:"order_number"`
	Version      int        `json:"version"`
	Title        string     `json:"title"`
	FileURL      string     `json:"file_url"`
	FileType     string     `json:"file_type"`
	PageCount    int        `json:"page_count"`
	Status       string     `json:"status"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	ContactName  string     `json:"contact_name,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty"`
	SignedOffBy  string     `json:"signed_off_by,omitempty"`
	SignedOffAt  *time.Time `json:"signed_off_at,omitempty"`
	Signature    string     `json:"signature,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AnnotationDTO carries the display index alongside the annotation so page
// filters never have to recompute numbering from a filtered slice.
type AnnotationDTO struct {
	AnnotationID string    `json:"annotation_id"`
	Index        int       `json:"index"`
	Type         string    `json:"type"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	Width        float64   `json:"width,omitempty"`
	Height       float64   `json:"height,omitempty"`
	Page         int       `json:"page,omitempty"`
	Comment      string    `json:"comment"`
	AuthorName   string    `json:"author_name"`
	AuthorEmail  string    `json:"author_email,omitempty"`
	Resolved     bool      `json:"resolved"`
	CreatedAt    time.Time `json:"created_at"`
}

// VersionSummaryDTO lists a sibling version of the same order. Each version
// is addressable only through its own token.
type VersionSummaryDTO struct {
	ProofID     string    `json:"proof_id"`
	Version     int       `json:"version"`
	AccessToken string    `json:"access_token"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResolveResult is everything a fresh review session needs: the proof, its
// annotations in creation order, the version chain, and the derived
// permission grant.
type ResolveResult struct {
	Proof       ProofDTO            `json:"proof"`
	Annotations []AnnotationDTO     `json:"annotations"`
	Versions    []VersionSummaryDTO `json:"versions"`
	CanAnnotate bool                `json:"can_annotate"`
	CanSignOff  bool                `json:"can_sign_off"`
	IsExpired   bool                `json:"is_expired"`
}
