package session

import (
	"context"

	domainProof "proofreview-service/internal/domain/proof"
	"proofreview-service/internal/usecase/review"
)

// VersionEntry is one row of the version chain, flagged for display. The
// current and approved flags are independent: the shown version need not
// be the approved one.
type VersionEntry struct {
	review.VersionSummaryDTO
	Current  bool
	Approved bool
}

// Versions lists the order's proof chain ascending by version, each entry
// addressable through its own token.
func (s *Session) Versions() []VersionEntry {
	out := make([]VersionEntry, 0, len(s.state.Versions))
	for _, v := range s.state.Versions {
		out = append(out, VersionEntry{
			VersionSummaryDTO: v,
			Current:           v.ProofID == s.state.Proof.ProofID,
			Approved:          v.Status == string(domainProof.StatusApproved),
		})
	}
	return out
}

// SwitchVersion is a full context switch: resolve the target token and
// hand back a fresh session. Annotations never carry across versions, so
// nothing of the old session survives.
func (s *Session) SwitchVersion(ctx context.Context, token string) (*Session, error) {
	return Start(ctx, s.svc, token)
}
