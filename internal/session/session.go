// Package session holds the per-token review view: the rendered surface,
// the gesture-driven annotation engine, version navigation and the
// sign-off submission guard. A Session is built fresh on every token
// resolution and thrown away on navigation; nothing here is process-wide.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"

	domainAnnotation "proofreview-service/internal/domain/annotation"
	domainProof "proofreview-service/internal/domain/proof"
	annotationUC "proofreview-service/internal/usecase/annotation"
	"proofreview-service/internal/usecase/review"
	"proofreview-service/internal/usecase/signoff"

	"github.com/google/uuid"
)

// ErrSubmitting blocks re-entrant sign-off while a request is in flight,
// so rapid repeated input cannot produce duplicate approvals.
var ErrSubmitting = errors.New("sign-off already in progress")

type Tool string

const (
	ToolNone      Tool = "none"
	ToolPin       Tool = "pin"
	ToolRectangle Tool = "rect"
)

// Draft is an uncommitted annotation. At most one exists per session.
type Draft struct {
	Type   domainAnnotation.Type
	X      float64
	Y      float64
	Width  float64
	Height float64
	Page   int
}

// Tool mode and draft progress form one tagged state so that illegal
// combinations (drawing while a draft is pending, two drafts at once)
// cannot be represented.
type gestureState interface{ isGestureState() }

type gestureIdle struct{}

type gestureDrawing struct{ start, current Point }

// reqID is minted when the draft is created and survives failed commits,
// so a retried commit replays instead of duplicating.
type gesturePending struct {
	draft Draft
	reqID string
}

func (gestureIdle) isGestureState()    {}
func (gestureDrawing) isGestureState() {}
func (gesturePending) isGestureState() {}

type Session struct {
	svc   Service
	token string

	state   *review.ResolveResult
	surface *Surface

	tool       Tool
	gesture    gestureState
	submitting bool

	// sign-off request id, kept across failed attempts
	signOffReqID string
	// per-annotation delete ids, kept until the delete lands
	deleteReqIDs map[string]string
}

// Start resolves the token and builds a fresh session around the result.
func Start(ctx context.Context, svc Service, token string) (*Session, error) {
	res, err := svc.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	pages := 1
	if res.Proof.FileType == string(domainProof.FileTypeDocument) {
		pages = res.Proof.PageCount
	}
	return &Session{
		svc:     svc,
		token:   token,
		state:   res,
		surface: newSurface(pages),
		tool:    ToolNone,
		gesture: gestureIdle{},
	}, nil
}

// Refresh re-resolves the same token in place. Used after sign-off: the
// grant flips off and the engine goes inert. The page window survives,
// any draft does not.
func (s *Session) Refresh(ctx context.Context) error {
	res, err := s.svc.Resolve(ctx, s.token)
	if err != nil {
		return err
	}
	s.state = res
	s.tool = ToolNone
	s.gesture = gestureIdle{}
	return nil
}

func (s *Session) Token() string                 { return s.token }
func (s *Session) Proof() review.ProofDTO        { return s.state.Proof }
func (s *Session) Surface() *Surface             { return s.surface }
func (s *Session) CanAnnotate() bool             { return s.state.CanAnnotate }
func (s *Session) CanSignOff() bool              { return s.state.CanSignOff }
func (s *Session) IsExpired() bool               { return s.state.IsExpired }
func (s *Session) ActiveTool() Tool              { return s.tool }
func (s *Session) Annotations() []review.AnnotationDTO { return s.state.Annotations }

// AnnotationsForPage projects the current page while keeping proof-wide
// display indices; "comment #4" means the same thing on every page.
func (s *Session) AnnotationsForPage() []review.AnnotationDTO {
	if s.state.Proof.FileType != string(domainProof.FileTypeDocument) {
		return s.state.Annotations
	}
	out := make([]review.AnnotationDTO, 0, len(s.state.Annotations))
	for _, a := range s.state.Annotations {
		if a.Page == s.surface.CurrentPage() {
			out = append(out, a)
		}
	}
	return out
}

// SelectTool switches the authoring tool. Ignored while a draft is pending
// (commit or cancel first) and whenever annotation is not permitted.
// Switching mid-drag abandons the drag.
func (s *Session) SelectTool(t Tool) {
	if !s.state.CanAnnotate {
		return
	}
	if _, pending := s.gesture.(gesturePending); pending {
		return
	}
	s.tool = t
	s.gesture = gestureIdle{}
}

// gestureAllowed gates every pointer entry point: no surface, no grant or
// a pending draft all make gestures no-ops.
func (s *Session) gestureAllowed() bool {
	if !s.surface.Ready() || !s.state.CanAnnotate {
		return false
	}
	_, pending := s.gesture.(gesturePending)
	return !pending
}

func (s *Session) draftPage() int {
	if s.state.Proof.FileType == string(domainProof.FileTypeDocument) {
		return s.surface.CurrentPage()
	}
	return 0
}

// Tap places a pin draft at the tapped position.
func (s *Session) Tap(px, py float64) {
	if s.tool != ToolPin || !s.gestureAllowed() {
		return
	}
	p := s.surface.box.Relative(px, py)
	s.gesture = gesturePending{
		draft: Draft{
			Type: domainAnnotation.TypePin,
			X:    p.X,
			Y:    p.Y,
			Page: s.draftPage(),
		},
		reqID: uuid.NewString(),
	}
}

// BeginDrag starts a rectangle drag.
func (s *Session) BeginDrag(px, py float64) {
	if s.tool != ToolRectangle || !s.gestureAllowed() {
		return
	}
	if _, drawing := s.gesture.(gestureDrawing); drawing {
		return
	}
	p := s.surface.box.Relative(px, py)
	s.gesture = gestureDrawing{start: p, current: p}
}

// MoveDrag updates the live preview; it commits nothing.
func (s *Session) MoveDrag(px, py float64) {
	d, drawing := s.gesture.(gestureDrawing)
	if !drawing {
		return
	}
	if !s.surface.Ready() {
		// render failure mid-drag: abandon the gesture
		s.gesture = gestureIdle{}
		return
	}
	d.current = s.surface.box.Relative(px, py)
	s.gesture = d
}

// EndDrag finalizes at the release position. Drags of 2% or less on
// either axis are accidental clicks and leave no draft behind.
func (s *Session) EndDrag(px, py float64) {
	d, drawing := s.gesture.(gestureDrawing)
	if !drawing {
		return
	}
	if !s.surface.Ready() {
		s.gesture = gestureIdle{}
		return
	}
	d.current = s.surface.box.Relative(px, py)
	s.finalizeDrag(d)
}

// LeaveSurface finalizes a drag at its last known position; leaving the
// content box ends the gesture the same way a pointer-up does.
func (s *Session) LeaveSurface() {
	d, drawing := s.gesture.(gestureDrawing)
	if !drawing {
		return
	}
	s.finalizeDrag(d)
}

func (s *Session) finalizeDrag(d gestureDrawing) {
	w := math.Abs(d.current.X - d.start.X)
	h := math.Abs(d.current.Y - d.start.Y)
	if w <= domainAnnotation.MinRectSize || h <= domainAnnotation.MinRectSize {
		s.gesture = gestureIdle{}
		return
	}
	s.gesture = gesturePending{
		draft: Draft{
			Type:   domainAnnotation.TypeRectangle,
			X:      math.Min(d.start.X, d.current.X),
			Y:      math.Min(d.start.Y, d.current.Y),
			Width:  w,
			Height: h,
			Page:   s.draftPage(),
		},
		reqID: uuid.NewString(),
	}
}

// DragPreview exposes the in-progress rectangle for rendering.
func (s *Session) DragPreview() (Draft, bool) {
	d, drawing := s.gesture.(gestureDrawing)
	if !drawing {
		return Draft{}, false
	}
	return Draft{
		Type:   domainAnnotation.TypeRectangle,
		X:      math.Min(d.start.X, d.current.X),
		Y:      math.Min(d.start.Y, d.current.Y),
		Width:  math.Abs(d.current.X - d.start.X),
		Height: math.Abs(d.current.Y - d.start.Y),
		Page:   s.draftPage(),
	}, true
}

// PendingDraft returns the draft awaiting a comment, if any.
func (s *Session) PendingDraft() (Draft, bool) {
	p, ok := s.gesture.(gesturePending)
	if !ok {
		return Draft{}, false
	}
	return p.draft, true
}

// Commit sends the pending draft. Comment and author are checked here so
// an incomplete form never produces a request. On success the draft is
// cleared and the tool resets; on failure the draft stays for resubmission.
func (s *Session) Commit(ctx context.Context, comment, authorName, authorEmail string) (*review.AnnotationDTO, error) {
	p, ok := s.gesture.(gesturePending)
	if !ok {
		return nil, fmt.Errorf("%w: no pending annotation", domainAnnotation.ErrValidation)
	}
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", domainAnnotation.ErrValidation)
	}
	if authorName == "" {
		return nil, fmt.Errorf("%w: author name is required", domainAnnotation.ErrValidation)
	}

	dto, err := s.svc.CreateAnnotation(withRequestID(ctx, p.reqID), annotationUC.CreateInput{
		Token:       s.token,
		Type:        string(p.draft.Type),
		X:           p.draft.X,
		Y:           p.draft.Y,
		Width:       p.draft.Width,
		Height:      p.draft.Height,
		Page:        p.draft.Page,
		Comment:     comment,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
	})
	if err != nil {
		return nil, err
	}
	s.state.Annotations = append(s.state.Annotations, *dto)
	s.gesture = gestureIdle{}
	s.tool = ToolNone
	return dto, nil
}

// CancelDraft discards the pending draft with no side effects. The tool
// stays active.
func (s *Session) CancelDraft() {
	if _, ok := s.gesture.(gesturePending); ok {
		s.gesture = gestureIdle{}
	}
}

// DeleteAnnotation removes one of the reviewer's unresolved annotations
// and renumbers the remainder, preserving the 1..N creation-order bijection.
func (s *Session) DeleteAnnotation(ctx context.Context, annotationID string) error {
	if !s.state.CanAnnotate {
		return domainProof.ErrForbidden
	}
	if s.deleteReqIDs == nil {
		s.deleteReqIDs = make(map[string]string)
	}
	reqID, ok := s.deleteReqIDs[annotationID]
	if !ok {
		reqID = uuid.NewString()
		s.deleteReqIDs[annotationID] = reqID
	}
	if err := s.svc.DeleteAnnotation(withRequestID(ctx, reqID), s.token, annotationID); err != nil {
		return err
	}
	delete(s.deleteReqIDs, annotationID)
	kept := s.state.Annotations[:0]
	for _, a := range s.state.Annotations {
		if a.AnnotationID != annotationID {
			kept = append(kept, a)
		}
	}
	for i := range kept {
		kept[i].Index = i + 1
	}
	s.state.Annotations = kept
	return nil
}

// SignOff submits the approval. Empty fields never reach the network, an
// in-flight submission blocks re-entry, and a success re-resolves so the
// whole session goes read-only.
func (s *Session) SignOff(ctx context.Context, signerName, signatureText string) error {
	if s.submitting {
		return ErrSubmitting
	}
	if !s.state.CanSignOff {
		return domainProof.ErrForbidden
	}
	if signerName == "" || signatureText == "" {
		return fmt.Errorf("%w: signer name and signature are required", signoff.ErrInvalidInput)
	}

	if s.signOffReqID == "" {
		s.signOffReqID = uuid.NewString()
	}

	s.submitting = true
	defer func() { s.submitting = false }()

	if _, err := s.svc.SignOff(withRequestID(ctx, s.signOffReqID), signoff.SignOffInput{
		Token:       s.token,
		SignedOffBy: signerName,
		Signature:   signatureText,
	}); err != nil {
		return err
	}
	s.signOffReqID = ""
	return s.Refresh(ctx)
}

func (s *Session) Submitting() bool { return s.submitting }
