package http

import (
	"errors"
	"net/http"
	"strconv"

	proofDomain "proofreview-service/internal/domain/proof"
	"proofreview-service/internal/metrics"
	annotationUC "proofreview-service/internal/usecase/annotation"
	"proofreview-service/internal/usecase/review"
	"proofreview-service/internal/usecase/signoff"

	"github.com/labstack/echo/v4"
)

// ProofHandler is the whole token-gated surface: reviewers are anonymous,
// the token in the path is the only credential.
type ProofHandler struct {
	review   *review.Usecase
	annots   *annotationUC.Usecase
	signoffs *signoff.Usecase
}

func NewProofHandler(r *review.Usecase, a *annotationUC.Usecase, s *signoff.Usecase) *ProofHandler {
	return &ProofHandler{review: r, annots: a, signoffs: s}
}

func (h *ProofHandler) Register(e *echo.Echo) {
	e.GET("/api/proofs/:token", h.Resolve)
	e.GET("/api/proofs/:token/annotations", h.ListAnnotations)
	e.POST("/api/proofs/:token/annotations", h.CreateAnnotation)
	e.DELETE("/api/proofs/:token/annotations/:annotation_id", h.DeleteAnnotation)
	e.POST("/api/proofs/:token/signoff", h.SignOff)
}

// tokenParam rejects malformed tokens without a lookup; they are
// indistinguishable from unknown ones to the caller.
func tokenParam(c echo.Context) (string, bool) {
	token := c.Param("token")
	return token, reToken.MatchString(token)
}

func (h *ProofHandler) Resolve(c echo.Context) error {
	token, ok := tokenParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	res, err := h.review.Resolve(c.Request().Context(), token)
	if err != nil {
		return writeDomainError(c, err)
	}
	metrics.ResolvesTotal.Inc()
	return c.JSON(http.StatusOK, res)
}

func (h *ProofHandler) ListAnnotations(c echo.Context) error {
	token, ok := tokenParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	ctx := c.Request().Context()

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		out, err := h.annots.ListForPage(ctx, token, page)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}

	out, err := h.annots.List(ctx, token)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type createAnnotationReq struct {
	Type        string  `json:"type"          validate:"required,annotationtype"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Page        int     `json:"page"          validate:"gte=0"`
	Comment     string  `json:"comment"       validate:"required"`
	AuthorName  string  `json:"author_name"   validate:"required"`
	AuthorEmail string  `json:"author_email"  validate:"omitempty,email"`
}

func (h *ProofHandler) CreateAnnotation(c echo.Context) error {
	token, ok := tokenParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	var req createAnnotationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.annots.Create(c.Request().Context(), annotationUC.CreateInput{
		Token:       token,
		Type:        req.Type,
		X:           req.X,
		Y:           req.Y,
		Width:       req.Width,
		Height:      req.Height,
		Page:        req.Page,
		Comment:     req.Comment,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	metrics.AnnotationsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProofHandler) DeleteAnnotation(c echo.Context) error {
	token, ok := tokenParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	annotationID := c.Param("annotation_id")
	if annotationID == "" {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	if err := h.annots.Delete(c.Request().Context(), token, annotationID); err != nil {
		return writeDomainError(c, err)
	}
	metrics.AnnotationsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

type signOffReq struct {
	SignedOffBy   string `json:"signed_off_by"   validate:"required"`
	Signature     string `json:"signature"       validate:"required"`
	SignatureType string `json:"signature_type"  validate:"omitempty,oneof=typed"`
}

func (h *ProofHandler) SignOff(c echo.Context) error {
	token, ok := tokenParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	var req signOffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.signoffs.SignOff(c.Request().Context(), signoff.SignOffInput{
		Token:       token,
		SignedOffBy: req.SignedOffBy,
		Signature:   req.Signature,
	})
	if err != nil {
		if errors.Is(err, proofDomain.ErrAlreadyApproved) {
			metrics.SignOffConflictsTotal.Inc()
		}
		return writeDomainError(c, err)
	}
	metrics.SignOffsTotal.Inc()
	return c.JSON(http.StatusOK, dto)
}
