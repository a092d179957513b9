package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domainAnnotation "proofreview-service/internal/domain/annotation"
	domainProof "proofreview-service/internal/domain/proof"
	annotationUC "proofreview-service/internal/usecase/annotation"
	"proofreview-service/internal/usecase/review"
	"proofreview-service/internal/usecase/signoff"
)

// Request ids ride the context so the transport can ask for idempotent
// replay without widening the Service signatures. The session issues one
// id per logical operation and keeps it across retries.
type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// Service is what a review session needs from the backend. The usecase
// layer satisfies it in-process; Client satisfies it over HTTP.
type Service interface {
	Resolve(ctx context.Context, token string) (*review.ResolveResult, error)
	CreateAnnotation(ctx context.Context, in annotationUC.CreateInput) (*review.AnnotationDTO, error)
	DeleteAnnotation(ctx context.Context, token, annotationID string) error
	SignOff(ctx context.Context, in signoff.SignOffInput) (*signoff.SignOffDTO, error)
}

// Client talks to the review API. Responses map back onto the same domain
// sentinels the server raises, so session logic is transport-agnostic.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: 15 * time.Second}}
}

func (c *Client) Resolve(ctx context.Context, token string) (*review.ResolveResult, error) {
	var out review.ResolveResult
	if err := c.do(ctx, http.MethodGet, "/api/proofs/"+token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type createAnnotationReq struct {
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Page        int     `json:"page,omitempty"`
	Comment     string  `json:"comment"`
	AuthorName  string  `json:"author_name"`
	AuthorEmail string  `json:"author_email,omitempty"`
}

func (c *Client) CreateAnnotation(ctx context.Context, in annotationUC.CreateInput) (*review.AnnotationDTO, error) {
	body := createAnnotationReq{
		Type:        in.Type,
		X:           in.X,
		Y:           in.Y,
		Width:       in.Width,
		Height:      in.Height,
		Page:        in.Page,
		Comment:     in.Comment,
		AuthorName:  in.AuthorName,
		AuthorEmail: in.AuthorEmail,
	}
	var out review.AnnotationDTO
	if err := c.do(ctx, http.MethodPost, "/api/proofs/"+in.Token+"/annotations", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAnnotation(ctx context.Context, token, annotationID string) error {
	return c.do(ctx, http.MethodDelete, "/api/proofs/"+token+"/annotations/"+annotationID, nil, nil)
}

type signOffReq struct {
	SignedOffBy   string `json:"signed_off_by"`
	Signature     string `json:"signature"`
	SignatureType string `json:"signature_type"`
}

func (c *Client) SignOff(ctx context.Context, in signoff.SignOffInput) (*signoff.SignOffDTO, error) {
	body := signOffReq{SignedOffBy: in.SignedOffBy, Signature: in.Signature, SignatureType: "typed"}
	var out signoff.SignOffDTO
	if err := c.do(ctx, http.MethodPost, "/api/proofs/"+in.Token+"/signoff", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := requestIDFrom(ctx); ok {
		req.Header.Set("X-Request-Id", id)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		// transport failure: retryable, the caller keeps its draft
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domainProof.ErrNotFound
	case http.StatusGone:
		return domainProof.ErrGone
	case http.StatusForbidden:
		return domainProof.ErrForbidden
	case http.StatusConflict:
		return domainProof.ErrAlreadyApproved
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domainAnnotation.ErrValidation, payload.Error)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload.Error)
	}
}
