package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// Health is probed by the load balancer; the review surface has no other
// unauthenticated route besides the token-gated ones.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "proof-review",
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
