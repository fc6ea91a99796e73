// Package api provides HTTP handlers for the assistant backend.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/babynest/assistant/assistant"
	"github.com/babynest/assistant/domain"
)

// Handler handles HTTP requests.
type Handler struct {
	svc *assistant.Service
}

// NewHandler creates a new handler.
func NewHandler(svc *assistant.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/submit-assessment", h.SubmitAssessment)
	e.POST("/chat", h.Chat)
	e.GET("/get-session/:session_id", h.GetSession)
	e.POST("/cleanup-old-sessions", h.CleanupOldSessions)
	e.GET("/health", h.Health)
}

// errorResponse writes a generic, user-safe error body for a service error.
// Provider and storage detail never reaches the response.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Invalid session_id"})
	case errors.Is(err, domain.ErrEmptyMessage):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing session_id or message"})
	case errors.Is(err, domain.ErrInvalidImage):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to process image"})
	case errors.Is(err, domain.ErrModelUnavailable):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Failed to generate assessment"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
