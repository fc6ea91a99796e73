package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetSession returns session information and chat history.
// GET /get-session/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	snapshot, err := h.svc.GetHistory(ctx, sessionID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

// CleanupOldSessions manually triggers expiry of inactive sessions.
// POST /cleanup-old-sessions
func (h *Handler) CleanupOldSessions(c echo.Context) error {
	ctx := c.Request().Context()

	deleted, err := h.svc.Cleanup(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Cleanup completed successfully",
		"deleted": deleted,
	})
}

// Health returns health status with store connectivity and counts.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	status, err := h.svc.Health(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"status": "unhealthy"})
	}

	return c.JSON(http.StatusOK, status)
}
