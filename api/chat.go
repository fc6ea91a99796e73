package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ChatRequest is a follow-up question within an existing session.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Chat handles follow-up chat messages.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.SessionID == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing session_id or message"})
	}

	reply, err := h.svc.SubmitFollowup(ctx, req.SessionID, req.Message)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"response": reply,
		"success":  true,
	})
}
