package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/babynest/assistant/domain"
)

// SubmitAssessmentRequest is the initial intake submission body. Field names
// match the original assessment form.
type SubmitAssessmentRequest struct {
	SessionID       string   `json:"session_id"`
	Location        []string `json:"location"`
	FeedingType     string   `json:"feedingType"`
	StoolColor      string   `json:"stoolColor"`
	NumberText      string   `json:"numberText"`
	DurationText    string   `json:"durationText"`
	TemperatureText string   `json:"temperatureText"`
	ExtraNotes      string   `json:"extraNotes"`
	Image           string   `json:"image"`
}

// SubmitAssessment handles the initial baby health assessment submission.
// POST /submit-assessment
func (h *Handler) SubmitAssessment(c echo.Context) error {
	ctx := c.Request().Context()

	var req SubmitAssessmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	intake := &domain.Intake{
		Locations:       req.Location,
		FeedingType:     req.FeedingType,
		StoolColor:      req.StoolColor,
		AgeMonths:       req.NumberText,
		Duration:        req.DurationText,
		TemperatureText: req.TemperatureText,
		ExtraNotes:      req.ExtraNotes,
	}

	sessionID, assessment, err := h.svc.SubmitIntake(ctx, req.SessionID, intake, req.Image)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"assessment": assessment,
		"success":    true,
	})
}
