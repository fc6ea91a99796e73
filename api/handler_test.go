package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babynest/assistant/api"
	"github.com/babynest/assistant/assistant"
	"github.com/babynest/assistant/config"
	"github.com/babynest/assistant/genai"
	"github.com/babynest/assistant/prompt"
	"github.com/babynest/assistant/tests/helpers"
)

func newTestHandler(t *testing.T) (*api.Handler, *genai.MockGenerator) {
	t.Helper()
	st := helpers.NewTestSQLiteStore(t)
	model := genai.NewMockGenerator()
	cfg := &config.Config{
		Temperature:      0.7,
		RetentionHorizon: 7 * 24 * time.Hour,
		HistoryWindow:    5,
	}
	svc := assistant.New(st, model, prompt.NewAssembler(), cfg)
	return api.NewHandler(svc), model
}

func postJSON(t *testing.T, e *echo.Echo, h echo.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h(c))
	return rec
}

func TestSubmitAssessmentAndChatFlow(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	rec := postJSON(t, e, h.SubmitAssessment, "/submit-assessment", map[string]interface{}{
		"temperatureText": "38.5",
		"location":        []string{"chest"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var submitResp struct {
		SessionID  string `json:"session_id"`
		Assessment string `json:"assessment"`
		Success    bool   `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitResp))
	assert.True(t, submitResp.Success)
	assert.NotEmpty(t, submitResp.SessionID)
	assert.Regexp(t, `\[\d+%`, submitResp.Assessment)

	rec = postJSON(t, e, h.Chat, "/chat", map[string]string{
		"session_id": submitResp.SessionID,
		"message":    "is that a fever?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var chatResp struct {
		Response string `json:"response"`
		Success  bool   `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chatResp))
	assert.True(t, chatResp.Success)
	assert.NotEmpty(t, chatResp.Response)

	// History replay shows both turns.
	req := httptest.NewRequest(http.MethodGet, "/get-session/"+submitResp.SessionID, nil)
	histRec := httptest.NewRecorder()
	c := e.NewContext(req, histRec)
	c.SetParamNames("session_id")
	c.SetParamValues(submitResp.SessionID)

	require.NoError(t, h.GetSession(c))
	require.Equal(t, http.StatusOK, histRec.Code)

	var snapshot struct {
		SessionID         string `json:"session_id"`
		InitialAssessment string `json:"initial_assessment"`
		ChatHistory       []struct {
			Type        string `json:"type"`
			UserMessage string `json:"user_message"`
			Response    string `json:"response"`
		} `json:"chat_history"`
	}
	require.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &snapshot))
	assert.Equal(t, submitResp.SessionID, snapshot.SessionID)
	assert.Equal(t, submitResp.Assessment, snapshot.InitialAssessment)
	require.Len(t, snapshot.ChatHistory, 2)
	assert.Equal(t, "assessment", snapshot.ChatHistory[0].Type)
	assert.Equal(t, "chat", snapshot.ChatHistory[1].Type)
	assert.Equal(t, "is that a fever?", snapshot.ChatHistory[1].UserMessage)
}

func TestChatUnknownSession(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	rec := postJSON(t, e, h.Chat, "/chat", map[string]string{
		"session_id": "unknown-id",
		"message":    "hello",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid session_id", resp["error"])
}

func TestChatMissingFields(t *testing.T) {
	e := echo.New()
	h, model := newTestHandler(t)

	rec := postJSON(t, e, h.Chat, "/chat", map[string]string{"message": "hello"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, e, h.Chat, "/chat", map[string]string{"session_id": "s1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 0, model.CallCount())
}

func TestSubmitAssessmentInvalidImage(t *testing.T) {
	e := echo.New()
	h, model := newTestHandler(t)

	rec := postJSON(t, e, h.SubmitAssessment, "/submit-assessment", map[string]string{
		"image": "data:image/png;base64,@@not-base64@@",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to process image", resp["error"])
	assert.Equal(t, 0, model.CallCount())
}

func TestSubmitAssessmentModelUnavailable(t *testing.T) {
	e := echo.New()
	h, model := newTestHandler(t)
	model.Err = assert.AnError

	rec := postJSON(t, e, h.SubmitAssessment, "/submit-assessment", map[string]string{
		"temperatureText": "38.5",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Provider detail must not leak into the body.
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestCleanupEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/cleanup-old-sessions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CleanupOldSessions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Deleted int64  `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Cleanup completed successfully", resp.Message)
	assert.Equal(t, int64(0), resp.Deleted)
}

func TestHealthEndpoint(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Health(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "connected", resp.Database)
}

func TestGetSessionNotFound(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/get-session/unknown-id", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("unknown-id")

	require.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
