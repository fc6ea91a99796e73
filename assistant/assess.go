package assistant

import (
	"context"
	"unicode/utf8"

	"github.com/babynest/assistant/domain"
	"github.com/babynest/assistant/genai"
	"github.com/babynest/assistant/imaging"
)

// assessmentContextLimit bounds how much of a prior assessment is replayed
// when the same session submits a second intake form.
const assessmentContextLimit = 500

// SubmitIntake handles an initial assessment submission. An empty sessionID
// starts a new session. The intake record is written once; resubmissions to
// an existing session keep the original intake and initial assessment but
// still produce a fresh assessment exchange.
//
// The session and intake are persisted before the model is called, so a
// ModelUnavailable failure leaves them in place and a retry does not need to
// resubmit the form.
func (s *Service) SubmitIntake(ctx context.Context, sessionID string, intake *domain.Intake, imageBase64 string) (string, string, error) {
	// Decode before touching any state; a bad image fails the request
	// without invoking the model.
	var img *imaging.Image
	if imageBase64 != "" {
		var err error
		img, err = imaging.DecodeBase64(imageBase64)
		if err != nil {
			return "", "", err
		}
	}
	intake.HasImage = img != nil

	session, err := s.resolveSession(ctx, sessionID)
	if err != nil {
		return "", "", err
	}
	sessionID = session.SessionID

	if session.Intake == nil {
		if err := s.store.SetIntake(ctx, sessionID, intake); err != nil {
			return "", "", storeErr("set intake", err)
		}
		session.Intake = intake
	}

	// Repeat submission: pass the cached assessment back in as context.
	var historical string
	if session.InitialAssessment != "" {
		historical = "Previous assessment: " + truncate(session.InitialAssessment, assessmentContextLimit) + "..."
	}

	text := s.assembler.BuildAssessmentPrompt(session.Intake, historical)
	parts := []genai.Part{{Text: text}}
	if img != nil {
		parts = append(parts, genai.Part{Image: img})
	}

	assessment, err := s.generate(ctx, "assessment", parts)
	if err != nil {
		return "", "", err
	}

	if session.InitialAssessment == "" {
		if err := s.store.SetInitialAssessment(ctx, sessionID, assessment); err != nil {
			return "", "", storeErr("set initial assessment", err)
		}
	}

	exchange := &domain.Exchange{
		SessionID: sessionID,
		Type:      domain.ExchangeTypeAssessment,
		Response:  assessment,
	}
	if err := s.store.AppendExchange(ctx, exchange); err != nil {
		return "", "", storeErr("append assessment", err)
	}

	return sessionID, assessment, nil
}

// resolveSession loads an existing session or creates one, honoring a
// caller-supplied identifier.
func (s *Service) resolveSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID != "" {
		session, err := s.store.GetSession(ctx, sessionID)
		if err != nil {
			return nil, storeErr("get session", err)
		}
		if session != nil {
			return session, nil
		}
	}

	created, err := s.store.CreateSession(ctx, sessionID)
	if err != nil {
		return nil, storeErr("create session", err)
	}
	session, err := s.store.GetSession(ctx, created)
	if err != nil {
		return nil, storeErr("get created session", err)
	}
	if session == nil {
		return nil, domain.ErrStorageUnavailable
	}
	return session, nil
}

// truncate cuts s to at most n bytes without splitting a rune. Model output
// routinely contains multi-byte characters ("°C", bullets, curly quotes).
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
