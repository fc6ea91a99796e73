package assistant

import (
	"context"
	"strings"

	"github.com/babynest/assistant/domain"
	"github.com/babynest/assistant/genai"
)

// SubmitFollowup answers a follow-up question within an existing session.
// Validation happens before any external call; a failed model call appends
// nothing.
func (s *Service) SubmitFollowup(ctx context.Context, sessionID, userMessage string) (string, error) {
	if strings.TrimSpace(userMessage) == "" {
		return "", domain.ErrEmptyMessage
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return "", storeErr("get session", err)
	}
	if session == nil {
		return "", domain.ErrSessionNotFound
	}

	recent, err := s.store.GetRecentChats(ctx, sessionID, s.assembler.HistoryWindow())
	if err != nil {
		return "", storeErr("get recent chats", err)
	}

	text := s.assembler.BuildFollowupPrompt(session, recent, userMessage)
	reply, err := s.generate(ctx, "chat", []genai.Part{{Text: text}})
	if err != nil {
		return "", err
	}

	exchange := &domain.Exchange{
		SessionID:   sessionID,
		Type:        domain.ExchangeTypeChat,
		UserMessage: userMessage,
		Response:    reply,
	}
	if err := s.store.AppendExchange(ctx, exchange); err != nil {
		return "", storeErr("append chat", err)
	}

	return reply, nil
}
