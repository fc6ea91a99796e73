package assistant

import (
	"context"
	"log/slog"
	"time"

	"github.com/babynest/assistant/domain"
)

// GetHistory returns a read-only snapshot of a session and its exchanges.
// Reads never bump last_activity.
func (s *Service) GetHistory(ctx context.Context, sessionID string) (*domain.SessionSnapshot, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, storeErr("get session", err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}

	exchanges, err := s.store.GetExchanges(ctx, sessionID)
	if err != nil {
		return nil, storeErr("get exchanges", err)
	}

	return &domain.SessionSnapshot{
		Session:   *session,
		Exchanges: exchanges,
	}, nil
}

// Cleanup purges sessions inactive beyond the retention horizon and returns
// the number removed. Safe to run concurrently with request traffic.
func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	deleted, err := s.store.DeleteExpired(ctx, s.cfg.RetentionHorizon)
	if err != nil {
		return 0, storeErr("delete expired", err)
	}
	if deleted > 0 {
		slog.Info("cleaned up expired sessions", "count", deleted)
	}
	s.purgedTotal.Add(ctx, deleted)
	return deleted, nil
}

// HealthStatus reports store connectivity and row counts.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Sessions  int64     `json:"sessions"`
	Exchanges int64     `json:"responses"`
}

// Health probes the store.
func (s *Service) Health(ctx context.Context) (*HealthStatus, error) {
	sessions, exchanges, err := s.store.Counts(ctx)
	if err != nil {
		slog.Error("health probe failed", "error", err)
		return nil, domain.ErrStorageUnavailable
	}
	return &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Database:  "connected",
		Sessions:  sessions,
		Exchanges: exchanges,
	}, nil
}
