// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"time"

	"github.com/babynest/assistant/domain"
)

// Store defines the interface for session persistence.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, sessionID string) (string, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	SetIntake(ctx context.Context, sessionID string, intake *domain.Intake) error
	SetInitialAssessment(ctx context.Context, sessionID string, text string) error

	// Exchange operations
	AppendExchange(ctx context.Context, exchange *domain.Exchange) error
	GetExchanges(ctx context.Context, sessionID string) ([]domain.Exchange, error)
	GetRecentChats(ctx context.Context, sessionID string, limit int) ([]domain.Exchange, error)

	// Expiry
	DeleteExpired(ctx context.Context, horizon time.Duration) (int64, error)

	// Health
	Counts(ctx context.Context) (sessions int64, exchanges int64, err error)

	// Lifecycle
	Close() error
}
