package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/babynest/assistant/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection serializes writers, which gives per-session appends
	// a total order and keeps :memory: databases on one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			last_activity DATETIME NOT NULL,
			intake TEXT,
			initial_assessment TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS exchanges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			type TEXT NOT NULL,
			user_message TEXT,
			response TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exchanges_session ON exchanges(session_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_activity ON sessions(last_activity)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession inserts a new session. When sessionID is empty a fresh
// random identifier is generated. Concurrent first submissions sharing a
// caller-supplied id (two browser tabs) may race to create the same row;
// the first insert wins and the rest are no-ops.
func (s *SQLiteStore) CreateSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, created_at, last_activity) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO NOTHING`,
		sessionID, now, now)
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// GetSession retrieves a session by ID. Returns (nil, nil) when not found.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	var intake, assessment sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, created_at, last_activity, intake, initial_assessment FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &session.CreatedAt, &session.LastActivityAt, &intake, &assessment)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if intake.Valid {
		var rec domain.Intake
		if err := json.Unmarshal([]byte(intake.String), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode intake: %w", err)
		}
		session.Intake = &rec
	}
	if assessment.Valid {
		session.InitialAssessment = assessment.String
	}
	return &session, nil
}

// SetIntake writes the intake record only if the session has none yet.
// A second write to the same session is a no-op.
func (s *SQLiteStore) SetIntake(ctx context.Context, sessionID string, intake *domain.Intake) error {
	data, err := json.Marshal(intake)
	if err != nil {
		return fmt.Errorf("failed to encode intake: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET intake = ? WHERE session_id = ? AND intake IS NULL`,
		string(data), sessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return s.requireSession(ctx, sessionID)
	}
	return nil
}

// SetInitialAssessment caches the first generated assessment only if unset.
func (s *SQLiteStore) SetInitialAssessment(ctx context.Context, sessionID string, text string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET initial_assessment = ? WHERE session_id = ? AND initial_assessment IS NULL`,
		text, sessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return s.requireSession(ctx, sessionID)
	}
	return nil
}

// requireSession distinguishes a no-op write-once update from a missing session.
func (s *SQLiteStore) requireSession(ctx context.Context, sessionID string) error {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM sessions WHERE session_id = ?`, sessionID).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrSessionNotFound
	}
	return err
}

// AppendExchange appends an exchange and bumps the session's last activity.
// The autoincrement id records commit order per session.
func (s *SQLiteStore) AppendExchange(ctx context.Context, exchange *domain.Exchange) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if exchange.CreatedAt.IsZero() {
		exchange.CreatedAt = now
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET last_activity = ? WHERE session_id = ?`,
		now, exchange.SessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrSessionNotFound
	}

	insert, err := tx.ExecContext(ctx,
		`INSERT INTO exchanges (session_id, type, user_message, response, created_at) VALUES (?, ?, ?, ?, ?)`,
		exchange.SessionID, exchange.Type, nullable(exchange.UserMessage), exchange.Response, exchange.CreatedAt)
	if err != nil {
		return err
	}
	if id, err := insert.LastInsertId(); err == nil {
		exchange.ID = id
	}

	return tx.Commit()
}

// GetExchanges retrieves all exchanges for a session in append order.
func (s *SQLiteStore) GetExchanges(ctx context.Context, sessionID string) ([]domain.Exchange, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, type, user_message, response, created_at FROM exchanges WHERE session_id = ? ORDER BY id ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExchanges(rows)
}

// GetRecentChats retrieves the most recent chat-type exchanges for a session,
// oldest first, capped at limit.
func (s *SQLiteStore) GetRecentChats(ctx context.Context, sessionID string, limit int) ([]domain.Exchange, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, type, user_message, response, created_at FROM exchanges
		 WHERE session_id = ? AND type = ? ORDER BY id DESC LIMIT ?`,
		sessionID, domain.ExchangeTypeChat, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats, err := scanExchanges(rows)
	if err != nil {
		return nil, err
	}
	// Query returns newest-first; reverse into chronological order.
	for i, j := 0, len(chats)-1; i < j; i, j = i+1, j-1 {
		chats[i], chats[j] = chats[j], chats[i]
	}
	return chats, nil
}

// DeleteExpired removes sessions whose last activity precedes now-horizon,
// together with their exchanges. Returns the number of sessions removed.
func (s *SQLiteStore) DeleteExpired(ctx context.Context, horizon time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-horizon)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Exchanges first, foreign key points at sessions.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM exchanges WHERE session_id IN (SELECT session_id FROM sessions WHERE last_activity < ?)`,
		cutoff); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM sessions WHERE last_activity < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return deleted, nil
}

// Counts reports stored session and exchange totals for the health probe.
func (s *SQLiteStore) Counts(ctx context.Context) (int64, int64, error) {
	var sessions, exchanges int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&sessions); err != nil {
		return 0, 0, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exchanges`).Scan(&exchanges); err != nil {
		return 0, 0, err
	}
	return sessions, exchanges, nil
}

func scanExchanges(rows *sql.Rows) ([]domain.Exchange, error) {
	var exchanges []domain.Exchange
	for rows.Next() {
		var ex domain.Exchange
		var userMessage sql.NullString
		if err := rows.Scan(&ex.ID, &ex.SessionID, &ex.Type, &userMessage, &ex.Response, &ex.CreatedAt); err != nil {
			return nil, err
		}
		if userMessage.Valid {
			ex.UserMessage = userMessage.String
		}
		exchanges = append(exchanges, ex)
	}
	return exchanges, rows.Err()
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
