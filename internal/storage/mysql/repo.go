package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sessions maps browser session ids to authenticated user ids.
type Sessions struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func New(db *sql.DB, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{db: db, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Sessions) CreateSession(ctx context.Context, userID int64) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, insertSessionSQL, id, userID, s.now().Add(s.ttl)); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (s *Sessions) ReadSessionUserID(ctx context.Context, sessionID string) (int64, bool, error) {
	if sessionID == "" {
		return 0, false, nil
	}
	var userID int64
	err := s.db.QueryRowContext(ctx, selectSessionUserSQL, sessionID, s.now()).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read session: %w", err)
	}
	// best-effort activity stamp
	_, _ = s.db.ExecContext(ctx, touchSessionSQL, sessionID)
	return userID, true, nil
}

func (s *Sessions) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, deleteSessionSQL, sessionID)
	return err
}

// Purge drops expired sessions and returns how many were removed.
func (s *Sessions) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, purgeSessionsSQL, s.now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
