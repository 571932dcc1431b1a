package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertSession inserts a session identity row by natural key. Existing rows
// keep their total_laps and ingested_at; their identity fields are refreshed
// only when refresh is set (force mode), matching the full-replace contract.
func (s *Store) UpsertSession(ctx context.Context, sess Session, refresh bool) error {
	ctx = ensureContext(ctx)

	var id int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM sessions WHERE key = ?", sess.Key).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.execWithRetry(ctx,
			`INSERT INTO sessions (key, meeting_key, type, name, start_date, end_date, gmt_offset, path, total_laps, ingested_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL, NULL)`,
			sess.Key, sess.MeetingKey, sess.Type, sess.Name, sess.StartDate, sess.EndDate, sess.GmtOffset, sess.Path)
		if err != nil {
			return fmt.Errorf("insert session %d: %w", sess.Key, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("lookup session %d: %w", sess.Key, err)
	}

	if !refresh {
		return nil
	}
	_, err = s.execWithRetry(ctx,
		`UPDATE sessions
         SET meeting_key = ?, type = ?, name = ?, start_date = ?, end_date = ?, gmt_offset = ?, path = ?
         WHERE key = ?`,
		sess.MeetingKey, sess.Type, sess.Name, sess.StartDate, sess.EndDate, sess.GmtOffset, sess.Path, sess.Key)
	if err != nil {
		return fmt.Errorf("update session %d: %w", sess.Key, err)
	}
	return nil
}

// SessionIngestedAt reports the session's completion marker. A nil time with
// found=true means the session is discovered but not ingested.
func (s *Store) SessionIngestedAt(ctx context.Context, key int) (ingestedAt *time.Time, found bool, err error) {
	ctx = ensureContext(ctx)
	var raw sql.NullString
	err = s.db.QueryRowContext(ctx, "SELECT ingested_at FROM sessions WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup session %d: %w", key, err)
	}
	if !raw.Valid {
		return nil, true, nil
	}
	ts, parseErr := time.Parse(time.RFC3339Nano, raw.String)
	if parseErr != nil {
		return nil, true, fmt.Errorf("parse ingested_at for session %d: %w", key, parseErr)
	}
	return &ts, true, nil
}

// SessionByKey fetches one session by natural key, or nil when absent.
func (s *Store) SessionByKey(ctx context.Context, key int) (*Session, error) {
	ctx = ensureContext(ctx)
	var (
		sess Session
		raw  sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT key, meeting_key, type, name, start_date, end_date, gmt_offset, path, total_laps, ingested_at
         FROM sessions WHERE key = ?`, key).
		Scan(&sess.Key, &sess.MeetingKey, &sess.Type, &sess.Name, &sess.StartDate, &sess.EndDate,
			&sess.GmtOffset, &sess.Path, &sess.TotalLaps, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch session %d: %w", key, err)
	}
	if raw.Valid {
		ts, parseErr := time.Parse(time.RFC3339Nano, raw.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse ingested_at for session %d: %w", key, parseErr)
		}
		sess.IngestedAt = &ts
	}
	return &sess, nil
}
