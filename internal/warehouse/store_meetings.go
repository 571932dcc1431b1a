package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UpsertMeeting inserts a meeting by natural key or refreshes its mutable
// fields in place. Meetings are never deleted.
func (s *Store) UpsertMeeting(ctx context.Context, m Meeting) error {
	ctx = ensureContext(ctx)

	var id int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM meetings WHERE key = ?", m.Key).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.execWithRetry(ctx,
			`INSERT INTO meetings (key, year, round, name, official_name, location, country, circuit)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.Key, m.Year, m.Round, m.Name, m.OfficialName, m.Location, m.Country, m.Circuit)
		if err != nil {
			return fmt.Errorf("insert meeting %d: %w", m.Key, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("lookup meeting %d: %w", m.Key, err)
	}

	_, err = s.execWithRetry(ctx,
		`UPDATE meetings
         SET year = ?, round = ?, name = ?, official_name = ?, location = ?, country = ?, circuit = ?
         WHERE key = ?`,
		m.Year, m.Round, m.Name, m.OfficialName, m.Location, m.Country, m.Circuit, m.Key)
	if err != nil {
		return fmt.Errorf("update meeting %d: %w", m.Key, err)
	}
	return nil
}

// MeetingByKey fetches one meeting by natural key, or nil when absent.
func (s *Store) MeetingByKey(ctx context.Context, key int) (*Meeting, error) {
	ctx = ensureContext(ctx)
	var m Meeting
	err := s.db.QueryRowContext(ctx,
		`SELECT key, year, round, name, official_name, location, country, circuit
         FROM meetings WHERE key = ?`, key).
		Scan(&m.Key, &m.Year, &m.Round, &m.Name, &m.OfficialName, &m.Location, &m.Country, &m.Circuit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch meeting %d: %w", key, err)
	}
	return &m, nil
}
