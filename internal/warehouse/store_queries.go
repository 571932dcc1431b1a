package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionSummaries lists stored sessions for one season in start-date order.
func (s *Store) SessionSummaries(ctx context.Context, year int) ([]SessionSummary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.name, se.name, se.type, se.start_date, se.total_laps, se.ingested_at
         FROM sessions se
         JOIN meetings m ON m.key = se.meeting_key
         WHERE m.year = ?
         ORDER BY se.start_date, se.key`, year)
	if err != nil {
		return nil, fmt.Errorf("query sessions for %d: %w", year, err)
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var (
			summary SessionSummary
			raw     sql.NullString
		)
		if err := rows.Scan(&summary.MeetingName, &summary.SessionName, &summary.Type,
			&summary.StartDate, &summary.TotalLaps, &raw); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		if raw.Valid {
			ts, parseErr := time.Parse(time.RFC3339Nano, raw.String)
			if parseErr != nil {
				return nil, fmt.Errorf("parse ingested_at: %w", parseErr)
			}
			summary.IngestedAt = &ts
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// SessionRowCounts reports per-table child row counts for one session.
func (s *Store) SessionRowCounts(ctx context.Context, sessionKey int) (map[string]int, error) {
	ctx = ensureContext(ctx)
	counts := make(map[string]int, len(childTables))
	for _, table := range childTables {
		var n int
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM "+table+" WHERE session_key = ?", sessionKey).Scan(&n)
		if err != nil {
			return nil, fmt.Errorf("count %s for session %d: %w", table, sessionKey, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// SessionDrivers returns the stored driver rows for one session ordered by
// final position, then driver number.
func (s *Store) SessionDrivers(ctx context.Context, sessionKey int) ([]SessionDriver, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_key, driver_number, abbreviation, first_name, last_name, full_name,
                team_name, team_color, headshot_url, country_code, grid_position, final_position,
                status, points, best_lap_time, best_lap_time_seconds, best_lap_number,
                best_sector_1, best_sector_1_seconds, best_sector_2, best_sector_2_seconds,
                best_sector_3, best_sector_3_seconds, speed_trap_best, sector1_speed_best,
                sector2_speed_best, finish_line_speed_best, pit_count
         FROM session_drivers
         WHERE session_key = ?
         ORDER BY final_position IS NULL, final_position, driver_number`, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("query drivers for session %d: %w", sessionKey, err)
	}
	defer rows.Close()

	var drivers []SessionDriver
	for rows.Next() {
		var d SessionDriver
		if err := rows.Scan(&d.SessionKey, &d.DriverNumber, &d.Abbreviation, &d.FirstName, &d.LastName,
			&d.FullName, &d.TeamName, &d.TeamColor, &d.HeadshotURL, &d.CountryCode, &d.GridPosition,
			&d.FinalPosition, &d.Status, &d.Points, &d.BestLapTime, &d.BestLapTimeSeconds,
			&d.BestLapNumber, &d.BestSector1, &d.BestSector1Seconds, &d.BestSector2, &d.BestSector2Seconds,
			&d.BestSector3, &d.BestSector3Seconds, &d.SpeedTrapBest, &d.Sector1SpeedBest,
			&d.Sector2SpeedBest, &d.FinishLineSpeedBest, &d.PitCount); err != nil {
			return nil, fmt.Errorf("scan session driver: %w", err)
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// Stints returns the stored stints for one driver in stint order.
func (s *Store) Stints(ctx context.Context, sessionKey, driverNumber int) ([]Stint, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_key, driver_number, stint_number, compound, is_new,
                tyres_not_changed, total_laps, start_lap, end_lap
         FROM stints
         WHERE session_key = ? AND driver_number = ?
         ORDER BY stint_number`, sessionKey, driverNumber)
	if err != nil {
		return nil, fmt.Errorf("query stints: %w", err)
	}
	defer rows.Close()

	var stints []Stint
	for rows.Next() {
		var (
			st                Stint
			isNew, notChanged sql.NullInt64
		)
		if err := rows.Scan(&st.SessionKey, &st.DriverNumber, &st.StintNumber, &st.Compound,
			&isNew, &notChanged, &st.TotalLaps, &st.StartLap, &st.EndLap); err != nil {
			return nil, fmt.Errorf("scan stint: %w", err)
		}
		st.IsNew = nullBool(isNew)
		st.TyresNotChanged = nullBool(notChanged)
		stints = append(stints, st)
	}
	return stints, rows.Err()
}

func nullBool(v sql.NullInt64) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Int64 != 0
	return &b
}
