package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// childTables lists every table scoped to a session key, including the
// reserved laps table.
var childTables = []string{
	"session_drivers",
	"laps",
	"lap_positions",
	"stints",
	"pit_stops",
	"race_control_messages",
	"weather_samples",
	"session_status_events",
}

// ReplaceSessionData atomically replaces all child rows for one session and
// stamps total_laps and ingested_at. Delete, batched inserts, and the
// completion marker commit or roll back together, so a crash mid-session
// leaves the previous state intact and ingested_at truthful.
func (s *Store) ReplaceSessionData(ctx context.Context, sessionKey int, data SessionData) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		return s.replaceSessionData(ctx, sessionKey, data)
	})
}

func (s *Store) replaceSessionData(ctx context.Context, sessionKey int, data SessionData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range childTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE session_key = ?", sessionKey); err != nil {
			return fmt.Errorf("clear %s for session %d: %w", table, sessionKey, err)
		}
	}

	if err := s.insertDrivers(ctx, tx, data.Drivers); err != nil {
		return err
	}
	if err := s.insertLapPositions(ctx, tx, data.LapPositions); err != nil {
		return err
	}
	if err := s.insertStints(ctx, tx, data.Stints); err != nil {
		return err
	}
	if err := s.insertPitStops(ctx, tx, data.PitStops); err != nil {
		return err
	}
	if err := s.insertRaceControl(ctx, tx, data.RaceControl); err != nil {
		return err
	}
	if err := s.insertWeather(ctx, tx, data.Weather); err != nil {
		return err
	}
	if err := s.insertStatusEvents(ctx, tx, data.StatusEvents); err != nil {
		return err
	}

	ingestedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		"UPDATE sessions SET total_laps = ?, ingested_at = ? WHERE key = ?",
		data.TotalLaps, ingestedAt, sessionKey); err != nil {
		return fmt.Errorf("mark session %d ingested: %w", sessionKey, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session %d: %w", sessionKey, err)
	}
	return nil
}

// txExecer is the slice of *sql.Tx the insert helpers need.
type txExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) insertDrivers(ctx context.Context, tx txExecer, drivers []SessionDriver) error {
	columns := []string{
		"session_key", "driver_number", "abbreviation", "first_name", "last_name", "full_name",
		"team_name", "team_color", "headshot_url", "country_code", "grid_position", "final_position",
		"status", "points", "best_lap_time", "best_lap_time_seconds", "best_lap_number",
		"best_sector_1", "best_sector_1_seconds", "best_sector_2", "best_sector_2_seconds",
		"best_sector_3", "best_sector_3_seconds", "speed_trap_best", "sector1_speed_best",
		"sector2_speed_best", "finish_line_speed_best", "pit_count",
	}
	rows := make([][]any, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, []any{
			d.SessionKey, d.DriverNumber, d.Abbreviation, d.FirstName, d.LastName, d.FullName,
			d.TeamName, d.TeamColor, d.HeadshotURL, d.CountryCode, d.GridPosition, d.FinalPosition,
			d.Status, d.Points, d.BestLapTime, d.BestLapTimeSeconds, d.BestLapNumber,
			d.BestSector1, d.BestSector1Seconds, d.BestSector2, d.BestSector2Seconds,
			d.BestSector3, d.BestSector3Seconds, d.SpeedTrapBest, d.Sector1SpeedBest,
			d.Sector2SpeedBest, d.FinishLineSpeedBest, d.PitCount,
		})
	}
	return s.insertRows(ctx, tx, "session_drivers", columns, rows)
}

func (s *Store) insertLapPositions(ctx context.Context, tx txExecer, positions []LapPosition) error {
	columns := []string{"session_key", "driver_number", "lap_number", "position"}
	rows := make([][]any, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []any{p.SessionKey, p.DriverNumber, p.LapNumber, p.Position})
	}
	return s.insertRows(ctx, tx, "lap_positions", columns, rows)
}

func (s *Store) insertStints(ctx context.Context, tx txExecer, stints []Stint) error {
	columns := []string{
		"session_key", "driver_number", "stint_number", "compound", "is_new",
		"tyres_not_changed", "total_laps", "start_lap", "end_lap",
	}
	rows := make([][]any, 0, len(stints))
	for _, st := range stints {
		rows = append(rows, []any{
			st.SessionKey, st.DriverNumber, st.StintNumber, st.Compound, boolArg(st.IsNew),
			boolArg(st.TyresNotChanged), st.TotalLaps, st.StartLap, st.EndLap,
		})
	}
	return s.insertRows(ctx, tx, "stints", columns, rows)
}

func (s *Store) insertPitStops(ctx context.Context, tx txExecer, stops []PitStop) error {
	columns := []string{
		"session_key", "driver_number", "lap_number", "stop_number",
		"pit_lane_time", "pit_lane_time_seconds", "stationary_time", "stationary_time_seconds",
	}
	rows := make([][]any, 0, len(stops))
	for _, p := range stops {
		rows = append(rows, []any{
			p.SessionKey, p.DriverNumber, p.LapNumber, p.StopNumber,
			p.PitLaneTime, p.PitLaneTimeSeconds, p.StationaryTime, p.StationaryTimeSeconds,
		})
	}
	return s.insertRows(ctx, tx, "pit_stops", columns, rows)
}

func (s *Store) insertRaceControl(ctx context.Context, tx txExecer, messages []RaceControlMessage) error {
	columns := []string{
		"session_key", "utc", "lap_number", "category", "flag", "scope", "sector", "driver_number", "message",
	}
	rows := make([][]any, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, []any{
			m.SessionKey, m.Utc, m.LapNumber, m.Category, m.Flag, m.Scope, m.Sector, m.DriverNumber, m.Message,
		})
	}
	return s.insertRows(ctx, tx, "race_control_messages", columns, rows)
}

func (s *Store) insertWeather(ctx context.Context, tx txExecer, samples []WeatherSample) error {
	columns := []string{
		"session_key", "utc", "air_temp", "track_temp", "humidity", "pressure",
		"rainfall", "wind_direction", "wind_speed",
	}
	rows := make([][]any, 0, len(samples))
	for _, w := range samples {
		rows = append(rows, []any{
			w.SessionKey, w.Utc, w.AirTemp, w.TrackTemp, w.Humidity, w.Pressure,
			boolArg(w.Rainfall), w.WindDirection, w.WindSpeed,
		})
	}
	return s.insertRows(ctx, tx, "weather_samples", columns, rows)
}

func (s *Store) insertStatusEvents(ctx context.Context, tx txExecer, events []SessionStatusEvent) error {
	columns := []string{"session_key", "utc", "type", "status", "message"}
	rows := make([][]any, 0, len(events))
	for _, e := range events {
		rows = append(rows, []any{e.SessionKey, e.Utc, e.Type, e.Status, e.Message})
	}
	return s.insertRows(ctx, tx, "session_status_events", columns, rows)
}

// insertRows writes rows as fixed-size multi-row INSERT statements to bound
// per-statement payload size.
func (s *Store) insertRows(ctx context.Context, tx txExecer, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	batchSize := s.batchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	valueRow := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	head := "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES "

	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		var sb strings.Builder
		sb.WriteString(head)
		args := make([]any, 0, len(chunk)*len(columns))
		for i, row := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(valueRow)
			args = append(args, row...)
		}
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return fmt.Errorf("insert %s batch: %w", table, err)
		}
	}
	return nil
}

func boolArg(v *bool) any {
	if v == nil {
		return nil
	}
	if *v {
		return 1
	}
	return 0
}
