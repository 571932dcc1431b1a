package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"pitwall/internal/archive"
	"pitwall/internal/logging"
	"pitwall/internal/parse"
	"pitwall/internal/warehouse"
)

// sessionDocuments holds the raw archive documents for one session. Every
// document except the roster is optional.
type sessionDocuments struct {
	roster      archive.RawDriverList
	stats       *archive.RawTimingStats
	appData     *archive.RawTimingAppData
	timing      *archive.RawTimingData
	lapSeries   *archive.RawLapSeries
	pitStops    *archive.RawPitStopSeries
	raceControl *archive.RawRaceControlMessages
	weather     *archive.RawWeatherSeries
	sessionData *archive.RawSessionData
	lapCount    *archive.RawLapCount
}

// ingestSession upserts the session identity and then fetches, normalizes,
// and stores its data. It reports whether the session was actually written;
// skips (no archive path, already ingested, roster absent) return false with
// no error.
func (in *Ingestor) ingestSession(ctx context.Context, logger *slog.Logger, raw archive.RawSession, meetingKey int, force bool) (bool, error) {
	session := parse.Session(raw, meetingKey)

	if err := in.store.UpsertSession(ctx, session, force); err != nil {
		return false, err
	}

	// Older seasons list sessions without an archive path; their identity row
	// is kept but there is nothing to fetch.
	if session.Path == "" {
		logger.Debug("session has no archive path")
		return false, nil
	}

	ingestedAt, _, err := in.store.SessionIngestedAt(ctx, session.Key)
	if err != nil {
		return false, err
	}
	if ingestedAt != nil && !force {
		logger.Debug("already ingested", slog.Time("at", *ingestedAt))
		return false, nil
	}

	docs, ok, err := in.fetchSessionDocuments(ctx, session.Path)
	if err != nil {
		return false, err
	}
	if !ok {
		logger.Warn("roster absent, leaving session un-ingested")
		return false, nil
	}

	data := buildSessionData(session.Key, docs)
	if err := in.store.ReplaceSessionData(ctx, session.Key, data); err != nil {
		return false, err
	}

	logger.Info("session ingested",
		slog.String("type", session.Type),
		slog.Int("rows", data.RowCount()))
	return true, nil
}

// fetchSessionDocuments retrieves the roster and then fans out the nine
// optional documents concurrently. The shared client limiter keeps the
// request rate bounded regardless of fan-out. ok=false means the roster was
// absent and the session cannot be ingested.
func (in *Ingestor) fetchSessionDocuments(ctx context.Context, sessionPath string) (*sessionDocuments, bool, error) {
	docs := &sessionDocuments{}

	err := in.client.SessionDocument(ctx, sessionPath, archive.DocDriverList, &docs.roster)
	if errors.Is(err, archive.ErrAbsent) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", archive.DocDriverList, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(name string, assign func() any, commit func()) {
		g.Go(func() error {
			err := in.client.SessionDocument(gctx, sessionPath, name, assign())
			if errors.Is(err, archive.ErrAbsent) {
				in.logger.Debug("document absent", slog.String(logging.FieldDocument, name))
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			commit()
			return nil
		})
	}

	var (
		stats       archive.RawTimingStats
		appData     archive.RawTimingAppData
		timing      archive.RawTimingData
		lapSeries   archive.RawLapSeries
		pitStops    archive.RawPitStopSeries
		raceControl archive.RawRaceControlMessages
		weather     archive.RawWeatherSeries
		sessionData archive.RawSessionData
		lapCount    archive.RawLapCount
	)
	fetch(archive.DocTimingStats, func() any { return &stats }, func() { docs.stats = &stats })
	fetch(archive.DocTimingAppData, func() any { return &appData }, func() { docs.appData = &appData })
	fetch(archive.DocTimingData, func() any { return &timing }, func() { docs.timing = &timing })
	fetch(archive.DocLapSeries, func() any { return &lapSeries }, func() { docs.lapSeries = &lapSeries })
	fetch(archive.DocPitStopSeries, func() any { return &pitStops }, func() { docs.pitStops = &pitStops })
	fetch(archive.DocRaceControlMessages, func() any { return &raceControl }, func() { docs.raceControl = &raceControl })
	fetch(archive.DocWeatherSeries, func() any { return &weather }, func() { docs.weather = &weather })
	fetch(archive.DocSessionData, func() any { return &sessionData }, func() { docs.sessionData = &sessionData })
	fetch(archive.DocLapCount, func() any { return &lapCount }, func() { docs.lapCount = &lapCount })

	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	return docs, true, nil
}

// buildSessionData normalizes raw documents into warehouse rows. Absent
// documents simply contribute no rows.
func buildSessionData(sessionKey int, docs *sessionDocuments) warehouse.SessionData {
	data := warehouse.SessionData{
		Drivers:   parse.SessionDrivers(sessionKey, docs.roster, docs.stats, docs.timing, docs.appData),
		TotalLaps: parse.TotalLaps(docs.lapCount),
	}
	if docs.lapSeries != nil {
		data.LapPositions = parse.LapPositions(sessionKey, *docs.lapSeries)
	}
	if docs.appData != nil {
		data.Stints = parse.Stints(sessionKey, *docs.appData)
	}
	if docs.pitStops != nil {
		data.PitStops = parse.PitStops(sessionKey, *docs.pitStops)
	}
	if docs.raceControl != nil {
		data.RaceControl = parse.RaceControl(sessionKey, *docs.raceControl)
	}
	if docs.weather != nil {
		data.Weather = parse.Weather(sessionKey, *docs.weather)
	}
	if docs.sessionData != nil {
		data.StatusEvents = parse.StatusEvents(sessionKey, *docs.sessionData)
	}
	return data
}
