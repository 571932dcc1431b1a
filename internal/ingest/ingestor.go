package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"pitwall/internal/archive"
	"pitwall/internal/config"
	"pitwall/internal/logging"
	"pitwall/internal/parse"
	"pitwall/internal/warehouse"
)

// Ingestor drives one or more season ingestion runs against a single
// warehouse.
type Ingestor struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *warehouse.Store
	client *archive.Client
	lock   *flock.Flock
}

// Summary reports how much of a run made it into the warehouse.
type Summary struct {
	Ingested int
	Total    int
}

// New creates an Ingestor. The run lock lives next to the warehouse file so
// two processes cannot ingest into the same database concurrently.
func New(cfg *config.Config, logger *slog.Logger, store *warehouse.Store, client *archive.Client) *Ingestor {
	return &Ingestor{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "ingest"),
		store:  store,
		client: client,
		lock:   flock.New(store.Path() + ".lock"),
	}
}

// Run ingests the given seasons in order. Sessions already marked ingested
// are skipped unless force is set, in which case their data is replaced
// wholesale. A per-session failure is logged and the run continues; Run only
// returns an error for run-level problems (lock contention, cancellation, a
// failing warehouse).
func (in *Ingestor) Run(ctx context.Context, years []int, force bool) (Summary, error) {
	ok, err := in.lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !ok {
		return Summary{}, errors.New("another ingest run is already using this warehouse")
	}
	defer func() { _ = in.lock.Unlock() }()

	logger := in.logger.With(slog.String(logging.FieldRunID, uuid.NewString()))
	logger.Info("starting ingest", slog.Any("years", years), slog.Bool("force", force))

	var summary Summary
	for _, year := range years {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := in.ingestSeason(ctx, logger, year, force, &summary); err != nil {
			return summary, err
		}
	}

	logger.Info("ingest complete",
		slog.Int("ingested", summary.Ingested),
		slog.Int("total", summary.Total))
	return summary, nil
}

func (in *Ingestor) ingestSeason(ctx context.Context, logger *slog.Logger, year int, force bool, summary *Summary) error {
	index, err := in.client.SeasonIndex(ctx, year)
	if errors.Is(err, archive.ErrAbsent) {
		logger.Warn("season index absent", slog.Int("year", year))
		return nil
	}
	if err != nil {
		return fmt.Errorf("season index %d: %w", year, err)
	}

	logger.Info("season discovered",
		slog.Int("year", year),
		slog.Int("meetings", len(index.Meetings)))

	for _, rawMeeting := range index.Meetings {
		if err := ctx.Err(); err != nil {
			return err
		}
		meeting := parse.Meeting(rawMeeting, year)
		if err := in.store.UpsertMeeting(ctx, meeting); err != nil {
			return fmt.Errorf("meeting %d: %w", meeting.Key, err)
		}
		logger.Info("meeting", slog.Int("year", year), slog.String("name", meeting.Name))

		for _, rawSession := range rawMeeting.Sessions {
			if err := ctx.Err(); err != nil {
				return err
			}
			if parse.MalformedSession(rawSession) {
				logger.Debug("skipping malformed session entry",
					slog.String("meeting", meeting.Name),
					slog.Int("key", rawSession.Key))
				continue
			}
			summary.Total++
			label := meeting.Name + " / " + rawSession.Name
			sessionLogger := logger.With(slog.String(logging.FieldSession, label))

			done, err := in.ingestSession(ctx, sessionLogger, rawSession, meeting.Key, force)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				sessionLogger.Error("session failed", slog.Any("error", err))
				continue
			}
			if done {
				summary.Ingested++
			}
		}
	}
	return nil
}
