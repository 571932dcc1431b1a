package ingest_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"pitwall/internal/archive"
	"pitwall/internal/config"
	"pitwall/internal/ingest"
	"pitwall/internal/logging"
	"pitwall/internal/testsupport"
	"pitwall/internal/warehouse"
)

const indexJSON = `{
  "Year": 2024,
  "Meetings": [
    {
      "Key": 1229,
      "Number": 1,
      "Location": "Sakhir",
      "Name": "Bahrain Grand Prix",
      "Country": {"Key": 36, "Code": "BRN", "Name": "Bahrain"},
      "Circuit": {"Key": 63, "ShortName": "Sakhir"},
      "Sessions": [
        {"Key": 9470, "Type": "Practice", "Number": 1, "Name": "Practice 1",
         "StartDate": "2024-02-29T14:30:00", "Path": "2024/bahrain/practice1/"},
        {"Key": 9472, "Type": "Race", "Number": 0, "Name": "Race",
         "StartDate": "2024-03-02T15:00:00", "Path": "2024/bahrain/race/"},
        {"Key": -1, "Type": "Race", "Number": 0, "Name": "",
         "StartDate": "", "Path": ""}
      ]
    }
  ]
}`

// driverListJSON builds a 20-car roster keyed by racing number.
func driverListJSON() string {
	var b strings.Builder
	b.WriteString("{")
	for i := 1; i <= 20; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b,
			`"%d":{"RacingNumber":"%d","Tla":"D%02d","FirstName":"First%d","LastName":"Last%d","TeamName":"Team %d","Line":%d}`,
			i, i, i, i, i, (i+1)/2, i)
	}
	b.WriteString("}")
	return b.String()
}

const timingDataJSON = `{
  "Lines": {
    "1": {"RacingNumber": "1", "Position": "1", "NumberOfPitStops": 2},
    "2": {"RacingNumber": "2", "Position": "19", "Retired": true}
  }
}`

const timingAppDataJSON = `{
  "Lines": {
    "1": {
      "RacingNumber": "1",
      "GridPos": "1",
      "Stints": [
        {"Compound": "SOFT", "New": "true", "TotalLaps": 18},
        {"Compound": "HARD", "New": "true", "TotalLaps": 22},
        {"Compound": "HARD", "New": "false", "TotalLaps": 18}
      ]
    }
  }
}`

const lapSeriesJSON = `{
  "1": {"RacingNumber": "1", "LapPosition": ["2", "1", "1"]}
}`

const pitStopSeriesJSON = `{
  "PitTimes": {
    "1": [
      {"Timestamp": "15:31:02", "PitStop": {"RacingNumber": "1", "Lap": "18", "PitStopTime": "2.3", "PitLaneTime": "22.891"}},
      {"Timestamp": "16:02:44", "PitStop": {"RacingNumber": "1", "Lap": "40", "PitStopTime": "2.1", "PitLaneTime": "21.005"}}
    ]
  }
}`

const sessionDataJSON = `{
  "StatusSeries": [
    {"Utc": "2024-03-02T15:03:00Z", "TrackStatus": "AllClear"},
    {"Utc": "2024-03-02T15:10:00Z", "SessionStatus": "Started"},
    {"Utc": "2024-03-02T16:40:00Z", "SessionStatus": "Finished"}
  ]
}`

const lapCountJSON = `{"CurrentLap": 58, "TotalLaps": 58}`

// raceDocuments returns the full archive content for the sample race. The
// practice session deliberately has no roster.
func raceDocuments() map[string]string {
	return map[string]string{
		"/2024/Index.json":                      indexJSON,
		"/2024/bahrain/race/DriverList.json":    driverListJSON(),
		"/2024/bahrain/race/TimingDataF1.json":  timingDataJSON,
		"/2024/bahrain/race/TimingAppData.json": timingAppDataJSON,
		"/2024/bahrain/race/LapSeries.json":     lapSeriesJSON,
		"/2024/bahrain/race/PitStopSeries.json": pitStopSeriesJSON,
		"/2024/bahrain/race/SessionData.json":   sessionDataJSON,
		"/2024/bahrain/race/LapCount.json":      lapCountJSON,
	}
}

func newIngestor(t *testing.T, cfg *config.Config, store *warehouse.Store) *ingest.Ingestor {
	t.Helper()
	client, err := archive.NewFromConfig(cfg.Archive, logging.NewNop())
	if err != nil {
		t.Fatalf("archive.NewFromConfig: %v", err)
	}
	return ingest.New(cfg, logging.NewNop(), store, client)
}

func TestRunEndToEnd(t *testing.T) {
	server := testsupport.FakeArchive(t, raceDocuments())
	cfg := testsupport.NewConfig(t, testsupport.WithArchiveURL(server.URL))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	summary, err := newIngestor(t, cfg, store).Run(ctx, []int{2024}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The race ingests; practice has no roster; the malformed entry is not
	// counted at all.
	if summary.Ingested != 1 || summary.Total != 2 {
		t.Fatalf("summary = %+v, want 1/2", summary)
	}

	race, err := store.SessionByKey(ctx, 9472)
	if err != nil {
		t.Fatalf("SessionByKey: %v", err)
	}
	if race == nil || race.IngestedAt == nil {
		t.Fatalf("race not marked ingested: %+v", race)
	}
	if race.TotalLaps == nil || *race.TotalLaps != 58 {
		t.Fatalf("TotalLaps = %v, want 58", race.TotalLaps)
	}

	drivers, err := store.SessionDrivers(ctx, 9472)
	if err != nil {
		t.Fatalf("SessionDrivers: %v", err)
	}
	if len(drivers) != 20 {
		t.Fatalf("got %d drivers, want 20", len(drivers))
	}
	winner := drivers[0]
	if winner.DriverNumber != 1 || winner.FinalPosition == nil || *winner.FinalPosition != 1 {
		t.Fatalf("winner = %+v", winner)
	}
	if winner.PitCount == nil || *winner.PitCount != 2 {
		t.Fatalf("PitCount = %v, want 2", winner.PitCount)
	}

	stints, err := store.Stints(ctx, 9472, 1)
	if err != nil {
		t.Fatalf("Stints: %v", err)
	}
	if len(stints) != 3 {
		t.Fatalf("got %d stints, want 3", len(stints))
	}
	lapSum := 0
	for _, s := range stints {
		if s.TotalLaps != nil {
			lapSum += *s.TotalLaps
		}
	}
	if lapSum != 58 {
		t.Fatalf("stint lap sum = %d, want 58", lapSum)
	}
	if stints[2].StartLap == nil || *stints[2].StartLap != 41 ||
		stints[2].EndLap == nil || *stints[2].EndLap != 58 {
		t.Fatalf("final stint range = %+v", stints[2])
	}

	counts, err := store.SessionRowCounts(ctx, 9472)
	if err != nil {
		t.Fatalf("SessionRowCounts: %v", err)
	}
	if counts["pit_stops"] != 2 {
		t.Fatalf("pit_stops = %d, want 2", counts["pit_stops"])
	}
	if counts["lap_positions"] != 3 {
		t.Fatalf("lap_positions = %d, want 3", counts["lap_positions"])
	}
	if counts["session_status_events"] != 3 {
		t.Fatalf("session_status_events = %d, want 3", counts["session_status_events"])
	}

	// The roster-less practice session is discovered but not ingested.
	practice, err := store.SessionByKey(ctx, 9470)
	if err != nil {
		t.Fatalf("SessionByKey practice: %v", err)
	}
	if practice == nil {
		t.Fatal("practice session not discovered")
	}
	if practice.IngestedAt != nil {
		t.Fatalf("practice IngestedAt = %v, want nil", practice.IngestedAt)
	}
	practiceCounts, err := store.SessionRowCounts(ctx, 9470)
	if err != nil {
		t.Fatalf("SessionRowCounts practice: %v", err)
	}
	for table, n := range practiceCounts {
		if n != 0 {
			t.Fatalf("practice %s = %d, want 0", table, n)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	server := testsupport.FakeArchive(t, raceDocuments())
	cfg := testsupport.NewConfig(t, testsupport.WithArchiveURL(server.URL))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	ingestor := newIngestor(t, cfg, store)
	if _, err := ingestor.Run(ctx, []int{2024}, false); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	first, err := store.SessionByKey(ctx, 9472)
	if err != nil {
		t.Fatalf("SessionByKey: %v", err)
	}

	summary, err := ingestor.Run(ctx, []int{2024}, false)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if summary.Ingested != 0 || summary.Total != 2 {
		t.Fatalf("summary = %+v, want 0/2", summary)
	}

	second, err := store.SessionByKey(ctx, 9472)
	if err != nil {
		t.Fatalf("SessionByKey: %v", err)
	}
	if !second.IngestedAt.Equal(*first.IngestedAt) {
		t.Fatalf("ingested_at changed on no-op run: %v != %v", second.IngestedAt, first.IngestedAt)
	}
}

func TestRunForceReplaces(t *testing.T) {
	documents := raceDocuments()
	server := testsupport.FakeArchive(t, documents)
	cfg := testsupport.NewConfig(t, testsupport.WithArchiveURL(server.URL))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	ingestor := newIngestor(t, cfg, store)
	if _, err := ingestor.Run(ctx, []int{2024}, false); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	// Upstream now publishes a corrected document set with fewer pit stops.
	documents["/2024/bahrain/race/PitStopSeries.json"] = `{
      "PitTimes": {
        "1": [
          {"Timestamp": "15:31:02", "PitStop": {"RacingNumber": "1", "Lap": "18", "PitStopTime": "2.3", "PitLaneTime": "22.891"}}
        ]
      }
    }`

	summary, err := ingestor.Run(ctx, []int{2024}, true)
	if err != nil {
		t.Fatalf("force Run: %v", err)
	}
	if summary.Ingested != 1 {
		t.Fatalf("summary = %+v, want 1 ingested", summary)
	}

	counts, err := store.SessionRowCounts(ctx, 9472)
	if err != nil {
		t.Fatalf("SessionRowCounts: %v", err)
	}
	if counts["pit_stops"] != 1 {
		t.Fatalf("pit_stops = %d, want 1 after force replace", counts["pit_stops"])
	}
}

func TestRunKeepsPathlessSessionIdentity(t *testing.T) {
	// Older seasons list sessions without an archive path. They still get an
	// identity row and count toward the discovered total, but nothing is
	// fetched for them.
	documents := map[string]string{
		"/2019/Index.json": `{
	  "Year": 2019,
	  "Meetings": [
	    {
	      "Key": 1000,
	      "Number": 1,
	      "Location": "Melbourne",
	      "Name": "Australian Grand Prix",
	      "Country": {"Key": 5, "Code": "AUS", "Name": "Australia"},
	      "Circuit": {"Key": 10, "ShortName": "Melbourne"},
	      "Sessions": [
	        {"Key": 5001, "Type": "Race", "Number": 0, "Name": "Race",
	         "StartDate": "2019-03-17T16:10:00", "Path": ""}
	      ]
	    }
	  ]
	}`,
	}
	server := testsupport.FakeArchive(t, documents)
	cfg := testsupport.NewConfig(t, testsupport.WithArchiveURL(server.URL))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	summary, err := newIngestor(t, cfg, store).Run(ctx, []int{2019}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 1 || summary.Ingested != 0 {
		t.Fatalf("summary = %+v, want 0/1", summary)
	}

	session, err := store.SessionByKey(ctx, 5001)
	if err != nil {
		t.Fatalf("SessionByKey: %v", err)
	}
	if session == nil {
		t.Fatal("pathless session has no identity row")
	}
	if session.IngestedAt != nil {
		t.Fatalf("pathless session marked ingested at %v", session.IngestedAt)
	}
}

func TestRunSkipsAbsentSeason(t *testing.T) {
	server := testsupport.FakeArchive(t, map[string]string{})
	cfg := testsupport.NewConfig(t, testsupport.WithArchiveURL(server.URL))
	store := testsupport.MustOpenStore(t, cfg)

	summary, err := newIngestor(t, cfg, store).Run(context.Background(), []int{1999}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 0 || summary.Ingested != 0 {
		t.Fatalf("summary = %+v, want 0/0", summary)
	}
}

func TestRunContinuesPastCorruptSession(t *testing.T) {
	documents := raceDocuments()
	documents["/2024/bahrain/race/TimingAppData.json"] = `{"Lines": not json`
	documents["/2024/bahrain/practice1/DriverList.json"] = `{"1":{"RacingNumber":"1","Tla":"VER","Line":1}}`
	server := testsupport.FakeArchive(t, documents)
	cfg := testsupport.NewConfig(t, testsupport.WithArchiveURL(server.URL))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	summary, err := newIngestor(t, cfg, store).Run(ctx, []int{2024}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Practice ingests, the race fails on its corrupt document.
	if summary.Ingested != 1 || summary.Total != 2 {
		t.Fatalf("summary = %+v, want 1/2", summary)
	}

	race, err := store.SessionByKey(ctx, 9472)
	if err != nil {
		t.Fatalf("SessionByKey: %v", err)
	}
	if race.IngestedAt != nil {
		t.Fatalf("corrupt race marked ingested at %v", race.IngestedAt)
	}
}
