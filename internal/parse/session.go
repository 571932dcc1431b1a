package parse

import (
	"fmt"

	"pitwall/internal/archive"
	"pitwall/internal/warehouse"
)

// sprintSentinel is the session number the archive uses to mark a
// Qualifying/Race index entry as the sprint-format variant.
const sprintSentinel = -1

// Meeting normalizes a season-index meeting entry.
func Meeting(raw archive.RawMeeting, year int) warehouse.Meeting {
	return warehouse.Meeting{
		Key:          raw.Key,
		Year:         year,
		Round:        raw.Number,
		Name:         raw.Name,
		OfficialName: strOrNil(raw.OfficialName),
		Location:     strOrNil(raw.Location),
		Country:      strOrNil(raw.Country.Name),
		Circuit:      strOrNil(raw.Circuit.ShortName),
	}
}

// Session normalizes a season-index session entry. The type tag folds the
// archive's three labels into the five session kinds: numbered practice
// sessions become Practice_n, and the sprint sentinel turns Qualifying and
// Race into Sprint_Qualifying and Sprint.
func Session(raw archive.RawSession, meetingKey int) warehouse.Session {
	sessionType := raw.Type
	switch {
	case raw.Type == "Practice" && raw.Number > 0:
		sessionType = fmt.Sprintf("Practice_%d", raw.Number)
	case raw.Type == "Qualifying" && raw.Number == sprintSentinel:
		sessionType = "Sprint_Qualifying"
	case raw.Type == "Race" && raw.Number == sprintSentinel:
		sessionType = "Sprint"
	}

	return warehouse.Session{
		Key:        raw.Key,
		MeetingKey: meetingKey,
		Type:       sessionType,
		Name:       raw.Name,
		StartDate:  strOrNil(raw.StartDate),
		EndDate:    strOrNil(raw.EndDate),
		GmtOffset:  strOrNil(raw.GmtOffset),
		Path:       raw.Path,
	}
}

// MalformedSession reports placeholder index entries (negative key or empty
// name) that some seasons contain and that must be skipped, not ingested.
func MalformedSession(raw archive.RawSession) bool {
	return raw.Key < 0 || raw.Name == ""
}

// TotalLaps extracts the session's reported lap total.
func TotalLaps(raw *archive.RawLapCount) *int {
	if raw == nil {
		return nil
	}
	return raw.TotalLaps
}
