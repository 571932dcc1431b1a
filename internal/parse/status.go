package parse

import (
	"pitwall/internal/archive"
	"pitwall/internal/warehouse"
)

// StatusEvents flattens the status timeline. Each entry populates exactly one
// of TrackStatus or SessionStatus in the source and is tagged accordingly;
// entries with neither are dropped.
func StatusEvents(sessionKey int, raw archive.RawSessionData) []warehouse.SessionStatusEvent {
	events := make([]warehouse.SessionStatusEvent, 0, len(raw.StatusSeries))
	for _, entry := range raw.StatusSeries {
		var eventType, status string
		switch {
		case entry.TrackStatus != "":
			eventType = warehouse.StatusTypeTrack
			status = entry.TrackStatus
		case entry.SessionStatus != "":
			eventType = warehouse.StatusTypeSession
			status = entry.SessionStatus
		default:
			continue
		}
		events = append(events, warehouse.SessionStatusEvent{
			SessionKey: sessionKey,
			Utc:        strOrNil(entry.Utc),
			Type:       eventType,
			Status:     status,
			Message:    strOrNil(status),
		})
	}
	return events
}
