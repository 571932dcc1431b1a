package parse

import (
	"strconv"

	"pitwall/internal/archive"
	"pitwall/internal/warehouse"
)

// RaceControl normalizes the control-room message log.
func RaceControl(sessionKey int, raw archive.RawRaceControlMessages) []warehouse.RaceControlMessage {
	messages := make([]warehouse.RaceControlMessage, 0, len(raw.Messages))
	for _, msg := range raw.Messages {
		var driverNumber *int
		if num, err := strconv.Atoi(msg.RacingNumber); err == nil {
			driverNumber = intPtr(num)
		}
		messages = append(messages, warehouse.RaceControlMessage{
			SessionKey:   sessionKey,
			Utc:          strOrNil(msg.Utc),
			LapNumber:    msg.Lap,
			Category:     strOrNil(msg.Category),
			Flag:         strOrNil(msg.Flag),
			Scope:        strOrNil(msg.Scope),
			Sector:       msg.Sector,
			DriverNumber: driverNumber,
			Message:      msg.Message,
		})
	}
	return messages
}
