package parse

import (
	"strconv"

	"pitwall/internal/archive"
	"pitwall/internal/warehouse"
)

// PitStops normalizes the pit-stop series. Stop numbers follow source array
// order per driver (first entry is stop 1), not lap order.
func PitStops(sessionKey int, series archive.RawPitStopSeries) []warehouse.PitStop {
	numbers := make([]string, 0, len(series.PitTimes))
	for numStr := range series.PitTimes {
		numbers = append(numbers, numStr)
	}
	sortNumeric(numbers)

	var stops []warehouse.PitStop
	for _, numStr := range numbers {
		for i, entry := range series.PitTimes[numStr] {
			raw := entry.PitStop
			driverNumber, err := strconv.Atoi(raw.RacingNumber)
			if err != nil {
				continue
			}
			lapNumber, err := strconv.Atoi(raw.Lap)
			if err != nil {
				continue
			}
			stops = append(stops, warehouse.PitStop{
				SessionKey:            sessionKey,
				DriverNumber:          driverNumber,
				LapNumber:             lapNumber,
				StopNumber:            intPtr(i + 1),
				PitLaneTime:           strOrNil(raw.PitLaneTime),
				PitLaneTimeSeconds:    floatOrNil(raw.PitLaneTime),
				StationaryTime:        strOrNil(raw.PitStopTime),
				StationaryTimeSeconds: floatOrNil(raw.PitStopTime),
			})
		}
	}

	return stops
}
