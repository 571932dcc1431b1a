package parse

import (
	"strconv"

	"pitwall/internal/archive"
	"pitwall/internal/warehouse"
)

// LapPositions flattens the per-driver position arrays into one row per
// driver per lap. Array index i is lap i+1. Non-numeric entries (gaps in the
// feed) are skipped.
func LapPositions(sessionKey int, raw archive.RawLapSeries) []warehouse.LapPosition {
	var rows []warehouse.LapPosition
	for _, numStr := range sortedNumericKeys(raw) {
		driver := raw[numStr]
		driverNumber, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}
		for i, posStr := range driver.LapPosition {
			pos, err := strconv.Atoi(posStr)
			if err != nil {
				continue
			}
			rows = append(rows, warehouse.LapPosition{
				SessionKey:   sessionKey,
				DriverNumber: driverNumber,
				LapNumber:    i + 1,
				Position:     pos,
			})
		}
	}
	return rows
}

func sortedNumericKeys(raw archive.RawLapSeries) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sortNumeric(keys)
	return keys
}
