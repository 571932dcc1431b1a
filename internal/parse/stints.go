package parse

import (
	"strconv"

	"pitwall/internal/archive"
	"pitwall/internal/warehouse"
)

// Stints reconstructs per-driver stint lap ranges. The source reports only a
// per-stint lap count, so the range is cumulative: stint i starts one lap
// after the sum of all prior stint counts for that driver. Source order per
// driver is therefore load-bearing and preserved.
func Stints(sessionKey int, appData archive.RawTimingAppData) []warehouse.Stint {
	numbers := make([]string, 0, len(appData.Lines))
	for numStr := range appData.Lines {
		numbers = append(numbers, numStr)
	}
	sortNumeric(numbers)

	var stints []warehouse.Stint
	for _, numStr := range numbers {
		driver := appData.Lines[numStr]
		driverNumber, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}

		priorLaps := 0
		for i, raw := range driver.Stints {
			count := 0
			if raw.TotalLaps != nil {
				count = *raw.TotalLaps
			}
			startLap := priorLaps + 1
			endLap := priorLaps + count
			priorLaps = endLap

			stint := warehouse.Stint{
				SessionKey:      sessionKey,
				DriverNumber:    driverNumber,
				StintNumber:     i + 1,
				Compound:        strOrNil(raw.Compound),
				IsNew:           boolPtr(raw.New == "true"),
				TyresNotChanged: boolPtr(raw.TyresNotChanged == "1"),
				TotalLaps:       raw.TotalLaps,
			}
			if startLap > 0 {
				stint.StartLap = intPtr(startLap)
			}
			if endLap > 0 {
				stint.EndLap = intPtr(endLap)
			}
			stints = append(stints, stint)
		}
	}

	return stints
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }
