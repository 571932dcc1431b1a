package parse

import (
	"strconv"

	"pitwall/internal/archive"
	"pitwall/internal/warehouse"
)

// Driver status values derived from the final-timing flags.
const (
	StatusFinished = "Finished"
	StatusDNF      = "DNF"
	StatusStopped  = "Stopped"
)

// SessionDrivers merges the roster with up to three optional documents into
// one row per driver. The merge precedence is explicit:
//
//   - final position: the final-timing Position field wins; the roster's
//     classification line is the fallback, and only when positive
//   - status: only derivable when final timing is present; Retired beats
//     Stopped beats Finished
//   - grid position: stint/grid document only
//   - best lap/sector/speed figures: best-stats document only
//   - pit count: final-timing document only
//
// Drivers are emitted in racing-number order.
func SessionDrivers(
	sessionKey int,
	roster archive.RawDriverList,
	stats *archive.RawTimingStats,
	timing *archive.RawTimingData,
	appData *archive.RawTimingAppData,
) []warehouse.SessionDriver {
	numbers := sortedDriverNumbers(roster)

	drivers := make([]warehouse.SessionDriver, 0, len(numbers))
	for _, numStr := range numbers {
		raw := roster[numStr]
		driverNumber, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}

		var statsLine *archive.RawTimingStatsDriver
		if stats != nil {
			if line, ok := stats.Lines[numStr]; ok {
				statsLine = &line
			}
		}
		var timingLine *archive.RawTimingDriver
		if timing != nil {
			if line, ok := timing.Lines[numStr]; ok {
				timingLine = &line
			}
		}
		var appLine *archive.RawTimingAppDriver
		if appData != nil {
			if line, ok := appData.Lines[numStr]; ok {
				appLine = &line
			}
		}

		driver := warehouse.SessionDriver{
			SessionKey:    sessionKey,
			DriverNumber:  driverNumber,
			Abbreviation:  raw.Tla,
			FirstName:     strOrNil(raw.FirstName),
			LastName:      strOrNil(raw.LastName),
			FullName:      strOrNil(raw.FullName),
			TeamName:      strOrNil(raw.TeamName),
			TeamColor:     strOrNil(raw.TeamColour),
			HeadshotURL:   strOrNil(raw.HeadshotURL),
			CountryCode:   strOrNil(raw.CountryCode),
			FinalPosition: finalPosition(raw, timingLine),
			Status:        driverStatus(timingLine),
		}

		if appLine != nil {
			driver.GridPosition = intOrNil(appLine.GridPos)
		}
		if timingLine != nil {
			driver.PitCount = timingLine.NumberOfPitStops
		}
		if statsLine != nil {
			applyBestStats(&driver, statsLine)
		}

		drivers = append(drivers, driver)
	}

	return drivers
}

func sortedDriverNumbers(roster archive.RawDriverList) []string {
	numbers := make([]string, 0, len(roster))
	for numStr := range roster {
		numbers = append(numbers, numStr)
	}
	sortNumeric(numbers)
	return numbers
}

func finalPosition(raw archive.RawDriver, timing *archive.RawTimingDriver) *int {
	if timing != nil && timing.Position != "" {
		return intOrNil(timing.Position)
	}
	if raw.Line > 0 {
		line := raw.Line
		return &line
	}
	return nil
}

func driverStatus(timing *archive.RawTimingDriver) *string {
	if timing == nil {
		return nil
	}
	status := StatusFinished
	switch {
	case timing.Retired:
		status = StatusDNF
	case timing.Stopped:
		status = StatusStopped
	}
	return &status
}

func applyBestStats(driver *warehouse.SessionDriver, stats *archive.RawTimingStatsDriver) {
	driver.BestLapTime = strOrNil(stats.PersonalBestLapTime.Value)
	driver.BestLapTimeSeconds = TimeSeconds(stats.PersonalBestLapTime.Value)
	driver.BestLapNumber = stats.PersonalBestLapTime.Lap

	if len(stats.BestSectors) > 0 {
		driver.BestSector1 = strOrNil(stats.BestSectors[0].Value)
		driver.BestSector1Seconds = TimeSeconds(stats.BestSectors[0].Value)
	}
	if len(stats.BestSectors) > 1 {
		driver.BestSector2 = strOrNil(stats.BestSectors[1].Value)
		driver.BestSector2Seconds = TimeSeconds(stats.BestSectors[1].Value)
	}
	if len(stats.BestSectors) > 2 {
		driver.BestSector3 = strOrNil(stats.BestSectors[2].Value)
		driver.BestSector3Seconds = TimeSeconds(stats.BestSectors[2].Value)
	}

	driver.SpeedTrapBest = floatOrNil(stats.BestSpeeds.ST.Value)
	driver.Sector1SpeedBest = floatOrNil(stats.BestSpeeds.I1.Value)
	driver.Sector2SpeedBest = floatOrNil(stats.BestSpeeds.I2.Value)
	driver.FinishLineSpeedBest = floatOrNil(stats.BestSpeeds.FL.Value)
}
