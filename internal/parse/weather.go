package parse

import (
	"pitwall/internal/archive"
	"pitwall/internal/warehouse"
)

// Weather normalizes the environmental sample series. Readings arrive as
// strings; unparsable values become null rather than failing the sample.
func Weather(sessionKey int, raw archive.RawWeatherSeries) []warehouse.WeatherSample {
	samples := make([]warehouse.WeatherSample, 0, len(raw.Series))
	for _, entry := range raw.Series {
		w := entry.Weather
		samples = append(samples, warehouse.WeatherSample{
			SessionKey:    sessionKey,
			Utc:           strOrNil(entry.Timestamp),
			AirTemp:       floatOrNil(w.AirTemp),
			TrackTemp:     floatOrNil(w.TrackTemp),
			Humidity:      floatOrNil(w.Humidity),
			Pressure:      floatOrNil(w.Pressure),
			Rainfall:      rainfallFlag(w.Rainfall),
			WindDirection: intOrNil(w.WindDirection),
			WindSpeed:     floatOrNil(w.WindSpeed),
		})
	}
	return samples
}

func rainfallFlag(s string) *bool {
	if s == "" {
		return nil
	}
	return boolPtr(s == "1")
}
