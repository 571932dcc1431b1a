package parse

import (
	"testing"

	"pitwall/internal/archive"
)

func TestWeather(t *testing.T) {
	raw := archive.RawWeatherSeries{
		Series: []archive.RawWeatherEntry{
			{
				Timestamp: "2024-03-02T15:00:00Z",
				Weather: archive.RawWeather{
					AirTemp:       "24.3",
					TrackTemp:     "35.1",
					Humidity:      "41.0",
					Pressure:      "1012.4",
					Rainfall:      "0",
					WindDirection: "190",
					WindSpeed:     "1.8",
				},
			},
			{
				Timestamp: "2024-03-02T15:01:00Z",
				Weather:   archive.RawWeather{Rainfall: "1"},
			},
		},
	}

	samples := Weather(9472, raw)
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}

	dry := samples[0]
	if dry.AirTemp == nil || *dry.AirTemp != 24.3 {
		t.Fatalf("AirTemp = %v, want 24.3", dry.AirTemp)
	}
	if dry.WindDirection == nil || *dry.WindDirection != 190 {
		t.Fatalf("WindDirection = %v, want 190", dry.WindDirection)
	}
	if dry.Rainfall == nil || *dry.Rainfall {
		t.Fatalf("Rainfall = %v, want false", dry.Rainfall)
	}

	wet := samples[1]
	if wet.Rainfall == nil || !*wet.Rainfall {
		t.Fatalf("Rainfall = %v, want true", wet.Rainfall)
	}
	// Empty readings become null, not zero.
	if wet.AirTemp != nil {
		t.Fatalf("AirTemp = %v, want nil", *wet.AirTemp)
	}
}
