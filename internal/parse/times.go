package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	clockPattern   = regexp.MustCompile(`^(\d+):(\d+\.\d+)$`)
	secondsPattern = regexp.MustCompile(`^(\d+\.\d+)$`)
)

// TimeSeconds converts a clock string to seconds: "1:22.167" becomes 82.167
// and "28.766" becomes 28.766. Empty or unparsable input returns nil.
func TimeSeconds(value string) *float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	if m := clockPattern.FindStringSubmatch(trimmed); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		seconds, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil
		}
		total := float64(minutes)*60 + seconds
		return &total
	}

	if m := secondsPattern.FindStringSubmatch(trimmed); m != nil {
		seconds, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil
		}
		return &seconds
	}

	return nil
}

// floatOrNil parses a numeric string, returning nil for empty or invalid
// input.
func floatOrNil(value string) *float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &n
}

// intOrNil parses an integer string, returning nil for empty or invalid
// input.
func intOrNil(value string) *int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &n
}

// strOrNil returns nil for empty strings so optional text columns stay NULL.
func strOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// sortNumeric orders racing-number keys numerically so output row order is
// deterministic regardless of map iteration order.
func sortNumeric(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
}
