package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Common parameter formatters and parsers

// DecibelFormatter formats dB values, floored to two decimals
func DecibelFormatter(db float64) string {
	floored := math.Floor(db*100) / 100
	return strconv.FormatFloat(floored, 'f', -1, 64) + " db"
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	lower := strings.ToLower(str)
	if strings.Contains(str, "∞") || strings.Contains(lower, "inf") {
		return math.Inf(-1), nil
	}
	str = strings.TrimSuffix(lower, "db")
	return parseFloat(str)
}

// PercentFormatter formats percentage values, floored to whole percent
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f %%", math.Floor(value))
}

// PercentParser parses percentage strings
func PercentParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	return parseFloat(str)
}

func parseFloat(str string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", str, err)
	}
	return v, nil
}
