package exporter

import (
	"fmt"
	"strconv"
	"time"
)

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatFloat formats a float64 without trailing zeros
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatElapsed renders a stage duration as seconds
func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}
