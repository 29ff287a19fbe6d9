package exporter

import (
	"fmt"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatGrowth formats an optional growth percentage; undefined growth
// (first period, zero denominator) exports as an empty cell.
func formatGrowth(g *float64) string {
	if g == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *g)
}
