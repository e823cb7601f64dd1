// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/bgeneto/costwatch/internal/ui/styles"
)

// ValueFormatter renders a bar value for display next to the bar.
type ValueFormatter func(float64) string

// FormatCost renders a value as a dollar amount.
func FormatCost(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatCount renders a value as a whole number.
func FormatCount(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// RenderBarChart creates a horizontal bar chart with one labeled bar per
// value, scaled to the largest value.
func RenderBarChart(values []float64, labels []string, width int, format ValueFormatter) string {
	if len(values) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	if format == nil {
		format = FormatCount
	}

	// Find max value for scaling
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Find max label length
	maxLabelLen := 0
	for _, l := range labels {
		if len(l) > maxLabelLen {
			maxLabelLen = len(l)
		}
	}

	barWidth := width - maxLabelLen - 16 // Leave room for label and value
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		paddedLabel := fmt.Sprintf("%*s", maxLabelLen, label)

		barLen := int((v / maxVal) * float64(barWidth))
		if barLen < 0 {
			barLen = 0
		}

		bar := strings.Repeat("█", barLen)
		line := paddedLabel + " │" + bar + " " + format(v)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// RenderDistribution plots a series of values as an ASCII curve. Used for
// the per-user cost distribution on the dashboard.
func RenderDistribution(data []float64, width, height int, caption string) string {
	if len(data) < 2 {
		return styles.HelpStyle.Render("Not enough data to plot")
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
