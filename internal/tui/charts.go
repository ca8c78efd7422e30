package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/qualityrs/internal/aggregate"
)

const barGap = 1

// timeChart is the clickable vertical bar chart of the current drill level.
type timeChart struct {
	table    aggregate.Table
	cursor   int
	focused  string
	barWidth int
}

// layout returns the bar width that fits n bars into width columns.
func barWidthFor(n, width int) int {
	if n <= 0 {
		return 1
	}
	w := (width - (n-1)*barGap) / n
	if w < 1 {
		w = 1
	}
	if w > 9 {
		w = 9
	}
	return w
}

// render draws the bars with ntcharts and a label row underneath. The
// returned string is height+2 lines tall.
func (c *timeChart) render(width, height int) string {
	n := len(c.table.Rows)
	c.barWidth = barWidthFor(n, width)

	data := make([]barchart.BarData, 0, n)
	for i, r := range c.table.Rows {
		style := barStyle
		switch {
		case i == c.cursor:
			style = cursorBarStyle
		case c.focused != "" && r.Label == c.focused:
			style = focusBarStyle
		}
		data = append(data, barchart.BarData{
			Label:  r.Label,
			Values: []barchart.BarValue{{Name: c.table.Dimension, Value: float64(r.Count), Style: style}},
		})
	}

	chartW := n*c.barWidth + (n-1)*barGap
	if chartW < 1 {
		chartW = 1
	}
	bc := barchart.New(chartW, height,
		barchart.WithNoAxis(),
		barchart.WithNoAutoBarWidth(),
		barchart.WithBarWidth(c.barWidth),
		barchart.WithBarGap(barGap),
		barchart.WithDataSet(data),
	)
	bc.Draw()

	var counts, labels strings.Builder
	for i, r := range c.table.Rows {
		if i > 0 {
			counts.WriteString(strings.Repeat(" ", barGap))
			labels.WriteString(strings.Repeat(" ", barGap))
		}
		counts.WriteString(fit(fmt.Sprint(r.Count), c.barWidth))
		label := fit(r.Label, c.barWidth)
		if i == c.cursor {
			label = cursorLabelStyle.Render(label)
		}
		labels.WriteString(label)
	}
	return lipgloss.JoinVertical(lipgloss.Left, counts.String(), bc.View(), labels.String())
}

// barAt maps a column offset inside the chart to a bar index.
func (c *timeChart) barAt(x int) (int, bool) {
	if x < 0 || c.barWidth <= 0 {
		return 0, false
	}
	slot := c.barWidth + barGap
	i := x / slot
	if i >= len(c.table.Rows) || x%slot >= c.barWidth {
		return 0, false
	}
	return i, true
}

// fit centres s in w columns, cutting it when longer.
func fit(s string, w int) string {
	n := ansi.StringWidth(s)
	if n > w {
		return ansi.Truncate(s, w, "")
	}
	pad := w - n
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

// hbars renders t as horizontal text bars, one row per category.
func hbars(t aggregate.Table, width, maxRows int) string {
	lines := []string{sectionStyle.Render(t.Title)}
	if len(t.Rows) == 0 {
		return lines[0] + "\n" + mutedStyle.Render("(sem dados)")
	}
	labelW := 0
	for _, r := range t.Rows {
		if n := ansi.StringWidth(r.Label); n > labelW {
			labelW = n
		}
	}
	if labelW > 22 {
		labelW = 22
	}
	barW := width - labelW - 8
	if barW < 4 {
		barW = 4
	}
	peak := t.Max()
	for i, r := range t.Rows {
		if i >= maxRows {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("… +%d", len(t.Rows)-maxRows)))
			break
		}
		filled := 0
		if peak > 0 {
			filled = r.Count * barW / peak
		}
		if r.Count > 0 && filled == 0 {
			filled = 1
		}
		lines = append(lines, fmt.Sprintf("%s %s%s %d",
			padRight(truncate(r.Label, labelW), labelW),
			hbarFilled.Render(strings.Repeat("█", filled)),
			hbarEmpty.Render(strings.Repeat("░", barW-filled)),
			r.Count,
		))
	}
	return strings.Join(lines, "\n")
}
