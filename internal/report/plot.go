package report

import (
	"fmt"
	"strings"

	"textbetti/internal/domain"
)

// Plot draws values against the point diameters as an ASCII chart of the
// given height, one column per point.
func Plot(title string, points []domain.SweepPoint, value func(domain.SweepPoint) int, height int) string {
	if height < 2 {
		height = 2
	}
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if len(points) == 0 {
		b.WriteString("(no data)\n")
		return b.String()
	}
	top := 0
	for _, p := range points {
		top = max(top, value(p))
	}
	labelWidth := len(fmt.Sprint(top))
	const colWidth = 6
	for row := height - 1; row >= 0; row-- {
		level := scaleLevel(row, height, top)
		fmt.Fprintf(&b, "%*d |", labelWidth, level)
		for _, p := range points {
			cell := " "
			if rowOf(value(p), height, top) == row {
				cell = "*"
			}
			b.WriteString(strings.Repeat(" ", colWidth-1) + cell)
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", labelWidth) + " +" + strings.Repeat("-", colWidth*len(points)) + "\n")
	b.WriteString(strings.Repeat(" ", labelWidth+2))
	for _, p := range points {
		fmt.Fprintf(&b, "%*s", colWidth, formatDiameter(p.Diameter))
	}
	b.WriteString("\n")
	return b.String()
}

// B0 and B1 select a Betti number for Plot.
func B0(p domain.SweepPoint) int { return p.B0 }
func B1(p domain.SweepPoint) int { return p.B1 }

func rowOf(v, height, top int) int {
	if top == 0 {
		return 0
	}
	return (v*(height-1) + top/2) / top
}

func scaleLevel(row, height, top int) int {
	return (row*top + (height-1)/2) / (height - 1)
}
