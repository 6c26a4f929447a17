package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// Terminal plot size
const (
	PlotWidth  = 60
	PlotHeight = 10
)

// Curve plots a diagram as an ASCII line graph. The samples are resampled to
// the plot width.
func Curve(title, unit string, pts []engine.Point) string {
	if len(pts) == 0 {
		return ""
	}
	values := make([]float64, len(pts))
	for i, p := range pts {
		values[i] = p.Value
	}
	caption := fmt.Sprintf("%s (%s), x = %.2f .. %.2f m", title, unit, pts[0].X, pts[len(pts)-1].X)
	return asciigraph.Plot(values,
		asciigraph.Width(PlotWidth),
		asciigraph.Height(PlotHeight),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}

// Curves plots shear, moment and deflection one below the other
func Curves(d *engine.Diagrams) string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	for _, c := range []struct {
		title, unit string
		pts         []engine.Point
	}{
		{"Shear", "kN", d.Shear},
		{"Moment", "kN-m", d.Moment},
		{"Deflection", "mm", d.Deflection},
	} {
		sb.WriteString(Curve(c.title, c.unit, c.pts))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// DrawSection creates an ASCII drawing of the section with its bars.
// blockDepth (cm) shades the compression stress block from the top face;
// zero draws no block.
func DrawSection(l section.Layout, blockDepth float64) string {
	widthChars := 30
	heightChars := int(math.Round(float64(widthChars) * l.Height / l.Width / 2))
	heightChars = min(max(heightChars, 6), 24)

	grid := make([][]rune, heightChars)
	blockRows := int(math.Round(blockDepth / l.Height * float64(heightChars)))
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", widthChars))
		if i < blockRows {
			grid[i] = []rune(strings.Repeat("░", widthChars))
		}
	}
	for _, b := range l.Bars() {
		col := int(b.Center.X / l.Width * float64(widthChars))
		row := int((l.Height - b.Center.Y) / l.Height * float64(heightChars))
		col = min(max(col, 0), widthChars-1)
		row = min(max(row, 0), heightChars-1)
		grid[row][col] = '●'
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %.0f x %.0f cm\n", l.Width, l.Height))
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", widthChars)))
	for _, row := range grid {
		sb.WriteString(fmt.Sprintf("  │%s│\n", string(row)))
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", widthChars)))
	if d := l.Describe(); d != "" {
		sb.WriteString("  " + d + "\n")
	}
	if blockDepth > 0 {
		sb.WriteString(fmt.Sprintf("  ░░░ = stress block, depth %.1f cm\n", blockDepth))
	}
	return sb.String()
}

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)

// SummaryBox renders a result summary with a verdict heading
func SummaryBox(title string, ok bool, lines []string) string {
	verdict := okStyle.Render("✓ " + title)
	if !ok {
		verdict = failStyle.Render("✗ " + title)
	}
	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{verdict, ""}, lines...)...)
	return boxStyle.Render(body)
}
