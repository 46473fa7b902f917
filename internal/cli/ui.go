package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/robdd/pkg/bdd"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success, true branch
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors, false branch
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleFalse = lipgloss.NewStyle().Foreground(colorRed)
	styleTrue  = lipgloss.NewStyle().Foreground(colorGreen)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, StyleWarning.Render(iconWarning)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats prints diagram sizes on one line.
func printStats(w io.Writer, d *bdd.Diagram, evaluations int, cached bool) {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	parts := []string{
		fmt.Sprintf("%d nodes", d.NodeCount()),
		fmt.Sprintf("%d internal", d.InternalCount()),
		fmt.Sprintf("%s satisfying", d.SatCount()),
	}
	if evaluations > 0 {
		parts = append(parts, fmt.Sprintf("%d oracle calls", evaluations))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Fprintln(w, line+StyleDim.Render(" · ")+statusStyle.Render(status))
}

// nodeTable renders the reachable nodes of d, root first.
func nodeTable(d *bdd.Diagram) string {
	var rows [][]string
	for _, n := range d.Nodes() {
		if n.IsTerminal() {
			rows = append(rows, []string{strconv.Itoa(int(n.Handle)), n.Var, "", ""})
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(int(n.Handle)), n.Var,
			strconv.Itoa(int(n.Low)), strconv.Itoa(int(n.High)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Node", "Var", "Low", "High").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 2:
				return cell.Foreground(colorRed)
			case col == 3:
				return cell.Foreground(colorGreen)
			case row == 0:
				return cell.Bold(true)
			}
			return cell
		})
	return t.Render()
}

// branchLabel styles a terminal or variable name for the explorer.
func branchLabel(d *bdd.Diagram, h bdd.Handle) string {
	switch h {
	case bdd.False:
		return styleFalse.Render(bdd.FalseLabel)
	case bdd.True:
		return styleTrue.Render(bdd.TrueLabel)
	}
	return StyleValue.Render(d.Store().Label(h))
}
