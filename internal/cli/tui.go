package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/robdd/pkg/bdd"
)

var (
	exploreCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	exploreDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// step is one branch taken in the explorer.
type step struct {
	from  bdd.Handle
	value bool
}

// ExploreModel is the bubbletea model of "robdd explore". It starts at the
// root and follows the low (0) or high (1) branch on each key press until a
// terminal is reached.
type ExploreModel struct {
	Diagram *bdd.Diagram
	Title   string
	Current bdd.Handle
	Path    []step
}

// NewExploreModel starts at the root of d.
func NewExploreModel(d *bdd.Diagram, title string) ExploreModel {
	return ExploreModel{Diagram: d, Title: title, Current: d.Root()}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "0", "left", "h":
		m = m.follow(false)
	case "1", "right", "l":
		m = m.follow(true)
	case "backspace", "u":
		if n := len(m.Path); n > 0 {
			m.Current = m.Path[n-1].from
			m.Path = m.Path[:n-1]
		}
	case "r":
		m.Current = m.Diagram.Root()
		m.Path = nil
	}
	return m, nil
}

// follow takes one branch. It is a no-op on terminals.
func (m ExploreModel) follow(value bool) ExploreModel {
	low, high, ok := m.Diagram.Store().Children(m.Current)
	if !ok {
		return m
	}
	m.Path = append(m.Path[:len(m.Path):len(m.Path)], step{from: m.Current, value: value})
	if value {
		m.Current = high
	} else {
		m.Current = low
	}
	return m
}

// Done reports whether a terminal has been reached.
func (m ExploreModel) Done() bool {
	return m.Diagram.Store().IsTerminal(m.Current)
}

// Assignment renders the path taken so far, e.g. "a=1 c=0".
func (m ExploreModel) Assignment() string {
	parts := make([]string, len(m.Path))
	for i, s := range m.Path {
		v := bdd.FalseLabel
		if s.value {
			v = bdd.TrueLabel
		}
		parts[i] = m.Diagram.Store().Label(s.from) + "=" + v
	}
	return strings.Join(parts, " ")
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.Title))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render("0/← low  1/→ high  u undo  r restart  q quit"))
	b.WriteString("\n\n")

	path := m.Assignment()
	if path == "" {
		path = "(root)"
	}
	b.WriteString(exploreDimStyle.Render("path  ") + path + "\n")

	if m.Done() {
		b.WriteString(exploreDimStyle.Render("value ") + branchLabel(m.Diagram, m.Current) + "\n")
		b.WriteString("\n")
		b.WriteString(exploreDimStyle.Render("variables skipped on this path do not affect the result"))
		b.WriteString("\n")
		return b.String()
	}

	low, high, _ := m.Diagram.Store().Children(m.Current)
	b.WriteString(exploreDimStyle.Render("node  "))
	b.WriteString(exploreCurrentStyle.Render(fmt.Sprintf("%s (%d)", m.Diagram.Store().Label(m.Current), m.Current)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", styleFalse.Render("0 →"), branchLabel(m.Diagram, low)))
	b.WriteString(fmt.Sprintf("  %s %s\n", styleTrue.Render("1 →"), branchLabel(m.Diagram, high)))
	return b.String()
}
