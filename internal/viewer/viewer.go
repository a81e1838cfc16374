// Package viewer is the interactive display for rendered figures.
//
// Key bindings:
//
//	Tab / ←→ - switch figure
//	1-9      - toggle a legend entry
//	p        - toggle colour
//	q        - quit
package viewer

import (
	"bytes"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fusionsketch/internal/fusion"
	"github.com/san-kum/fusionsketch/internal/render"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("86")).Underline(true)
	hiddenStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Model holds the figures and per-figure visibility of legend groups.
type Model struct {
	figures []fusion.Figure
	hidden  []map[string]bool
	active  int
	plain   bool
	footer  string
	width   int
}

func NewModel(figures []fusion.Figure, footer string) Model {
	hidden := make([]map[string]bool, len(figures))
	for i := range hidden {
		hidden[i] = map[string]bool{}
	}
	return Model{figures: figures, hidden: hidden, footer: footer, width: render.DefaultTermWidth}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			if len(m.figures) > 0 {
				m.active = (m.active + 1) % len(m.figures)
			}
		case "shift+tab", "left", "h":
			if len(m.figures) > 0 {
				m.active = (m.active - 1 + len(m.figures)) % len(m.figures)
			}
		case "p":
			m.plain = !m.plain
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				m.toggle(int(key[0] - '1'))
			}
		}
	case tea.WindowSizeMsg:
		// leave room for the canvas frame
		if w := msg.Width - 6; w > 20 {
			m.width = min(w, 120)
		}
	}
	return m, nil
}

// Groups lists the legend names of the active figure in draw order.
func (m Model) Groups() []string {
	if len(m.figures) == 0 {
		return nil
	}
	var names []string
	seen := map[string]bool{}
	for _, s := range m.figures[m.active].Series {
		if !seen[s.Name] {
			seen[s.Name] = true
			names = append(names, s.Name)
		}
	}
	return names
}

func (m *Model) toggle(i int) {
	groups := m.Groups()
	if i < 0 || i >= len(groups) {
		return
	}
	h := m.hidden[m.active]
	h[groups[i]] = !h[groups[i]]
}

// Visible returns the active figure without hidden series.
func (m Model) Visible() fusion.Figure {
	fig := m.figures[m.active]
	h := m.hidden[m.active]
	series := make([]fusion.Series, 0, len(fig.Series))
	for _, s := range fig.Series {
		if !h[s.Name] {
			series = append(series, s)
		}
	}
	fig.Series = series
	return fig
}

func (m Model) View() string {
	if len(m.figures) == 0 {
		return "nothing to show\n"
	}

	tabs := make([]string, len(m.figures))
	for i, f := range m.figures {
		if i == m.active {
			tabs[i] = activeTabStyle.Render(f.Title)
		} else {
			tabs[i] = tabStyle.Render(f.Title)
		}
	}

	var buf bytes.Buffer
	term := render.NewTerminal(&buf, m.plain)
	term.Width = m.width
	if err := term.Render(m.Visible()); err != nil {
		fmt.Fprintf(&buf, "render: %v\n", err)
	}

	groups := m.Groups()
	toggles := make([]string, len(groups))
	for i, g := range groups {
		label := fmt.Sprintf("[%d] %s", i+1, g)
		if m.hidden[m.active][g] {
			label = hiddenStyle.Render(label)
		}
		toggles[i] = label
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	b.WriteString(buf.String())
	b.WriteString(strings.Join(toggles, "  "))
	if m.footer != "" {
		b.WriteString("\n\n" + m.footer)
	}
	b.WriteString(helpStyle.Render("\ntab: next figure • 1-9: toggle series • p: plain • q: quit"))
	return b.String()
}

// Run starts the viewer on the terminal and blocks until it quits.
func Run(figures []fusion.Figure, footer string) error {
	p := tea.NewProgram(NewModel(figures, footer))
	_, err := p.Run()
	return err
}
