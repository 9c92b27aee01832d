package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/plotgram/plotgram/pkg/plot"
)

// List styles
var (
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PanelListModel - Interactive panel browser
// =============================================================================

// PanelListModel is the bubbletea model for browsing the panels of a
// built plot.
type PanelListModel struct {
	Built  *plot.Built
	Cursor int
	Height int
	Offset int
}

// NewPanelListModel creates a new panel list model.
func NewPanelListModel(b *plot.Built) PanelListModel {
	return PanelListModel{
		Built:  b,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m PanelListModel) Init() tea.Cmd {
	return nil
}

func (m PanelListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Built.Panels)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PanelListModel) View() string {
	var b strings.Builder

	title := "Panels"
	if m.Built.Title != "" {
		title = m.Built.Title
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Built.Panels) {
		end = len(m.Built.Panels)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Built.Panels[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", p.Panel.Panel),
			fmt.Sprintf("%d,%d", p.Panel.Row, p.Panel.Col),
			panelVars(p.Panel.Vars),
			formatRange(p.Ranges.X),
			formatRange(p.Ranges.Y),
			fmt.Sprintf("%d", panelRows(m.Built, p.Panel.Panel)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Panel", "Pos", "Facets", "X Range", "Y Range", "Rows").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Built.Panels))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// panelVars formats a panel's faceting values as "var=value" pairs in
// sorted order.
func panelVars(vars map[string]string) string {
	if len(vars) == 0 {
		return "—"
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + vars[k]
	}
	return strings.Join(parts, ", ")
}

// formatRange formats a data range with trimmed precision.
func formatRange(r [2]float64) string {
	return fmt.Sprintf("[%.4g, %.4g]", r[0], r[1])
}

// panelRows counts the data rows drawn in one panel across all layers.
func panelRows(b *plot.Built, panel int) int {
	n := 0
	for i := range b.Layers {
		n += b.PanelData(i, panel).NRows()
	}
	return n
}
