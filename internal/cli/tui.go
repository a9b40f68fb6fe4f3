package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/apinav/pkg/core/toc"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// tocPicker - Interactive table of contents entry selection
// =============================================================================

// tocPicker is the bubbletea model behind `toc --interactive`. The cursor
// starts on the entry whose slug is initial.
type tocPicker struct {
	Leaves   []toc.Leaf
	Cursor   int
	Offset   int
	Height   int
	Selected *toc.Leaf
}

func newTOCPicker(items []toc.Item, initial string) tocPicker {
	m := tocPicker{Leaves: toc.Leaves(items), Height: 15}
	for i, l := range m.Leaves {
		if l.Slug == initial {
			m.Cursor = i
			break
		}
	}
	m.scroll()
	return m
}

func (m tocPicker) Init() tea.Cmd {
	return nil
}

func (m tocPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Leaves)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Leaves)-1, 0)
		case "enter":
			if len(m.Leaves) == 0 {
				return m, tea.Quit
			}
			leaf := m.Leaves[m.Cursor]
			m.Selected = &leaf
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *tocPicker) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m tocPicker) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Entry"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Leaves))
	for i := m.Offset; i < end; i++ {
		l := m.Leaves[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		meta := ""
		if l.Meta != "" {
			meta = strings.ToUpper(l.Meta) + " "
		}
		line := fmt.Sprintf("%s%-40s %s", cursor, l.Title, listDimStyle.Render(meta+l.Slug))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Leaves)), len(m.Leaves))))
	return b.String()
}
