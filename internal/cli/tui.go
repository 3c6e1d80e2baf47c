package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// FragmentListModel is the bubbletea model for interactive fragment selection.
type FragmentListModel struct {
	Fragments []*edition.TextFragment
	Cursor    int
	Selected  *edition.TextFragment
	Height    int
	Offset    int
}

// NewFragmentListModel creates a new fragment list model.
func NewFragmentListModel(fragments []*edition.TextFragment) FragmentListModel {
	return FragmentListModel{
		Fragments: fragments,
		Cursor:    0,
		Height:    15,
		Offset:    0,
	}
}

func (m FragmentListModel) Init() tea.Cmd {
	return nil
}

func (m FragmentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Fragments)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Fragments[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FragmentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Fragment"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Fragments) {
		end = len(m.Fragments)
	}

	for i := m.Offset; i < end; i++ {
		f := m.Fragments[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(f.Name()))
		b.WriteString(listDimStyle.Render(lineCountLabel(len(f.Lines()))))
		b.WriteString("\n")
	}

	if len(m.Fragments) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("…more fragments above/below"))
		b.WriteString("\n")
	}

	return b.String()
}

func lineCountLabel(n int) string {
	if n == 1 {
		return "  (1 line)"
	}
	return fmt.Sprintf("  (%d lines)", n)
}
