package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/icepanel"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// ErrPickerAborted is returned when the user quits the picker without
// selecting anything.
var ErrPickerAborted = errors.New("selection aborted")

// pickerItem is one selectable row.
type pickerItem struct {
	Name   string
	Detail string
}

func diagramItems(headers []icepanel.DiagramHeader) []pickerItem {
	items := make([]pickerItem, 0, len(headers))
	for _, h := range headers {
		items = append(items, pickerItem{Name: h.Name, Detail: h.Type})
	}
	return items
}

func flowItems(headers []icepanel.FlowHeader) []pickerItem {
	items := make([]pickerItem, 0, len(headers))
	for _, h := range headers {
		items = append(items, pickerItem{Name: h.Name})
	}
	return items
}

// pickName runs the interactive picker and returns the chosen item's name.
func pickName(ctx context.Context, title string, items []pickerItem) (string, error) {
	if len(items) == 0 {
		return "", errors.New("nothing to select from")
	}

	model := newPickerModel(title, items)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok || m.Selected == nil {
		return "", ErrPickerAborted
	}
	return m.Selected.Name, nil
}

// pickerModel is the bubbletea model for selecting one item from a list.
type pickerModel struct {
	Title    string
	Items    []pickerItem
	Cursor   int
	Selected *pickerItem
	Height   int
	Offset   int
}

func newPickerModel(title string, items []pickerItem) pickerModel {
	return pickerModel{
		Title:  title,
		Items:  items,
		Height: 15,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			item := m.Items[m.Cursor]
			m.Selected = &item
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

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	for i := m.Offset; i < end; i++ {
		item := m.Items[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(item.Name))
		if item.Detail != "" {
			b.WriteString(" ")
			b.WriteString(listDimStyle.Render(item.Detail))
		}
		b.WriteString("\n")
	}

	if len(m.Items) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d", m.Cursor+1, len(m.Items))))
		b.WriteString("\n")
	}

	return b.String()
}
