package ui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"folio/internal/present/format"
	"folio/internal/util"
	"folio/pkg/api"
)

// RenderProjectsTable opens an interactive Bubble Tea table to browse
// the filtered project list. Enter renders the selected project to w
// after the table closes; q and esc just close it.
func RenderProjectsTable(_ context.Context, w io.Writer, projects []api.Project, prettyStyle string, prettyWidth int) error {
	m := newModel(projects)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.chosen != nil {
		return format.WritePrettyProject(w, *fm.chosen, prettyStyle, prettyWidth)
	}
	return nil
}

type model struct {
	table    table.Model
	projects []api.Project
	chosen   *api.Project
}

func newModel(projects []api.Project) model {
	cols := []table.Column{
		{Title: "ID", Width: 16},
		{Title: "Title", Width: 40},
		{Title: "Date", Width: 10},
		{Title: "Tags", Width: 20},
		{Title: "Flags", Width: 5},
	}

	rows := make([]table.Row, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, table.Row{
			truncate(p.ID, 16),
			truncate(p.Title, 40),
			util.DisplayDate(p.Date),
			truncate(joinTags(p.Tags), 20),
			format.Flags(p),
		})
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(12, max(3, len(rows)+3))),
	)

	// Basic styling
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return model{table: t, projects: projects}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if c := m.table.Cursor(); c >= 0 && c < len(m.projects) {
				m.chosen = &m.projects[c]
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.table.Height() < 3 {
		return "(no projects)\n"
	}
	return m.table.View() + "\n↑/↓ to navigate • enter to open • q to exit\n"
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	s := tags[0]
	for i := 1; i < len(tags); i++ {
		s += ", " + tags[i]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
