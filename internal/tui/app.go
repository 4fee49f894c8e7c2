// Package tui is an interactive trip browser on top of the trips façade.
package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

// Deps carries everything the browser needs from the host command.
type Deps struct {
	Trips  TripLister
	Logger *slog.Logger
}

type model struct {
	theme Theme
	deps  Deps

	scr     screen
	trips   list.Model
	current *tripItem

	mine    bool
	page    int
	loading bool
	loadErr error
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "BisonVert trips"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme:   DefaultTheme(),
		deps:    deps,
		scr:     screenList,
		trips:   l,
		page:    1,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return cmdLoadTrips(m.deps, m.mine, m.page)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.trips.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tripsLoadedMsg:
		m.loading = false
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.trips.SetItems(msg.Items)
			title := "BisonVert trips"
			if m.mine {
				title = "My trips"
			}
			m.trips.Title = fmt.Sprintf("%s — page %d", title, m.page)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q", "esc":
			if m.scr == screenDetail {
				m.scr = screenList
				m.current = nil
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			if m.scr == screenList {
				if it, ok := m.trips.SelectedItem().(tripItem); ok {
					m.scr = screenDetail
					m.current = &it
				}
			}
			return m, nil

		case "m":
			if m.scr == screenList {
				m.mine = !m.mine
				m.page = 1
				m.loading = true
				return m, cmdLoadTrips(m.deps, m.mine, m.page)
			}

		case "right", "n":
			if m.scr == screenList && !m.loading {
				m.page++
				m.loading = true
				return m, cmdLoadTrips(m.deps, m.mine, m.page)
			}

		case "left", "p":
			if m.scr == screenList && !m.loading && m.page > 1 {
				m.page--
				m.loading = true
				return m, cmdLoadTrips(m.deps, m.mine, m.page)
			}
		}
	}

	if m.scr == screenList {
		var cmd tea.Cmd
		m.trips, cmd = m.trips.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	switch {
	case m.loading:
		return m.theme.Card.Render("Loading trips…")
	case m.loadErr != nil:
		return m.theme.Card.Render(
			m.theme.Title.Render("Cannot load trips") + "\n\n" +
				m.loadErr.Error() + "\n\n" +
				m.theme.Help.Render("q: quit"))
	case m.scr == screenDetail && m.current != nil:
		return m.theme.Card.Render(m.current.detail(m.theme)) + "\n" +
			m.theme.Help.Render("esc: back  q: back  ctrl+c: quit")
	default:
		return m.trips.View() + "\n" +
			m.theme.Help.Render("enter: detail  m: toggle mine  n/p: page  q: quit")
	}
}
