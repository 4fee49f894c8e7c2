package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bisonvert/bv.libclient/trips"
)

// TripLister is the slice of the trips façade the browser needs.
type TripLister interface {
	List(ctx context.Context, page, count int, orderedBy string) ([]*trips.Trip, error)
	ListMine(ctx context.Context, page, count int, orderedBy string) ([]*trips.Trip, error)
}

type tripItem struct {
	trip *trips.Trip
}

func (i tripItem) Title() string {
	return fmt.Sprintf("[%d] %s", i.trip.ID, i.trip.String())
}

func (i tripItem) Description() string {
	owner := ""
	if i.trip.User != nil {
		owner = i.trip.User.Username
	}
	return fmt.Sprintf("%s %s  type=%s  user=%s", i.trip.Date, i.trip.Time, i.trip.Type(), owner)
}

func (i tripItem) FilterValue() string { return i.trip.String() }

func (i tripItem) detail(t Theme) string {
	tr := i.trip
	out := t.Title.Render(tr.String()) + "\n\n"
	out += fmt.Sprintf("Type:     %s\n", tr.Type())
	out += fmt.Sprintf("Date:     %s %s\n", tr.Date, tr.Time)
	if tr.Regular.Bool() {
		out += fmt.Sprintf("Days:     %s\n", tr.DowsLabel())
	}
	if tr.User != nil {
		out += fmt.Sprintf("Driver:   %s\n", tr.User.Username)
	}
	if tr.Comment != "" {
		out += "\n" + t.Subtitle.Render(tr.Comment) + "\n"
	}
	return out
}

type tripsLoadedMsg struct {
	Items []list.Item
	Err   error
}

func cmdLoadTrips(deps Deps, mine bool, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var (
			count  = trips.DefaultPageSize
			result []*trips.Trip
			err    error
		)
		if mine {
			result, err = deps.Trips.ListMine(ctx, page, count, "date")
		} else {
			result, err = deps.Trips.List(ctx, page, count, "date")
		}
		if err != nil {
			if deps.Logger != nil {
				deps.Logger.Error("tui.load_trips", "mine", mine, "page", page, "err", err)
			}
			return tripsLoadedMsg{Err: err}
		}

		items := make([]list.Item, 0, len(result))
		for _, tr := range result {
			if tr == nil {
				continue
			}
			items = append(items, tripItem{trip: tr})
		}
		return tripsLoadedMsg{Items: items}
	}
}
