// Package calendar turns an anchor date, a view mode and a list of events into
// day-bucketed grids and keeps the navigation state of a calendar widget.
package calendar

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
	ViewDay   View = "day"
)

func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewMonth, ViewWeek, ViewDay:
		return v, nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}

type TimeFormat string

const (
	TimeFormat12h TimeFormat = "12h"
	TimeFormat24h TimeFormat = "24h"
)

func ParseTimeFormat(s string) (TimeFormat, error) {
	switch f := TimeFormat(s); f {
	case TimeFormat12h, TimeFormat24h:
		return f, nil
	default:
		return "", fmt.Errorf("unknown time format %q", s)
	}
}

type DateFormat int

const (
	DateShort DateFormat = iota
	DateLong
)

// DayCell is one day of a month or week grid. Date is midnight in the engine
// location.
type DayCell struct {
	Date            time.Time
	InFocusedPeriod bool
	IsToday         bool
	Events          []*model.Event
}

// ViewData is what the current view renders: Days for month and week views,
// Hours for the day view.
type ViewData struct {
	View  View
	Days  []DayCell
	Hours []time.Time
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}
