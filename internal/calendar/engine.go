package calendar

import (
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

type Options struct {
	View       View
	Date       time.Time
	TimeFormat TimeFormat
	Location   *time.Location
	Locale     *Locale
	Clock      Clock
}

// Engine holds the view state of one calendar. It is not safe for concurrent use.
type Engine struct {
	view       View
	date       time.Time
	timeFormat TimeFormat

	loc    *time.Location
	locale *Locale
	clock  Clock
}

func New(opts Options) *Engine {
	e := &Engine{
		view:       opts.View,
		date:       opts.Date,
		timeFormat: opts.TimeFormat,
		loc:        opts.Location,
		locale:     opts.Locale,
		clock:      opts.Clock,
	}

	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	if e.locale == nil {
		e.locale = LocaleTR
	}
	if e.view == "" {
		e.view = ViewMonth
	}
	if e.timeFormat == "" {
		e.timeFormat = TimeFormat24h
	}
	if e.date.IsZero() {
		e.date = e.clock.Now()
	}

	return e
}

func (e *Engine) View() View {
	return e.view
}

func (e *Engine) CurrentDate() time.Time {
	return e.date
}

func (e *Engine) TimeFormat() TimeFormat {
	return e.timeFormat
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

func (e *Engine) Next() {
	e.step(1)
}

func (e *Engine) Prev() {
	e.step(-1)
}

func (e *Engine) step(dir int) {
	switch e.view {
	case ViewWeek:
		e.date = e.date.AddDate(0, 0, dir*weekLength)
	case ViewDay:
		e.date = e.date.AddDate(0, 0, dir)
	default:
		// Jan 31 + 1 month normalizes into March, same as any date arithmetic.
		e.date = e.date.AddDate(0, dir, 0)
	}
}

func (e *Engine) Today() {
	e.date = e.clock.Now()
}

func (e *Engine) ChangeView(v View) {
	e.view = v
}

func (e *Engine) ChangeTimeFormat(f TimeFormat) {
	e.timeFormat = f
}

func (e *Engine) SetCurrentDate(t time.Time) {
	e.date = t
}

// ViewData computes the grid of the current view. Unknown views render as month.
func (e *Engine) ViewData(events []*model.Event) ViewData {
	switch e.view {
	case ViewWeek:
		return ViewData{View: ViewWeek, Days: e.WeekGrid(e.date, events)}
	case ViewDay:
		return ViewData{View: ViewDay, Hours: e.DayHours(e.date)}
	default:
		return ViewData{View: ViewMonth, Days: e.MonthGrid(e.date, events)}
	}
}

// VisibleRange is the half-open interval of days the current view shows.
func (e *Engine) VisibleRange() (time.Time, time.Time) {
	switch e.view {
	case ViewWeek:
		days := e.WeekGrid(e.date, nil)
		return days[0].Date, days[len(days)-1].Date.AddDate(0, 0, 1)
	case ViewDay:
		from := e.dateOnly(e.date)
		return from, from.AddDate(0, 0, 1)
	default:
		days := e.MonthGrid(e.date, nil)
		return days[0].Date, days[len(days)-1].Date.AddDate(0, 0, 1)
	}
}
