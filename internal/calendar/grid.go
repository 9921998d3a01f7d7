package calendar

import (
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

const (
	monthGridSize = 42
	weekLength    = 7
	hoursInDay    = 24
)

// MonthGrid returns six Monday-first weeks covering the month of date.
func (e *Engine) MonthGrid(date time.Time, events []*model.Event) []DayCell {
	date = date.In(e.loc)
	year, month := date.Year(), date.Month()

	first := time.Date(year, month, 1, 0, 0, 0, 0, e.loc)
	lead := int(first.Weekday())
	if lead == 0 {
		lead = 6
	} else {
		lead--
	}

	today := e.dateOnly(e.clock.Now())
	cells := make([]DayCell, monthGridSize)
	for i := range cells {
		day := time.Date(year, month, 1-lead+i, 0, 0, 0, 0, e.loc)
		cells[i] = e.cell(day, day.Month() == month, today, events)
	}

	return cells
}

// WeekGrid returns the Sunday-first week containing date.
func (e *Engine) WeekGrid(date time.Time, events []*model.Event) []DayCell {
	date = date.In(e.loc)
	startDay := date.Day() - int(date.Weekday())

	today := e.dateOnly(e.clock.Now())
	cells := make([]DayCell, weekLength)
	for i := range cells {
		day := time.Date(date.Year(), date.Month(), startDay+i, 0, 0, 0, 0, e.loc)
		cells[i] = e.cell(day, day.Month() == date.Month(), today, events)
	}

	return cells
}

// DayHours returns date with the hour set to 0..23, other clock fields kept.
func (e *Engine) DayHours(date time.Time) []time.Time {
	date = date.In(e.loc)

	hours := make([]time.Time, hoursInDay)
	for h := range hours {
		hours[h] = time.Date(
			date.Year(), date.Month(), date.Day(),
			h, date.Minute(), date.Second(), date.Nanosecond(),
			e.loc,
		)
	}

	return hours
}

// EventsForDay keeps the events whose date-only span contains day, in input order.
func (e *Engine) EventsForDay(day time.Time, events []*model.Event) []*model.Event {
	target := e.dateOnly(day)
	if target.IsZero() {
		return []*model.Event{}
	}

	res := make([]*model.Event, 0)
	for _, ev := range events {
		if ev == nil {
			continue
		}

		start := e.dateOnly(ev.StartDate)
		end := e.dateOnly(ev.EndDate)
		if start.IsZero() || end.IsZero() {
			continue
		}

		if !target.Before(start) && !target.After(end) {
			res = append(res, ev)
		}
	}

	return res
}

// IsToday compares date with the clock, ignoring the time of day.
func (e *Engine) IsToday(date time.Time) bool {
	d := e.dateOnly(date)
	return !d.IsZero() && d.Equal(e.dateOnly(e.clock.Now()))
}

func (e *Engine) cell(day time.Time, focused bool, today time.Time, events []*model.Event) DayCell {
	return DayCell{
		Date:            day,
		InFocusedPeriod: focused,
		IsToday:         !today.IsZero() && day.Equal(today),
		Events:          e.EventsForDay(day, events),
	}
}

// dateOnly truncates t to midnight in the engine location. The zero time stays
// zero so it never matches anything.
func (e *Engine) dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	t = t.In(e.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.loc)
}
