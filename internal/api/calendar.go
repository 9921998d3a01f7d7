package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/calendar"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

type calendarEventResp struct {
	eventResp
	TimeLabel string `json:"time_label"`
}

type calendarDayResp struct {
	Date            string               `json:"date"`
	Label           string               `json:"label"`
	InFocusedPeriod bool                 `json:"in_focused_period"`
	IsToday         bool                 `json:"is_today"`
	Events          []*calendarEventResp `json:"events"`
}

type calendarHourResp struct {
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
}

type calendarResp struct {
	View        calendar.View        `json:"view"`
	CurrentDate string               `json:"current_date"`
	TimeFormat  calendar.TimeFormat  `json:"time_format"`
	Title       string               `json:"title"`
	From        string               `json:"from"`
	To          string               `json:"to"`
	Days        []*calendarDayResp   `json:"days,omitempty"`
	Hours       []*calendarHourResp  `json:"hours,omitempty"`
	Events      []*calendarEventResp `json:"events,omitempty"`
}

// newEngine builds an engine from query params over the configured defaults.
func (a *Api) newEngine(r *http.Request) (*calendar.Engine, error) {
	query := r.URL.Query()

	opts := calendar.Options{
		View:       calendar.ViewMonth,
		TimeFormat: a.calendar.TimeFormat,
		Location:   a.calendar.Location,
		Locale:     a.calendar.Locale,
		Clock:      a.calendar.Clock,
	}

	if v := query.Get("view"); v != "" {
		view, err := calendar.ParseView(v)
		if err != nil {
			return nil, err
		}
		opts.View = view
	}

	if v := query.Get("time_format"); v != "" {
		f, err := calendar.ParseTimeFormat(v)
		if err != nil {
			return nil, err
		}
		opts.TimeFormat = f
	}

	if v := query.Get("locale"); v != "" {
		locale, err := calendar.LocaleByName(v)
		if err != nil {
			return nil, err
		}
		opts.Locale = locale
	}

	if v := query.Get("date"); v != "" {
		loc := opts.Location
		if loc == nil {
			loc = time.Local
		}
		date, err := time.ParseInLocation(dateFormat, v, loc)
		if err != nil {
			return nil, fmt.Errorf("date must be in YYYY-MM-DD format")
		}
		opts.Date = date
	}

	e := calendar.New(opts)

	switch query.Get("nav") {
	case "":
	case "next":
		e.Next()
	case "prev":
		e.Prev()
	case "today":
		e.Today()
	default:
		return nil, fmt.Errorf("nav must be one of next, prev, today")
	}

	return e, nil
}

func (a *Api) getCalendarHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	e, err := a.newEngine(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	filter, err := eventsFilter(user, r.URL.Query()["company_id"])
	if err != nil {
		a.forbiddenResponse(w, r, err.Error())
		return
	}
	filter.From, filter.To = e.VisibleRange()
	filter.ActiveOnly = r.URL.Query().Get("active_only") == "true"

	events, err := a.eventsService.GetEvents(r.Context(), filter)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get events: %w", err))
		return
	}

	data := e.ViewData(events)
	resp := &calendarResp{
		View:        data.View,
		CurrentDate: e.CurrentDate().In(e.Location()).Format(dateFormat),
		TimeFormat:  e.TimeFormat(),
		Title:       e.Title(),
		From:        filter.From.Format(dateFormat),
		To:          filter.To.Format(dateFormat),
	}

	for _, d := range data.Days {
		resp.Days = append(resp.Days, &calendarDayResp{
			Date:            d.Date.Format(dateFormat),
			Label:           e.FormatDate(d.Date, calendar.DateShort),
			InFocusedPeriod: d.InFocusedPeriod,
			IsToday:         d.IsToday,
			Events:          mapCalendarEvents(e, d.Events),
		})
	}

	if data.View == calendar.ViewDay {
		for _, h := range data.Hours {
			resp.Hours = append(resp.Hours, &calendarHourResp{
				Time:  h,
				Label: e.FormatTime(h),
			})
		}
		resp.Events = mapCalendarEvents(e, e.EventsForDay(e.CurrentDate(), events))
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func mapCalendarEvents(e *calendar.Engine, events []*model.Event) []*calendarEventResp {
	res := make([]*calendarEventResp, len(events))
	for i, event := range events {
		resp, _ := mapToEventResp(event)
		res[i] = &calendarEventResp{
			eventResp: *resp,
			TimeLabel: e.FormatTime(event.StartDate) + " - " + e.FormatTime(event.EndDate),
		}
	}
	return res
}
