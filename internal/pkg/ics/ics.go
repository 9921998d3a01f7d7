package ics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

const productID = "-//Event Admin//Calendar Export//TR"

// Encoder writes company calendars as iCalendar documents.
type Encoder struct {
	now func() time.Time
}

func NewEncoder() *Encoder {
	return &Encoder{now: time.Now}
}

// Encode writes one VCALENDAR holding a VEVENT per stored event. Repeating
// events keep their RRULE and skipped occurrences become EXDATEs.
func (e *Encoder) Encode(w io.Writer, name string, events []*model.Event) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	if name != "" {
		cal.Props.SetText("X-WR-CALNAME", name)
	}

	stamp := e.now().UTC()
	for _, event := range events {
		vevent, err := toVEvent(event, stamp)
		if err != nil {
			return fmt.Errorf("event %v: %w", event.ID, err)
		}
		cal.Children = append(cal.Children, vevent)
	}

	// go-ical refuses a VCALENDAR without components.
	if len(cal.Children) == 0 {
		cal.Children = append(cal.Children, utcTimezone())
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}

	return nil
}

func toVEvent(event *model.Event, stamp time.Time) (*ical.Component, error) {
	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, event.ID)
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	vevent.Props.SetText(ical.PropSummary, event.Title)
	if event.Description != "" {
		vevent.Props.SetText(ical.PropDescription, event.Description)
	}
	if event.Location != "" {
		vevent.Props.SetText(ical.PropLocation, event.Location)
	}
	vevent.Props.SetDateTime(ical.PropDateTimeStart, event.StartDate.UTC())
	vevent.Props.SetDateTime(ical.PropDateTimeEnd, event.EndDate.UTC())
	vevent.Props.SetText(ical.PropCategories, strings.ToUpper(string(event.Type)))

	status := "CONFIRMED"
	if !event.IsActive {
		status = "CANCELLED"
	}
	vevent.Props.SetText(ical.PropStatus, status)

	if !event.UpdatedAt.IsZero() {
		vevent.Props.SetDateTime(ical.PropLastModified, event.UpdatedAt.UTC())
	}

	if event.RepeatRule == "" {
		return vevent.Component, nil
	}

	opt, err := rrule.StrToROption(event.RepeatRule)
	if err != nil {
		return nil, fmt.Errorf("parse repeat rule: %w", err)
	}

	rruleProp := ical.NewProp(ical.PropRecurrenceRule)
	rruleProp.SetValueType(ical.ValueRecurrence)
	rruleProp.Value = opt.RRuleString()
	vevent.Props.Set(rruleProp)

	for _, ts := range exceptionTimes(event.Exceptions) {
		exdate := ical.NewProp(ical.PropExceptionDates)
		exdate.SetDateTime(ts)
		vevent.Props.Add(exdate)
	}

	return vevent.Component, nil
}

// utcTimezone describes UTC, the zone every exported date is written in.
func utcTimezone() *ical.Component {
	standard := ical.NewComponent(ical.CompTimezoneStandard)
	setRaw(standard.Props, ical.PropDateTimeStart, "19700101T000000")
	setRaw(standard.Props, ical.PropTimezoneOffsetFrom, "+0000")
	setRaw(standard.Props, ical.PropTimezoneOffsetTo, "+0000")

	tz := ical.NewComponent(ical.CompTimezone)
	tz.Props.SetText(ical.PropTimezoneID, "UTC")
	tz.Children = append(tz.Children, standard)

	return tz
}

func setRaw(props ical.Props, name, value string) {
	prop := ical.NewProp(name)
	prop.Value = value
	props.Set(prop)
}

func exceptionTimes(exceptions map[int64]struct{}) []time.Time {
	res := make([]time.Time, 0, len(exceptions))
	for unix := range exceptions {
		res = append(res, time.Unix(unix, 0).UTC())
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Before(res[j]) })
	return res
}
