package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/emersion/go-ical"
)

func TestEncode(t *testing.T) {
	start := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)
	skipped := start.AddDate(0, 0, 7)

	events := []*model.Event{
		{
			ID:       "wedding-1",
			IsActive: true,
			EventCreate: model.EventCreate{
				Type:        model.EventTypeWedding,
				Title:       "Ayşe & Mehmet",
				Description: "Salon A",
				Location:    "İstanbul",
				StartDate:   start,
				EndDate:     start.Add(4 * time.Hour),
			},
		},
		{
			ID:           "rehearsal-1",
			RepeatRule:   "DTSTART:20240315T180000Z\nRRULE:FREQ=WEEKLY;INTERVAL=1",
			Exceptions:   map[int64]struct{}{skipped.Unix(): {}},
			IsActive:     false,
			CancelReason: "moved",
			EventCreate: model.EventCreate{
				Type:       model.EventTypeOther,
				Title:      "Rehearsal",
				StartDate:  start,
				EndDate:    start.Add(time.Hour),
				RepeatType: model.RepeatTypeEveryWeek,
			},
		},
	}

	enc := NewEncoder()
	enc.now = func() time.Time { return start }

	var buf bytes.Buffer
	if err := enc.Encode(&buf, "Demo", events); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	cal, err := ical.NewDecoder(strings.NewReader(buf.String())).Decode()
	if err != nil {
		t.Fatalf("decode encoded calendar: %v", err)
	}

	vevents := cal.Events()
	if len(vevents) != 2 {
		t.Fatalf("got %d events, want 2", len(vevents))
	}

	checkText := func(c *ical.Component, prop, want string) {
		t.Helper()
		got, err := c.Props.Text(prop)
		if err != nil {
			t.Fatalf("%s: %v", prop, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", prop, got, want)
		}
	}

	checkText(vevents[0].Component, ical.PropUID, "wedding-1")
	checkText(vevents[0].Component, ical.PropSummary, "Ayşe & Mehmet")
	checkText(vevents[0].Component, ical.PropLocation, "İstanbul")
	checkText(vevents[0].Component, ical.PropCategories, "WEDDING")
	checkText(vevents[0].Component, ical.PropStatus, "CONFIRMED")

	dtstart, err := vevents[0].DateTimeStart(time.UTC)
	if err != nil {
		t.Fatalf("DTSTART: %v", err)
	}
	if !dtstart.Equal(start) {
		t.Errorf("DTSTART = %v, want %v", dtstart, start)
	}

	checkText(vevents[1].Component, ical.PropStatus, "CANCELLED")
	if p := vevents[1].Props.Get(ical.PropRecurrenceRule); p == nil || !strings.HasPrefix(p.Value, "FREQ=WEEKLY") {
		t.Errorf("RRULE = %+v, want weekly rule", p)
	}
	if got := len(vevents[1].Props.Values(ical.PropExceptionDates)); got != 1 {
		t.Errorf("got %d EXDATE, want 1", got)
	}
	if p := vevents[0].Props.Get(ical.PropRecurrenceRule); p != nil {
		t.Errorf("one-off event has RRULE %q", p.Value)
	}
}

func TestEncodeNoEvents(t *testing.T) {
	var buf bytes.Buffer
	if err := NewEncoder().Encode(&buf, "Empty Co", []*model.Event{}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	cal, err := ical.NewDecoder(strings.NewReader(buf.String())).Decode()
	if err != nil {
		t.Fatalf("decode encoded calendar: %v", err)
	}

	if n := len(cal.Events()); n != 0 {
		t.Errorf("got %d events, want 0", n)
	}
	if name, _ := cal.Props.Text("X-WR-CALNAME"); name != "Empty Co" {
		t.Errorf("X-WR-CALNAME = %q", name)
	}
	if len(cal.Children) != 1 || cal.Children[0].Name != ical.CompTimezone {
		t.Fatalf("children = %+v, want a single VTIMEZONE", cal.Children)
	}
	if tzid, _ := cal.Children[0].Props.Text(ical.PropTimezoneID); tzid != "UTC" {
		t.Errorf("TZID = %q, want UTC", tzid)
	}
}
