package calendar

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.March, 15, 14, 5, 0, 0, time.UTC)

	tests := []struct {
		locale *Locale
		format DateFormat
		want   string
	}{
		{LocaleTR, DateShort, "15 Mar"},
		{LocaleTR, DateLong, "15 Mart Cuma"},
		{LocaleEN, DateShort, "Mar 15"},
		{LocaleEN, DateLong, "Friday, March 15"},
	}

	for _, tt := range tests {
		e := New(Options{Location: time.UTC, Locale: tt.locale})
		if got := e.FormatDate(ts, tt.format); got != tt.want {
			t.Errorf("%s FormatDate(%d) = %q, want %q", tt.locale.Name, tt.format, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		locale *Locale
		format TimeFormat
		ts     time.Time
		want   string
	}{
		{LocaleTR, TimeFormat24h, time.Date(2024, time.March, 15, 14, 5, 0, 0, time.UTC), "14:05"},
		{LocaleTR, TimeFormat24h, time.Date(2024, time.March, 15, 7, 0, 0, 0, time.UTC), "07:00"},
		{LocaleTR, TimeFormat12h, time.Date(2024, time.March, 15, 14, 5, 0, 0, time.UTC), "ÖS 2:05"},
		{LocaleEN, TimeFormat12h, time.Date(2024, time.March, 15, 14, 5, 0, 0, time.UTC), "2:05 PM"},
		{LocaleEN, TimeFormat12h, time.Date(2024, time.March, 15, 0, 30, 0, 0, time.UTC), "12:30 AM"},
		{LocaleEN, TimeFormat12h, time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC), "12:00 PM"},
	}

	for _, tt := range tests {
		e := New(Options{Location: time.UTC, Locale: tt.locale, TimeFormat: tt.format})
		if got := e.FormatTime(tt.ts); got != tt.want {
			t.Errorf("%s %s FormatTime(%v) = %q, want %q", tt.locale.Name, tt.format, tt.ts, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	anchor := time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		view View
		want string
	}{
		{ViewMonth, "Mart 2024"},
		{ViewWeek, "10 Mar - 16 Mar"},
		{ViewDay, "13 Mart Çarşamba"},
	}

	for _, tt := range tests {
		e := New(Options{View: tt.view, Date: anchor, Location: time.UTC, Locale: LocaleTR})
		if got := e.Title(); got != tt.want {
			t.Errorf("%s Title() = %q, want %q", tt.view, got, tt.want)
		}
	}
}

func TestLocaleByName(t *testing.T) {
	if l, err := LocaleByName("EN"); err != nil || l != LocaleEN {
		t.Errorf("LocaleByName(EN) = %v, %v", l, err)
	}
	if l, err := LocaleByName("tr-TR"); err != nil || l != LocaleTR {
		t.Errorf("LocaleByName(tr-TR) = %v, %v", l, err)
	}
	if _, err := LocaleByName("de"); err == nil {
		t.Error("LocaleByName(de) should fail")
	}
}
