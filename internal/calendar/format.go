package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Locale holds the names and layouts used for display. Layout placeholders:
// {d} day, {mon} short month, {month} month, {weekday}, {yyyy}, {h} hour,
// {hh} zero-padded hour, {mm} minutes, {ampm} marker.
type Locale struct {
	Name        string
	Months      [12]string
	ShortMonths [12]string
	Weekdays    [7]string
	AM, PM      string

	ShortDate string
	LongDate  string
	MonthYear string
	Time12    string
	Time24    string
}

var LocaleTR = &Locale{
	Name:        "tr",
	Months:      [12]string{"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran", "Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"},
	ShortMonths: [12]string{"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"},
	Weekdays:    [7]string{"Pazar", "Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi"},
	AM:          "ÖÖ",
	PM:          "ÖS",
	ShortDate:   "{d} {mon}",
	LongDate:    "{d} {month} {weekday}",
	MonthYear:   "{month} {yyyy}",
	Time12:      "{ampm} {h}:{mm}",
	Time24:      "{hh}:{mm}",
}

var LocaleEN = &Locale{
	Name:        "en",
	Months:      [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	ShortMonths: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Weekdays:    [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	AM:          "AM",
	PM:          "PM",
	ShortDate:   "{mon} {d}",
	LongDate:    "{weekday}, {month} {d}",
	MonthYear:   "{month} {yyyy}",
	Time12:      "{h}:{mm} {ampm}",
	Time24:      "{hh}:{mm}",
}

func LocaleByName(name string) (*Locale, error) {
	switch strings.ToLower(name) {
	case "tr", "tr-tr":
		return LocaleTR, nil
	case "en", "en-us":
		return LocaleEN, nil
	default:
		return nil, fmt.Errorf("unsupported locale %q", name)
	}
}

func (l *Locale) render(layout string, t time.Time) string {
	hour12 := t.Hour() % 12
	if hour12 == 0 {
		hour12 = 12
	}
	ampm := l.AM
	if t.Hour() >= 12 {
		ampm = l.PM
	}

	return strings.NewReplacer(
		"{d}", strconv.Itoa(t.Day()),
		"{mon}", l.ShortMonths[t.Month()-1],
		"{month}", l.Months[t.Month()-1],
		"{weekday}", l.Weekdays[t.Weekday()],
		"{yyyy}", strconv.Itoa(t.Year()),
		"{hh}", fmt.Sprintf("%02d", t.Hour()),
		"{h}", strconv.Itoa(hour12),
		"{mm}", fmt.Sprintf("%02d", t.Minute()),
		"{ampm}", ampm,
	).Replace(layout)
}

func (e *Engine) FormatDate(t time.Time, format DateFormat) string {
	t = t.In(e.loc)
	if format == DateLong {
		return e.locale.render(e.locale.LongDate, t)
	}
	return e.locale.render(e.locale.ShortDate, t)
}

func (e *Engine) FormatTime(t time.Time) string {
	t = t.In(e.loc)
	if e.timeFormat == TimeFormat12h {
		return e.locale.render(e.locale.Time12, t)
	}
	return e.locale.render(e.locale.Time24, t)
}

// Title is the header of the current view: "Mart 2024", "3 Mar - 9 Mar" or a
// long date.
func (e *Engine) Title() string {
	switch e.view {
	case ViewWeek:
		days := e.WeekGrid(e.date, nil)
		return e.FormatDate(days[0].Date, DateShort) + " - " + e.FormatDate(days[len(days)-1].Date, DateShort)
	case ViewDay:
		return e.FormatDate(e.date, DateLong)
	default:
		return e.locale.render(e.locale.MonthYear, e.date.In(e.loc))
	}
}
