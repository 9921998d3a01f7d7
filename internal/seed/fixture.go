// Package seed loads demo companies, users and events from a YAML fixture.
package seed

import (
	"fmt"
	"io"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/SergeyKozhin/event-admin-backend/internal/pkg/validator"
	"gopkg.in/yaml.v3"
)

const clockLayout = "15:04"

type Fixture struct {
	Companies []Company `yaml:"companies"`
	Users     []User    `yaml:"users"`
	Events    []Event   `yaml:"events"`
}

// Company is referenced from users and events by Key.
type Company struct {
	Key        string `yaml:"key"`
	Name       string `yaml:"name"`
	CustomerID string `yaml:"customer_id"`
	Color      string `yaml:"color"`
	Inactive   bool   `yaml:"inactive"`
}

type User struct {
	Email    string     `yaml:"email"`
	Name     string     `yaml:"name"`
	Password string     `yaml:"password"`
	Role     model.Role `yaml:"role"`
	Company  string     `yaml:"company"`
}

// Event is either absolute (Start, End) or relative to the current month
// (Day, From, To as HH:MM).
type Event struct {
	Company     string          `yaml:"company"`
	Type        model.EventType `yaml:"type"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Location    string          `yaml:"location"`
	Repeat      string          `yaml:"repeat"`

	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`

	Day  int    `yaml:"day"`
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

var repeatTypes = map[string]model.RepeatType{
	"":        model.RepeatTypeNone,
	"none":    model.RepeatTypeNone,
	"daily":   model.RepeatTypeEveryDay,
	"weekly":  model.RepeatTypeEveryWeek,
	"monthly": model.RepeatTypeEveryMonth,
	"yearly":  model.RepeatTypeEveryYear,
}

func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	f := &Fixture{}
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	return f, nil
}

// Validate reports every problem of the fixture keyed by its path.
func (f *Fixture) Validate() map[string]string {
	v := validator.New()

	keys := make(map[string]struct{}, len(f.Companies))
	for i, c := range f.Companies {
		p := fmt.Sprintf("companies[%d]", i)
		_, dup := keys[c.Key]
		v.Check(c.Key != "", p+".key", "key must be provided")
		v.Check(!dup, p+".key", "duplicate key "+c.Key)
		v.Check(c.Name != "", p+".name", "name must be provided")
		v.Check(c.Color == "" || validator.Matches(c.Color, validator.HexRX), p+".color", "color must be valid HEX color")
		keys[c.Key] = struct{}{}
	}

	emails := make(map[string]struct{}, len(f.Users))
	for i, u := range f.Users {
		p := fmt.Sprintf("users[%d]", i)
		_, dup := emails[u.Email]
		v.Check(validator.Matches(u.Email, validator.EmailRX), p+".email", "email must be valid")
		v.Check(!dup, p+".email", "duplicate email "+u.Email)
		v.Check(u.Password != "", p+".password", "password must be provided")
		v.Check(u.Role.Valid(), p+".role", "unknown role "+string(u.Role))
		if u.Role != model.RoleSaasAdmin {
			_, ok := keys[u.Company]
			v.Check(ok, p+".company", "unknown company "+u.Company)
		}
		emails[u.Email] = struct{}{}
	}

	for i, e := range f.Events {
		p := fmt.Sprintf("events[%d]", i)
		_, ok := keys[e.Company]
		v.Check(ok, p+".company", "unknown company "+e.Company)
		v.Check(e.Type.Valid(), p+".type", "unknown type "+string(e.Type))
		v.Check(e.Title != "", p+".title", "title must be provided")
		_, ok = repeatTypes[e.Repeat]
		v.Check(ok, p+".repeat", "unknown repeat "+e.Repeat)

		if e.Day != 0 {
			v.Check(e.Day >= 1 && e.Day <= 28, p+".day", "day must be between 1 and 28")
			_, errFrom := time.Parse(clockLayout, e.From)
			_, errTo := time.Parse(clockLayout, e.To)
			v.Check(errFrom == nil, p+".from", "from must be HH:MM")
			v.Check(errTo == nil, p+".to", "to must be HH:MM")
			continue
		}

		v.Check(!e.Start.IsZero(), p+".start", "start or day must be provided")
		v.Check(!e.End.Before(e.Start), p+".end", "end must not be before start")
	}

	if v.Valid() {
		return nil
	}
	return v.Errors
}

// span resolves the event time range; relative events land in the month of now.
func (e *Event) span(now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if e.Day == 0 {
		return e.Start, e.End, nil
	}

	from, err := time.Parse(clockLayout, e.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse from: %w", err)
	}
	to, err := time.Parse(clockLayout, e.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse to: %w", err)
	}

	now = now.In(loc)
	start := time.Date(now.Year(), now.Month(), e.Day, from.Hour(), from.Minute(), 0, 0, loc)
	end := time.Date(now.Year(), now.Month(), e.Day, to.Hour(), to.Minute(), 0, 0, loc)
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	return start, end, nil
}
