package events

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/teambition/rrule-go"
)

func getRule(t model.RepeatType, from time.Time) (string, error) {
	var freq rrule.Frequency

	switch t {
	case model.RepeatTypeNone:
		return "", nil
	case model.RepeatTypeEveryDay:
		freq = rrule.DAILY
	case model.RepeatTypeEveryWeek:
		freq = rrule.WEEKLY
	case model.RepeatTypeEveryMonth:
		freq = rrule.MONTHLY
	case model.RepeatTypeEveryYear:
		freq = rrule.YEARLY
	default:
		return "", fmt.Errorf("unknown repeat type: %v", t)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: 1,
		Dtstart:  from.UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("creating rule: %w", err)
	}

	return rule.String(), nil
}

func parseRule(s string) (*rrule.RRule, error) {
	rOption, err := rrule.StrToROption(s)
	if err != nil {
		return nil, fmt.Errorf("parse repeat rule %q: %w", s, err)
	}

	rule, err := rrule.NewRRule(*rOption)
	if err != nil {
		return nil, fmt.Errorf("make rule: %w", err)
	}

	return rule, nil
}

// OccurrenceID identifies one occurrence of a repeating event.
func OccurrenceID(baseID string, ts time.Time) string {
	return fmt.Sprintf("%v_%v", baseID, ts.Unix())
}

// ParseEventID splits an id into the stored event id and, for occurrences of
// repeating events, the occurrence start.
func ParseEventID(id string) (string, *time.Time, error) {
	i := strings.LastIndex(id, "_")
	if i < 0 {
		return id, nil, nil
	}

	unix, err := strconv.ParseInt(id[i+1:], 10, 64)
	if err != nil {
		return "", nil, fmt.Errorf("invalid occurrence in id %q: %w", id, err)
	}

	ts := time.Unix(unix, 0).UTC()
	return id[:i], &ts, nil
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return model.ErrInvalidRange
	}
	return nil
}

func occurrence(base *model.Event, from time.Time) *model.Event {
	duration := base.EndDate.Sub(base.StartDate)

	e := *base
	e.ID = OccurrenceID(base.ID, from)
	e.StartDate = from
	e.EndDate = from.Add(duration)

	return &e
}
