package events

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

// GetEventByID resolves plain ids and occurrence ids of repeating events.
func (s *Service) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	baseID, ts, err := ParseEventID(id)
	if err != nil {
		return nil, model.ErrNoRecord
	}

	event, err := s.eventsRepository.GetEventByID(ctx, s.db, baseID)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if ts == nil {
		return event, nil
	}

	if event.RepeatType == model.RepeatTypeNone {
		if !event.StartDate.Equal(*ts) {
			return nil, model.ErrNoRecord
		}
		return event, nil
	}

	rule, err := parseRule(event.RepeatRule)
	if err != nil {
		return nil, err
	}

	if !rule.After(*ts, true).Equal(*ts) {
		return nil, model.ErrNoRecord
	}

	if _, ok := event.Exceptions[ts.Unix()]; ok {
		return nil, model.ErrNoRecord
	}

	return occurrence(event, *ts), nil
}

// GetEvents returns every occurrence overlapping [filter.From, filter.To),
// ordered by start.
func (s *Service) GetEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error) {
	baseEvents, err := s.eventsRepository.GetEvents(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEvents: %w", err)
	}

	to := filter.To
	if to.IsZero() {
		to = s.now().Add(expansionHorizon)
	}

	res := make([]*model.Event, 0, len(baseEvents))
	for _, e := range baseEvents {
		if e.RepeatType == model.RepeatTypeNone {
			if overlaps(e, filter.From, filter.To) {
				res = append(res, e)
			}
			continue
		}

		rule, err := parseRule(e.RepeatRule)
		if err != nil {
			return nil, err
		}

		duration := e.EndDate.Sub(e.StartDate)
		after := e.StartDate
		if !filter.From.IsZero() && filter.From.Add(-duration).After(after) {
			after = filter.From.Add(-duration)
		}

		for _, r := range rule.Between(after, to.Add(-1), true) {
			if _, ok := e.Exceptions[r.Unix()]; ok {
				continue
			}

			o := occurrence(e, r)
			if overlaps(o, filter.From, to) {
				res = append(res, o)
			}
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].StartDate.Before(res[j].StartDate)
	})

	return res, nil
}

func overlaps(e *model.Event, from, to time.Time) bool {
	if !to.IsZero() && !e.StartDate.Before(to) {
		return false
	}
	if !from.IsZero() && e.EndDate.Before(from) {
		return false
	}
	return true
}

// GetSeries returns stored events without expanding recurrences.
func (s *Service) GetSeries(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error) {
	events, err := s.eventsRepository.GetEvents(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEvents: %w", err)
	}

	return events, nil
}
