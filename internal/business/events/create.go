package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (s *Service) CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error) {
	event, err := BuildEvent(s.newID(), info)
	if err != nil {
		return nil, err
	}

	if err := s.eventsRepository.CreateEvent(ctx, s.db, event); err != nil {
		return nil, fmt.Errorf("eventsRepository.CreateEvent: %w", err)
	}

	return event, nil
}

// BuildEvent validates info and produces the stored form of a new event,
// including its recurrence rule.
func BuildEvent(id string, info *model.EventCreate) (*model.Event, error) {
	if err := validateRange(info.StartDate, info.EndDate); err != nil {
		return nil, err
	}

	repeatRule, err := getRule(info.RepeatType, info.StartDate)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		ID:          id,
		RepeatRule:  repeatRule,
		Exceptions:  map[int64]struct{}{},
		IsActive:    true,
		EventCreate: *info,
	}

	if info.RepeatType == model.RepeatTypeNone {
		end := info.EndDate
		event.Until = &end
	}

	return event, nil
}
