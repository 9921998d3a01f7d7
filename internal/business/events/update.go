package events

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

// UpdateEvent edits a whole event. For an occurrence id of a repeating event
// the time shift of that occurrence is applied to the entire series.
func (s *Service) UpdateEvent(ctx context.Context, id string, info *model.EventUpdate) error {
	if err := validateRange(info.StartDate, info.EndDate); err != nil {
		return err
	}

	baseID, ts, err := ParseEventID(id)
	if err != nil {
		return model.ErrNoRecord
	}

	oldEvent, err := s.eventsRepository.GetEventByID(ctx, s.db, baseID)
	if err != nil {
		return fmt.Errorf("get old event: %w", err)
	}

	anchor := oldEvent.StartDate
	if ts != nil {
		anchor = *ts
	}

	diff := info.StartDate.Sub(anchor)
	from := oldEvent.StartDate.Add(diff)
	to := from.Add(info.EndDate.Sub(info.StartDate))

	repeatRule := oldEvent.RepeatRule
	if oldEvent.RepeatType != model.RepeatTypeNone && !oldEvent.StartDate.Equal(from) {
		repeatRule, err = getRule(oldEvent.RepeatType, from)
		if err != nil {
			return err
		}
	}

	exceptions := oldEvent.Exceptions
	if diff != 0 {
		newExceptions := make(map[int64]struct{}, len(oldEvent.Exceptions))
		for e := range oldEvent.Exceptions {
			newExceptions[time.Unix(e, 0).Add(diff).Unix()] = struct{}{}
		}

		exceptions = newExceptions
	}

	var until *time.Time
	if oldEvent.RepeatType == model.RepeatTypeNone {
		until = &to
	}

	if err := s.eventsRepository.UpdateEvent(ctx, s.db, &model.Event{
		ID:           oldEvent.ID,
		RepeatRule:   repeatRule,
		Exceptions:   exceptions,
		Until:        until,
		IsActive:     oldEvent.IsActive,
		CancelReason: oldEvent.CancelReason,
		EventCreate: model.EventCreate{
			CompanyID:   info.CompanyID,
			Type:        info.Type,
			Title:       info.Title,
			Description: info.Description,
			Location:    info.Location,
			StartDate:   from,
			EndDate:     to,
			RepeatType:  oldEvent.RepeatType,
		},
	}); err != nil {
		return fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
	}

	return nil
}

// UpdateEventInstance detaches one occurrence of a repeating event into a
// standalone event.
func (s *Service) UpdateEventInstance(ctx context.Context, id string, info *model.EventUpdate) (*model.Event, error) {
	if err := validateRange(info.StartDate, info.EndDate); err != nil {
		return nil, err
	}

	old, err := s.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	baseID, ts, _ := ParseEventID(id)
	if ts == nil || old.RepeatType == model.RepeatTypeNone {
		if err := s.UpdateEvent(ctx, id, info); err != nil {
			return nil, err
		}
		return s.GetEventByID(ctx, baseID)
	}

	base, err := s.eventsRepository.GetEventByID(ctx, s.db, baseID)
	if err != nil {
		return nil, fmt.Errorf("get old event: %w", err)
	}

	end := info.EndDate
	detached := &model.Event{
		ID:         s.newID(),
		Exceptions: map[int64]struct{}{},
		Until:      &end,
		IsActive:   true,
		EventCreate: model.EventCreate{
			CompanyID:   info.CompanyID,
			Type:        info.Type,
			Title:       info.Title,
			Description: info.Description,
			Location:    info.Location,
			StartDate:   info.StartDate,
			EndDate:     info.EndDate,
			RepeatType:  model.RepeatTypeNone,
		},
	}

	err = database.InTx(ctx, s.db, func(tx database.Tx) error {
		if base.Exceptions == nil {
			base.Exceptions = map[int64]struct{}{}
		}
		base.Exceptions[ts.Unix()] = struct{}{}
		if err := s.eventsRepository.UpdateEvent(ctx, tx, base); err != nil {
			return fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
		}

		if err := s.eventsRepository.CreateEvent(ctx, tx, detached); err != nil {
			return fmt.Errorf("eventsRepository.CreateEvent: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return detached, nil
}

func (s *Service) CancelEvent(ctx context.Context, id string, reason string) error {
	baseID, _, err := ParseEventID(id)
	if err != nil {
		return model.ErrNoRecord
	}

	if err := s.eventsRepository.CancelEvent(ctx, s.db, baseID, reason); err != nil {
		return fmt.Errorf("eventsRepository.CancelEvent: %w", err)
	}

	return nil
}
