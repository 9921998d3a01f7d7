package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	baseID, _, err := ParseEventID(id)
	if err != nil {
		return model.ErrNoRecord
	}

	if err := s.eventsRepository.DeleteEvent(ctx, s.db, baseID); err != nil {
		return fmt.Errorf("eventsRepository.DeleteEvent: %w", err)
	}

	return nil
}

// DeleteEventInstance hides one occurrence of a repeating event.
func (s *Service) DeleteEventInstance(ctx context.Context, id string) error {
	baseID, ts, err := ParseEventID(id)
	if err != nil || ts == nil {
		return s.DeleteEvent(ctx, id)
	}

	if _, err := s.GetEventByID(ctx, id); err != nil {
		return err
	}

	oldEvent, err := s.eventsRepository.GetEventByID(ctx, s.db, baseID)
	if err != nil {
		return fmt.Errorf("get old event: %w", err)
	}

	if oldEvent.RepeatType == model.RepeatTypeNone {
		return s.DeleteEvent(ctx, baseID)
	}

	if oldEvent.Exceptions == nil {
		oldEvent.Exceptions = map[int64]struct{}{}
	}
	oldEvent.Exceptions[ts.Unix()] = struct{}{}
	if err := s.eventsRepository.UpdateEvent(ctx, s.db, oldEvent); err != nil {
		return fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
	}

	return nil
}
