package events

import (
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

type eventDTO struct {
	ID             string
	CompanyID      string
	EventType      string `db:"type"`
	Title          string
	Description    string
	Location       string
	RepeatType     int
	StartDate      time.Time
	EndDate        *time.Time
	Duration       int64
	RecurrenceRule string
	Exceptions     []time.Time
	IsActive       bool
	CancelReason   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func mapToEvent(dto *eventDTO) *model.Event {
	exceptions := make(map[int64]struct{}, len(dto.Exceptions))
	for _, e := range dto.Exceptions {
		exceptions[e.Unix()] = struct{}{}
	}

	return &model.Event{
		ID:           dto.ID,
		RepeatRule:   dto.RecurrenceRule,
		Exceptions:   exceptions,
		Until:        dto.EndDate,
		IsActive:     dto.IsActive,
		CancelReason: dto.CancelReason,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
		EventCreate: model.EventCreate{
			CompanyID:   dto.CompanyID,
			Type:        model.EventType(dto.EventType),
			Title:       dto.Title,
			Description: dto.Description,
			Location:    dto.Location,
			StartDate:   dto.StartDate,
			EndDate:     dto.StartDate.Add(time.Duration(dto.Duration)),
			RepeatType:  model.RepeatType(dto.RepeatType),
		},
	}
}

func exceptionsToSlice(exceptions map[int64]struct{}) []time.Time {
	res := make([]time.Time, 0, len(exceptions))
	for e := range exceptions {
		res = append(res, time.Unix(e, 0).UTC())
	}
	return res
}
