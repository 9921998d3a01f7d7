package events

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (*Repository) CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) error {
	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"id",
			"company_id",
			"type",
			"title",
			"description",
			"location",
			"repeat_type",
			"start_date",
			"end_date",
			"duration",
			"recurrence_rule",
			"exceptions",
			"is_active",
		).
		Values(
			event.ID,
			event.CompanyID,
			string(event.Type),
			event.Title,
			event.Description,
			event.Location,
			int(event.RepeatType),
			event.StartDate,
			event.Until,
			int64(event.EndDate.Sub(event.StartDate)),
			event.RepeatRule,
			exceptionsToSlice(event.Exceptions),
			event.IsActive,
		).
		Suffix("returning created_at, updated_at")

	dst := &struct {
		CreatedAt time.Time
		UpdatedAt time.Time
	}{}
	if err := q.Get(ctx, dst, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	event.CreatedAt = dst.CreatedAt
	event.UpdatedAt = dst.UpdatedAt
	return nil
}
