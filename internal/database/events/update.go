package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (*Repository) UpdateEvent(ctx context.Context, q database.Queryable, event *model.Event) error {
	qb := database.PSQL.
		Update(database.EventsTable).
		SetMap(map[string]interface{}{
			"company_id":      event.CompanyID,
			"type":            string(event.Type),
			"title":           event.Title,
			"description":     event.Description,
			"location":        event.Location,
			"repeat_type":     int(event.RepeatType),
			"start_date":      event.StartDate,
			"end_date":        event.Until,
			"duration":        int64(event.EndDate.Sub(event.StartDate)),
			"recurrence_rule": event.RepeatRule,
			"exceptions":      exceptionsToSlice(event.Exceptions),
			"is_active":       event.IsActive,
			"cancel_reason":   event.CancelReason,
			"updated_at":      sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": event.ID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func (*Repository) CancelEvent(ctx context.Context, q database.Queryable, id string, reason string) error {
	qb := database.PSQL.
		Update(database.EventsTable).
		Set("is_active", false).
		Set("cancel_reason", reason).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}
