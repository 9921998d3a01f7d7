package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (*Repository) DeleteEvent(ctx context.Context, q database.Queryable, id string) error {
	qb := database.PSQL.
		Delete(database.EventsTable).
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
