package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (*Repository) GetEventByID(ctx context.Context, q database.Queryable, id string) (*model.Event, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	dto := &eventDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToEvent(dto), nil
}

// GetEvents returns base events that may have an occurrence overlapping the
// filter range. Repeating events have no end_date and are expanded by the caller.
func (*Repository) GetEvents(ctx context.Context, q database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, eventsQuery(filter)); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res, nil
}

func eventsQuery(filter model.EventsFilter) sq.SelectBuilder {
	qb := baseQuery.
		OrderBy("start_date", "id")

	if !filter.To.IsZero() {
		qb = qb.Where(sq.Lt{"start_date": filter.To})
	}

	if !filter.From.IsZero() {
		qb = qb.Where(sq.Or{sq.Eq{"end_date": nil}, sq.GtOrEq{"end_date": filter.From}})
	}

	if len(filter.CompanyIDs) != 0 {
		qb = qb.Where(sq.Eq{"company_id": filter.CompanyIDs})
	}

	if filter.ActiveOnly {
		qb = qb.Where(sq.Eq{"is_active": true})
	}

	return qb
}
