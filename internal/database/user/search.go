package user

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (*Repository) SearchUsers(ctx context.Context, q database.Queryable, filter model.UserSearchFilter) (*model.PageResult[*model.User], error) {
	qb := baseQuery

	if filter.CompanyID != nil {
		qb = qb.Where(sq.Eq{"company_id": *filter.CompanyID})
	}

	if query := strings.TrimSpace(filter.Query); query != "" {
		pattern := fmt.Sprintf("%%%v%%", strings.Join(strings.Fields(query), "%"))
		qb = qb.Where(sq.ILike{"name || ' ' || email": pattern})
	}

	var total int
	if err := q.Get(ctx, &total, database.Count(qb)); err != nil {
		return nil, fmt.Errorf("SQL count request: %w", err)
	}

	qb = qb.
		OrderBy("name", "id").
		Limit(uint64(filter.Size)).
		Offset(uint64(filter.Offset()))

	var dtos []*userDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.User, len(dtos))
	for i, d := range dtos {
		res[i] = mapToUser(d)
	}

	return model.NewPageResult(res, total, filter.Page), nil
}
