package company

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (*Repository) GetCompany(ctx context.Context, q database.Queryable, id string) (*model.Company, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	dto := &companyDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToCompany(dto)
}

func (*Repository) GetCompanies(ctx context.Context, q database.Queryable, filter model.CompanyFilter) (*model.PageResult[*model.Company], error) {
	qb := baseQuery.
		OrderBy("name", "id")

	if filter.ActiveOnly {
		qb = qb.Where(sq.Eq{"is_active": true})
	}

	var total int
	if err := q.Get(ctx, &total, database.Count(qb)); err != nil {
		return nil, fmt.Errorf("SQL count request: %w", err)
	}

	qb = qb.
		Limit(uint64(filter.Size)).
		Offset(uint64(filter.Offset()))

	var dtos []*companyDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Company, len(dtos))
	for i, d := range dtos {
		var err error
		res[i], err = mapToCompany(d)
		if err != nil {
			return nil, err
		}
	}

	return model.NewPageResult(res, total, filter.Page), nil
}
