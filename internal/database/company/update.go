package company

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (*Repository) UpdateCompany(ctx context.Context, q database.Queryable, company *model.Company) error {
	qb := database.PSQL.
		Update(database.CompaniesTable).
		SetMap(map[string]interface{}{
			"name":        company.Name,
			"customer_id": company.CustomerID,
			"color":       colorToHTML(company.Color),
			"is_active":   company.IsActive,
			"updated_at":  sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": company.ID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func (*Repository) DeleteCompany(ctx context.Context, q database.Queryable, id string) error {
	qb := database.PSQL.
		Delete(database.CompaniesTable).
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
