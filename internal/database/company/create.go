package company

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (*Repository) CreateCompany(ctx context.Context, q database.Queryable, company *model.Company) error {
	qb := database.PSQL.
		Insert(database.CompaniesTable).
		Columns("id", "name", "customer_id", "color", "is_active").
		Values(
			company.ID,
			company.Name,
			company.CustomerID,
			colorToHTML(company.Color),
			company.IsActive,
		).
		Suffix("returning created_at, updated_at")

	dst := &struct {
		CreatedAt time.Time
		UpdatedAt time.Time
	}{}
	if err := q.Get(ctx, dst, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	company.CreatedAt = dst.CreatedAt
	company.UpdatedAt = dst.UpdatedAt
	return nil
}
