package user

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (*Repository) CreateUser(ctx context.Context, q database.Queryable, user *model.User) error {
	qb := database.PSQL.
		Insert(database.UsersTable).
		Columns("id", "email", "name", "password_hash", "role", "company_id", "is_active").
		Values(
			user.ID,
			user.Email,
			user.Name,
			user.PasswordHash,
			string(user.Role),
			user.CompanyID,
			user.IsActive,
		).
		Suffix("returning created_at, updated_at")

	dst := &struct {
		CreatedAt time.Time
		UpdatedAt time.Time
	}{}
	if err := q.Get(ctx, dst, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	user.CreatedAt = dst.CreatedAt
	user.UpdatedAt = dst.UpdatedAt
	return nil
}
