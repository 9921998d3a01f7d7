package user

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

func (*Repository) UpdateUser(ctx context.Context, q database.Queryable, id string, info *model.UserUpdate) error {
	return update(ctx, q, id, map[string]interface{}{
		"email":      info.Email,
		"name":       info.Name,
		"company_id": info.CompanyID,
	})
}

func (*Repository) UpdateUserRole(ctx context.Context, q database.Queryable, id string, role model.Role) error {
	return update(ctx, q, id, map[string]interface{}{"role": string(role)})
}

func (*Repository) SetUserActive(ctx context.Context, q database.Queryable, id string, active bool) error {
	return update(ctx, q, id, map[string]interface{}{"is_active": active})
}

func (*Repository) UpdateUserPassword(ctx context.Context, q database.Queryable, id string, passwordHash string) error {
	return update(ctx, q, id, map[string]interface{}{"password_hash": passwordHash})
}

func (*Repository) UpdateLastLogin(ctx context.Context, q database.Queryable, id string) error {
	qb := database.PSQL.
		Update(database.UsersTable).
		Set("last_login", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) DeleteUser(ctx context.Context, q database.Queryable, id string) error {
	qb := database.PSQL.
		Delete(database.UsersTable).
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

func update(ctx context.Context, q database.Queryable, id string, values map[string]interface{}) error {
	values["updated_at"] = sq.Expr("now()")

	qb := database.PSQL.
		Update(database.UsersTable).
		SetMap(values).
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
