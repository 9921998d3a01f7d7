package user

import (
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id",
		"email",
		"name",
		"password_hash",
		"role",
		"company_id",
		"is_active",
		"created_at",
		"updated_at",
		"last_login",
	).
	From(database.UsersTable)
