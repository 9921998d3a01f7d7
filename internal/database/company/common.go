package company

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
		"name",
		"customer_id",
		"color",
		"is_active",
		"created_at",
		"updated_at",
	).
	From(database.CompaniesTable)
