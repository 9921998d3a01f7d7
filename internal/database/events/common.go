package events

import "github.com/SergeyKozhin/event-admin-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
		"company_id",
		"type",
		"title",
		"description",
		"location",
		"repeat_type",
		"start_date",
		"end_date",
		"duration",
		"recurrence_rule",
		"exceptions",
		"is_active",
		"cancel_reason",
		"created_at",
		"updated_at",
	).
	From(database.EventsTable)
