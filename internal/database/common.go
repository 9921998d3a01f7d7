package database

import sq "github.com/Masterminds/squirrel"

// PSQL билдер запросов с плейсхолдерами postgres.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	CompaniesTable = "companies"
	UsersTable     = "users"
	EventsTable    = "events"
)

// Count оборачивает select в подсчет строк без limit/offset.
func Count(qb sq.SelectBuilder) sq.SelectBuilder {
	return PSQL.Select("count(*)").FromSelect(qb.RemoveLimit().RemoveOffset(), "q")
}
