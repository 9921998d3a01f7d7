package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

func TestMapError(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, model.ErrNoRecord},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), model.ErrNoRecord},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, model.ErrAlreadyExists},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("mapError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("mapError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	qb := PSQL.
		Select("id").
		From(UsersTable).
		Where(sq.Eq{"company_id": "c1"}).
		Limit(10).
		Offset(20)

	sql, args, err := Count(qb).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}

	if !strings.HasPrefix(sql, "SELECT count(*) FROM (SELECT id FROM users WHERE company_id = $1)") {
		t.Errorf("unexpected sql %q", sql)
	}
	if strings.Contains(sql, "LIMIT") || strings.Contains(sql, "OFFSET") {
		t.Errorf("count query keeps pagination: %q", sql)
	}
	if len(args) != 1 {
		t.Errorf("got %d args, want 1", len(args))
	}
}
