package seed

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeDB struct {
	commits, rollbacks int
}

func (*fakeDB) Exec(context.Context, database.Sqlizer) (pgconn.CommandTag, error) {
	return nil, nil
}
func (*fakeDB) Get(context.Context, interface{}, database.Sqlizer) error    { return nil }
func (*fakeDB) Select(context.Context, interface{}, database.Sqlizer) error { return nil }
func (*fakeDB) ExecRaw(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}
func (*fakeDB) GetPool(context.Context) *pgxpool.Pool { return nil }
func (*fakeDB) Ping(context.Context) error            { return nil }
func (db *fakeDB) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	return &fakeTx{db: db}, nil
}

type fakeTx struct {
	fakeDB
	db        *fakeDB
	committed bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	t.db.commits++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.db.rollbacks++
	}
	return nil
}

type fakeStore struct {
	companies []*model.Company
	users     []*model.User
	events    []*model.Event
	failOn    string
}

func (s *fakeStore) CreateCompany(_ context.Context, _ database.Queryable, c *model.Company) error {
	s.companies = append(s.companies, c)
	return nil
}

func (s *fakeStore) CreateUser(_ context.Context, _ database.Queryable, u *model.User) error {
	if u.Email == s.failOn {
		return model.ErrAlreadyExists
	}
	s.users = append(s.users, u)
	return nil
}

func (s *fakeStore) CreateEvent(_ context.Context, _ database.Queryable, e *model.Event) error {
	s.events = append(s.events, e)
	return nil
}

func newTestSeeder(db *fakeDB, store *fakeStore) *Seeder {
	s := NewSeeder(db, zap.NewNop().Sugar(), store, store, store, time.UTC)
	s.now = func() time.Time { return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC) }
	s.cost = bcrypt.MinCost
	return s
}

func TestDemoFixture(t *testing.T) {
	file, err := os.Open("../../seed/demo.yaml")
	if err != nil {
		t.Fatalf("open demo fixture: %v", err)
	}
	defer file.Close()

	f, err := Load(file)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if errs := f.Validate(); errs != nil {
		t.Fatalf("Validate() = %v", errs)
	}

	db, store := &fakeDB{}, &fakeStore{}
	if err := newTestSeeder(db, store).Apply(context.Background(), f); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if db.commits != 1 {
		t.Errorf("commits = %d, want 1", db.commits)
	}
	if len(store.companies) != 2 || len(store.users) != 4 || len(store.events) != 7 {
		t.Errorf("stored %d companies, %d users, %d events", len(store.companies), len(store.users), len(store.events))
	}

	wedding := store.events[0]
	wantStart := time.Date(2024, time.March, 15, 19, 0, 0, 0, time.UTC)
	if !wedding.StartDate.Equal(wantStart) || wedding.CompanyID != store.companies[0].ID {
		t.Errorf("wedding = %v at %v, want %v at %v", wedding.CompanyID, wedding.StartDate, store.companies[0].ID, wantStart)
	}

	weekly := store.events[6]
	if weekly.RepeatType != model.RepeatTypeEveryWeek || weekly.RepeatRule == "" {
		t.Errorf("weekly event rule = %q, type = %v", weekly.RepeatRule, weekly.RepeatType)
	}

	for _, u := range store.users {
		if u.Role == model.RoleSaasAdmin && u.CompanyID != nil {
			t.Errorf("saas admin %v bound to a company", u.Email)
		}
		if u.Role != model.RoleSaasAdmin && u.CompanyID == nil {
			t.Errorf("%v has no company", u.Email)
		}
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("companies:\n  - key: a\n    nmae: typo\n"))
	if err == nil {
		t.Fatal("Load() expected error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		key  string
	}{
		{"duplicate company key", `
companies:
  - {key: a, name: A}
  - {key: a, name: B}
`, "companies[1].key"},
		{"unknown company", `
companies:
  - {key: a, name: A}
users:
  - {email: x@example.com, password: p, role: VIEWER, company: b}
`, "users[0].company"},
		{"bad role", `
users:
  - {email: x@example.com, password: p, role: ROOT}
`, "users[0].role"},
		{"end before start", `
companies:
  - {key: a, name: A}
events:
  - {company: a, type: other, title: T, start: 2024-03-10T10:00:00Z, end: 2024-03-09T10:00:00Z}
`, "events[0].end"},
		{"bad clock", `
companies:
  - {key: a, name: A}
events:
  - {company: a, type: other, title: T, day: 3, from: "7pm", to: "22:00"}
`, "events[0].from"},
		{"unknown repeat", `
companies:
  - {key: a, name: A}
events:
  - {company: a, type: other, title: T, day: 3, from: "19:00", to: "22:00", repeat: hourly}
`, "events[0].repeat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			errs := f.Validate()
			if _, ok := errs[tt.key]; !ok {
				t.Errorf("Validate() = %v, want key %q", errs, tt.key)
			}
		})
	}
}

func TestApplyRollsBack(t *testing.T) {
	f := &Fixture{
		Companies: []Company{{Key: "a", Name: "A"}},
		Users:     []User{{Email: "dup@example.com", Password: "p", Role: model.RoleViewer, Company: "a"}},
	}

	db, store := &fakeDB{}, &fakeStore{failOn: "dup@example.com"}
	err := newTestSeeder(db, store).Apply(context.Background(), f)
	if !errors.Is(err, model.ErrAlreadyExists) {
		t.Fatalf("Apply() error = %v, want ErrAlreadyExists", err)
	}
	if db.commits != 0 || db.rollbacks != 1 {
		t.Errorf("commits = %d, rollbacks = %d", db.commits, db.rollbacks)
	}
}

func TestApplyInvalidFixture(t *testing.T) {
	f := &Fixture{Users: []User{{Email: "bad"}}}

	err := newTestSeeder(&fakeDB{}, &fakeStore{}).Apply(context.Background(), f)
	vErr := &ValidationError{}
	if !errors.As(err, &vErr) {
		t.Fatalf("Apply() error = %v, want ValidationError", err)
	}
	if !strings.Contains(vErr.Error(), "users[0].email") {
		t.Errorf("error = %q", vErr.Error())
	}
}
