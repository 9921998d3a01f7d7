package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type fakeDB struct {
	pingErr error
}

func (f *fakeDB) Exec(context.Context, database.Sqlizer) (pgconn.CommandTag, error) {
	return nil, nil
}

func (f *fakeDB) Get(context.Context, interface{}, database.Sqlizer) error {
	return nil
}

func (f *fakeDB) Select(context.Context, interface{}, database.Sqlizer) error {
	return nil
}

func (f *fakeDB) ExecRaw(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}

func (f *fakeDB) GetPool(context.Context) *pgxpool.Pool {
	return nil
}

func (f *fakeDB) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	return nil, errors.New("transactions are not supported by fakeDB")
}

func (f *fakeDB) Ping(context.Context) error {
	return f.pingErr
}

type fakeJWT struct{}

func (fakeJWT) CreateToken(id string) (string, error) {
	return "token-" + id, nil
}

func (fakeJWT) GetIdFromToken(token string) (string, error) {
	if !strings.HasPrefix(token, "token-") {
		return "", errors.New("bad token")
	}
	return strings.TrimPrefix(token, "token-"), nil
}

type fakeRefreshTokens struct {
	mu       sync.Mutex
	sessions map[string]string
}

func newFakeRefreshTokens() *fakeRefreshTokens {
	return &fakeRefreshTokens{sessions: map[string]string{}}
}

func (f *fakeRefreshTokens) Add(_ context.Context, session string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[session]; ok {
		return model.ErrAlreadyExists
	}
	f.sessions[session] = id
	return nil
}

func (f *fakeRefreshTokens) Get(_ context.Context, session string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.sessions[session]
	if !ok {
		return "", model.ErrNoRecord
	}
	return id, nil
}

func (f *fakeRefreshTokens) Refresh(ctx context.Context, old, new string) error {
	id, err := f.Get(ctx, old)
	if err != nil {
		return err
	}
	if err := f.Add(ctx, new, id); err != nil {
		return err
	}
	return f.Delete(ctx, old)
}

func (f *fakeRefreshTokens) Delete(_ context.Context, session string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[session]; !ok {
		return model.ErrNoRecord
	}
	delete(f.sessions, session)
	return nil
}

func (f *fakeRefreshTokens) DeleteByUserID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for s, uid := range f.sessions {
		if uid == id {
			delete(f.sessions, s)
		}
	}
	return nil
}

func (f *fakeRefreshTokens) count(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, uid := range f.sessions {
		if uid == id {
			n++
		}
	}
	return n
}

type fakeUsers struct {
	users map[string]*model.User
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*model.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}

func (f *fakeUsers) CreateUser(_ context.Context, _ database.Queryable, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return model.ErrAlreadyExists
		}
	}
	f.users[user.ID] = cloneUser(user)
	return nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, _ database.Queryable, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, model.ErrNoRecord
}

func (f *fakeUsers) GetUserByID(_ context.Context, _ database.Queryable, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return cloneUser(u), nil
}

func (f *fakeUsers) SearchUsers(_ context.Context, _ database.Queryable, filter model.UserSearchFilter) (*model.PageResult[*model.User], error) {
	var res []*model.User
	for _, u := range f.users {
		if filter.CompanyID != nil && (u.CompanyID == nil || *u.CompanyID != *filter.CompanyID) {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(u.Name+u.Email), strings.ToLower(filter.Query)) {
			continue
		}
		res = append(res, cloneUser(u))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	total := len(res)
	from := filter.Offset()
	if from > total {
		from = total
	}
	to := from + filter.Size
	if to > total {
		to = total
	}
	return model.NewPageResult(res[from:to], total, filter.Page), nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, _ database.Queryable, id string, info *model.UserUpdate) error {
	u, ok := f.users[id]
	if !ok {
		return model.ErrNoRecord
	}
	u.Email, u.Name, u.CompanyID = info.Email, info.Name, info.CompanyID
	return nil
}

func (f *fakeUsers) UpdateUserRole(_ context.Context, _ database.Queryable, id string, role model.Role) error {
	u, ok := f.users[id]
	if !ok {
		return model.ErrNoRecord
	}
	u.Role = role
	return nil
}

func (f *fakeUsers) SetUserActive(_ context.Context, _ database.Queryable, id string, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return model.ErrNoRecord
	}
	u.IsActive = active
	return nil
}

func (f *fakeUsers) UpdateUserPassword(_ context.Context, _ database.Queryable, id string, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return model.ErrNoRecord
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, _ database.Queryable, id string) error {
	if _, ok := f.users[id]; !ok {
		return model.ErrNoRecord
	}
	return nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, _ database.Queryable, id string) error {
	if _, ok := f.users[id]; !ok {
		return model.ErrNoRecord
	}
	delete(f.users, id)
	return nil
}

type fakeCompanies struct {
	companies map[string]*model.Company
}

func newFakeCompanies(companies ...*model.Company) *fakeCompanies {
	f := &fakeCompanies{companies: map[string]*model.Company{}}
	for _, c := range companies {
		f.companies[c.ID] = c
	}
	return f
}

func (f *fakeCompanies) CreateCompany(_ context.Context, _ database.Queryable, company *model.Company) error {
	c := *company
	f.companies[company.ID] = &c
	return nil
}

func (f *fakeCompanies) GetCompany(_ context.Context, _ database.Queryable, id string) (*model.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	res := *c
	return &res, nil
}

func (f *fakeCompanies) GetCompanies(_ context.Context, _ database.Queryable, filter model.CompanyFilter) (*model.PageResult[*model.Company], error) {
	var res []*model.Company
	for _, c := range f.companies {
		if filter.ActiveOnly && !c.IsActive {
			continue
		}
		cc := *c
		res = append(res, &cc)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return model.NewPageResult(res, len(res), filter.Page), nil
}

func (f *fakeCompanies) UpdateCompany(_ context.Context, _ database.Queryable, company *model.Company) error {
	if _, ok := f.companies[company.ID]; !ok {
		return model.ErrNoRecord
	}
	c := *company
	f.companies[company.ID] = &c
	return nil
}

func (f *fakeCompanies) DeleteCompany(_ context.Context, _ database.Queryable, id string) error {
	if _, ok := f.companies[id]; !ok {
		return model.ErrNoRecord
	}
	delete(f.companies, id)
	return nil
}

// fakeEvents stores events by id and records the last list filter.
type fakeEvents struct {
	events     map[string]*model.Event
	lastFilter model.EventsFilter
	nextID     int
}

func newFakeEvents(events ...*model.Event) *fakeEvents {
	f := &fakeEvents{events: map[string]*model.Event{}}
	for _, e := range events {
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeEvents) list(filter model.EventsFilter) []*model.Event {
	f.lastFilter = filter
	var res []*model.Event
	for _, e := range f.events {
		if len(filter.CompanyIDs) != 0 {
			found := false
			for _, id := range filter.CompanyIDs {
				found = found || id == e.CompanyID
			}
			if !found {
				continue
			}
		}
		if !filter.To.IsZero() && !e.StartDate.Before(filter.To) {
			continue
		}
		if !filter.From.IsZero() && e.EndDate.Before(filter.From) {
			continue
		}
		res = append(res, e)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].StartDate.Before(res[j].StartDate) })
	return res
}

func (f *fakeEvents) CreateEvent(_ context.Context, info *model.EventCreate) (*model.Event, error) {
	if info.EndDate.Before(info.StartDate) {
		return nil, model.ErrInvalidRange
	}
	f.nextID++
	e := &model.Event{ID: fmt.Sprintf("event-%d", f.nextID), IsActive: true, EventCreate: *info}
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeEvents) GetEventByID(_ context.Context, id string) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return e, nil
}

func (f *fakeEvents) GetEvents(_ context.Context, filter model.EventsFilter) ([]*model.Event, error) {
	return f.list(filter), nil
}

func (f *fakeEvents) GetSeries(_ context.Context, filter model.EventsFilter) ([]*model.Event, error) {
	return f.list(filter), nil
}

func (f *fakeEvents) UpdateEvent(_ context.Context, id string, info *model.EventUpdate) error {
	e, ok := f.events[id]
	if !ok {
		return model.ErrNoRecord
	}
	e.Title, e.StartDate, e.EndDate = info.Title, info.StartDate, info.EndDate
	return nil
}

func (f *fakeEvents) UpdateEventInstance(ctx context.Context, id string, info *model.EventUpdate) (*model.Event, error) {
	if err := f.UpdateEvent(ctx, id, info); err != nil {
		return nil, err
	}
	return f.events[id], nil
}

func (f *fakeEvents) CancelEvent(_ context.Context, id string, reason string) error {
	e, ok := f.events[id]
	if !ok {
		return model.ErrNoRecord
	}
	e.IsActive, e.CancelReason = false, reason
	return nil
}

func (f *fakeEvents) DeleteEvent(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return model.ErrNoRecord
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEvents) DeleteEventInstance(ctx context.Context, id string) error {
	return f.DeleteEvent(ctx, id)
}

type fakeICS struct {
	name   string
	events []*model.Event
}

func (f *fakeICS) Encode(w io.Writer, name string, events []*model.Event) error {
	f.name, f.events = name, events
	_, err := io.WriteString(w, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	return err
}
