package seed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/business/events"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/gerow/go-color"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultColor = "#3b82f6"

type companyRepository interface {
	CreateCompany(ctx context.Context, q database.Queryable, company *model.Company) error
}

type userRepository interface {
	CreateUser(ctx context.Context, q database.Queryable, user *model.User) error
}

type eventsRepository interface {
	CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) error
}

type Seeder struct {
	db        database.PGX
	logger    *zap.SugaredLogger
	companies companyRepository
	users     userRepository
	events    eventsRepository
	loc       *time.Location
	now       func() time.Time
	newID     func() string
	cost      int
}

func NewSeeder(
	db database.PGX,
	logger *zap.SugaredLogger,
	companies companyRepository,
	users userRepository,
	events eventsRepository,
	loc *time.Location,
) *Seeder {
	return &Seeder{
		db:        db,
		logger:    logger,
		companies: companies,
		users:     users,
		events:    events,
		loc:       loc,
		now:       time.Now,
		newID:     uuid.NewString,
		cost:      bcrypt.DefaultCost,
	}
}

// ValidationError lists every invalid fixture field.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = k + ": " + e.Errors[k]
	}
	return "invalid fixture: " + strings.Join(msgs, "; ")
}

// Apply inserts the whole fixture in one transaction.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) error {
	if errs := f.Validate(); errs != nil {
		return &ValidationError{Errors: errs}
	}

	return database.InTx(ctx, s.db, func(tx database.Tx) error {
		companyIDs := make(map[string]string, len(f.Companies))
		for _, c := range f.Companies {
			id, err := s.createCompany(ctx, tx, c)
			if err != nil {
				return fmt.Errorf("company %v: %w", c.Key, err)
			}
			companyIDs[c.Key] = id
		}

		for _, u := range f.Users {
			if err := s.createUser(ctx, tx, u, companyIDs); err != nil {
				return fmt.Errorf("user %v: %w", u.Email, err)
			}
		}

		for _, e := range f.Events {
			if err := s.createEvent(ctx, tx, e, companyIDs[e.Company]); err != nil {
				return fmt.Errorf("event %v: %w", e.Title, err)
			}
		}

		s.logger.Infow("fixture applied",
			"companies", len(f.Companies),
			"users", len(f.Users),
			"events", len(f.Events),
		)
		return nil
	})
}

func (s *Seeder) createCompany(ctx context.Context, tx database.Tx, c Company) (string, error) {
	hex := c.Color
	if hex == "" {
		hex = defaultColor
	}
	rgb, err := color.HTMLToRGB(strings.TrimPrefix(hex, "#"))
	if err != nil {
		return "", fmt.Errorf("parse color: %w", err)
	}

	var customerID *string
	if c.CustomerID != "" {
		customerID = &c.CustomerID
	}

	company := &model.Company{
		ID:       s.newID(),
		IsActive: !c.Inactive,
		CompanyCreate: model.CompanyCreate{
			Name:       c.Name,
			CustomerID: customerID,
			Color:      rgb,
		},
	}
	if err := s.companies.CreateCompany(ctx, tx, company); err != nil {
		return "", err
	}

	return company.ID, nil
}

func (s *Seeder) createUser(ctx context.Context, tx database.Tx, u User, companyIDs map[string]string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	var companyID *string
	if u.Role != model.RoleSaasAdmin {
		id := companyIDs[u.Company]
		companyID = &id
	}

	return s.users.CreateUser(ctx, tx, &model.User{
		ID:       s.newID(),
		IsActive: true,
		UserCreate: model.UserCreate{
			Email:        strings.ToLower(u.Email),
			Name:         u.Name,
			PasswordHash: string(hash),
			Role:         u.Role,
			CompanyID:    companyID,
		},
	})
}

func (s *Seeder) createEvent(ctx context.Context, tx database.Tx, e Event, companyID string) error {
	start, end, err := e.span(s.now(), s.loc)
	if err != nil {
		return err
	}

	event, err := events.BuildEvent(s.newID(), &model.EventCreate{
		CompanyID:   companyID,
		Type:        e.Type,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   start,
		EndDate:     end,
		RepeatType:  repeatTypes[e.Repeat],
	})
	if err != nil {
		return err
	}

	return s.events.CreateEvent(ctx, tx, event)
}
