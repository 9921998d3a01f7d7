package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/calendar"
	"github.com/SergeyKozhin/event-admin-backend/internal/database"
	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler    http.Handler
	logger     *zap.SugaredLogger
	randSource io.Reader
	newID      func() string

	jwts               jwtManager
	refreshTokens      refreshTokenRepository
	sessionTokenLength int

	db            database.PGX
	users         userRepository
	companies     companyRepository
	eventsService eventsService
	ics           icsEncoder
	calendar      CalendarSettings
}

// CalendarSettings are the defaults for engines created per calendar request.
type CalendarSettings struct {
	Location   *time.Location
	Locale     *calendar.Locale
	TimeFormat calendar.TimeFormat
	Clock      calendar.Clock
}

type jwtManager interface {
	CreateToken(id string) (string, error)
	GetIdFromToken(token string) (string, error)
}

type refreshTokenRepository interface {
	Add(ctx context.Context, session string, id string) error
	Get(ctx context.Context, session string) (string, error)
	Refresh(ctx context.Context, old, new string) error
	Delete(ctx context.Context, session string) error
	DeleteByUserID(ctx context.Context, id string) error
}

type userRepository interface {
	CreateUser(ctx context.Context, q database.Queryable, user *model.User) error
	GetUserByEmail(ctx context.Context, q database.Queryable, email string) (*model.User, error)
	GetUserByID(ctx context.Context, q database.Queryable, id string) (*model.User, error)
	SearchUsers(ctx context.Context, q database.Queryable, filter model.UserSearchFilter) (*model.PageResult[*model.User], error)
	UpdateUser(ctx context.Context, q database.Queryable, id string, info *model.UserUpdate) error
	UpdateUserRole(ctx context.Context, q database.Queryable, id string, role model.Role) error
	SetUserActive(ctx context.Context, q database.Queryable, id string, active bool) error
	UpdateUserPassword(ctx context.Context, q database.Queryable, id string, passwordHash string) error
	UpdateLastLogin(ctx context.Context, q database.Queryable, id string) error
	DeleteUser(ctx context.Context, q database.Queryable, id string) error
}

type companyRepository interface {
	CreateCompany(ctx context.Context, q database.Queryable, company *model.Company) error
	GetCompany(ctx context.Context, q database.Queryable, id string) (*model.Company, error)
	GetCompanies(ctx context.Context, q database.Queryable, filter model.CompanyFilter) (*model.PageResult[*model.Company], error)
	UpdateCompany(ctx context.Context, q database.Queryable, company *model.Company) error
	DeleteCompany(ctx context.Context, q database.Queryable, id string) error
}

type eventsService interface {
	CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	GetEvents(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error)
	GetSeries(ctx context.Context, filter model.EventsFilter) ([]*model.Event, error)
	UpdateEvent(ctx context.Context, id string, info *model.EventUpdate) error
	UpdateEventInstance(ctx context.Context, id string, info *model.EventUpdate) (*model.Event, error)
	CancelEvent(ctx context.Context, id string, reason string) error
	DeleteEvent(ctx context.Context, id string) error
	DeleteEventInstance(ctx context.Context, id string) error
}

type icsEncoder interface {
	Encode(w io.Writer, name string, events []*model.Event) error
}

func NewApi(
	logger *zap.SugaredLogger,
	randSource io.Reader,
	newID func() string,
	jwts jwtManager,
	refreshTokens refreshTokenRepository,
	sessionTokenLength int,
	db database.PGX,
	users userRepository,
	companies companyRepository,
	eventsService eventsService,
	ics icsEncoder,
	calendarSettings CalendarSettings,
) (*Api, error) {
	a := &Api{
		logger:             logger,
		randSource:         randSource,
		newID:              newID,
		jwts:               jwts,
		refreshTokens:      refreshTokens,
		sessionTokenLength: sessionTokenLength,
		db:                 db,
		users:              users,
		companies:          companies,
		eventsService:      eventsService,
		ics:                ics,
		calendar:           calendarSettings,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", a.healthcheckHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin", a.signInHandler)
		r.Post("/refresh", a.refreshTokenHandler)
		r.Post("/logout", a.logoutUserHandler)
	})

	r.With(a.auth, a.userCtx).Group(func(r chi.Router) {
		r.Route("/companies", func(r chi.Router) {
			r.With(a.requireRole(model.RoleSaasAdmin)).Get("/", a.getCompaniesHandler)
			r.With(a.requireRole(model.RoleSaasAdmin)).Post("/", a.createCompanyHandler)
			r.Get("/active", a.getActiveCompaniesHandler)

			r.With(a.companyCtx).Route("/{companyID}", func(r chi.Router) {
				r.Get("/", a.getCompanyHandler)
				r.With(a.requireRole(model.RoleSaasAdmin)).Put("/", a.updateCompanyHandler)
				r.With(a.requireRole(model.RoleSaasAdmin)).Delete("/", a.deleteCompanyHandler)
				r.With(a.requireRole(model.RoleCompanyAdmin)).Get("/users", a.getCompanyUsersHandler)
				r.Get("/calendar.ics", a.exportCompanyCalendarHandler)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", a.getCurrentUserHandler)

			r.With(a.requireRole(model.RoleCompanyAdmin)).Group(func(r chi.Router) {
				r.Get("/", a.getUsersHandler)
				r.Post("/", a.createUserHandler)

				r.With(a.targetUserCtx).Route("/{userID}", func(r chi.Router) {
					r.Get("/", a.getUserHandler)
					r.Put("/", a.updateUserHandler)
					r.Delete("/", a.deleteUserHandler)
					r.Post("/role", a.changeUserRoleHandler)
					r.Post("/toggle-active", a.toggleUserActiveHandler)
				})
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", a.getEventsHandler)
			r.With(a.requireRole(model.RoleModerator)).Post("/", a.createEventHandler)

			r.With(a.eventCtx).Route("/{eventID}", func(r chi.Router) {
				r.Get("/", a.getEventHandler)
				r.With(a.requireRole(model.RoleModerator)).Put("/", a.updateEventHandler)
				r.With(a.requireRole(model.RoleModerator)).Delete("/", a.deleteEventHandler)
				r.With(a.requireRole(model.RoleModerator)).Post("/cancel", a.cancelEventHandler)
			})
		})

		r.Get("/calendar", a.getCalendarHandler)
	})

	a.handler = r
}

func (a *Api) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.db.Ping(r.Context()); err != nil {
		a.logger.Errorw("healthcheck failed", "err", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
