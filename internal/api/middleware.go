package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/SergeyKozhin/event-admin-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const (
	contextKeyID         = contextKey("id")
	contextKeyUser       = contextKey("user")
	contextKeyCompany    = contextKey("company")
	contextKeyTargetUser = contextKey("target_user")
	contextKeyEvent      = contextKey("event")
)

var (
	errCantRetrieveID      = errors.New("can't retrieve id")
	errCantRetrieveUser    = errors.New("can't retrieve user from context")
	errCantRetrieveCompany = errors.New("can't retrieve company from context")
	errCantRetrieveEvent   = errors.New("can't retrieve event from context")
)

func (a *Api) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			a.unauthorizedResponse(w, r, errors.New("no token provided"))
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		id, err := a.jwts.GetIdFromToken(token)
		if err != nil {
			invalidTokenErr := &jwt.InvalidTokenError{}
			switch {
			case errors.As(err, &invalidTokenErr):
				a.unauthorizedResponse(w, r, invalidTokenErr)
			default:
				a.serverErrorResponse(w, r, err)
			}
			return
		}

		idContext := context.WithValue(r.Context(), contextKeyID, id)
		next.ServeHTTP(w, r.WithContext(idContext))
	})
}

func (a *Api) userCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := r.Context().Value(contextKeyID).(string)
		if !ok {
			a.serverErrorResponse(w, r, errCantRetrieveID)
			return
		}

		user, err := a.users.GetUserByID(r.Context(), a.db, id)
		if err != nil {
			switch {
			case errors.Is(err, model.ErrNoRecord):
				a.forbiddenResponse(w, r, "user does not exists")
			default:
				a.serverErrorResponse(w, r, err)
			}
			return
		}

		if !user.IsActive {
			a.forbiddenResponse(w, r, "user is deactivated")
			return
		}

		userCtx := context.WithValue(r.Context(), contextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(userCtx))
	})
}

func currentUser(r *http.Request) (*model.User, error) {
	user, ok := r.Context().Value(contextKeyUser).(*model.User)
	if !ok {
		return nil, errCantRetrieveUser
	}
	return user, nil
}

func (a *Api) requireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := currentUser(r)
			if err != nil {
				a.serverErrorResponse(w, r, err)
				return
			}

			if !user.Role.AtLeast(role) {
				a.forbiddenResponse(w, r, fmt.Sprintf("%v role required", role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// companyCtx loads the company from the URL. Companies of other tenants are
// reported as missing.
func (a *Api) companyCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(r)
		if err != nil {
			a.serverErrorResponse(w, r, err)
			return
		}

		companyID := chi.URLParam(r, "companyID")
		if !user.CanAccessCompany(companyID) {
			a.notFoundResponse(w, r)
			return
		}

		company, err := a.companies.GetCompany(r.Context(), a.db, companyID)
		if err != nil {
			switch {
			case errors.Is(err, model.ErrNoRecord):
				a.notFoundResponse(w, r)
			default:
				a.serverErrorResponse(w, r, fmt.Errorf("get company: %w", err))
			}
			return
		}

		companyCtx := context.WithValue(r.Context(), contextKeyCompany, company)
		next.ServeHTTP(w, r.WithContext(companyCtx))
	})
}

// targetUserCtx loads the user from the URL if the current user may manage it.
func (a *Api) targetUserCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(r)
		if err != nil {
			a.serverErrorResponse(w, r, err)
			return
		}

		target, err := a.users.GetUserByID(r.Context(), a.db, chi.URLParam(r, "userID"))
		if err != nil {
			switch {
			case errors.Is(err, model.ErrNoRecord):
				a.notFoundResponse(w, r)
			default:
				a.serverErrorResponse(w, r, fmt.Errorf("get user: %w", err))
			}
			return
		}

		if !canManageUser(user, target) {
			a.notFoundResponse(w, r)
			return
		}

		targetCtx := context.WithValue(r.Context(), contextKeyTargetUser, target)
		next.ServeHTTP(w, r.WithContext(targetCtx))
	})
}

func canManageUser(user, target *model.User) bool {
	if user.Role == model.RoleSaasAdmin {
		return true
	}
	if target.Role == model.RoleSaasAdmin || target.CompanyID == nil {
		return false
	}
	return user.CanAccessCompany(*target.CompanyID)
}

func targetUser(r *http.Request) (*model.User, error) {
	user, ok := r.Context().Value(contextKeyTargetUser).(*model.User)
	if !ok {
		return nil, errCantRetrieveUser
	}
	return user, nil
}

func (a *Api) eventCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(r)
		if err != nil {
			a.serverErrorResponse(w, r, err)
			return
		}

		event, err := a.eventsService.GetEventByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			switch {
			case errors.Is(err, model.ErrNoRecord):
				a.notFoundResponse(w, r)
			default:
				a.serverErrorResponse(w, r, fmt.Errorf("get event: %w", err))
			}
			return
		}

		if !user.CanAccessCompany(event.CompanyID) {
			a.notFoundResponse(w, r)
			return
		}

		eventCtx := context.WithValue(r.Context(), contextKeyEvent, event)
		next.ServeHTTP(w, r.WithContext(eventCtx))
	})
}
