package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/SergeyKozhin/event-admin-backend/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

func (a *Api) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	resp, _ := mapToUserResp(user)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getUsersHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	page, err := readPage(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	filter := model.UserSearchFilter{
		Query: r.URL.Query().Get("q"),
		Page:  page,
	}

	if companyID := r.URL.Query().Get("company_id"); companyID != "" {
		if !user.CanAccessCompany(companyID) {
			a.forbiddenResponse(w, r, fmt.Sprintf("no access for company %v", companyID))
			return
		}
		filter.CompanyID = &companyID
	}
	if user.Role != model.RoleSaasAdmin {
		filter.CompanyID = user.CompanyID
	}

	a.writeUsersPage(w, r, filter)
}

func (a *Api) writeUsersPage(w http.ResponseWriter, r *http.Request, filter model.UserSearchFilter) {
	users, err := a.users.SearchUsers(r.Context(), a.db, filter)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("search users: %w", err))
		return
	}

	resp, _ := mapToPageResp(users, mapToUserResp)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

// checkAssignment validates the role and company a user may be given by actor.
func checkAssignment(v *validator.Validator, actor *model.User, role model.Role, companyID *string) {
	v.Check(role.Valid(), "role", "role must be one of SAAS_ADMIN, COMPANY_ADMIN, MODERATOR, VIEWER")
	v.Check(actor.Role.AtLeast(role), "role", "can't grant a role above your own")

	if role == model.RoleSaasAdmin {
		return
	}

	v.Check(companyID != nil && *companyID != "", "company_id", "company_id must be provided")
	if companyID != nil && *companyID != "" {
		v.Check(validator.Matches(*companyID, validator.UUIDRX), "company_id", "company_id must be a valid id")
		v.Check(actor.CanAccessCompany(*companyID), "company_id", "no access for company")
	}
}

func (a *Api) createUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		Email     string     `json:"email"`
		Name      string     `json:"name"`
		Password  string     `json:"password"`
		Role      model.Role `json:"role"`
		CompanyID *string    `json:"company_id"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(validator.Matches(req.Email, validator.EmailRX), "email", "email must be valid")
	v.Check(strings.TrimSpace(req.Name) != "", "name", "name must be provided")
	v.Check(validator.MaxChars(req.Name, 200), "name", "name must not be longer than 200 characters")
	v.Check(len(req.Password) >= minPasswordLength, "password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	checkAssignment(v, actor, req.Role, req.CompanyID)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("hash password: %w", err))
		return
	}

	companyID := req.CompanyID
	if req.Role == model.RoleSaasAdmin {
		companyID = nil
	}

	user := &model.User{
		ID:       a.newID(),
		IsActive: true,
		UserCreate: model.UserCreate{
			Email:        strings.ToLower(req.Email),
			Name:         strings.TrimSpace(req.Name),
			PasswordHash: string(hash),
			Role:         req.Role,
			CompanyID:    companyID,
		},
	}

	if err := a.users.CreateUser(r.Context(), a.db, user); err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyExists):
			a.conflictResponse(w, r, "email is already in use")
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("create user: %w", err))
		}
		return
	}

	resp, _ := mapToUserResp(user)
	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getUserHandler(w http.ResponseWriter, r *http.Request) {
	target, err := targetUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	resp, _ := mapToUserResp(target)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}
	target, err := targetUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		Email     string  `json:"email"`
		Name      string  `json:"name"`
		Password  string  `json:"password"`
		CompanyID *string `json:"company_id"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(validator.Matches(req.Email, validator.EmailRX), "email", "email must be valid")
	v.Check(strings.TrimSpace(req.Name) != "", "name", "name must be provided")
	v.Check(validator.MaxChars(req.Name, 200), "name", "name must not be longer than 200 characters")
	if req.Password != "" {
		v.Check(len(req.Password) >= minPasswordLength, "password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	checkAssignment(v, actor, target.Role, req.CompanyID)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	companyID := req.CompanyID
	if target.Role == model.RoleSaasAdmin {
		companyID = nil
	}

	update := &model.UserUpdate{
		Email:     strings.ToLower(req.Email),
		Name:      strings.TrimSpace(req.Name),
		CompanyID: companyID,
	}

	if err := a.users.UpdateUser(r.Context(), a.db, target.ID, update); err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyExists):
			a.conflictResponse(w, r, "email is already in use")
		default:
			a.storageErrorResponse(w, r, fmt.Errorf("update user: %w", err))
		}
		return
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			a.serverErrorResponse(w, r, fmt.Errorf("hash password: %w", err))
			return
		}

		if err := a.users.UpdateUserPassword(r.Context(), a.db, target.ID, string(hash)); err != nil {
			a.storageErrorResponse(w, r, fmt.Errorf("update password: %w", err))
			return
		}

		if err := a.refreshTokens.DeleteByUserID(r.Context(), target.ID); err != nil {
			a.serverErrorResponse(w, r, fmt.Errorf("revoke sessions: %w", err))
			return
		}
	}

	a.writeUser(w, r, target.ID, http.StatusOK)
}

func (a *Api) writeUser(w http.ResponseWriter, r *http.Request, id string, status int) {
	user, err := a.users.GetUserByID(r.Context(), a.db, id)
	if err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("get user: %w", err))
		return
	}

	resp, _ := mapToUserResp(user)
	if err := a.writeJSON(w, status, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}
	target, err := targetUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if actor.ID == target.ID {
		a.forbiddenResponse(w, r, "can't delete yourself")
		return
	}

	if err := a.users.DeleteUser(r.Context(), a.db, target.ID); err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("delete user: %w", err))
		return
	}

	if err := a.refreshTokens.DeleteByUserID(r.Context(), target.ID); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("revoke sessions: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) changeUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}
	target, err := targetUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		Role model.Role `json:"role"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if actor.ID == target.ID {
		a.forbiddenResponse(w, r, "can't change your own role")
		return
	}

	v := validator.New()
	checkAssignment(v, actor, req.Role, target.CompanyID)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := a.users.UpdateUserRole(r.Context(), a.db, target.ID, req.Role); err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("update role: %w", err))
		return
	}

	a.writeUser(w, r, target.ID, http.StatusOK)
}

func (a *Api) toggleUserActiveHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}
	target, err := targetUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if actor.ID == target.ID {
		a.forbiddenResponse(w, r, "can't deactivate yourself")
		return
	}

	active := !target.IsActive
	if err := a.users.SetUserActive(r.Context(), a.db, target.ID, active); err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("set user active: %w", err))
		return
	}

	if !active {
		if err := a.refreshTokens.DeleteByUserID(r.Context(), target.ID); err != nil {
			a.serverErrorResponse(w, r, fmt.Errorf("revoke sessions: %w", err))
			return
		}
	}

	a.writeUser(w, r, target.ID, http.StatusOK)
}
