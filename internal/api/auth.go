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

var errInvalidCredentials = errors.New("invalid email or password")

func (a *Api) signInHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(validator.Matches(req.Email, validator.EmailRX), "email", "email must be valid")
	v.Check(req.Password != "", "password", "password must be provided")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := a.users.GetUserByEmail(r.Context(), a.db, strings.ToLower(req.Email))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.unauthorizedResponse(w, r, errInvalidCredentials)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("get user by email: %w", err))
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			a.unauthorizedResponse(w, r, errInvalidCredentials)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("compare password: %w", err))
		}
		return
	}

	if !user.IsActive {
		a.forbiddenResponse(w, r, "user is deactivated")
		return
	}

	if err := a.users.UpdateLastLogin(r.Context(), a.db, user.ID); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("update last login: %w", err))
		return
	}

	tokens, err := a.generateTokens(r.Context(), user.ID)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	uResp, _ := mapToUserResp(user)
	resp := &struct {
		AccessToken  string    `json:"access_token"`
		RefreshToken string    `json:"refresh_token"`
		User         *userResp `json:"user"`
	}{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         uResp,
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	input := &struct {
		RefreshToken string `json:"refresh_token"`
	}{}

	if err := a.readJSON(w, r, input); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	id, err := a.refreshTokens.Get(r.Context(), input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.unauthorizedResponse(w, r, errors.New("no such session"))
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	accessToken, err := a.jwts.CreateToken(id)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	newRefreshToken := ""
	for {
		newRefreshToken, err = a.generateRandomString(a.sessionTokenLength)
		if err != nil {
			a.serverErrorResponse(w, r, err)
			return
		}

		if err := a.refreshTokens.Refresh(r.Context(), input.RefreshToken, newRefreshToken); err != nil {
			if errors.Is(err, model.ErrAlreadyExists) {
				continue
			}
			if errors.Is(err, model.ErrNoRecord) {
				a.unauthorizedResponse(w, r, errors.New("no such session"))
				return
			}
			a.serverErrorResponse(w, r, err)
			return
		}

		break
	}

	response := &tokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}

	if err := a.writeJSON(w, http.StatusOK, response, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	input := &struct {
		RefreshToken string `json:"refresh_token"`
	}{}

	if err := a.readJSON(w, r, input); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.refreshTokens.Delete(r.Context(), input.RefreshToken); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.unauthorizedResponse(w, r, errors.New("no such session"))
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
