package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/SergeyKozhin/event-admin-backend/internal/pkg/validator"
	"github.com/gerow/go-color"
)

const defaultCompanyColor = "#3b82f6"

type companyRequest struct {
	Name       string  `json:"name"`
	CustomerID *string `json:"customer_id"`
	Color      string  `json:"color"`
	IsActive   *bool   `json:"is_active"`
}

func (req *companyRequest) validate() (*model.CompanyCreate, map[string]string) {
	if req.Color == "" {
		req.Color = defaultCompanyColor
	}

	v := validator.New()
	v.Check(strings.TrimSpace(req.Name) != "", "name", "name must be provided")
	v.Check(validator.MaxChars(req.Name, 200), "name", "name must not be longer than 200 characters")
	v.Check(validator.Matches(req.Color, validator.HexRX), "color", "color must be valid HEX color")
	if !v.Valid() {
		return nil, v.Errors
	}

	colorRGB, err := color.HTMLToRGB(strings.TrimPrefix(req.Color, "#"))
	if err != nil {
		return nil, map[string]string{"color": "color must be valid HEX color"}
	}

	customerID := req.CustomerID
	if customerID != nil && *customerID == "" {
		customerID = nil
	}

	return &model.CompanyCreate{
		Name:       strings.TrimSpace(req.Name),
		CustomerID: customerID,
		Color:      colorRGB,
	}, nil
}

func (a *Api) getCompaniesHandler(w http.ResponseWriter, r *http.Request) {
	page, err := readPage(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	companies, err := a.companies.GetCompanies(r.Context(), a.db, model.CompanyFilter{Page: page})
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get companies: %w", err))
		return
	}

	resp, _ := mapToPageResp(companies, mapToCompanyResp)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

// getActiveCompaniesHandler lists companies usable in selectors: every
// active company for SAAS admins, the own company for everyone else.
func (a *Api) getActiveCompaniesHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	var companies []*model.Company
	switch {
	case user.Role == model.RoleSaasAdmin:
		res, err := a.companies.GetCompanies(r.Context(), a.db, model.CompanyFilter{
			ActiveOnly: true,
			Page:       model.Page{Page: 1, Size: model.MaxPageSize},
		})
		if err != nil {
			a.serverErrorResponse(w, r, fmt.Errorf("get active companies: %w", err))
			return
		}
		companies = res.Items
	case user.CompanyID != nil:
		company, err := a.companies.GetCompany(r.Context(), a.db, *user.CompanyID)
		if err != nil && !errors.Is(err, model.ErrNoRecord) {
			a.serverErrorResponse(w, r, fmt.Errorf("get company: %w", err))
			return
		}
		if company != nil && company.IsActive {
			companies = append(companies, company)
		}
	}

	resp, _ := mapSlice(companies, mapToCompanyResp)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) createCompanyHandler(w http.ResponseWriter, r *http.Request) {
	req := &companyRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	info, errs := req.validate()
	if errs != nil {
		a.failedValidationResponse(w, r, errs)
		return
	}

	company := &model.Company{
		ID:            a.newID(),
		IsActive:      req.IsActive == nil || *req.IsActive,
		CompanyCreate: *info,
	}

	if err := a.companies.CreateCompany(r.Context(), a.db, company); err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyExists):
			a.conflictResponse(w, r, "company already exists")
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("create company: %w", err))
		}
		return
	}

	resp, _ := mapToCompanyResp(company)
	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func companyFromContext(r *http.Request) (*model.Company, error) {
	company, ok := r.Context().Value(contextKeyCompany).(*model.Company)
	if !ok {
		return nil, errCantRetrieveCompany
	}
	return company, nil
}

func (a *Api) getCompanyHandler(w http.ResponseWriter, r *http.Request) {
	company, err := companyFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	resp, _ := mapToCompanyResp(company)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	company, err := companyFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &companyRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	info, errs := req.validate()
	if errs != nil {
		a.failedValidationResponse(w, r, errs)
		return
	}

	updated := *company
	updated.CompanyCreate = *info
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}

	if err := a.companies.UpdateCompany(r.Context(), a.db, &updated); err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("update company: %w", err))
		return
	}

	res, err := a.companies.GetCompany(r.Context(), a.db, company.ID)
	if err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("get company: %w", err))
		return
	}

	resp, _ := mapToCompanyResp(res)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteCompanyHandler(w http.ResponseWriter, r *http.Request) {
	company, err := companyFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.companies.DeleteCompany(r.Context(), a.db, company.ID); err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("delete company: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) getCompanyUsersHandler(w http.ResponseWriter, r *http.Request) {
	company, err := companyFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	page, err := readPage(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	a.writeUsersPage(w, r, model.UserSearchFilter{
		Query:     r.URL.Query().Get("q"),
		CompanyID: &company.ID,
		Page:      page,
	})
}

func (a *Api) exportCompanyCalendarHandler(w http.ResponseWriter, r *http.Request) {
	company, err := companyFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	events, err := a.eventsService.GetSeries(r.Context(), model.EventsFilter{
		CompanyIDs: []string{company.ID},
	})
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get company events: %w", err))
		return
	}

	var buf bytes.Buffer
	if err := a.ics.Encode(&buf, company.Name, events); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("encode calendar: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", company.ID+".ics"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		a.logger.Debugw("write calendar", "company", company.ID, "err", err)
	}
}
