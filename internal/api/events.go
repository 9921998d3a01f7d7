package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/SergeyKozhin/event-admin-backend/internal/pkg/validator"
)

const (
	scopeSeries   = "series"
	scopeInstance = "instance"
)

type eventRequest struct {
	CompanyID   string           `json:"company_id"`
	Type        model.EventType  `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	RepeatType  model.RepeatType `json:"repeat_type"`
}

func (req *eventRequest) validate(user *model.User) *validator.Validator {
	v := validator.New()

	v.Check(req.CompanyID != "", "company_id", "company_id must be provided")
	v.Check(user.CanAccessCompany(req.CompanyID), "company_id", "user does not have access to company")
	v.Check(req.Type.Valid(), "type", "type must be one of wedding, engagement, henna, other")
	v.Check(strings.TrimSpace(req.Title) != "", "title", "title must be provided")
	v.Check(validator.MaxChars(req.Title, 200), "title", "title must not be longer than 200 characters")
	v.Check(!req.StartDate.IsZero(), "start_date", "start_date must be provided")
	v.Check(!req.EndDate.IsZero(), "end_date", "end_date must be provided")
	v.Check(!req.EndDate.Before(req.StartDate), "end_date", "end date must not be before start date")
	v.Check(req.RepeatType >= model.RepeatTypeNone && req.RepeatType <= model.RepeatTypeEveryYear, "repeat_type", "unknown repeat type")

	return v
}

func eventFromContext(r *http.Request) (*model.Event, error) {
	event, ok := r.Context().Value(contextKeyEvent).(*model.Event)
	if !ok {
		return nil, errCantRetrieveEvent
	}
	return event, nil
}

// eventsFilter builds the tenant scoped filter for the current user. Users
// bound to a company never see other companies.
func eventsFilter(user *model.User, companyIDs []string) (model.EventsFilter, error) {
	for _, id := range companyIDs {
		if !user.CanAccessCompany(id) {
			return model.EventsFilter{}, fmt.Errorf("no access for company %v", id)
		}
	}

	if user.Role != model.RoleSaasAdmin && len(companyIDs) == 0 {
		if user.CompanyID == nil {
			return model.EventsFilter{}, errors.New("user is not bound to a company")
		}
		companyIDs = []string{*user.CompanyID}
	}

	return model.EventsFilter{CompanyIDs: companyIDs}, nil
}

func (a *Api) getEventsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	filter, err := eventsFilter(user, r.URL.Query()["company_id"])
	if err != nil {
		a.forbiddenResponse(w, r, err.Error())
		return
	}

	query := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *time.Time
	}{
		{"from", &filter.From},
		{"to", &filter.To},
	} {
		v := query.Get(p.name)
		if v == "" {
			continue
		}
		*p.dst, err = parseDate(v, a.calendar.Location)
		if err != nil {
			a.badRequestResponse(w, r, err)
			return
		}
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && !filter.From.Before(filter.To) {
		a.badRequestResponse(w, r, errors.New("from must be before to"))
		return
	}

	filter.ActiveOnly = query.Get("active_only") == "true"

	events, err := a.eventsService.GetEvents(r.Context(), filter)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get events: %w", err))
		return
	}

	resp, _ := mapSlice(events, mapToEventResp)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) createEventHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &eventRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if v := req.validate(user); !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	event, err := a.eventsService.CreateEvent(r.Context(), &model.EventCreate{
		CompanyID:   req.CompanyID,
		Type:        req.Type,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		RepeatType:  req.RepeatType,
	})
	if err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("create event: %w", err))
		return
	}

	resp, _ := mapToEventResp(event)
	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	event, err := eventFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	resp, _ := mapToEventResp(event)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func readScope(r *http.Request) (string, error) {
	scope := r.URL.Query().Get("scope")
	switch scope {
	case "":
		return scopeSeries, nil
	case scopeSeries, scopeInstance:
		return scope, nil
	default:
		return "", fmt.Errorf("scope must be %q or %q", scopeSeries, scopeInstance)
	}
}

// updateEventHandler edits the whole series by default; scope=instance
// detaches the addressed occurrence into its own event.
func (a *Api) updateEventHandler(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}
	event, err := eventFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	scope, err := readScope(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req := &eventRequest{RepeatType: event.RepeatType}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if v := req.validate(user); !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	update := &model.EventUpdate{
		CompanyID:   req.CompanyID,
		Type:        req.Type,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	id := event.ID
	if scope == scopeInstance {
		detached, err := a.eventsService.UpdateEventInstance(r.Context(), event.ID, update)
		if err != nil {
			a.storageErrorResponse(w, r, fmt.Errorf("update event instance: %w", err))
			return
		}
		id = detached.ID
	} else if err := a.eventsService.UpdateEvent(r.Context(), event.ID, update); err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("update event: %w", err))
		return
	}

	a.writeEvent(w, r, id)
}

func (a *Api) writeEvent(w http.ResponseWriter, r *http.Request, id string) {
	baseID := id
	if i := strings.LastIndex(id, "_"); i >= 0 {
		baseID = id[:i]
	}

	event, err := a.eventsService.GetEventByID(r.Context(), baseID)
	if err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("get event: %w", err))
		return
	}

	resp, _ := mapToEventResp(event)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	event, err := eventFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	scope, err := readScope(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if scope == scopeInstance {
		err = a.eventsService.DeleteEventInstance(r.Context(), event.ID)
	} else {
		err = a.eventsService.DeleteEvent(r.Context(), event.ID)
	}
	if err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("delete event: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) cancelEventHandler(w http.ResponseWriter, r *http.Request) {
	event, err := eventFromContext(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		Reason string `json:"reason"`
	}{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(strings.TrimSpace(req.Reason) != "", "reason", "reason must be provided")
	v.Check(validator.MaxChars(req.Reason, 500), "reason", "reason must not be longer than 500 characters")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := a.eventsService.CancelEvent(r.Context(), event.ID, strings.TrimSpace(req.Reason)); err != nil {
		a.storageErrorResponse(w, r, fmt.Errorf("cancel event: %w", err))
		return
	}

	a.writeEvent(w, r, event.ID)
}
