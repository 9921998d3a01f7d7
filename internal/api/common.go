package api

import (
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

const dateFormat = "2006-01-02"

type pageResp[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"total_count"`
	PageCount       int  `json:"page_count"`
	CurrentPage     int  `json:"current_page"`
	PageSize        int  `json:"page_size"`
	HasPreviousPage bool `json:"has_previous_page"`
	HasNextPage     bool `json:"has_next_page"`
}

func mapToPageResp[A any, B any](p *model.PageResult[A], mapFn func(A) (B, error)) (*pageResp[B], error) {
	items, err := mapSlice(p.Items, mapFn)
	if err != nil {
		return nil, err
	}

	return &pageResp[B]{
		Items:           items,
		TotalCount:      p.TotalCount,
		PageCount:       p.PageCount(),
		CurrentPage:     p.Page.Page,
		PageSize:        p.Size,
		HasPreviousPage: p.HasPreviousPage(),
		HasNextPage:     p.HasNextPage(),
	}, nil
}

type userResp struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      model.Role `json:"role"`
	CompanyID *string    `json:"company_id"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func mapToUserResp(user *model.User) (*userResp, error) {
	return &userResp{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		LastLogin: user.LastLogin,
	}, nil
}

type companyResp struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CustomerID *string   `json:"customer_id"`
	Color      string    `json:"color"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func mapToCompanyResp(company *model.Company) (*companyResp, error) {
	return &companyResp{
		ID:         company.ID,
		Name:       company.Name,
		CustomerID: company.CustomerID,
		Color:      model.ColorHex(company.Color),
		IsActive:   company.IsActive,
		CreatedAt:  company.CreatedAt,
		UpdatedAt:  company.UpdatedAt,
	}, nil
}

type eventResp struct {
	ID           string           `json:"id"`
	CompanyID    string           `json:"company_id"`
	Type         model.EventType  `json:"type"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Location     string           `json:"location"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	RepeatType   model.RepeatType `json:"repeat_type"`
	IsActive     bool             `json:"is_active"`
	CancelReason string           `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func mapToEventResp(event *model.Event) (*eventResp, error) {
	return &eventResp{
		ID:           event.ID,
		CompanyID:    event.CompanyID,
		Type:         event.Type,
		Title:        event.Title,
		Description:  event.Description,
		Location:     event.Location,
		StartDate:    event.StartDate,
		EndDate:      event.EndDate,
		RepeatType:   event.RepeatType,
		IsActive:     event.IsActive,
		CancelReason: event.CancelReason,
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
	}, nil
}
