package company

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/gerow/go-color"
)

type companyDTO struct {
	ID         string
	Name       string
	CustomerID *string
	Color      string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func mapToCompany(d *companyDTO) (*model.Company, error) {
	colorRGB, err := color.HTMLToRGB(d.Color)
	if err != nil {
		return nil, fmt.Errorf("map color from %v: %w", d.Color, err)
	}

	return &model.Company{
		ID:        d.ID,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		CompanyCreate: model.CompanyCreate{
			Name:       d.Name,
			CustomerID: d.CustomerID,
			Color:      colorRGB,
		},
	}, nil
}

func colorToHTML(c color.RGB) string {
	return model.ColorHex(c)
}
