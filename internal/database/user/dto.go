package user

import (
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
)

type userDTO struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CompanyID    *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLogin    *time.Time
}

func mapToUser(dto *userDTO) *model.User {
	return &model.User{
		ID:        dto.ID,
		IsActive:  dto.IsActive,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		LastLogin: dto.LastLogin,
		UserCreate: model.UserCreate{
			Email:        dto.Email,
			Name:         dto.Name,
			PasswordHash: dto.PasswordHash,
			Role:         model.Role(dto.Role),
			CompanyID:    dto.CompanyID,
		},
	}
}
