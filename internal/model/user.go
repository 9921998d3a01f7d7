package model

import "time"

type Role string

const (
	RoleSaasAdmin    Role = "SAAS_ADMIN"
	RoleCompanyAdmin Role = "COMPANY_ADMIN"
	RoleModerator    Role = "MODERATOR"
	RoleViewer       Role = "VIEWER"
)

var Roles = []Role{RoleSaasAdmin, RoleCompanyAdmin, RoleModerator, RoleViewer}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// rank orders roles by privilege, higher is stronger.
func (r Role) rank() int {
	switch r {
	case RoleSaasAdmin:
		return 3
	case RoleCompanyAdmin:
		return 2
	case RoleModerator:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r grants at least the privileges of other.
func (r Role) AtLeast(other Role) bool {
	return r.rank() >= other.rank()
}

type UserCreate struct {
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CompanyID    *string
}

type User struct {
	ID        string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	LastLogin *time.Time
	UserCreate
}

type UserUpdate struct {
	Email     string
	Name      string
	CompanyID *string
}

type UserSearchFilter struct {
	Query     string
	CompanyID *string
	Page
}

// CanAccessCompany reports whether the user may see data owned by companyID.
func (u *User) CanAccessCompany(companyID string) bool {
	if u.Role == RoleSaasAdmin {
		return true
	}
	return u.CompanyID != nil && *u.CompanyID == companyID
}
