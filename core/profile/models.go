package profile

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/orientation/core"
)

// Roles
const (
	RoleStudent   = "student"
	RoleCounselor = "counselor"
	RoleAdmin     = "admin"
)

// Statuses
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	AllRoles    = []string{RoleStudent, RoleCounselor, RoleAdmin}
	AllStatuses = []string{StatusPending, StatusActive, StatusInactive}

	Roles = []Role{
		{Name: "Élève", Value: RoleStudent},
		{Name: "Conseiller", Value: RoleCounselor},
		{Name: "Administrateur", Value: RoleAdmin},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Profile is the stored record of a user's role, status & biographical fields.
// Its ID is the user's ID in the authentication backend.
type Profile struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	Interests  []string  `json:"interests"`
	Education  string    `json:"education"`
	Experience string    `json:"experience"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

func (p Profile) IsCounselor() bool { return p.Role == RoleCounselor || p.IsAdmin() }
func (p Profile) IsAdmin() bool     { return p.Role == RoleAdmin }
func (p Profile) IsActive() bool    { return p.Status != StatusInactive }

// DisplayName returns the full name, falling back to the email.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}

// UpdateProfile defines what information may be provided during onboarding or by an admin.
// Role & Status are only honored when set by an admin.
type UpdateProfile struct {
	FullName   string   `json:"full_name" validate:"omitempty,max=120"`
	Email      string   `json:"email" validate:"omitempty,email"`
	Department string   `json:"department" validate:"omitempty,max=120"`
	Interests  []string `json:"interests" validate:"omitempty,max=20,dive,max=60"`
	Education  string   `json:"education" validate:"omitempty,max=500"`
	Experience string   `json:"experience" validate:"omitempty,max=2000"`
	Role       string   `json:"role" validate:"omitempty,profilerole"`
	Status     string   `json:"status" validate:"omitempty,profilestatus"`
}

func (up *UpdateProfile) Validate(validate *validator.Validate) error {
	up.FullName = core.CleanString(up.FullName)
	up.Email = core.CleanString(up.Email, true /* lower */)
	up.Department = core.CleanString(up.Department)
	up.Interests = core.CleanStrings(up.Interests)
	up.Education = core.CleanString(up.Education)
	up.Experience = core.CleanString(up.Experience)
	up.Role = core.CleanString(up.Role, true /* lower */)
	up.Status = core.CleanString(up.Status, true /* lower */)
	return validate.Struct(up)
}

// Apply returns a copy of `p` updated with the provided fields.
func (up UpdateProfile) Apply(p Profile) Profile {
	if up.FullName != "" {
		p.FullName = up.FullName
	}
	if up.Email != "" {
		p.Email = up.Email
	}
	if up.Department != "" {
		p.Department = up.Department
	}
	if up.Interests != nil {
		p.Interests = up.Interests
	}
	if up.Education != "" {
		p.Education = up.Education
	}
	if up.Experience != "" {
		p.Experience = up.Experience
	}
	if up.Role != "" {
		p.Role = up.Role
	}
	if up.Status != "" {
		p.Status = up.Status
	}
	return p
}

type QueryFilter struct {
	Search string   `query:"search"`
	Roles  []string `query:"role"`
	Status string   `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.Status == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Roles = core.CleanStrings(qf.Roles, true /* lower */)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
}
