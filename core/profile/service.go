package profile

import (
	"context"
	"errors"
	"time"

	"github.com/kat-co/vala"

	"github.com/trezcool/orientation/core"
)

var (
	// errors
	ErrNotFound = errors.New("profil introuvable")
)

// Repository is the data-access contract for profiles.
type Repository interface {
	GetProfile(ctx context.Context, id string) (Profile, error)
	// QueryProfiles applies AND operation on available QueryFilter fields.
	// QueryFilter.Search does a case-insensitive match on one of Profile.FullName, Profile.Email or Profile.Department.
	QueryProfiles(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Profile, error)
	// SaveProfile inserts the profile or replaces the stored one with the same ID.
	SaveProfile(ctx context.Context, p Profile) (Profile, error)
}

type Service struct {
	repo    Repository
	nowFunc func() time.Time
}

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo, nowFunc: time.Now}
}

func (svc *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	if err := vala.BeginValidation().Validate(vala.StringNotEmpty(id, "id")).Check(); err != nil {
		return Profile{}, ErrNotFound
	}
	return svc.repo.GetProfile(ctx, id)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Profile, error) {
	ordering = core.FilterOrderings(ordering, "full_name", "email", "role", "status", "created_at", "updated_at")
	return svc.repo.QueryProfiles(ctx, filter, ordering)
}

// Onboard creates the profile of a newly authenticated user, or updates it if it already exists.
// The role & status of an existing profile are left untouched; new profiles are active students.
func (svc *Service) Onboard(ctx context.Context, id, email string, up UpdateProfile) (Profile, error) {
	if err := vala.BeginValidation().Validate(vala.StringNotEmpty(id, "id")).Check(); err != nil {
		return Profile{}, core.NewValidationError(err)
	}
	up.Role, up.Status = "", ""

	now := svc.nowFunc().UTC()
	p, err := svc.repo.GetProfile(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		p = Profile{
			ID:        id,
			Email:     core.CleanString(email, true /* lower */),
			Role:      RoleStudent,
			Status:    StatusActive,
			Interests: []string{},
			CreatedAt: now,
		}
	default:
		return Profile{}, err
	}

	p = up.Apply(p)
	p.UpdatedAt = now
	return svc.repo.SaveProfile(ctx, p)
}

// Update applies an admin update on an existing profile.
func (svc *Service) Update(ctx context.Context, id string, up UpdateProfile) (Profile, error) {
	p, err := svc.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	p = up.Apply(p)
	p.UpdatedAt = svc.nowFunc().UTC()
	return svc.repo.SaveProfile(ctx, p)
}
