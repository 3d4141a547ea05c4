package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/orientation/core"
	"github.com/trezcool/orientation/core/profile"
)

type profileRepository struct {
	db *profileTable
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *DB) *profileRepository {
	return &profileRepository{db: db.profile}
}

func (repo *profileRepository) GetProfile(_ context.Context, id string) (profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return copyProfile(*p), nil
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (repo *profileRepository) QueryProfiles(_ context.Context, filter *profile.QueryFilter, ordering []core.DBOrdering) ([]profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	profiles := make([]profile.Profile, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		if matches(*p, filter) {
			profiles = append(profiles, copyProfile(*p))
		}
	}

	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "created_at"}}
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		for _, ord := range ordering {
			c := compareProfiles(profiles[i], profiles[j], ord.Field)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

func (repo *profileRepository) SaveProfile(_ context.Context, p profile.Profile) (profile.Profile, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	p = copyProfile(p)
	repo.db.table[p.ID] = &p
	return copyProfile(p), nil
}

func matches(p profile.Profile, filter *profile.QueryFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.FullName), search) &&
			!strings.Contains(strings.ToLower(p.Email), search) &&
			!strings.Contains(strings.ToLower(p.Department), search) {
			return false
		}
	}
	if len(filter.Roles) > 0 {
		found := false
		for _, role := range filter.Roles {
			if p.Role == role {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Status != "" && p.Status != filter.Status {
		return false
	}
	return true
}

func compareProfiles(a, b profile.Profile, field string) int {
	switch field {
	case "full_name":
		return strings.Compare(a.FullName, b.FullName)
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "role":
		return strings.Compare(a.Role, b.Role)
	case "status":
		return strings.Compare(a.Status, b.Status)
	case "updated_at":
		return compareTimes(a.UpdatedAt.UnixNano(), b.UpdatedAt.UnixNano())
	default:
		return compareTimes(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	}
}

func compareTimes(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// copyProfile detaches the interests slice from the stored record.
func copyProfile(p profile.Profile) profile.Profile {
	if p.Interests != nil {
		p.Interests = append([]string{}, p.Interests...)
	}
	return p
}
