package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/orientation/core"
	"github.com/trezcool/orientation/core/profile"
)

const profileColumns = "id, full_name, email, role, department, interests, education, experience, status, created_at, updated_at"

var profileOrderings = []string{"full_name", "email", "role", "status", "created_at", "updated_at"}

type profileRow struct {
	ID         string         `db:"id"`
	FullName   null.String    `db:"full_name"`
	Email      null.String    `db:"email"`
	Role       string         `db:"role"`
	Department null.String    `db:"department"`
	Interests  pq.StringArray `db:"interests"`
	Education  null.String    `db:"education"`
	Experience null.String    `db:"experience"`
	Status     string         `db:"status"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type profileRepository struct {
	exec sqlx.ExtContext
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(exec sqlx.ExtContext) *profileRepository {
	return &profileRepository{exec: exec}
}

func toProfileRow(p profile.Profile) profileRow {
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	return profileRow{
		ID:         p.ID,
		FullName:   null.NewString(p.FullName, p.FullName != ""),
		Email:      null.NewString(p.Email, p.Email != ""),
		Role:       p.Role,
		Department: null.NewString(p.Department, p.Department != ""),
		Interests:  interests,
		Education:  null.NewString(p.Education, p.Education != ""),
		Experience: null.NewString(p.Experience, p.Experience != ""),
		Status:     p.Status,
		CreatedAt:  p.CreatedAt.UTC(),
		UpdatedAt:  p.UpdatedAt.UTC(),
	}
}

func (row profileRow) toProfile() profile.Profile {
	interests := []string(row.Interests)
	if interests == nil {
		interests = []string{}
	}
	return profile.Profile{
		ID:         row.ID,
		FullName:   row.FullName.String,
		Email:      row.Email.String,
		Role:       row.Role,
		Department: row.Department.String,
		Interests:  interests,
		Education:  row.Education.String,
		Experience: row.Experience.String,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt.UTC(),
		UpdatedAt:  row.UpdatedAt.UTC(),
	}
}

func (repo *profileRepository) GetProfile(ctx context.Context, id string) (profile.Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return profile.Profile{}, profile.ErrNotFound
	}

	var row profileRow
	q := repo.exec.Rebind("SELECT " + profileColumns + " FROM profiles WHERE id = ?")
	if err := sqlx.GetContext(ctx, repo.exec, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, errors.Wrap(err, "finding profile by ID")
	}
	return row.toProfile(), nil
}

// profilesQuery builds the SELECT statement (with `?` bind vars) matching the filter & ordering.
func profilesQuery(filter *profile.QueryFilter, ordering []core.DBOrdering) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	if filter != nil {
		// profiles with FullName, Email or Department matching the search keyword
		if filter.Search != "" {
			val := "%" + filter.Search + "%"
			where = append(where, "(full_name ILIKE ? OR email ILIKE ? OR department ILIKE ?)")
			args = append(args, val, val, val)
		}
		if len(filter.Roles) > 0 {
			where = append(where, "role = ANY(?)")
			args = append(args, pq.Array(filter.Roles))
		}
		if filter.Status != "" {
			where = append(where, "status = ?")
			args = append(args, filter.Status)
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + profileColumns + " FROM profiles")
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	ordering = core.FilterOrderings(ordering, profileOrderings...)
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "created_at"}}
	}
	orderList := make([]string, 0, len(ordering)+1)
	for _, ord := range ordering {
		orderList = append(orderList, ord.String())
	}
	orderList = append(orderList, "id ASC")
	sb.WriteString(" ORDER BY " + strings.Join(orderList, ", "))

	return sb.String(), args
}

func (repo *profileRepository) QueryProfiles(ctx context.Context, filter *profile.QueryFilter, ordering []core.DBOrdering) ([]profile.Profile, error) {
	q, args := profilesQuery(filter, ordering)

	var rows []profileRow
	if err := sqlx.SelectContext(ctx, repo.exec, &rows, repo.exec.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying profiles")
	}

	profiles := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, row.toProfile())
	}
	return profiles, nil
}

func (repo *profileRepository) SaveProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if _, err := uuid.Parse(p.ID); err != nil {
		return profile.Profile{}, core.NewValidationError(errors.Wrap(err, "parsing profile ID"))
	}

	q := `INSERT INTO profiles (` + profileColumns + `)
VALUES (:id, :full_name, :email, :role, :department, :interests, :education, :experience, :status, :created_at, :updated_at)
ON CONFLICT (id) DO UPDATE SET
    full_name = EXCLUDED.full_name,
    email = EXCLUDED.email,
    role = EXCLUDED.role,
    department = EXCLUDED.department,
    interests = EXCLUDED.interests,
    education = EXCLUDED.education,
    experience = EXCLUDED.experience,
    status = EXCLUDED.status,
    updated_at = EXCLUDED.updated_at`

	row := toProfileRow(p)
	if _, err := sqlx.NamedExecContext(ctx, repo.exec, q, row); err != nil {
		return profile.Profile{}, errors.Wrap(err, "saving profile")
	}
	return repo.GetProfile(ctx, p.ID)
}
