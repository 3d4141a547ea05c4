package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/orientation/core"
	"github.com/trezcool/orientation/core/assessment"
	"github.com/trezcool/orientation/core/profile"
	"github.com/trezcool/orientation/storage/database"
)

func TestProfilesQuery(t *testing.T) {
	base := "SELECT " + profileColumns + " FROM profiles"

	tests := []struct {
		name     string
		filter   *profile.QueryFilter
		ordering []core.DBOrdering
		wantQ    string
		wantArgs []interface{}
	}{
		{
			name:  "no filter",
			wantQ: base + " ORDER BY created_at DESC, id ASC",
		},
		{
			name:     "all filters",
			filter:   &profile.QueryFilter{Search: "goma", Roles: []string{"student"}, Status: "active"},
			ordering: []core.DBOrdering{{Field: "full_name", Ascending: true}},
			wantQ: base + " WHERE (full_name ILIKE ? OR email ILIKE ? OR department ILIKE ?)" +
				" AND role = ANY(?) AND status = ? ORDER BY full_name ASC, id ASC",
			wantArgs: []interface{}{"%goma%", "%goma%", "%goma%", pq.Array([]string{"student"}), "active"},
		},
		{
			name:     "unknown orderings are dropped",
			ordering: []core.DBOrdering{{Field: "password; DROP TABLE profiles"}, {Field: "email", Ascending: true}},
			wantQ:    base + " ORDER BY email ASC, id ASC",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := profilesQuery(tt.filter, tt.ordering)
			assert.Equal(t, tt.wantQ, q)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestTestResultRow(t *testing.T) {
	res := assessment.TestResult{
		ID:        "6f1c2a6e-0d4b-4f57-9c39-6b1f0a0e3f11",
		UserID:    "0e7b2d44-1c9a-4f0e-8a39-9d3c5f1b2a77",
		Scores:    assessment.LearningStyleScores{Visual: 12, Kinesthetic: 4},
		CreatedAt: time.Date(2026, time.May, 2, 8, 0, 0, 123456789, time.UTC),
	}

	row, err := toTestResultRow(res)
	require.NoError(t, err)
	assert.Equal(t, "learning_style", row.TestType)
	assert.Equal(t, time.Date(2026, time.May, 2, 8, 0, 0, 123456000, time.UTC), row.CreatedAt)
	assert.JSONEq(t, "[]", string(row.Answers))

	got, err := row.toTestResult()
	require.NoError(t, err)
	assert.Equal(t, res.Scores, got.Scores)
	assert.Equal(t, row.CreatedAt, got.CreatedAt)
	assert.Empty(t, got.Answers)
}

// openTestDB connects to the configured database, skipping the test when none is reachable.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	conf := *core.Conf
	conf.Storage.Backend = core.StoragePostgres

	db, err := database.Open(&conf)
	if err != nil {
		t.Skipf("no database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		t.Skipf("no database: %v", err)
	}
	require.NoError(t, database.Migrate(db.DB))
	t.Cleanup(func() {
		_, _ = db.Exec("TRUNCATE profiles CASCADE")
		_ = db.Close()
	})
	return db
}

func TestRepositories_postgres(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)
	results := NewTestResultRepository(db)

	now := time.Now().UTC()
	id := uuid.New().String()

	p, err := profiles.SaveProfile(ctx, profile.Profile{
		ID: id, FullName: "Grace Mbuyi", Email: "grace@example.cd", Role: profile.RoleStudent,
		Status: profile.StatusActive, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{}, p.Interests)

	p.Department = "Kinshasa"
	p.Interests = []string{"maths", "design"}
	_, err = profiles.SaveProfile(ctx, p)
	require.NoError(t, err)

	found, err := profiles.QueryProfiles(ctx, &profile.QueryFilter{Search: "KINSHASA", Roles: []string{profile.RoleStudent}}, nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, []string{"maths", "design"}, found[0].Interests)

	_, err = profiles.GetProfile(ctx, "not-a-uuid")
	assert.Equal(t, profile.ErrNotFound, err)
	_, err = profiles.GetProfile(ctx, uuid.New().String())
	assert.Equal(t, profile.ErrNotFound, err)

	older, err := results.CreateTestResult(ctx, assessment.TestResult{
		UserID: id, Scores: assessment.RIASECScores{R: 20}, CreatedAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	newer, err := results.CreateTestResult(ctx, assessment.TestResult{
		UserID:    id,
		Scores:    assessment.EmotionalScores{Empathy: 8.5},
		Answers:   []assessment.Answer{{QuestionID: "q1", Dimension: "empathy", Value: 8}},
		CreatedAt: now,
	})
	require.NoError(t, err)

	list, err := results.QueryTestResultsByUser(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Equal(t, assessment.EmotionalScores{Empathy: 8.5}, list[0].Scores)
	assert.True(t, newer.CreatedAt.Equal(list[0].CreatedAt), "created_at round trip")
	assert.True(t, older.CreatedAt.Equal(list[1].CreatedAt), "created_at round trip")

	_, err = results.GetTestResult(ctx, uuid.New().String())
	assert.Equal(t, assessment.ErrNotFound, err)
}
