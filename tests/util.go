package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/orientation/core/assessment"
	"github.com/trezcool/orientation/core/profile"
)

// CreateProfile stores an active profile with the given role.
func CreateProfile(
	t *testing.T,
	repo profile.Repository,
	id, fullName, email, role string,
	createdAt ...time.Time,
) profile.Profile {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	p, err := repo.SaveProfile(context.Background(), profile.Profile{
		ID:        id,
		FullName:  fullName,
		Email:     email,
		Role:      role,
		Interests: []string{},
		Status:    profile.StatusActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}
	return p
}

// CreateTestResult stores a result of the given scores for the user.
func CreateTestResult(
	t *testing.T,
	repo assessment.Repository,
	userID string,
	scores assessment.Scores,
	createdAt ...time.Time,
) assessment.TestResult {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	res, err := repo.CreateTestResult(context.Background(), assessment.TestResult{
		UserID:    userID,
		Scores:    scores,
		Answers:   []assessment.Answer{},
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateTestResult() failed: %v", err)
	}
	return res
}
