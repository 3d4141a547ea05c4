package assessment

import (
	"context"
	"errors"
	"time"

	"github.com/kat-co/vala"

	"github.com/trezcool/orientation/core"
)

var (
	// errors
	ErrNotFound = errors.New("résultat de test introuvable")
)

// Repository is the data-access contract for test results.
type Repository interface {
	// QueryTestResultsByUser returns all the results of a user, newest first.
	QueryTestResultsByUser(ctx context.Context, userID string) ([]TestResult, error)
	GetTestResult(ctx context.Context, id string) (TestResult, error)
	// CreateTestResult stores a new result and assigns its ID.
	CreateTestResult(ctx context.Context, res TestResult) (TestResult, error)
}

type Service struct {
	repo    Repository
	nowFunc func() time.Time
}

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo, nowFunc: time.Now}
}

// Submit scores the answers of a completed test and stores the result for the user.
func (svc *Service) Submit(ctx context.Context, userID string, nr NewTestResult) (TestResult, error) {
	if err := vala.BeginValidation().Validate(vala.StringNotEmpty(userID, "userID")).Check(); err != nil {
		return TestResult{}, core.NewValidationError(err)
	}
	tt, err := ParseTestType(nr.TestType)
	if err != nil {
		return TestResult{}, core.NewValidationError(err, core.FieldError{Field: "test_type", Error: testTypeText})
	}
	scores, err := ScoreAnswers(tt, nr.Answers)
	if err != nil {
		return TestResult{}, err
	}
	return svc.repo.CreateTestResult(ctx, TestResult{
		UserID:    userID,
		Scores:    scores,
		Answers:   nr.Answers,
		CreatedAt: svc.nowFunc().UTC(),
	})
}

// QueryByUser returns the results of the user, newest first.
func (svc *Service) QueryByUser(ctx context.Context, userID string) ([]TestResult, error) {
	return svc.repo.QueryTestResultsByUser(ctx, userID)
}

func (svc *Service) GetByID(ctx context.Context, id string) (TestResult, error) {
	return svc.repo.GetTestResult(ctx, id)
}
