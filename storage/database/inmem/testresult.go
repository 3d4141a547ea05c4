package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/trezcool/orientation/core/assessment"
)

type testResultRepository struct {
	db *testResultTable
}

var _ assessment.Repository = (*testResultRepository)(nil) // interface compliance check

func NewTestResultRepository(db *DB) *testResultRepository {
	return &testResultRepository{db: db.testResult}
}

func (repo *testResultRepository) QueryTestResultsByUser(_ context.Context, userID string) ([]assessment.TestResult, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	results := make([]assessment.TestResult, 0)
	for _, res := range repo.db.table {
		if res.UserID == userID {
			results = append(results, copyResult(*res))
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].ID < results[j].ID
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

func (repo *testResultRepository) GetTestResult(_ context.Context, id string) (assessment.TestResult, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if res, ok := repo.db.table[id]; ok {
		return copyResult(*res), nil
	}
	return assessment.TestResult{}, assessment.ErrNotFound
}

func (repo *testResultRepository) CreateTestResult(_ context.Context, res assessment.TestResult) (assessment.TestResult, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	res = copyResult(res)
	res.ID = uuid.New().String()
	repo.db.table[res.ID] = &res
	return copyResult(res), nil
}

func copyResult(res assessment.TestResult) assessment.TestResult {
	if res.Answers != nil {
		res.Answers = append([]assessment.Answer{}, res.Answers...)
	}
	return res
}
