package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/trezcool/orientation/core/assessment"
)

const testResultColumns = "id, user_id, test_type, results, answers, created_at"

type testResultRow struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	TestType  string         `db:"test_type"`
	Results   types.JSONText `db:"results"`
	Answers   types.JSONText `db:"answers"`
	CreatedAt time.Time      `db:"created_at"`
}

type testResultRepository struct {
	exec sqlx.ExtContext
}

var _ assessment.Repository = (*testResultRepository)(nil) // interface compliance check

func NewTestResultRepository(exec sqlx.ExtContext) *testResultRepository {
	return &testResultRepository{exec: exec}
}

// Postgres timestamps keep microseconds.
const timestampPrecision = time.Microsecond

func toTestResultRow(res assessment.TestResult) (testResultRow, error) {
	results, err := json.Marshal(res.Scores)
	if err != nil {
		return testResultRow{}, errors.Wrap(err, "encoding scores")
	}
	answers := res.Answers
	if answers == nil {
		answers = []assessment.Answer{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return testResultRow{}, errors.Wrap(err, "encoding answers")
	}
	return testResultRow{
		ID:        res.ID,
		UserID:    res.UserID,
		TestType:  string(res.Type()),
		Results:   results,
		Answers:   answersJSON,
		CreatedAt: res.CreatedAt.UTC().Truncate(timestampPrecision),
	}, nil
}

func (row testResultRow) toTestResult() (assessment.TestResult, error) {
	tt, err := assessment.ParseTestType(row.TestType)
	if err != nil {
		return assessment.TestResult{}, err
	}
	scores, err := assessment.DecodeScores(tt, row.Results)
	if err != nil {
		return assessment.TestResult{}, err
	}
	var answers []assessment.Answer
	if err = row.Answers.Unmarshal(&answers); err != nil {
		return assessment.TestResult{}, errors.Wrap(err, "decoding answers")
	}
	return assessment.TestResult{
		ID:        row.ID,
		UserID:    row.UserID,
		Scores:    scores,
		Answers:   answers,
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}

func (repo *testResultRepository) QueryTestResultsByUser(ctx context.Context, userID string) ([]assessment.TestResult, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return []assessment.TestResult{}, nil
	}

	var rows []testResultRow
	q := repo.exec.Rebind("SELECT " + testResultColumns + " FROM test_results WHERE user_id = ? ORDER BY created_at DESC, id ASC")
	if err := sqlx.SelectContext(ctx, repo.exec, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying test results")
	}

	results := make([]assessment.TestResult, 0, len(rows))
	for _, row := range rows {
		res, err := row.toTestResult()
		if err != nil {
			return nil, errors.Wrapf(err, "decoding test result %s", row.ID)
		}
		results = append(results, res)
	}
	return results, nil
}

func (repo *testResultRepository) GetTestResult(ctx context.Context, id string) (assessment.TestResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return assessment.TestResult{}, assessment.ErrNotFound
	}

	var row testResultRow
	q := repo.exec.Rebind("SELECT " + testResultColumns + " FROM test_results WHERE id = ?")
	if err := sqlx.GetContext(ctx, repo.exec, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return assessment.TestResult{}, assessment.ErrNotFound
		}
		return assessment.TestResult{}, errors.Wrap(err, "finding test result by ID")
	}
	res, err := row.toTestResult()
	if err != nil {
		return assessment.TestResult{}, errors.Wrapf(err, "decoding test result %s", row.ID)
	}
	return res, nil
}

func (repo *testResultRepository) CreateTestResult(ctx context.Context, res assessment.TestResult) (assessment.TestResult, error) {
	res.ID = uuid.New().String()
	row, err := toTestResultRow(res)
	if err != nil {
		return assessment.TestResult{}, err
	}

	q := "INSERT INTO test_results (" + testResultColumns + ") VALUES (:id, :user_id, :test_type, :results, :answers, :created_at)"
	if _, err = sqlx.NamedExecContext(ctx, repo.exec, q, row); err != nil {
		return assessment.TestResult{}, errors.Wrap(err, "inserting test result")
	}
	res.CreatedAt = row.CreatedAt
	return res, nil
}
