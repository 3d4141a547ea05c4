package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/orientation/core/assessment"
	"github.com/trezcool/orientation/core/profile"
	"github.com/trezcool/orientation/tests"
)

func Test_assessmentApi_catalog(t *testing.T) {
	runHTTPTests(t, []httpTest{
		{name: "Public", path: "/v1/tests/catalog", wantData: marchallObj(t, assessment.Catalogs)},
	})
}

func Test_assessmentApi_submit(t *testing.T) {
	db.Truncate()

	student := testutil.CreateProfile(t, profileRepo, "s1", "Amani Bahati", "amani@example.cd", profile.RoleStudent)
	token := getToken(t, student)

	runHTTPTests(t, []httpTest{
		{
			name: "Auth required", method: http.MethodPost, path: "/v1/tests", body: []byte(`{}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Onboarding required", method: http.MethodPost, path: "/v1/tests",
			body:  []byte(`{"test_type": "RIASEC", "answers": [{"question_id": "q1", "dimension": "R", "value": 4}]}`),
			token: getUserToken(t, "newcomer", "newcomer@example.cd"), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Unknown test type", method: http.MethodPost, path: "/v1/tests",
			body:  []byte(`{"test_type": "tarot", "answers": [{"question_id": "q1", "dimension": "R", "value": 4}]}`),
			token: token, wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"test_type": "type de test inconnu"}),
		},
		{
			name: "Value out of range", method: http.MethodPost, path: "/v1/tests",
			body:  []byte(`{"test_type": "RIASEC", "answers": [{"question_id": "q1", "dimension": "R", "value": 7}]}`),
			token: token, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"answers": "réponse 1 : la valeur doit être comprise entre 1 et 5"}),
		},
		{
			name: "Unknown dimension", method: http.MethodPost, path: "/v1/tests",
			body:  []byte(`{"test_type": "RIASEC", "answers": [{"question_id": "q1", "dimension": "R", "value": 2}, {"question_id": "q2", "dimension": "Z", "value": 2}]}`),
			token: token, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"answers": `réponse 2 : dimension "Z" inconnue pour ce test`}),
		},
	})

	t.Run("Valid submission", func(t *testing.T) {
		body := []byte(`{"test_type": "emotional", "answers": [
			{"question_id": "q1", "dimension": "empathy", "value": 9},
			{"question_id": "q2", "dimension": "empathy", "value": 8},
			{"question_id": "q3", "dimension": "selfAwareness", "value": 7}
		]}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/tests", token, body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var res assessment.TestResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, student.ID, res.UserID)
		assert.Equal(t, assessment.EmotionalScores{Empathy: 8.5, SelfAwareness: 7}, res.Scores)
		assert.Len(t, res.Answers, 3)

		stored, err := resultRepo.GetTestResult(req.Context(), res.ID)
		require.NoError(t, err)
		assert.Equal(t, res.Scores, stored.Scores)
	})
}

func Test_assessmentApi_queryByUser(t *testing.T) {
	db.Truncate()

	now := time.Now()
	student := testutil.CreateProfile(t, profileRepo, "s1", "Amani Bahati", "amani@example.cd", profile.RoleStudent)
	student2 := testutil.CreateProfile(t, profileRepo, "s2", "Grace Mbuyi", "grace@example.cd", profile.RoleStudent)
	counselor := testutil.CreateProfile(t, profileRepo, "c1", "Joseph Ilunga", "joseph@example.cd", profile.RoleCounselor)

	older := testutil.CreateTestResult(t, resultRepo, student.ID, assessment.RIASECScores{R: 12}, now.AddDate(0, -2, 0))
	newer := testutil.CreateTestResult(t, resultRepo, student.ID, assessment.LearningStyleScores{Visual: 9}, now)
	testutil.CreateTestResult(t, resultRepo, student2.ID, assessment.RIASECScores{S: 20}, now)

	runHTTPTests(t, []httpTest{
		{name: "Auth required", path: "/v1/users/s1/tests", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Self, newest first", path: "/v1/users/s1/tests", token: getToken(t, student), wantData: marchallList(t, newer, older)},
		{name: "Other student", path: "/v1/users/s1/tests", token: getToken(t, student2), wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "Counselor", path: "/v1/users/s1/tests", token: getToken(t, counselor), wantData: marchallList(t, newer, older)},
		{name: "No results", path: "/v1/users/c1/tests", token: getToken(t, counselor), wantData: marchallList(t)},
	})
}
