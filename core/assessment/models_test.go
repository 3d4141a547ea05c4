package assessment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTestType(t *testing.T) {
	for _, tt := range AllTypes {
		got, err := ParseTestType(string(tt))
		require.NoError(t, err)
		assert.Equal(t, tt, got)
	}

	_, err := ParseTestType("riasec") // case sensitive
	assert.EqualError(t, err, `unknown test type "riasec"`)
}

func TestTestType_Label(t *testing.T) {
	assert.Equal(t, "Intelligence émotionnelle", TypeEmotional.Label())
	assert.Equal(t, "tarot", TestType("tarot").Label())
}

func TestTestResult_JSON(t *testing.T) {
	createdAt := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	res := TestResult{
		ID:        "r1",
		UserID:    "u1",
		Scores:    LearningStyleScores{Visual: 12, Reading: 3},
		CreatedAt: createdAt,
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "r1",
		"user_id": "u1",
		"test_type": "learning_style",
		"results": {"visual": 12, "auditory": 0, "reading": 3, "kinesthetic": 0},
		"answers": [],
		"created_at": "2026-01-02T03:04:05Z"
	}`, string(data))

	var decoded TestResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, res.Scores, decoded.Scores)
	assert.Equal(t, TypeLearningStyle, decoded.Type())
	assert.True(t, createdAt.Equal(decoded.CreatedAt))
}

func TestDecodeScores(t *testing.T) {
	scores, err := DecodeScores(TypeEmotional, []byte(`{"selfAwareness": 7.5, "empathy": 9}`))
	require.NoError(t, err)
	assert.Equal(t, EmotionalScores{SelfAwareness: 7.5, Empathy: 9}, scores)

	_, err = DecodeScores(TypeRIASEC, []byte(`{"R": "high"}`))
	assert.Error(t, err)

	_, err = DecodeScores("tarot", []byte(`{}`))
	assert.EqualError(t, err, `unknown test type "tarot"`)

	assert.Equal(t, TestType(""), TestResult{}.Type())
}
