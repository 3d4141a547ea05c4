package assessment

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// TestType identifies one of the psychometric tests.
type TestType string

// Test types, in the order they are suggested to students.
const (
	TypeRIASEC        TestType = "RIASEC"
	TypeLearningStyle TestType = "learning_style"
	TypeEmotional     TestType = "emotional"
	TypePersonality   TestType = "personality"
)

// AllTypes is the fixed universe of tests a student can take.
var AllTypes = []TestType{TypeRIASEC, TypeLearningStyle, TypeEmotional, TypePersonality}

var typeLabels = map[TestType]string{
	TypeRIASEC:        "Test RIASEC",
	TypeLearningStyle: "Style d'apprentissage",
	TypeEmotional:     "Intelligence émotionnelle",
	TypePersonality:   "Personnalité",
}

// ParseTestType returns the TestType named `s`.
func ParseTestType(s string) (TestType, error) {
	for _, tt := range AllTypes {
		if string(tt) == s {
			return tt, nil
		}
	}
	return "", errors.Errorf("unknown test type %q", s)
}

// Label is the French display name of the test.
func (tt TestType) Label() string {
	if l, ok := typeLabels[tt]; ok {
		return l
	}
	return string(tt)
}

// Scores is the scored outcome of a test; one variant per TestType.
type Scores interface {
	Type() TestType
	isScores()
}

// RIASEC codes
const (
	CodeRealistic     = "R"
	CodeInvestigative = "I"
	CodeArtistic      = "A"
	CodeSocial        = "S"
	CodeEnterprising  = "E"
	CodeConventional  = "C"
)

// RIASECCodes lists the codes in their canonical order.
var RIASECCodes = []string{CodeRealistic, CodeInvestigative, CodeArtistic, CodeSocial, CodeEnterprising, CodeConventional}

type RIASECScores struct {
	R float64 `json:"R"`
	I float64 `json:"I"`
	A float64 `json:"A"`
	S float64 `json:"S"`
	E float64 `json:"E"`
	C float64 `json:"C"`
}

// Score returns the score of the given code.
func (s RIASECScores) Score(code string) float64 {
	switch code {
	case CodeRealistic:
		return s.R
	case CodeInvestigative:
		return s.I
	case CodeArtistic:
		return s.A
	case CodeSocial:
		return s.S
	case CodeEnterprising:
		return s.E
	case CodeConventional:
		return s.C
	}
	return 0
}

// Learning styles
const (
	StyleVisual      = "visual"
	StyleAuditory    = "auditory"
	StyleReading     = "reading"
	StyleKinesthetic = "kinesthetic"
)

// LearningStyles lists the modalities in their canonical order.
var LearningStyles = []string{StyleVisual, StyleAuditory, StyleReading, StyleKinesthetic}

type LearningStyleScores struct {
	Visual      float64 `json:"visual"`
	Auditory    float64 `json:"auditory"`
	Reading     float64 `json:"reading"`
	Kinesthetic float64 `json:"kinesthetic"`
}

func (s LearningStyleScores) Score(style string) float64 {
	switch style {
	case StyleVisual:
		return s.Visual
	case StyleAuditory:
		return s.Auditory
	case StyleReading:
		return s.Reading
	case StyleKinesthetic:
		return s.Kinesthetic
	}
	return 0
}

// Emotional intelligence dimensions
const (
	DimSelfAwareness  = "selfAwareness"
	DimEmpathy        = "empathy"
	DimSelfRegulation = "selfRegulation"
	DimMotivation     = "motivation"
	DimSocialSkills   = "socialSkills"
)

var EmotionalDimensions = []string{DimSelfAwareness, DimEmpathy, DimSelfRegulation, DimMotivation, DimSocialSkills}

// EmotionalScores are on a 0 - 10 scale.
type EmotionalScores struct {
	SelfAwareness  float64 `json:"selfAwareness"`
	Empathy        float64 `json:"empathy"`
	SelfRegulation float64 `json:"selfRegulation"`
	Motivation     float64 `json:"motivation"`
	SocialSkills   float64 `json:"socialSkills"`
}

// Big Five traits
const (
	TraitOpenness          = "openness"
	TraitConscientiousness = "conscientiousness"
	TraitExtraversion      = "extraversion"
	TraitAgreeableness     = "agreeableness"
	TraitNeuroticism       = "neuroticism"
)

var PersonalityTraits = []string{TraitOpenness, TraitConscientiousness, TraitExtraversion, TraitAgreeableness, TraitNeuroticism}

type PersonalityScores struct {
	Openness          float64 `json:"openness"`
	Conscientiousness float64 `json:"conscientiousness"`
	Extraversion      float64 `json:"extraversion"`
	Agreeableness     float64 `json:"agreeableness"`
	Neuroticism       float64 `json:"neuroticism"`
}

func (RIASECScores) Type() TestType        { return TypeRIASEC }
func (LearningStyleScores) Type() TestType { return TypeLearningStyle }
func (EmotionalScores) Type() TestType     { return TypeEmotional }
func (PersonalityScores) Type() TestType   { return TypePersonality }

func (RIASECScores) isScores()        {}
func (LearningStyleScores) isScores() {}
func (EmotionalScores) isScores()     {}
func (PersonalityScores) isScores()   {}

// DecodeScores decodes the JSON `results` of a test of the given type.
func DecodeScores(tt TestType, data []byte) (Scores, error) {
	var (
		scores Scores
		err    error
	)
	switch tt {
	case TypeRIASEC:
		var s RIASECScores
		err = json.Unmarshal(data, &s)
		scores = s
	case TypeLearningStyle:
		var s LearningStyleScores
		err = json.Unmarshal(data, &s)
		scores = s
	case TypeEmotional:
		var s EmotionalScores
		err = json.Unmarshal(data, &s)
		scores = s
	case TypePersonality:
		var s PersonalityScores
		err = json.Unmarshal(data, &s)
		scores = s
	default:
		return nil, errors.Errorf("unknown test type %q", tt)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s scores", tt)
	}
	return scores, nil
}

// Answer is a single answered question.
type Answer struct {
	QuestionID string `json:"question_id" validate:"required"`
	Dimension  string `json:"dimension" validate:"required"`
	Value      int    `json:"value" validate:"gte=0,lte=10"`
}

// TestResult is created once per test completion and never updated.
type TestResult struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Scores    Scores    `json:"-"`
	Answers   []Answer  `json:"answers"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// Type returns the type of the test that produced the result.
func (r TestResult) Type() TestType {
	if r.Scores == nil {
		return ""
	}
	return r.Scores.Type()
}

type testResultJSON struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	TestType  TestType        `json:"test_type"`
	Results   json.RawMessage `json:"results"`
	Answers   []Answer        `json:"answers"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r TestResult) MarshalJSON() ([]byte, error) {
	results, err := json.Marshal(r.Scores)
	if err != nil {
		return nil, err
	}
	answers := r.Answers
	if answers == nil {
		answers = []Answer{}
	}
	return json.Marshal(testResultJSON{
		ID:        r.ID,
		UserID:    r.UserID,
		TestType:  r.Type(),
		Results:   results,
		Answers:   answers,
		CreatedAt: r.CreatedAt,
	})
}

func (r *TestResult) UnmarshalJSON(data []byte) error {
	var raw testResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	scores, err := DecodeScores(raw.TestType, raw.Results)
	if err != nil {
		return err
	}
	*r = TestResult{
		ID:        raw.ID,
		UserID:    raw.UserID,
		Scores:    scores,
		Answers:   raw.Answers,
		CreatedAt: raw.CreatedAt,
	}
	return nil
}

// NewTestResult contains the answers submitted on test completion.
type NewTestResult struct {
	TestType string   `json:"test_type" validate:"required,testtype"`
	Answers  []Answer `json:"answers" validate:"required,min=1,dive"`
}

func (nr *NewTestResult) Validate(validate *validator.Validate) error {
	return validate.Struct(nr)
}
