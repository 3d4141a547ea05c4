package assessment

import (
	"fmt"
	"math"

	"github.com/trezcool/orientation/core"
)

// Catalog describes what a test expects from its answers.
type Catalog struct {
	Type       TestType `json:"test_type"`
	Label      string   `json:"label"`
	Dimensions []string `json:"dimensions"`
	MinValue   int      `json:"min_value"`
	MaxValue   int      `json:"max_value"`
}

// Catalogs lists every test in AllTypes order.
var Catalogs = []Catalog{
	{Type: TypeRIASEC, Label: TypeRIASEC.Label(), Dimensions: RIASECCodes, MinValue: 1, MaxValue: 5},
	{Type: TypeLearningStyle, Label: TypeLearningStyle.Label(), Dimensions: LearningStyles, MinValue: 1, MaxValue: 5},
	{Type: TypeEmotional, Label: TypeEmotional.Label(), Dimensions: EmotionalDimensions, MinValue: 0, MaxValue: 10},
	{Type: TypePersonality, Label: TypePersonality.Label(), Dimensions: PersonalityTraits, MinValue: 1, MaxValue: 5},
}

// CatalogOf returns the catalog entry of the given test.
func CatalogOf(tt TestType) (Catalog, bool) {
	for _, c := range Catalogs {
		if c.Type == tt {
			return c, true
		}
	}
	return Catalog{}, false
}

func (c Catalog) hasDimension(dim string) bool {
	for _, d := range c.Dimensions {
		if d == dim {
			return true
		}
	}
	return false
}

// ScoreAnswers computes the scores of a completed test.
// RIASEC, learning style & personality scores are the sum of the answers per dimension;
// emotional scores are the mean of the answers per dimension, rounded to one decimal.
func ScoreAnswers(tt TestType, answers []Answer) (Scores, error) {
	cat, ok := CatalogOf(tt)
	if !ok {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "test_type", Error: "type de test inconnu"})
	}

	sums := make(map[string]float64, len(cat.Dimensions))
	counts := make(map[string]int, len(cat.Dimensions))
	for i, a := range answers {
		if !cat.hasDimension(a.Dimension) {
			return nil, core.NewValidationError(nil, core.FieldError{
				Field: "answers",
				Error: fmt.Sprintf("réponse %d : dimension %q inconnue pour ce test", i+1, a.Dimension),
			})
		}
		if a.Value < cat.MinValue || a.Value > cat.MaxValue {
			return nil, core.NewValidationError(nil, core.FieldError{
				Field: "answers",
				Error: fmt.Sprintf("réponse %d : la valeur doit être comprise entre %d et %d", i+1, cat.MinValue, cat.MaxValue),
			})
		}
		sums[a.Dimension] += float64(a.Value)
		counts[a.Dimension]++
	}

	switch tt {
	case TypeRIASEC:
		return RIASECScores{
			R: sums[CodeRealistic],
			I: sums[CodeInvestigative],
			A: sums[CodeArtistic],
			S: sums[CodeSocial],
			E: sums[CodeEnterprising],
			C: sums[CodeConventional],
		}, nil
	case TypeLearningStyle:
		return LearningStyleScores{
			Visual:      sums[StyleVisual],
			Auditory:    sums[StyleAuditory],
			Reading:     sums[StyleReading],
			Kinesthetic: sums[StyleKinesthetic],
		}, nil
	case TypeEmotional:
		mean := func(dim string) float64 {
			if counts[dim] == 0 {
				return 0
			}
			return math.Round(sums[dim]/float64(counts[dim])*10) / 10
		}
		return EmotionalScores{
			SelfAwareness:  mean(DimSelfAwareness),
			Empathy:        mean(DimEmpathy),
			SelfRegulation: mean(DimSelfRegulation),
			Motivation:     mean(DimMotivation),
			SocialSkills:   mean(DimSocialSkills),
		}, nil
	default:
		return PersonalityScores{
			Openness:          sums[TraitOpenness],
			Conscientiousness: sums[TraitConscientiousness],
			Extraversion:      sums[TraitExtraversion],
			Agreeableness:     sums[TraitAgreeableness],
			Neuroticism:       sums[TraitNeuroticism],
		}, nil
	}
}
