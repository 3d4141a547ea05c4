// Package analysis derives strengths, career recommendations and test suggestions from a student's test results.
package analysis

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/trezcool/orientation/core/assessment"
)

// RandSource provides the random filler values of a Report. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// CareerRecommendation is derived, never stored.
type CareerRecommendation struct {
	Field  string  `json:"field"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
	// MatchingProfiles is a display placeholder, not a computed statistic.
	MatchingProfiles int `json:"matchingProfiles"`
}

type Report struct {
	Strengths       []string               `json:"strengths"`
	Recommendations []CareerRecommendation `json:"recommendations"`
	SuggestedTests  []string               `json:"suggestedTests"`
}

// Options parametrize the time & randomness dependent parts of Analyze.
type Options struct {
	Now               time.Time
	Rand              RandSource
	RetakeAfterMonths int
}

// Analyze is a pure derivation over the given results, expected newest first.
// Strengths & retake suggestions consider every result; recommendations only the most recent of each test type.
func Analyze(results []assessment.TestResult, opts Options) Report {
	if opts.Rand == nil {
		opts.Rand = globalRand{}
	}
	latest := latestByType(results)

	report := Report{
		Strengths:       deriveStrengths(results),
		Recommendations: deriveRecommendations(latest, opts.Rand),
		SuggestedTests:  suggestTests(results, latest, opts.Now, opts.RetakeAfterMonths),
	}
	return report
}

// latestByType keeps the most recent result of each type (first seen wins on equal dates).
func latestByType(results []assessment.TestResult) map[assessment.TestType]assessment.TestResult {
	latest := make(map[assessment.TestType]assessment.TestResult, len(assessment.AllTypes))
	for _, res := range results {
		if res.Scores == nil {
			continue
		}
		if prev, ok := latest[res.Type()]; !ok || res.CreatedAt.After(prev.CreatedAt) {
			latest[res.Type()] = res
		}
	}
	return latest
}

type rankedScore struct {
	key   string
	score float64
}

// rank sorts keys by descending score; equal scores keep the order of `keys`.
func rank(keys []string, score func(string) float64) []rankedScore {
	ranked := make([]rankedScore, 0, len(keys))
	for _, k := range keys {
		ranked = append(ranked, rankedScore{key: k, score: score(k)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	return ranked
}

func topRIASEC(scores assessment.RIASECScores) []rankedScore {
	return rank(assessment.RIASECCodes, scores.Score)[:riasecTopN]
}

func dominantStyle(scores assessment.LearningStyleScores) string {
	return rank(assessment.LearningStyles, scores.Score)[0].key
}

// deriveStrengths labels every result, grouped by test type (AllTypes order) then in results order, without duplicates.
func deriveStrengths(results []assessment.TestResult) []string {
	strengths := make([]string, 0, 5)
	seen := make(map[string]bool)
	add := func(label string) {
		if label != "" && !seen[label] {
			seen[label] = true
			strengths = append(strengths, label)
		}
	}

	for _, tt := range assessment.AllTypes {
		for _, res := range results {
			if res.Scores == nil || res.Type() != tt {
				continue
			}
			switch scores := res.Scores.(type) {
			case assessment.RIASECScores:
				for _, top := range topRIASEC(scores) {
					add(riasecStrengths[top.key])
				}
			case assessment.LearningStyleScores:
				add(learningStyleStrengths[dominantStyle(scores)])
			case assessment.EmotionalScores:
				if scores.SelfAwareness > emotionalThreshold {
					add(selfAwarenessStrength)
				}
				if scores.Empathy > emotionalThreshold {
					add(empathyStrength)
				}
			}
		}
	}
	return strengths
}

func deriveRecommendations(latest map[assessment.TestType]assessment.TestResult, rnd RandSource) []CareerRecommendation {
	recs := make([]CareerRecommendation, 0, riasecTopN*3+1)

	if res, ok := latest[assessment.TypeRIASEC]; ok {
		scores := res.Scores.(assessment.RIASECScores)
		for _, top := range topRIASEC(scores) {
			fields := riasecFields[top.key]
			reason := fmt.Sprintf(
				"Votre profil %s (%s) correspond aux domaines : %s.",
				riasecNames[top.key], top.key, strings.Join(fields, ", "))
			for _, field := range fields {
				recs = append(recs, CareerRecommendation{
					Field:            field,
					Score:            top.score / 10,
					Reason:           reason,
					MatchingProfiles: 50 + rnd.Intn(50),
				})
			}
		}
	}

	if res, ok := latest[assessment.TypeLearningStyle]; ok {
		style := dominantStyle(res.Scores.(assessment.LearningStyleScores))
		if affinities, ok := learningStyleAffinities[style]; ok {
			for i := range recs {
				if contains(affinities, recs[i].Field) {
					recs[i].Score += boost
				}
			}
		}
	}

	if res, ok := latest[assessment.TypeEmotional]; ok {
		scores := res.Scores.(assessment.EmotionalScores)
		if scores.Empathy > emotionalThreshold && scores.SelfAwareness > emotionalThreshold {
			recs = append(recs, CareerRecommendation{
				Field:            psychologyField,
				Score:            psychologyScore,
				Reason:           psychologyReason,
				MatchingProfiles: 20 + rnd.Intn(30),
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// suggestTests lists the tests never taken (AllTypes order) followed by one retake per stale result (results order).
func suggestTests(
	results []assessment.TestResult,
	latest map[assessment.TestType]assessment.TestResult,
	now time.Time,
	retakeAfterMonths int,
) []string {
	suggested := make([]string, 0, len(assessment.AllTypes))
	for _, tt := range assessment.AllTypes {
		if _, ok := latest[tt]; !ok {
			suggested = append(suggested, tt.Label())
		}
	}

	if now.IsZero() || retakeAfterMonths <= 0 {
		return suggested
	}
	cutoff := now.AddDate(0, -retakeAfterMonths, 0)
	for _, res := range results {
		if res.Scores != nil && res.CreatedAt.Before(cutoff) {
			suggested = append(suggested, res.Type().Label()+" (à refaire)")
		}
	}
	return suggested
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
