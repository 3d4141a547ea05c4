package analysis

import "github.com/trezcool/orientation/core/assessment"

var (
	riasecNames = map[string]string{
		assessment.CodeRealistic:     "Réaliste",
		assessment.CodeInvestigative: "Investigateur",
		assessment.CodeArtistic:      "Artistique",
		assessment.CodeSocial:        "Social",
		assessment.CodeEnterprising:  "Entreprenant",
		assessment.CodeConventional:  "Conventionnel",
	}

	riasecStrengths = map[string]string{
		assessment.CodeRealistic:     "Sens pratique et habileté manuelle",
		assessment.CodeInvestigative: "Esprit analytique et curiosité scientifique",
		assessment.CodeArtistic:      "Créativité et sens de l'expression",
		assessment.CodeSocial:        "Sens du contact et de l'entraide",
		assessment.CodeEnterprising:  "Leadership et esprit d'initiative",
		assessment.CodeConventional:  "Rigueur et sens de l'organisation",
	}

	riasecFields = map[string][]string{
		assessment.CodeRealistic:     {"Ingénierie", "Agriculture", "Mécanique"},
		assessment.CodeInvestigative: {"Recherche scientifique", "Médecine", "Informatique"},
		assessment.CodeArtistic:      {"Design", "Arts", "Communication"},
		assessment.CodeSocial:        {"Enseignement", "Santé", "Travail social"},
		assessment.CodeEnterprising:  {"Commerce", "Management", "Droit"},
		assessment.CodeConventional:  {"Comptabilité", "Administration"},
	}

	learningStyleStrengths = map[string]string{
		assessment.StyleVisual:      "Mémoire visuelle",
		assessment.StyleAuditory:    "Écoute attentive",
		assessment.StyleReading:     "Aisance à l'écrit",
		assessment.StyleKinesthetic: "Apprentissage par la pratique",
	}

	// only these dominant styles boost recommendations
	learningStyleAffinities = map[string][]string{
		assessment.StyleVisual:      {"Design", "Arts", "Ingénierie", "Communication"},
		assessment.StyleKinesthetic: {"Mécanique", "Agriculture", "Santé", "Ingénierie"},
	}

	selfAwarenessStrength = "Grande conscience de soi"
	empathyStrength       = "Empathie développée"

	psychologyField  = "Psychologie"
	psychologyScore  = 8.5
	psychologyReason = "Votre empathie et votre conscience de soi sont des atouts pour accompagner les autres."
)

const (
	emotionalThreshold = 7
	boost              = 1
	maxRecommendations = 5
	riasecTopN         = 2
)
