package advisor

import (
	"leafline/models"
)

// Kind tags one advisory task variant.
type Kind string

const (
	KindIdentify           Kind = "identify"
	KindDiagnose           Kind = "diagnose"
	KindPersonalizedAdvice Kind = "personalized_advice"
	KindSeasonalGuide      Kind = "seasonal_guide"
	KindArrangement        Kind = "arrangement"
	KindJournalEntry       Kind = "journal_entry"
	KindGrowthAnalysis     Kind = "growth_analysis"
	KindCareAnswer         Kind = "care_answer"
	KindOptimizedSchedule  Kind = "optimized_schedule"
	KindCommunityInsights  Kind = "community_insights"
	KindIdentityVerify     Kind = "identity_verify"
)

// Task is a tagged union over task kinds. Only the fields the kind's prompt
// builder consumes need to be set.
type Task struct {
	Kind Kind

	// Image references: data URIs or bare base64. Growth analysis
	// expects at least two, oldest first.
	Images []string

	Plant  *models.Plant
	Plants []models.Plant
	Log    *models.CareLog

	// Free-form context fields
	Question      string // careAnswer
	HistoryDigest string // journalEntry, personalizedAdvice
	Environment   string // personalizedAdvice
	Location      string // seasonalGuide
	Season        string // seasonalGuide
	Availability  string // optimizedSchedule
	Topic         string // communityInsights

	// identityVerify
	ExpectedName           string
	ExpectedScientificName string
}

// Result is the validated structured payload for a task.
type Result map[string]any

// tokenBudgets are the per-task completion budgets. The degraded budget for
// growth analysis is derived in the orchestrator, not listed here.
var tokenBudgets = map[Kind]int{
	KindIdentify:           1000,
	KindDiagnose:           1000,
	KindPersonalizedAdvice: 1500,
	KindSeasonalGuide:      2000,
	KindArrangement:        1200,
	KindJournalEntry:       800,
	KindGrowthAnalysis:     1500,
	KindCareAnswer:         600,
	KindOptimizedSchedule:  2000,
	KindCommunityInsights:  1200,
	KindIdentityVerify:     300,
}

func budgetFor(kind Kind) int {
	if b, ok := tokenBudgets[kind]; ok {
		return b
	}
	return 800
}

// fieldSpec declares one field of a task's result contract.
// Required fields hard-fail when absent; optional fields fill their default.
// Enum fields are replaced wholesale by the default when the value is
// outside the domain, never clamped. List fields are replaced by the default
// when the value is not a proper list.
type fieldSpec struct {
	name     string
	required bool
	def      any
	enum     []string
	list     bool
}

var confidenceDomain = []string{
	string(models.ConfidenceLow),
	string(models.ConfidenceMedium),
	string(models.ConfidenceHigh),
}

const genericExpertAdvice = "Consult a local plant expert for a hands-on assessment."

var genericPreventionTips = []any{
	"Water only when the top inch of soil is dry.",
	"Keep the plant in stable light and temperature conditions.",
	"Inspect leaves and soil weekly for early signs of trouble.",
}

var genericGrowthRecommendations = []any{
	"Keep the current care routine and re-evaluate in two weeks.",
	"Rotate the pot a quarter turn weekly for even light exposure.",
	"Check whether the roots have outgrown the pot.",
}

// taskSchemas is the single declarative contract table every task result is
// validated against.
var taskSchemas = map[Kind][]fieldSpec{
	KindIdentify: {
		{name: "name", required: true},
		{name: "scientificName", required: true},
		{name: "description", def: "No description available."},
		{name: "confidenceLevel", def: "medium", enum: confidenceDomain},
		{name: "careLevel", def: "medium", enum: []string{"low", "medium", "high"}},
		{name: "waterFrequencyDays", def: float64(7)},
		{name: "fertilizerFrequencyDays", def: float64(30)},
		{name: "lightRequirement", def: "bright indirect light"},
		{name: "toxicity", def: "unknown"},
	},
	KindDiagnose: {
		{name: "issue", required: true},
		{name: "cause", required: true},
		{name: "solution", def: genericExpertAdvice},
		{name: "preventionTips", def: genericPreventionTips, list: true},
		{name: "severity", def: "medium", enum: []string{"low", "medium", "high"}},
		{name: "confidenceLevel", def: "medium", enum: confidenceDomain},
	},
	KindPersonalizedAdvice: {
		{name: "summary", required: true},
		{name: "immediateActions", required: true, list: true},
		{name: "shortTermActions", def: []any{}, list: true},
		{name: "longTermActions", def: []any{}, list: true},
		{name: "problems", def: []any{}, list: true},
		{name: "confidenceLevel", def: "medium", enum: confidenceDomain},
	},
	KindSeasonalGuide: {
		{name: "season", required: true},
		{name: "plants", required: true, list: true},
		{name: "generalTips", def: []any{}, list: true},
		{name: "confidenceLevel", def: "medium", enum: confidenceDomain},
	},
	KindArrangement: {
		{name: "suggestions", required: true, list: true},
		{name: "designNotes", def: ""},
		{name: "confidenceLevel", def: "medium", enum: confidenceDomain},
	},
	KindJournalEntry: {
		{name: "title", required: true},
		{name: "observations", required: true, list: true},
		{name: "growthProgress", required: true},
		{name: "healthNotes", def: ""},
		{name: "nextSteps", def: []any{}, list: true},
	},
	KindGrowthAnalysis: {
		{name: "assessment", required: true},
		{name: "growthRate", required: true},
		{name: "issues", def: []any{}, list: true},
		{name: "recommendations", def: genericGrowthRecommendations, list: true},
		{name: "confidenceLevel", def: "medium", enum: confidenceDomain},
	},
	KindCareAnswer: {
		{name: "answer", required: true},
		{name: "tips", def: []any{}, list: true},
		{name: "confidenceLevel", def: "medium", enum: confidenceDomain},
	},
	KindOptimizedSchedule: {
		{name: "days", required: true, list: true},
		{name: "tips", def: []any{}, list: true},
		{name: "notes", def: ""},
	},
	KindCommunityInsights: {
		{name: "insights", required: true, list: true},
		{name: "trendingTopics", def: []any{}, list: true},
		{name: "confidenceLevel", def: "medium", enum: confidenceDomain},
	},
	KindIdentityVerify: {
		{name: "matches", required: true},
		{name: "confidence", def: "low", enum: confidenceDomain},
		{name: "detectedPlant", def: ""},
	},
}
