package risk

import (
	"github.com/cardioinsight/riskservice/patients"
)

// Priority is the urgency badge attached to a recommendation.
type Priority string

const (
	PriorityUrgent   Priority = "URGENT"
	PriorityHigh     Priority = "HIGH"
	PriorityModerate Priority = "MODERATE"
	PriorityRoutine  Priority = "ROUTINE"
)

// Recommendation is one prioritized line of clinical guidance.
type Recommendation struct {
	Priority Priority
	Text     string
}

// MaxRecommendations bounds the assembled list. Renderers may show fewer.
const MaxRecommendations = 8

var intensiveRecommendations = []Recommendation{
	{PriorityUrgent, "Immediate cardiology consultation within 24-48 hours"},
	{PriorityUrgent, "Consider emergency department evaluation if symptomatic"},
	{PriorityHigh, "Comprehensive cardiac catheterization evaluation"},
	{PriorityHigh, "Initiate dual antiplatelet therapy if not contraindicated"},
	{PriorityHigh, "Aggressive statin therapy (high-intensity)"},
	{PriorityModerate, "Lifestyle modification counseling with cardiac rehabilitation"},
}

var moderateRecommendations = []Recommendation{
	{PriorityHigh, "Cardiology consultation within 2-4 weeks"},
	{PriorityHigh, "Exercise stress testing or cardiac imaging"},
	{PriorityModerate, "Initiate or optimize statin therapy"},
	{PriorityModerate, "Blood pressure optimization (target <130/80 mmHg)"},
}

var routineRecommendations = []Recommendation{
	{PriorityModerate, "Routine cardiology follow-up within 6-12 months"},
	{PriorityModerate, "Maintain healthy lifestyle practices"},
	{PriorityRoutine, "Annual lipid screening and blood pressure monitoring"},
}

// Recommendations assembles the guidance list for a graded record: the base
// list of the tier's bucket, then the conditional insertions at their fixed
// positions, truncated to MaxRecommendations. The result is never empty and
// the same inputs always produce the same ordered list.
func Recommendations(tier Tier, record patients.Record) []Recommendation {
	recommendations := baseRecommendations(tier)
	if record.Cholesterol > 240 {
		recommendations = insertAt(recommendations, 1, Recommendation{PriorityHigh, "Aggressive lipid management - consider PCSK9 inhibitors"})
	}
	if record.RestingBP > 140 {
		recommendations = insertAt(recommendations, 1, Recommendation{PriorityHigh, "Hypertension management - consider ACE inhibitor/ARB"})
	}
	if record.ExerciseAngina == 1 {
		recommendations = insertAt(recommendations, 0, Recommendation{PriorityUrgent, "Evaluate for unstable angina - consider immediate intervention"})
	}
	if len(recommendations) > MaxRecommendations {
		recommendations = recommendations[:MaxRecommendations]
	}
	return recommendations
}

func baseRecommendations(tier Tier) []Recommendation {
	var base []Recommendation
	switch {
	case tier == TierCritical || tier == TierHigh:
		base = intensiveRecommendations
	case tier == TierModerate:
		base = moderateRecommendations
	default:
		base = routineRecommendations
	}
	return append(make([]Recommendation, 0, MaxRecommendations), base...)
}

func insertAt(recommendations []Recommendation, index int, r Recommendation) []Recommendation {
	recommendations = append(recommendations, Recommendation{})
	copy(recommendations[index+1:], recommendations[index:])
	recommendations[index] = r
	return recommendations
}
