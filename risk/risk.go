package risk

import (
	"github.com/cardioinsight/riskservice/patients"
)

// Assessment is the full grading of one prediction: tier, guidance and
// factor analysis. It is a pure function of its inputs.
type Assessment struct {
	Policy          string
	Tier            Tier
	Label           int
	Probability     float64
	Recommendations []Recommendation
	Factors         []Factor
}

// Assess grades a prediction under the given policy and derives the guidance
// shown on reports and the analysis page.
func Assess(policy Policy, label int, probability float64, record patients.Record) Assessment {
	tier := policy.Grade(label, probability)
	return Assessment{
		Policy:          policy.Name,
		Tier:            tier,
		Label:           label,
		Probability:     probability,
		Recommendations: Recommendations(tier, record),
		Factors:         Factors(record),
	}
}
