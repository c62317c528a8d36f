// Package risk grades classifier predictions into risk tiers and derives the
// clinical guidance shown on reports: prioritized recommendations and named
// risk factor ratios.
package risk

import (
	"fmt"

	"github.com/cardioinsight/riskservice/config"
	"github.com/cardioinsight/riskservice/errors"
)

// Tier is an ordered risk classification. Higher tiers are more severe.
type Tier int

const (
	TierLow Tier = iota
	TierLowModerate
	TierModerate
	TierHigh
	TierCritical
)

var tierLabels = map[Tier]string{
	TierLow:         "LOW RISK",
	TierLowModerate: "LOW-MODERATE RISK",
	TierModerate:    "MODERATE RISK",
	TierHigh:        "HIGH RISK",
	TierCritical:    "CRITICAL RISK",
}

func (t Tier) String() string {
	if label, ok := tierLabels[t]; ok {
		return label
	}
	return "UNKNOWN RISK"
}

// Grade is one probability cutoff of a policy.
type Grade struct {
	Threshold float64
	Tier      Tier
}

// Policy is a named threshold table. Grades are ordered from the most to the
// least severe cutoff and the positive label always forces the top tier.
// Probabilities are trusted to be within [0,1]; records are validated before
// prediction.
type Policy struct {
	Name   string
	Grades []Grade
}

const (
	PolicyStandard = "standard"
	PolicyCoarse   = "coarse"
)

var standardPolicy = Policy{
	Name: PolicyStandard,
	Grades: []Grade{
		{Threshold: 0.75, Tier: TierCritical},
		{Threshold: 0.6, Tier: TierHigh},
		{Threshold: 0.4, Tier: TierModerate},
		{Threshold: 0.2, Tier: TierLowModerate},
	},
}

// The coarse table predates the five tier scale and survives as a
// selectable policy.
var coarsePolicy = Policy{
	Name: PolicyCoarse,
	Grades: []Grade{
		{Threshold: 0.7, Tier: TierHigh},
		{Threshold: 0.4, Tier: TierModerate},
	},
}

// StandardPolicy returns the canonical five tier threshold table.
func StandardPolicy() Policy {
	return standardPolicy
}

// CoarsePolicy returns the legacy three tier threshold table.
func CoarsePolicy() Policy {
	return coarsePolicy
}

// NewPolicy resolves the policy the service is configured to grade with.
func NewPolicy(cfg *config.Config) (Policy, error) {
	return PolicyByName(cfg.RiskPolicy)
}

// PolicyByName resolves a policy from its configured name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case PolicyStandard, "":
		return standardPolicy, nil
	case PolicyCoarse:
		return coarsePolicy, nil
	default:
		return Policy{}, fmt.Errorf("%w: unknown risk policy %q", errors.BadRequest, name)
	}
}

// Grade maps a prediction to a tier. The positive label short-circuits to the
// policy's most severe tier regardless of probability.
func (p Policy) Grade(label int, probability float64) Tier {
	if label == 1 {
		return p.Grades[0].Tier
	}
	for _, grade := range p.Grades {
		if probability >= grade.Threshold {
			return grade.Tier
		}
	}
	return TierLow
}
