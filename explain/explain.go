// Package explain breaks a forest prediction down into per-feature
// contributions and renders a plain English summary of the dominant factors.
package explain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/patients"
)

// Contribution is one feature's share of the predicted probability.
type Contribution struct {
	Feature      string
	Value        float64
	Contribution float64
}

// Attribution is the decision path breakdown of one prediction. Base is the
// forest's average training prevalence; Base plus all contributions equals
// the predicted probability.
type Attribution struct {
	Base          float64
	Probability   float64
	Contributions []Contribution
}

// Shifts larger than this read as "significantly" in summaries.
const significantShift = 0.05

const summaryIntro = "The model's prediction was primarily influenced by these factors:"

// Attribute explains a single record. Contributions are returned in the
// model's feature order.
func Attribute(forest *classifier.Forest, record patients.Record) (Attribution, error) {
	base, raw, err := forest.FeatureContributions(record)
	if err != nil {
		return Attribution{}, err
	}

	features := forest.Features()
	values := record.Features()
	contributions := make([]Contribution, len(features))
	total := base
	for i, feature := range features {
		contributions[i] = Contribution{
			Feature:      feature,
			Value:        values[feature],
			Contribution: raw[i],
		}
		total += raw[i]
	}
	return Attribution{Base: base, Probability: total, Contributions: contributions}, nil
}

// Summarize names the three largest contributors by absolute shift. Ties
// keep the model's feature order.
func Summarize(attribution Attribution) string {
	ranked := append([]Contribution{}, attribution.Contributions...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Contribution) > math.Abs(ranked[j].Contribution)
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	lines := make([]string, 0, len(ranked)+1)
	lines = append(lines, summaryIntro)
	for _, c := range ranked {
		direction := "decreased"
		if c.Contribution > 0 {
			direction = "increased"
		}
		impact := "slightly"
		if math.Abs(c.Contribution) > significantShift {
			impact = "significantly"
		}
		lines = append(lines, fmt.Sprintf("- The %s value of %s %s %s the patient's risk.", c.Feature, formatValue(c.Value), impact, direction))
	}
	return strings.Join(lines, "\n")
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
