// Package scoring grades whole rosters of patient records and renders the
// outcome as an xlsx workbook. It backs riskctl's batch command.
package scoring

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/explain"
	"github.com/cardioinsight/riskservice/patients"
	"github.com/cardioinsight/riskservice/risk"
)

// Row is the scoring outcome of one roster line. Failed rows keep their
// raw cells and the error so the workbook can report them in place.
type Row struct {
	Index       int
	Cells       []string
	Probability float64
	Tier        risk.Tier
	TopFactor   string
	Err         error
}

// Scorer grades records against one model and one risk policy.
type Scorer struct {
	model  classifier.Model
	forest *classifier.Forest
	policy risk.Policy
}

func NewScorer(model classifier.Model, forest *classifier.Forest, policy risk.Policy) *Scorer {
	return &Scorer{
		model:  model,
		forest: forest,
		policy: policy,
	}
}

// Score grades a single record and names the feature that contributed the
// most to the prediction.
func (s *Scorer) Score(ctx context.Context, record patients.Record) (float64, risk.Tier, string, error) {
	prediction, err := s.model.Predict(ctx, record)
	if err != nil {
		return 0, 0, "", err
	}
	attribution, err := explain.Attribute(s.forest, record)
	if err != nil {
		return 0, 0, "", err
	}
	tier := s.policy.Grade(prediction.Label, prediction.Probability)
	return prediction.Probability, tier, topFactor(attribution), nil
}

// ScoreRoster scores every line of a CSV roster. The header row must name
// every model feature. Lines that fail to parse, validate or score come
// back as rows with Err set, so the result always holds one row per line.
func (s *Scorer) ScoreRoster(ctx context.Context, path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("roster %s is empty", path)
	}

	columns := make(map[string]int, len(lines[0]))
	for i, name := range lines[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, feature := range patients.FeatureOrder {
		if _, ok := columns[feature]; !ok {
			return nil, fmt.Errorf("roster is missing the %q column", feature)
		}
	}

	rows := make([]Row, 0, len(lines)-1)
	for i, line := range lines[1:] {
		row := Row{Index: i + 1, Cells: make([]string, len(patients.FeatureOrder))}
		values := make(map[string]interface{}, len(patients.FeatureOrder))
		for j, feature := range patients.FeatureOrder {
			idx := columns[feature]
			if idx >= len(line) {
				row.Err = fmt.Errorf("missing %s column value", feature)
				break
			}
			cell := strings.TrimSpace(line[idx])
			row.Cells[j] = cell
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				row.Err = fmt.Errorf("invalid %s value %q", feature, cell)
				break
			}
			values[feature] = value
		}
		if row.Err == nil {
			record, err := decodeValues(values)
			if err != nil {
				row.Err = err
			} else {
				row.Probability, row.Tier, row.TopFactor, row.Err = s.Score(ctx, record)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeValues weakly decodes float valued cells into a validated record.
// Float input lets integer columns accept decimal notation the same way
// the web form path does.
func decodeValues(values map[string]interface{}) (patients.Record, error) {
	var record patients.Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &record,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return record, err
	}
	if err := decoder.Decode(values); err != nil {
		return record, err
	}
	return record, record.Validate()
}

// topFactor names the feature with the largest absolute contribution. Ties
// keep the model's feature order.
func topFactor(attribution explain.Attribution) string {
	name := ""
	maxAbs := 0.0
	for _, c := range attribution.Contributions {
		if abs := math.Abs(c.Contribution); abs > maxAbs {
			maxAbs = abs
			name = c.Feature
		}
	}
	return name
}

// Tally splits a roster into scored and failed counts.
func Tally(rows []Row) (scored, failed int) {
	for _, row := range rows {
		if row.Err != nil {
			failed++
		} else {
			scored++
		}
	}
	return scored, failed
}
