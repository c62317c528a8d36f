package classifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cardioinsight/riskservice/config"
	"github.com/cardioinsight/riskservice/patients"
)

// Forest is the random forest classifier restored from a manifest.
type Forest struct {
	manifest *Manifest
}

var _ Model = &Forest{}

// NewForest loads the classifier configured for the service. The service
// cannot start without it.
func NewForest(cfg *config.Config, logger *zap.SugaredLogger) (*Forest, error) {
	manifest, err := ReadManifest(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	forest, err := NewForestFromManifest(manifest)
	if err != nil {
		return nil, err
	}
	logger.Infow("loaded risk model",
		"path", cfg.ModelPath,
		"algorithm", manifest.Algorithm,
		"version", manifest.Version,
		"trees", len(manifest.Trees))
	return forest, nil
}

// NewModel exposes the forest through the scoring boundary.
func NewModel(forest *Forest) Model {
	return forest
}

// NewForestFromManifest restores a classifier from an in-memory manifest.
func NewForestFromManifest(manifest *Manifest) (*Forest, error) {
	if manifest == nil {
		return nil, fmt.Errorf("model manifest is required")
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return &Forest{manifest: manifest}, nil
}

// Predict scores a record by averaging the positive class fraction of every
// tree's leaf. The label is the majority class of the averaged distribution.
func (f *Forest) Predict(ctx context.Context, record patients.Record) (Prediction, error) {
	x, err := f.vector(record)
	if err != nil {
		return Prediction{}, err
	}
	total := 0.0
	for _, tree := range f.manifest.Trees {
		total += tree.classFraction(x)
	}
	probability := total / float64(len(f.manifest.Trees))
	label := 0
	if probability > 0.5 {
		label = 1
	}
	return Prediction{Label: label, Probability: probability}, nil
}

// FeatureContributions attributes a prediction to individual features by
// walking each tree's decision path: every split credits the change in the
// positive class fraction to its feature. The identity
// base + sum(contributions) == probability holds per record.
func (f *Forest) FeatureContributions(record patients.Record) (float64, []float64, error) {
	x, err := f.vector(record)
	if err != nil {
		return 0, nil, err
	}
	contributions := make([]float64, len(f.manifest.Features))
	base := 0.0
	for _, tree := range f.manifest.Trees {
		base += tree.pathContributions(x, contributions)
	}
	trees := float64(len(f.manifest.Trees))
	base /= trees
	for i := range contributions {
		contributions[i] /= trees
	}
	return base, contributions, nil
}

func (f *Forest) Metadata() Metadata {
	return Metadata{
		Algorithm: f.manifest.Algorithm,
		Version:   f.manifest.Version,
		Metrics:   f.manifest.Metrics,
	}
}

// Features returns the model's feature order.
func (f *Forest) Features() []string {
	return append([]string{}, f.manifest.Features...)
}

func (f *Forest) vector(record patients.Record) ([]float64, error) {
	features := record.Features()
	x := make([]float64, len(f.manifest.Features))
	for i, name := range f.manifest.Features {
		value, ok := features[name]
		if !ok {
			return nil, fmt.Errorf("record is missing feature %q", name)
		}
		x[i] = (value - f.manifest.Scaler.Mean[i]) / f.manifest.Scaler.Scale[i]
	}
	return x, nil
}

func (t Tree) classFraction(x []float64) float64 {
	i := 0
	for !t.Nodes[i].IsLeaf() {
		node := t.Nodes[i]
		if x[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
	return positiveFraction(t.Nodes[i].Value)
}

func (t Tree) pathContributions(x []float64, contributions []float64) float64 {
	i := 0
	current := positiveFraction(t.Nodes[i].Value)
	base := current
	for !t.Nodes[i].IsLeaf() {
		node := t.Nodes[i]
		next := node.Left
		if x[node.Feature] > node.Threshold {
			next = node.Right
		}
		fraction := positiveFraction(t.Nodes[next].Value)
		contributions[node.Feature] += fraction - current
		current = fraction
		i = next
	}
	return base
}

func positiveFraction(value []float64) float64 {
	return value[1] / (value[0] + value[1])
}
