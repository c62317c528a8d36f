package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/cardioinsight/riskservice/patients"
)

// Manifest is the serialized model artifact: the trained forest, the feature
// scaler and the metadata frozen at export time.
type Manifest struct {
	Algorithm string   `json:"algorithm"`
	Version   string   `json:"version"`
	Features  []string `json:"features"`
	Scaler    Scaler   `json:"scaler"`
	Trees     []Tree   `json:"trees"`
	Metrics   Metrics  `json:"metrics"`
}

// Scaler holds the standardization parameters applied before tree walks.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Tree is a single estimator stored as a flat node array in preorder.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is one tree node. Internal nodes split on Feature at Threshold in
// scaled space and point at later nodes. Leaves have Left and Right set to
// -1. Every node keeps its training class counts in Value.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

func (n Node) IsLeaf() bool {
	return n.Left < 0 && n.Right < 0
}

// ReadManifest loads and validates a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates manifest bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	manifest := &Manifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("parsing model manifest: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) Validate() error {
	if len(m.Features) == 0 {
		return fmt.Errorf("model manifest has no features")
	}
	known := mapset.NewSet(patients.FeatureOrder...)
	for _, feature := range m.Features {
		if !known.Contains(feature) {
			return fmt.Errorf("model manifest references unknown feature %q", feature)
		}
	}
	if len(m.Scaler.Mean) != len(m.Features) || len(m.Scaler.Scale) != len(m.Features) {
		return fmt.Errorf("model manifest scaler does not cover all %d features", len(m.Features))
	}
	for i, scale := range m.Scaler.Scale {
		if scale == 0 {
			return fmt.Errorf("model manifest scaler has zero scale for feature %q", m.Features[i])
		}
	}
	if len(m.Trees) == 0 {
		return fmt.Errorf("model manifest has no trees")
	}
	for i, tree := range m.Trees {
		if err := tree.validate(len(m.Features)); err != nil {
			return fmt.Errorf("model manifest tree %d: %w", i, err)
		}
	}
	return nil
}

func (t Tree) validate(featureCount int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, node := range t.Nodes {
		if len(node.Value) != 2 {
			return fmt.Errorf("node %d does not carry binary class counts", i)
		}
		if node.Value[0]+node.Value[1] <= 0 {
			return fmt.Errorf("node %d has no samples", i)
		}
		if node.IsLeaf() {
			continue
		}
		if node.Feature < 0 || node.Feature >= featureCount {
			return fmt.Errorf("node %d splits on feature %d outside the feature vector", i, node.Feature)
		}
		// Preorder layout: children always come after their parent.
		if node.Left <= i || node.Left >= len(t.Nodes) || node.Right <= i || node.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has out of range children", i)
		}
	}
	return nil
}
