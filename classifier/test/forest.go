package test

import (
	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/patients"
)

// Manifest builds the two tree fixture used across suites. The first tree
// splits on vessel count then ST depression, the second on thalassemia then
// maximum heart rate. Class counts are chosen so every leaf fraction is
// exact in binary arithmetic.
func Manifest() *classifier.Manifest {
	return &classifier.Manifest{
		Algorithm: "Random Forest",
		Version:   "2.3.1",
		Features:  append([]string{}, patients.FeatureOrder...),
		Scaler: classifier.Scaler{
			Mean:  []float64{50, 0.5, 1, 130, 240, 0, 0, 150, 0, 1, 1, 0, 2},
			Scale: []float64{10, 0.5, 1, 20, 50, 1, 1, 25, 1, 1, 1, 1, 1},
		},
		Trees: []classifier.Tree{
			{Nodes: []classifier.Node{
				{Feature: 11, Threshold: 0.5, Left: 1, Right: 2, Value: []float64{60, 40}},
				{Feature: -1, Left: -1, Right: -1, Value: []float64{40, 10}},
				{Feature: 9, Threshold: 0, Left: 3, Right: 4, Value: []float64{20, 30}},
				{Feature: -1, Left: -1, Right: -1, Value: []float64{15, 10}},
				{Feature: -1, Left: -1, Right: -1, Value: []float64{5, 20}},
			}},
			{Nodes: []classifier.Node{
				{Feature: 12, Threshold: 0.5, Left: 1, Right: 2, Value: []float64{60, 40}},
				{Feature: 7, Threshold: 0, Left: 3, Right: 4, Value: []float64{45, 15}},
				{Feature: -1, Left: -1, Right: -1, Value: []float64{15, 25}},
				{Feature: -1, Left: -1, Right: -1, Value: []float64{25, 15}},
				{Feature: -1, Left: -1, Right: -1, Value: []float64{20, 0}},
			}},
		},
		Metrics: classifier.Metrics{Accuracy: 0.942, Sensitivity: 0.918, Specificity: 0.961, AUC: 0.952},
	}
}

// Forest restores the fixture classifier.
func Forest() *classifier.Forest {
	forest, err := classifier.NewForestFromManifest(Manifest())
	if err != nil {
		panic(err)
	}
	return forest
}
