package patients

// PopulationAverages are reference values from the training cohort, shown
// next to the patient's values in the radar comparison.
var PopulationAverages = map[string]float64{
	FeatureAge:          54,
	FeatureRestingBP:    131,
	FeatureCholesterol:  246,
	FeatureMaxHeartRate: 149,
	FeatureSTDepression: 1.0,
}
