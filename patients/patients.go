// Package patients holds the clinical intake record and the vocabulary used
// to present it: descriptor lookups for coded fields, display formatting with
// units, and the population reference values used in comparisons.
package patients

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/structs"

	"github.com/cardioinsight/riskservice/errors"
)

// Feature keys follow the Cleveland heart disease dataset column names. The
// classifier manifest, the intake form and the batch scorer all use them.
const (
	FeatureAge            = "age"
	FeatureSex            = "sex"
	FeatureChestPain      = "cp"
	FeatureRestingBP      = "trestbps"
	FeatureCholesterol    = "chol"
	FeatureFastingBS      = "fbs"
	FeatureRestingECG     = "restecg"
	FeatureMaxHeartRate   = "thalach"
	FeatureExerciseAngina = "exang"
	FeatureSTDepression   = "oldpeak"
	FeatureSTSlope        = "slope"
	FeatureVesselCount    = "ca"
	FeatureThalassemia    = "thal"
)

// FeatureOrder is the canonical column order of the training set.
var FeatureOrder = []string{
	FeatureAge,
	FeatureSex,
	FeatureChestPain,
	FeatureRestingBP,
	FeatureCholesterol,
	FeatureFastingBS,
	FeatureRestingECG,
	FeatureMaxHeartRate,
	FeatureExerciseAngina,
	FeatureSTDepression,
	FeatureSTSlope,
	FeatureVesselCount,
	FeatureThalassemia,
}

// Intake form bounds. Records outside these ranges are rejected before they
// reach the classifier.
const (
	MinAge          = 20
	MaxAge          = 90
	MinRestingBP    = 80
	MaxRestingBP    = 200
	MinCholesterol  = 100
	MaxCholesterol  = 600
	MinMaxHeartRate = 60
	MaxMaxHeartRate = 220
	MaxSTDepression = 10.0
	MaxVesselCount  = 4
)

// Record is a single patient's clinical intake. Records are value objects:
// validated once on submission and never mutated afterwards.
type Record struct {
	Age            int     `json:"age" mapstructure:"age" structs:"age"`
	Sex            int     `json:"sex" mapstructure:"sex" structs:"sex"`
	ChestPainType  int     `json:"cp" mapstructure:"cp" structs:"cp"`
	RestingBP      int     `json:"trestbps" mapstructure:"trestbps" structs:"trestbps"`
	Cholesterol    int     `json:"chol" mapstructure:"chol" structs:"chol"`
	FastingBS      int     `json:"fbs" mapstructure:"fbs" structs:"fbs"`
	RestingECG     int     `json:"restecg" mapstructure:"restecg" structs:"restecg"`
	MaxHeartRate   int     `json:"thalach" mapstructure:"thalach" structs:"thalach"`
	ExerciseAngina int     `json:"exang" mapstructure:"exang" structs:"exang"`
	STDepression   float64 `json:"oldpeak" mapstructure:"oldpeak" structs:"oldpeak"`
	STSlope        int     `json:"slope" mapstructure:"slope" structs:"slope"`
	VesselCount    int     `json:"ca" mapstructure:"ca" structs:"ca"`
	Thalassemia    int     `json:"thal" mapstructure:"thal" structs:"thal"`
}

// Validate checks the record against the intake form bounds and the coded
// domains. All violations are reported at once.
func (r Record) Validate() error {
	var problems []string
	if r.Age < MinAge || r.Age > MaxAge {
		problems = append(problems, fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge))
	}
	if r.Sex != 0 && r.Sex != 1 {
		problems = append(problems, "sex must be 0 (female) or 1 (male)")
	}
	if r.ChestPainType < 0 || r.ChestPainType > 3 {
		problems = append(problems, "cp must be between 0 and 3")
	}
	if r.RestingBP < MinRestingBP || r.RestingBP > MaxRestingBP {
		problems = append(problems, fmt.Sprintf("trestbps must be between %d and %d", MinRestingBP, MaxRestingBP))
	}
	if r.Cholesterol < MinCholesterol || r.Cholesterol > MaxCholesterol {
		problems = append(problems, fmt.Sprintf("chol must be between %d and %d", MinCholesterol, MaxCholesterol))
	}
	if r.FastingBS != 0 && r.FastingBS != 1 {
		problems = append(problems, "fbs must be 0 or 1")
	}
	if r.RestingECG < 0 || r.RestingECG > 2 {
		problems = append(problems, "restecg must be between 0 and 2")
	}
	if r.MaxHeartRate < MinMaxHeartRate || r.MaxHeartRate > MaxMaxHeartRate {
		problems = append(problems, fmt.Sprintf("thalach must be between %d and %d", MinMaxHeartRate, MaxMaxHeartRate))
	}
	if r.ExerciseAngina != 0 && r.ExerciseAngina != 1 {
		problems = append(problems, "exang must be 0 or 1")
	}
	if r.STDepression < 0 || r.STDepression > MaxSTDepression {
		problems = append(problems, fmt.Sprintf("oldpeak must be between 0 and %v", MaxSTDepression))
	}
	if r.STSlope < 0 || r.STSlope > 2 {
		problems = append(problems, "slope must be between 0 and 2")
	}
	if r.VesselCount < 0 || r.VesselCount > MaxVesselCount {
		problems = append(problems, fmt.Sprintf("ca must be between 0 and %d", MaxVesselCount))
	}
	if r.Thalassemia < 0 || r.Thalassemia > 3 {
		problems = append(problems, "thal must be between 0 and 3")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", errors.BadRequest, strings.Join(problems, ", "))
	}
	return nil
}

// Features maps the record to named feature values for the classifier.
func (r Record) Features() map[string]float64 {
	features := make(map[string]float64, len(FeatureOrder))
	for name, value := range structs.Map(r) {
		switch v := value.(type) {
		case int:
			features[name] = float64(v)
		case float64:
			features[name] = v
		}
	}
	return features
}

// String renders the record in canonical feature order. Report identifiers
// are derived from this representation, so it must stay stable for equal
// records.
func (r Record) String() string {
	features := r.Features()
	parts := make([]string, 0, len(FeatureOrder))
	for _, name := range FeatureOrder {
		parts = append(parts, fmt.Sprintf("%s=%s", name, formatFeature(features[name])))
	}
	return strings.Join(parts, " ")
}

// Detail is one label and value row of the patient information panel.
type Detail struct {
	Label string
	Value string
}

// Details returns the record formatted for display, units included, in
// presentation order. Identifier rows are prepended by the report layer.
func (r Record) Details() []Detail {
	return []Detail{
		{"Age:", fmt.Sprintf("%d years", r.Age)},
		{"Gender:", DescribeSex(r.Sex)},
		{"Chest Pain Type:", DescribeChestPain(r.ChestPainType)},
		{"Resting Blood Pressure:", fmt.Sprintf("%d mmHg", r.RestingBP)},
		{"Serum Cholesterol:", fmt.Sprintf("%d mg/dL", r.Cholesterol)},
		{"Maximum Heart Rate:", fmt.Sprintf("%d bpm", r.MaxHeartRate)},
		{"Exercise Induced Angina:", DescribeExerciseAngina(r.ExerciseAngina)},
		{"Fasting Blood Sugar:", DescribeFastingBS(r.FastingBS)},
		{"Resting ECG:", DescribeRestingECG(r.RestingECG)},
		{"ST Depression:", FormatSTDepression(r.STDepression) + " mm"},
		{"Thalassemia:", DescribeThalassemia(r.Thalassemia)},
	}
}

// FormatSTDepression renders the ST depression magnitude with at least one
// decimal place, the way it is charted clinically.
func FormatSTDepression(mm float64) string {
	if mm == math.Trunc(mm) {
		return strconv.FormatFloat(mm, 'f', 1, 64)
	}
	return strconv.FormatFloat(mm, 'f', -1, 64)
}

func formatFeature(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
