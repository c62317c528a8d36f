package risk

import (
	"math"

	"github.com/cardioinsight/riskservice/patients"
)

// Severity buckets a factor ratio for presentation.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityElevated
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityElevated:
		return "elevated"
	default:
		return "normal"
	}
}

// Factor is a named risk ratio in [0,1] derived from a single clinical value.
type Factor struct {
	Name     string
	Value    float64
	Severity Severity
}

// FactorSeverity buckets a ratio: 0.7 and above is high, 0.5 and above is
// elevated, anything lower is normal.
func FactorSeverity(value float64) Severity {
	switch {
	case value >= 0.7:
		return SeverityHigh
	case value >= 0.5:
		return SeverityElevated
	default:
		return SeverityNormal
	}
}

// Factors derives the ratios shown in the diagnostic analytics and on the
// analysis page. Each is clamped to [0,1].
func Factors(record patients.Record) []Factor {
	values := []struct {
		name  string
		value float64
	}{
		{"Age Factor", float64(record.Age) / 80},
		{"Blood Pressure", float64(record.RestingBP) / 180},
		{"Cholesterol Level", float64(record.Cholesterol) / 300},
		{"Heart Rate Reserve", 1 - math.Min(float64(record.MaxHeartRate)/200, 1)},
		{"ST Depression", record.STDepression / 4},
	}

	factors := make([]Factor, 0, len(values))
	for _, v := range values {
		value := math.Min(math.Max(v.value, 0), 1)
		factors = append(factors, Factor{Name: v.name, Value: value, Severity: FactorSeverity(value)})
	}
	return factors
}
