package api

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/patients"
	"github.com/cardioinsight/riskservice/report"
	"github.com/cardioinsight/riskservice/risk"
)

type Analysis struct {
	PatientId       string           `json:"patientId"`
	Prediction      Prediction       `json:"prediction"`
	RiskLevel       string           `json:"riskLevel"`
	RiskDisplay     string           `json:"riskDisplay"`
	Policy          string           `json:"policy"`
	Details         []PatientDetail  `json:"details"`
	RiskFactors     []RiskFactor     `json:"riskFactors"`
	Recommendations []Recommendation `json:"recommendations"`
	Explanation     string           `json:"explanation"`
}

type Prediction struct {
	Label       int     `json:"label"`
	Diagnosis   string  `json:"diagnosis"`
	Probability float64 `json:"probability"`
	RiskScore   float64 `json:"riskScore"`
}

type PatientDetail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type RiskFactor struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Severity string  `json:"severity"`
}

type Recommendation struct {
	Priority string `json:"priority"`
	Text     string `json:"text"`
}

type Report struct {
	Id        string `json:"id"`
	Filename  string `json:"filename"`
	Renderer  string `json:"renderer"`
	RiskLevel string `json:"riskLevel"`
	Preview   string `json:"preview"`
	Download  string `json:"download"`
}

func NewAnalysisDto(record patients.Record, prediction classifier.Prediction, assessment risk.Assessment, explanation string, at time.Time) Analysis {
	diagnosis := "Healthy"
	if prediction.Label == 1 {
		diagnosis = "Heart Disease"
	}

	rows := record.Details()
	details := make([]PatientDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, PatientDetail{
			Label: strings.TrimSuffix(row.Label, ":"),
			Value: row.Value,
		})
	}

	factors := make([]RiskFactor, 0, len(assessment.Factors))
	for _, f := range assessment.Factors {
		factors = append(factors, RiskFactor{
			Name:     f.Name,
			Value:    f.Value,
			Severity: f.Severity.String(),
		})
	}

	recommendations := make([]Recommendation, 0, len(assessment.Recommendations))
	for _, r := range assessment.Recommendations {
		recommendations = append(recommendations, Recommendation{
			Priority: string(r.Priority),
			Text:     r.Text,
		})
	}

	return Analysis{
		PatientId: report.PatientID(record, at),
		Prediction: Prediction{
			Label:       prediction.Label,
			Diagnosis:   diagnosis,
			Probability: prediction.Probability,
			RiskScore:   prediction.Probability * 100,
		},
		RiskLevel:       assessment.Tier.String(),
		RiskDisplay:     TierDisplay(assessment.Tier),
		Policy:          assessment.Policy,
		Details:         details,
		RiskFactors:     factors,
		Recommendations: recommendations,
		Explanation:     explanation,
	}
}

func NewReportDto(result *report.Result) Report {
	return Report{
		Id:        result.ID,
		Filename:  result.Filename,
		Renderer:  result.Renderer,
		RiskLevel: result.Tier.String(),
		Preview:   "data:image/png;base64," + base64.StdEncoding.EncodeToString(result.Data),
		Download:  fmt.Sprintf("/api/v1/reports/%s/download", result.ID),
	}
}

// TierDisplay renders a tier label in title case for the dashboard, for
// example "Low-Moderate Risk".
func TierDisplay(tier risk.Tier) string {
	return cases.Title(language.English).String(strings.ToLower(tier.String()))
}
