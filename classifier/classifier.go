// Package classifier loads the pre-trained cardiovascular risk model and
// scores patient records with it. The model is read-only after loading and
// safe for concurrent use.
package classifier

import (
	"context"

	"github.com/cardioinsight/riskservice/patients"
)

// Prediction is the classifier output for one record: the predicted class
// and the probability of the positive (disease present) class.
type Prediction struct {
	Label       int
	Probability float64
}

// Metrics are the validation metrics frozen when the model was exported.
// They describe the model, not the current patient, and are displayed
// verbatim on reports.
type Metrics struct {
	Accuracy    float64 `json:"accuracy"`
	Sensitivity float64 `json:"sensitivity"`
	Specificity float64 `json:"specificity"`
	AUC         float64 `json:"auc"`
}

// Metadata identifies the loaded model.
type Metadata struct {
	Algorithm string
	Version   string
	Metrics   Metrics
}

// Model scores validated patient records.
type Model interface {
	Predict(ctx context.Context, record patients.Record) (Prediction, error)
	Metadata() Metadata
	Features() []string
}
