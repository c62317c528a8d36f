package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/explain"
	"github.com/cardioinsight/riskservice/risk"
)

var scoreParams = struct {
	Record string
	Policy string
}{}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a patient record",
	Long:  "The score command grades a single patient record and prints the risk assessment",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(scoreRecord) },
}

func init() {
	scoreCmd.Flags().StringVar(&scoreParams.Record, "record", "", "Path to a JSON patient record")
	scoreCmd.Flags().StringVar(&scoreParams.Policy, "policy", "", "Risk policy to grade with (defaults to the configured one)")
	_ = scoreCmd.MarkFlagRequired("record")
	rootCmd.AddCommand(scoreCmd)
}

func scoreRecord(model classifier.Model, forest *classifier.Forest, configured risk.Policy) error {
	record, err := loadRecord(scoreParams.Record)
	if err != nil {
		return err
	}

	policy := configured
	if scoreParams.Policy != "" {
		if policy, err = risk.PolicyByName(scoreParams.Policy); err != nil {
			return err
		}
	}

	prediction, err := model.Predict(context.TODO(), record)
	if err != nil {
		return err
	}
	assessment := risk.Assess(policy, prediction.Label, prediction.Probability, record)

	diagnosis := "Healthy"
	if prediction.Label == 1 {
		diagnosis = "Heart Disease"
	}
	fmt.Printf("Prediction: %s\n", diagnosis)
	fmt.Printf("Probability: %.1f%%\n", assessment.Probability*100)
	fmt.Printf("Risk level: %s (%s policy)\n", assessment.Tier, assessment.Policy)

	fmt.Println()
	fmt.Println("Recommendations:")
	for _, recommendation := range assessment.Recommendations {
		fmt.Printf("  [%s] %s\n", recommendation.Priority, recommendation.Text)
	}

	attribution, err := explain.Attribute(forest, record)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(explain.Summarize(attribution))

	return nil
}
