package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/patients/scoring"
	"github.com/cardioinsight/riskservice/risk"
)

var batchParams = struct {
	In     string
	Out    string
	Policy string
}{}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a CSV of patient records",
	Long:  "The batch command scores every record of a CSV file and writes an xlsx scoring workbook",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(scoreBatch) },
}

func init() {
	batchCmd.Flags().StringVar(&batchParams.In, "in", "", "Path to a CSV of patient records (header row holds the feature names)")
	batchCmd.Flags().StringVar(&batchParams.Out, "out", "scores.xlsx", "Output path for the scoring workbook")
	batchCmd.Flags().StringVar(&batchParams.Policy, "policy", "", "Risk policy to grade with (defaults to the configured one)")
	_ = batchCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(batchCmd)
}

func scoreBatch(model classifier.Model, forest *classifier.Forest, configured risk.Policy) error {
	policy := configured
	if batchParams.Policy != "" {
		var err error
		if policy, err = risk.PolicyByName(batchParams.Policy); err != nil {
			return err
		}
	}

	scorer := scoring.NewScorer(model, forest, policy)
	rows, err := scorer.ScoreRoster(context.TODO(), batchParams.In)
	if err != nil {
		return err
	}

	report := scoring.NewReport(batchParams.In, model.Metadata(), policy, rows)
	file, err := report.Generate()
	if err != nil {
		return err
	}
	if err := file.Save(batchParams.Out); err != nil {
		return fmt.Errorf("writing workbook to %s: %w", batchParams.Out, err)
	}

	scored, failed := scoring.Tally(rows)
	fmt.Printf("Scored %d records (%d failed), workbook written to %s\n", scored, failed, batchParams.Out)
	return nil
}
