package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cardioinsight/riskservice/charts"
	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/explain"
	"github.com/cardioinsight/riskservice/report"
	"github.com/cardioinsight/riskservice/risk"
)

var reportParams = struct {
	Record   string
	Out      string
	Renderer string
	Policy   string
}{}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a PNG risk report",
	Long:  "The report command renders the print report for a patient record and writes it to a file",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(generateReport) },
}

func init() {
	reportCmd.Flags().StringVar(&reportParams.Record, "record", "", "Path to a JSON patient record")
	reportCmd.Flags().StringVar(&reportParams.Out, "out", "", "Output path for the PNG (defaults to the report filename)")
	reportCmd.Flags().StringVar(&reportParams.Renderer, "renderer", "", "Report renderer: raster or chart (defaults to the configured one)")
	reportCmd.Flags().StringVar(&reportParams.Policy, "policy", "", "Risk policy to grade with (defaults to the configured one)")
	_ = reportCmd.MarkFlagRequired("record")
	rootCmd.AddCommand(reportCmd)
}

func generateReport(model classifier.Model, forest *classifier.Forest, configured risk.Policy, generator *charts.Generator, reports report.Service) error {
	record, err := loadRecord(reportParams.Record)
	if err != nil {
		return err
	}

	policy := configured
	if reportParams.Policy != "" {
		if policy, err = risk.PolicyByName(reportParams.Policy); err != nil {
			return err
		}
	}

	prediction, err := model.Predict(context.TODO(), record)
	if err != nil {
		return err
	}
	assessment := risk.Assess(policy, prediction.Label, prediction.Probability, record)
	attribution, err := explain.Attribute(forest, record)
	if err != nil {
		return err
	}

	result, err := reports.Generate(context.TODO(), report.Request{
		Record:             record,
		Prediction:         prediction,
		Assessment:         assessment,
		Metadata:           model.Metadata(),
		GeneratedAt:        time.Now(),
		Renderer:           reportParams.Renderer,
		RadarChart:         generator.Radar(record),
		ContributionsChart: generator.Contributions(attribution),
	})
	if err != nil {
		return err
	}

	out := reportParams.Out
	if out == "" {
		out = result.Filename
	}
	if err := os.WriteFile(out, result.Data, 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", out, err)
	}

	fmt.Printf("%s report written to %s (%d bytes)\n", result.Renderer, out, len(result.Data))
	return nil
}
