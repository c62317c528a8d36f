package scoring

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/tealeg/xlsx/v3"

	"github.com/cardioinsight/riskservice/classifier"
	"github.com/cardioinsight/riskservice/patients"
	"github.com/cardioinsight/riskservice/risk"
)

const (
	ReportSheetNameSummary = "Summary"
	ReportSheetNameScores  = "Scores"
)

// Report renders a scored roster as an xlsx workbook with a run summary
// sheet and one scores row per roster line.
type Report struct {
	Source    string
	Generated time.Time
	Metadata  classifier.Metadata
	Policy    risk.Policy
	Rows      []Row
}

func NewReport(source string, metadata classifier.Metadata, policy risk.Policy, rows []Row) Report {
	return Report{
		Source:    source,
		Generated: time.Now(),
		Metadata:  metadata,
		Policy:    policy,
		Rows:      rows,
	}
}

func (r Report) Generate() (*xlsx.File, error) {
	report := xlsx.NewFile()

	components := []func(report *xlsx.File) error{
		r.addSummarySheet,
		r.addScoresSheet,
	}
	for _, fn := range components {
		if err := fn(report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (r Report) addSummarySheet(report *xlsx.File) error {
	sh, err := report.AddSheet(ReportSheetNameSummary)
	if err != nil {
		return err
	}

	components := []func(sh *xlsx.Sheet) error{
		r.addSummaryHeader,
		r.addOutcomeSummary,
		r.addErrorSummary,
	}
	for _, fn := range components {
		if err := fn(sh); err != nil {
			return err
		}
	}

	return nil
}

func (r Report) addSummaryHeader(sh *xlsx.Sheet) error {
	sh.AddRow().AddCell().SetValue("Batch Scoring Summary")
	sh.AddRow()

	var currentRow *xlsx.Row
	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Report Generated")
	currentRow.AddCell().SetValue(r.Generated.Format(time.RFC3339))

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Source")
	currentRow.AddCell().SetValue(r.Source)

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Model")
	currentRow.AddCell().SetValue(fmt.Sprintf("%s v%s", r.Metadata.Algorithm, r.Metadata.Version))

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Risk policy")
	currentRow.AddCell().SetValue(r.Policy.Name)
	sh.AddRow()

	return nil
}

func (r Report) addOutcomeSummary(sh *xlsx.Sheet) error {
	scored, failed := Tally(r.Rows)

	var currentRow *xlsx.Row
	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Records scored")
	currentRow.AddCell().SetValue(scored)

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Records failed")
	currentRow.AddCell().SetValue(failed)

	return nil
}

func (r Report) addErrorSummary(sh *xlsx.Sheet) error {
	if _, failed := Tally(r.Rows); failed == 0 {
		return nil
	}

	sh.AddRow()
	sh.AddRow().AddCell().SetValue("Errors ---")
	for _, message := range uniqueRowErrors(r.Rows) {
		sh.AddRow().AddCell().SetValue(message)
	}

	return nil
}

func (r Report) addScoresSheet(report *xlsx.File) error {
	sh, err := report.AddSheet(ReportSheetNameScores)
	if err != nil {
		return err
	}

	currentRow := sh.AddRow()
	currentRow.AddCell().SetValue("Row")
	for _, feature := range patients.FeatureOrder {
		currentRow.AddCell().SetValue(feature)
	}
	currentRow.AddCell().SetValue("Probability")
	currentRow.AddCell().SetValue("Risk Level")
	currentRow.AddCell().SetValue("Top Factor")
	currentRow.AddCell().SetValue("Error")

	for _, row := range r.Rows {
		currentRow = sh.AddRow()
		currentRow.AddCell().SetValue(row.Index)
		for _, cell := range row.Cells {
			currentRow.AddCell().SetValue(cell)
		}
		if row.Err != nil {
			currentRow.AddCell()
			currentRow.AddCell()
			currentRow.AddCell()
			currentRow.AddCell().SetValue(row.Err.Error())
			continue
		}
		currentRow.AddCell().SetValue(strconv.FormatFloat(row.Probability, 'f', 4, 64))
		currentRow.AddCell().SetValue(row.Tier.String())
		currentRow.AddCell().SetValue(row.TopFactor)
		currentRow.AddCell()
	}

	return nil
}

func uniqueRowErrors(rows []Row) []string {
	set := mapset.NewSet[string]()
	for _, row := range rows {
		if row.Err != nil {
			set.Add(row.Err.Error())
		}
	}
	messages := set.ToSlice()
	sort.Strings(messages)
	return messages
}
