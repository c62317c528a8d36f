package report

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/cardioinsight/riskservice/patients"
)

// PatientID derives the display identifier printed on the report header.
// It hashes the clinical values so the same submission always displays the
// same id, but the three digit suffix makes collisions between different
// patients possible. It is a display label, not a database key.
func PatientID(record patients.Record, at time.Time) string {
	h := fnv.New32a()
	h.Write([]byte(record.String()))
	return fmt.Sprintf("CI-%s-%03d", at.Format("20060102"), h.Sum32()%1000)
}

// ReportID stamps the footer of the rendered page. The download id of the
// stored result is a separate uuid.
func ReportID(at time.Time) string {
	return "CI-" + at.Format("20060102150405")
}

// Filename names the PNG attachment offered to the browser.
func Filename(at time.Time) string {
	return "CardioInsight_Report_" + at.Format("20060102_150405") + ".png"
}
