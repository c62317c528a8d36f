package report_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardioinsight/riskservice/report"
)

var _ = Describe("Identifiers", func() {
	It("derives a stable date-stamped patient display id", func() {
		record := testRecord()
		first := report.PatientID(record, generatedAt)
		Expect(first).To(MatchRegexp(`^CI-20250314-\d{3}$`))
		Expect(report.PatientID(record, generatedAt)).To(Equal(first))
	})

	It("stamps the report id with the full timestamp", func() {
		Expect(report.ReportID(generatedAt)).To(Equal("CI-20250314093000"))
	})

	It("names downloads after the generation time", func() {
		Expect(report.Filename(generatedAt)).To(Equal("CardioInsight_Report_20250314_093000.png"))
		Expect(report.Filename(generatedAt)).To(MatchRegexp(`^CardioInsight_Report_\d{8}_\d{6}\.png$`))
	})
})
