package risk_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	patientsTest "github.com/cardioinsight/riskservice/patients/test"
	"github.com/cardioinsight/riskservice/risk"
)

var _ = Describe("Factors", func() {
	It("derives the five named ratios", func() {
		factors := risk.Factors(routinePatient())

		Expect(factors).To(HaveLen(5))
		Expect(factors[0].Name).To(Equal("Age Factor"))
		Expect(factors[1].Name).To(Equal("Blood Pressure"))
		Expect(factors[2].Name).To(Equal("Cholesterol Level"))
		Expect(factors[3].Name).To(Equal("Heart Rate Reserve"))
		Expect(factors[4].Name).To(Equal("ST Depression"))
	})

	It("computes the reference patient's ratios", func() {
		factors := risk.Factors(routinePatient())

		Expect(factors[0].Value).To(BeNumerically("~", 52.0/80, 1e-9))
		Expect(factors[1].Value).To(BeNumerically("~", 125.0/180, 1e-9))
		Expect(factors[2].Value).To(BeNumerically("~", 212.0/300, 1e-9))
		Expect(factors[3].Value).To(BeNumerically("~", 1-168.0/200, 1e-9))
		Expect(factors[4].Value).To(BeNumerically("~", 0.25, 1e-9))
	})

	It("clamps every ratio to the unit interval", func() {
		for i := 0; i < 50; i++ {
			for _, factor := range risk.Factors(patientsTest.RandomRecord()) {
				Expect(factor.Value).To(BeNumerically(">=", 0))
				Expect(factor.Value).To(BeNumerically("<=", 1))
			}
		}
	})

	It("clamps extreme cholesterol to one", func() {
		record := routinePatient()
		record.Cholesterol = 600

		factors := risk.Factors(record)
		Expect(factors[2].Value).To(Equal(1.0))
		Expect(factors[2].Severity).To(Equal(risk.SeverityHigh))
	})

	It("buckets severities at the documented cutoffs", func() {
		Expect(risk.FactorSeverity(0.49)).To(Equal(risk.SeverityNormal))
		Expect(risk.FactorSeverity(0.5)).To(Equal(risk.SeverityElevated))
		Expect(risk.FactorSeverity(0.69)).To(Equal(risk.SeverityElevated))
		Expect(risk.FactorSeverity(0.7)).To(Equal(risk.SeverityHigh))
		Expect(risk.FactorSeverity(1.0)).To(Equal(risk.SeverityHigh))
	})
})
