package explain_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardioinsight/riskservice/classifier"
	classifierTest "github.com/cardioinsight/riskservice/classifier/test"
	"github.com/cardioinsight/riskservice/explain"
	"github.com/cardioinsight/riskservice/patients"
	patientsTest "github.com/cardioinsight/riskservice/patients/test"
)

var _ = Describe("Explain", func() {
	var forest *classifier.Forest

	BeforeEach(func() {
		forest = classifierTest.Forest()
	})

	referenceRecord := func() patients.Record {
		return patients.Record{
			Age: 52, Sex: 1, ChestPainType: 0, RestingBP: 125, Cholesterol: 212,
			FastingBS: 0, RestingECG: 1, MaxHeartRate: 168, ExerciseAngina: 0,
			STDepression: 1.0, STSlope: 2, VesselCount: 2, Thalassemia: 3,
		}
	}

	Describe("Attribute", func() {
		It("returns one contribution per model feature in model order", func() {
			attribution, err := explain.Attribute(forest, referenceRecord())

			Expect(err).ToNot(HaveOccurred())
			Expect(attribution.Contributions).To(HaveLen(len(patients.FeatureOrder)))
			for i, contribution := range attribution.Contributions {
				Expect(contribution.Feature).To(Equal(patients.FeatureOrder[i]))
			}
		})

		It("carries the submitted values alongside contributions", func() {
			attribution, err := explain.Attribute(forest, referenceRecord())

			Expect(err).ToNot(HaveOccurred())
			byFeature := map[string]explain.Contribution{}
			for _, c := range attribution.Contributions {
				byFeature[c.Feature] = c
			}
			Expect(byFeature[patients.FeatureThalassemia].Value).To(Equal(3.0))
			Expect(byFeature[patients.FeatureVesselCount].Value).To(Equal(2.0))
		})

		It("reconstructs the prediction from base and contributions", func() {
			for i := 0; i < 50; i++ {
				record := patientsTest.RandomRecord()
				prediction, err := forest.Predict(context.Background(), record)
				Expect(err).ToNot(HaveOccurred())

				attribution, err := explain.Attribute(forest, record)
				Expect(err).ToNot(HaveOccurred())
				Expect(attribution.Probability).To(BeNumerically("~", prediction.Probability, 1e-9))

				total := attribution.Base
				for _, c := range attribution.Contributions {
					total += c.Contribution
				}
				Expect(total).To(BeNumerically("~", attribution.Probability, 1e-9))
			}
		})
	})

	Describe("Summarize", func() {
		It("names the three largest factors in order of absolute shift", func() {
			attribution, err := explain.Attribute(forest, referenceRecord())
			Expect(err).ToNot(HaveOccurred())

			summary := explain.Summarize(attribution)
			lines := strings.Split(summary, "\n")

			Expect(lines).To(HaveLen(4))
			Expect(lines[0]).To(Equal("The model's prediction was primarily influenced by these factors:"))
			Expect(lines[1]).To(Equal("- The thal value of 3 significantly increased the patient's risk."))
			Expect(lines[2]).To(Equal("- The oldpeak value of 1 significantly decreased the patient's risk."))
			Expect(lines[3]).To(Equal("- The ca value of 2 significantly increased the patient's risk."))
		})

		It("describes small shifts as slight", func() {
			attribution := explain.Attribution{
				Contributions: []explain.Contribution{
					{Feature: "age", Value: 47, Contribution: 0.01},
				},
			}

			summary := explain.Summarize(attribution)
			Expect(summary).To(ContainSubstring("slightly increased"))
		})

		It("treats a zero shift as a decrease, matching the sign convention", func() {
			attribution := explain.Attribution{
				Contributions: []explain.Contribution{
					{Feature: "chol", Value: 212, Contribution: 0},
				},
			}

			summary := explain.Summarize(attribution)
			Expect(summary).To(ContainSubstring("slightly decreased"))
		})
	})
})
