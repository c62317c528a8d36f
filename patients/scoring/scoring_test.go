package scoring_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardioinsight/riskservice/classifier"
	classifierTest "github.com/cardioinsight/riskservice/classifier/test"
	"github.com/cardioinsight/riskservice/patients"
	"github.com/cardioinsight/riskservice/patients/scoring"
	"github.com/cardioinsight/riskservice/risk"
)

// referenceLine walks the fixture forest to probability 0.5125 with
// label 1; thal carries the largest contribution.
const referenceLine = "52,1,0,125,212,0,1,168,0,1.0,2,2,3"

var _ = Describe("Scorer", func() {
	var scorer *scoring.Scorer

	BeforeEach(func() {
		forest := classifierTest.Forest()
		policy, err := risk.PolicyByName(risk.PolicyStandard)
		Expect(err).ToNot(HaveOccurred())
		scorer = scoring.NewScorer(classifier.NewModel(forest), forest, policy)
	})

	writeRoster := func(lines ...string) string {
		path := filepath.Join(GinkgoT().TempDir(), "roster.csv")
		content := strings.Join(append([]string{strings.Join(patients.FeatureOrder, ",")}, lines...), "\n")
		Expect(os.WriteFile(path, []byte(content), 0600)).To(Succeed())
		return path
	}

	Describe("ScoreRoster", func() {
		It("returns one row per roster line", func() {
			path := writeRoster(
				referenceLine,
				"45,0,2,130,250,1,0,150,1,2.0,1,0,1",
				"45,0,2,130,abc,1,0,150,1,2.0,1,0,1",
			)

			rows, err := scorer.ScoreRoster(context.Background(), path)

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			for i, row := range rows {
				Expect(row.Index).To(Equal(i + 1))
			}
		})

		It("grades parseable lines", func() {
			rows, err := scorer.ScoreRoster(context.Background(), writeRoster(referenceLine))

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Err).ToNot(HaveOccurred())
			Expect(rows[0].Probability).To(BeNumerically("~", 0.5125, 1e-9))
			Expect(rows[0].Tier).To(Equal(risk.TierCritical))
			Expect(rows[0].TopFactor).To(Equal(patients.FeatureThalassemia))
		})

		It("accepts decimal notation in integer columns", func() {
			line := strings.Replace(referenceLine, "52,", "52.0,", 1)

			rows, err := scorer.ScoreRoster(context.Background(), writeRoster(line))

			Expect(err).ToNot(HaveOccurred())
			Expect(rows[0].Err).ToNot(HaveOccurred())
			Expect(rows[0].Cells[0]).To(Equal("52.0"))
			Expect(rows[0].Probability).To(BeNumerically("~", 0.5125, 1e-9))
		})

		It("keeps a row for lines that fail to parse", func() {
			rows, err := scorer.ScoreRoster(context.Background(), writeRoster(
				"45,0,2,130,abc,1,0,150,1,2.0,1,0,1",
			))

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Err).To(MatchError(`invalid chol value "abc"`))
		})

		It("keeps a row for lines that fail validation", func() {
			rows, err := scorer.ScoreRoster(context.Background(), writeRoster(
				"300,1,0,125,212,0,1,168,0,1.0,2,2,3",
			))

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Err).To(HaveOccurred())
			Expect(rows[0].Err.Error()).To(ContainSubstring("age must be between"))
		})

		It("rejects a roster without a header for every feature", func() {
			path := filepath.Join(GinkgoT().TempDir(), "roster.csv")
			headers := strings.Join(patients.FeatureOrder[:len(patients.FeatureOrder)-1], ",")
			Expect(os.WriteFile(path, []byte(headers+"\n"), 0600)).To(Succeed())

			_, err := scorer.ScoreRoster(context.Background(), path)

			Expect(err).To(MatchError(ContainSubstring(`missing the "thal" column`)))
		})

		It("rejects an unreadable roster", func() {
			_, err := scorer.ScoreRoster(context.Background(), filepath.Join(GinkgoT().TempDir(), "absent.csv"))

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Score", func() {
		It("applies the configured policy", func() {
			forest := classifierTest.Forest()
			policy, err := risk.PolicyByName(risk.PolicyCoarse)
			Expect(err).ToNot(HaveOccurred())
			coarse := scoring.NewScorer(classifier.NewModel(forest), forest, policy)

			record := patients.Record{
				Age: 52, Sex: 1, ChestPainType: 0, RestingBP: 125, Cholesterol: 212,
				FastingBS: 0, RestingECG: 1, MaxHeartRate: 168, ExerciseAngina: 0,
				STDepression: 1.0, STSlope: 2, VesselCount: 2, Thalassemia: 3,
			}
			_, tier, top, err := coarse.Score(context.Background(), record)

			Expect(err).ToNot(HaveOccurred())
			Expect(tier).To(Equal(risk.TierHigh))
			Expect(top).To(Equal(patients.FeatureThalassemia))
		})
	})
})
