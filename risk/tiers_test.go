package risk_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardioinsight/riskservice/errors"
	"github.com/cardioinsight/riskservice/risk"
	"github.com/cardioinsight/riskservice/test"
)

var _ = Describe("Policies", func() {
	Describe("StandardPolicy", func() {
		var policy risk.Policy

		BeforeEach(func() {
			policy = risk.StandardPolicy()
		})

		It("grades probabilities into five tiers", func() {
			Expect(policy.Grade(0, 0.05)).To(Equal(risk.TierLow))
			Expect(policy.Grade(0, 0.3)).To(Equal(risk.TierLowModerate))
			Expect(policy.Grade(0, 0.5)).To(Equal(risk.TierModerate))
			Expect(policy.Grade(0, 0.65)).To(Equal(risk.TierHigh))
			Expect(policy.Grade(0, 0.9)).To(Equal(risk.TierCritical))
		})

		It("includes thresholds in the tier above them", func() {
			Expect(policy.Grade(0, 0.2)).To(Equal(risk.TierLowModerate))
			Expect(policy.Grade(0, 0.4)).To(Equal(risk.TierModerate))
			Expect(policy.Grade(0, 0.6)).To(Equal(risk.TierHigh))
			Expect(policy.Grade(0, 0.75)).To(Equal(risk.TierCritical))
		})

		It("grades just below each threshold into the tier beneath", func() {
			Expect(policy.Grade(0, 0.1999)).To(Equal(risk.TierLow))
			Expect(policy.Grade(0, 0.3999)).To(Equal(risk.TierLowModerate))
			Expect(policy.Grade(0, 0.5999)).To(Equal(risk.TierModerate))
			Expect(policy.Grade(0, 0.7499)).To(Equal(risk.TierHigh))
		})

		It("forces the top tier for a positive label regardless of probability", func() {
			for i := 0; i < 20; i++ {
				Expect(policy.Grade(1, test.Rand.Float64())).To(Equal(risk.TierCritical))
			}
			Expect(policy.Grade(1, 0)).To(Equal(risk.TierCritical))
		})

		It("is monotonic in probability for a fixed label", func() {
			previous := risk.TierLow
			for p := 0.0; p <= 1.0; p += 0.001 {
				tier := policy.Grade(0, p)
				Expect(tier).To(BeNumerically(">=", previous))
				previous = tier
			}
		})
	})

	Describe("CoarsePolicy", func() {
		var policy risk.Policy

		BeforeEach(func() {
			policy = risk.CoarsePolicy()
		})

		It("grades probabilities into three tiers", func() {
			Expect(policy.Grade(0, 0.1)).To(Equal(risk.TierLow))
			Expect(policy.Grade(0, 0.4)).To(Equal(risk.TierModerate))
			Expect(policy.Grade(0, 0.5)).To(Equal(risk.TierModerate))
			Expect(policy.Grade(0, 0.7)).To(Equal(risk.TierHigh))
			Expect(policy.Grade(0, 0.95)).To(Equal(risk.TierHigh))
		})

		It("forces high risk for a positive label", func() {
			Expect(policy.Grade(1, 0.05)).To(Equal(risk.TierHigh))
		})
	})

	Describe("PolicyByName", func() {
		It("resolves the named policies", func() {
			standard, err := risk.PolicyByName(risk.PolicyStandard)
			Expect(err).ToNot(HaveOccurred())
			Expect(standard.Name).To(Equal(risk.PolicyStandard))

			coarse, err := risk.PolicyByName(risk.PolicyCoarse)
			Expect(err).ToNot(HaveOccurred())
			Expect(coarse.Name).To(Equal(risk.PolicyCoarse))
		})

		It("defaults to the standard policy for an empty name", func() {
			policy, err := risk.PolicyByName("")
			Expect(err).ToNot(HaveOccurred())
			Expect(policy.Name).To(Equal(risk.PolicyStandard))
		})

		It("rejects unknown names", func() {
			_, err := risk.PolicyByName("aggressive")
			Expect(err).To(MatchError(errors.BadRequest))
		})
	})

	Describe("Tier", func() {
		It("renders display labels", func() {
			Expect(risk.TierLow.String()).To(Equal("LOW RISK"))
			Expect(risk.TierLowModerate.String()).To(Equal("LOW-MODERATE RISK"))
			Expect(risk.TierModerate.String()).To(Equal("MODERATE RISK"))
			Expect(risk.TierHigh.String()).To(Equal("HIGH RISK"))
			Expect(risk.TierCritical.String()).To(Equal("CRITICAL RISK"))
		})
	})
})
