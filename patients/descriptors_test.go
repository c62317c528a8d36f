package patients_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cardioinsight/riskservice/patients"
)

var _ = Describe("Descriptors", func() {
	It("describes chest pain codes", func() {
		Expect(patients.DescribeChestPain(0)).To(Equal("Asymptomatic"))
		Expect(patients.DescribeChestPain(1)).To(Equal("Typical Angina"))
		Expect(patients.DescribeChestPain(2)).To(Equal("Atypical Angina"))
		Expect(patients.DescribeChestPain(3)).To(Equal("Non-Anginal Pain"))
	})

	It("describes resting ECG codes", func() {
		Expect(patients.DescribeRestingECG(0)).To(Equal("Normal"))
		Expect(patients.DescribeRestingECG(1)).To(Equal("ST-T Abnormality"))
		Expect(patients.DescribeRestingECG(2)).To(Equal("Left Ventricular Hypertrophy"))
	})

	It("describes ST slope codes", func() {
		Expect(patients.DescribeSTSlope(0)).To(Equal("Upsloping"))
		Expect(patients.DescribeSTSlope(1)).To(Equal("Flat"))
		Expect(patients.DescribeSTSlope(2)).To(Equal("Downsloping"))
	})

	It("describes thalassemia codes", func() {
		Expect(patients.DescribeThalassemia(0)).To(Equal("Unknown"))
		Expect(patients.DescribeThalassemia(1)).To(Equal("Normal"))
		Expect(patients.DescribeThalassemia(2)).To(Equal("Fixed Defect"))
		Expect(patients.DescribeThalassemia(3)).To(Equal("Reversible Defect"))
	})

	It("falls back to Unknown for any code outside the domain", func() {
		for _, code := range []int{-10, -1, 4, 5, 42, 999} {
			Expect(patients.DescribeChestPain(code)).To(Equal(patients.DescriptionUnknown))
			Expect(patients.DescribeSTSlope(code)).To(Equal(patients.DescriptionUnknown))
			Expect(patients.DescribeThalassemia(code)).To(Equal(patients.DescriptionUnknown))
		}
		for _, code := range []int{-10, -1, 3, 42} {
			Expect(patients.DescribeRestingECG(code)).To(Equal(patients.DescriptionUnknown))
		}
	})

	It("describes binary flags", func() {
		Expect(patients.DescribeSex(1)).To(Equal("Male"))
		Expect(patients.DescribeSex(0)).To(Equal("Female"))
		Expect(patients.DescribeExerciseAngina(1)).To(Equal("Present"))
		Expect(patients.DescribeExerciseAngina(0)).To(Equal("Absent"))
		Expect(patients.DescribeFastingBS(1)).To(Equal(">120 mg/dL"))
		Expect(patients.DescribeFastingBS(0)).To(Equal("≤120 mg/dL"))
	})
})
