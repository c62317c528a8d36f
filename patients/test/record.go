package test

import (
	"github.com/cardioinsight/riskservice/patients"
	"github.com/cardioinsight/riskservice/test"
)

// RandomRecord returns a record that always passes validation.
func RandomRecord() patients.Record {
	return patients.Record{
		Age:            test.Faker.IntBetween(patients.MinAge, patients.MaxAge),
		Sex:            test.Faker.IntBetween(0, 1),
		ChestPainType:  test.Faker.IntBetween(0, 3),
		RestingBP:      test.Faker.IntBetween(patients.MinRestingBP, patients.MaxRestingBP),
		Cholesterol:    test.Faker.IntBetween(patients.MinCholesterol, patients.MaxCholesterol),
		FastingBS:      test.Faker.IntBetween(0, 1),
		RestingECG:     test.Faker.IntBetween(0, 2),
		MaxHeartRate:   test.Faker.IntBetween(patients.MinMaxHeartRate, patients.MaxMaxHeartRate),
		ExerciseAngina: test.Faker.IntBetween(0, 1),
		STDepression:   test.Faker.Float64(1, 0, 10),
		STSlope:        test.Faker.IntBetween(0, 2),
		VesselCount:    test.Faker.IntBetween(0, patients.MaxVesselCount),
		Thalassemia:    test.Faker.IntBetween(0, 3),
	}
}
