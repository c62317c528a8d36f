package patients

// DescriptionUnknown is returned for any code outside a descriptor's domain.
const DescriptionUnknown = "Unknown"

var chestPainDescriptions = map[int]string{
	0: "Asymptomatic",
	1: "Typical Angina",
	2: "Atypical Angina",
	3: "Non-Anginal Pain",
}

var restingECGDescriptions = map[int]string{
	0: "Normal",
	1: "ST-T Abnormality",
	2: "Left Ventricular Hypertrophy",
}

var stSlopeDescriptions = map[int]string{
	0: "Upsloping",
	1: "Flat",
	2: "Downsloping",
}

var thalassemiaDescriptions = map[int]string{
	0: "Unknown",
	1: "Normal",
	2: "Fixed Defect",
	3: "Reversible Defect",
}

func DescribeChestPain(code int) string {
	return describe(chestPainDescriptions, code)
}

func DescribeRestingECG(code int) string {
	return describe(restingECGDescriptions, code)
}

func DescribeSTSlope(code int) string {
	return describe(stSlopeDescriptions, code)
}

func DescribeThalassemia(code int) string {
	return describe(thalassemiaDescriptions, code)
}

func DescribeSex(code int) string {
	if code == 1 {
		return "Male"
	}
	return "Female"
}

func DescribeExerciseAngina(flag int) string {
	if flag == 1 {
		return "Present"
	}
	return "Absent"
}

func DescribeFastingBS(flag int) string {
	if flag == 1 {
		return ">120 mg/dL"
	}
	return "≤120 mg/dL"
}

func describe(descriptions map[int]string, code int) string {
	if description, ok := descriptions[code]; ok {
		return description
	}
	return DescriptionUnknown
}
