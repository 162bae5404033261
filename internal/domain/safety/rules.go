package safety

import "strings"

// Drug family and risk lists. Loaded once at process start and never
// mutated. Matching is case-insensitive substring containment against
// free-text medication names, which is what clinicians actually type:
// "Amoxicillin 500mg PO BID" still matches "amoxicillin".

var penicillinFamily = []string{
	"penicillin",
	"amoxicillin",
	"ampicillin",
	"dicloxacillin",
	"nafcillin",
	"oxacillin",
	"piperacillin",
	"ticarcillin",
	"amoxil",
	"augmentin",
	"unasyn",
	"zosyn",
}

var sulfaFamily = []string{
	"sulfamethoxazole",
	"sulfasalazine",
	"sulfadiazine",
	"sulfisoxazole",
	"bactrim",
	"septra",
	"trimethoprim-sulfa",
}

var nsaidFamily = []string{
	"ibuprofen",
	"naproxen",
	"ketorolac",
	"diclofenac",
	"indomethacin",
	"celecoxib",
	"meloxicam",
	"piroxicam",
	"aspirin",
	"advil",
	"motrin",
	"aleve",
	"toradol",
}

var opioidFamily = []string{
	"morphine",
	"oxycodone",
	"hydrocodone",
	"hydromorphone",
	"fentanyl",
	"codeine",
	"tramadol",
	"methadone",
	"oxymorphone",
	"buprenorphine",
	"meperidine",
	"dilaudid",
	"percocet",
	"vicodin",
}

var antibioticFamily = []string{
	"amoxicillin",
	"ampicillin",
	"penicillin",
	"azithromycin",
	"ciprofloxacin",
	"levofloxacin",
	"cephalexin",
	"ceftriaxone",
	"cefazolin",
	"vancomycin",
	"clindamycin",
	"doxycycline",
	"metronidazole",
	"gentamicin",
	"tobramycin",
	"erythromycin",
	"nitrofurantoin",
}

// highRiskMedications require heightened verification before administration.
var highRiskMedications = []string{
	"warfarin",
	"heparin",
	"enoxaparin",
	"insulin",
	"digoxin",
	"methotrexate",
	"amiodarone",
	"potassium chloride",
	"morphine",
	"hydromorphone",
	"fentanyl",
	"vancomycin",
	"chemotherapy",
	"oxytocin",
	"magnesium sulfate",
}

// weightBasedMedications are dosed per kilogram and need a verified
// current weight before the dose can be checked.
var weightBasedMedications = []string{
	"heparin",
	"enoxaparin",
	"vancomycin",
	"gentamicin",
	"tobramycin",
	"amikacin",
	"insulin",
	"dopamine",
	"dobutamine",
	"milrinone",
	"ketamine",
	"propofol",
	"methotrexate",
}

func matchesAny(name string, list []string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, entry := range list {
		if strings.Contains(name, entry) {
			return true
		}
	}
	return false
}

func IsPenicillinFamily(name string) bool { return matchesAny(name, penicillinFamily) }
func IsSulfaFamily(name string) bool      { return matchesAny(name, sulfaFamily) }
func IsNSAIDFamily(name string) bool      { return matchesAny(name, nsaidFamily) }
func IsOpioidFamily(name string) bool     { return matchesAny(name, opioidFamily) }
func IsAntibioticFamily(name string) bool { return matchesAny(name, antibioticFamily) }

// IsHighRiskMedication reports whether the medication name matches the
// high-risk list. Names not on the list are treated as low-risk.
func IsHighRiskMedication(name string) bool { return matchesAny(name, highRiskMedications) }

// IsWeightBasedMedication reports whether the medication is dosed by weight.
func IsWeightBasedMedication(name string) bool { return matchesAny(name, weightBasedMedications) }
