package safety

import (
	"fmt"
	"strings"

	"github.com/medsafe/medsafe/internal/domain/allergy"
)

// Warning is a single allergy match against a candidate medication.
type Warning struct {
	Allergen string                  `json:"allergen"`
	Severity string                  `json:"severity"`
	Message  string                  `json:"message"`
	Allergy  *allergy.PatientAllergy `json:"allergy,omitempty"`
}

// familyClassifiers maps literal allergen names to the cross-reactive
// family check that widens the match beyond direct substring containment.
var familyClassifiers = map[string]func(string) bool{
	"penicillin": IsPenicillinFamily,
	"sulfa":      IsSulfaFamily,
	"nsaid":      IsNSAIDFamily,
}

// CheckAllergies scans the given allergy records against a candidate
// medication name. A record matches when the medication name contains
// the allergen directly, or when the allergen names a known drug family
// and the medication belongs to that family.
//
// The scan is linear over allergies; patients carry few records so no
// indexing is warranted.
func CheckAllergies(allergies []*allergy.PatientAllergy, medicationName string) []Warning {
	name := strings.ToLower(strings.TrimSpace(medicationName))
	if name == "" || len(allergies) == 0 {
		return nil
	}

	var warnings []Warning
	for _, a := range allergies {
		if a == nil || !a.IsActive {
			continue
		}
		allergen := strings.ToLower(strings.TrimSpace(a.Allergen))
		if allergen == "" {
			continue
		}

		matched := strings.Contains(name, allergen)
		if !matched {
			if classify, ok := familyClassifiers[allergen]; ok {
				matched = classify(name)
			}
		}
		if matched {
			warnings = append(warnings, Warning{
				Allergen: a.Allergen,
				Severity: a.Severity,
				Message:  fmt.Sprintf("%s (%s)", a.Allergen, a.Severity),
				Allergy:  a,
			})
		}
	}
	return warnings
}
