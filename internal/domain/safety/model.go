package safety

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medsafe/medsafe/internal/domain/allergy"
)

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("safety session not found")
	// ErrValidation is returned when an input fails a safety rule check.
	ErrValidation = errors.New("validation failed")
)

// Session is the per-medication-entry safety workflow state. It holds a
// snapshot of the patient's active allergies taken when the session
// started; recording a new allergy mid-session does not retroactively
// change an already-reviewed list.
type Session struct {
	ID                  uuid.UUID                 `json:"id"`
	PatientID           uuid.UUID                 `json:"patient_id"`
	Allergies           []*allergy.PatientAllergy `json:"allergies"`
	IsAllergyReviewed   bool                      `json:"is_allergy_reviewed"`
	PatientWeightKg     *float64                  `json:"patient_weight_kg,omitempty"`
	WeightLastUpdated   *time.Time                `json:"weight_last_updated,omitempty"`
	IsWeightVerified    bool                      `json:"is_weight_verified"`
	IsOverrideConfirmed bool                      `json:"is_override_confirmed"`
	OverrideReason      string                    `json:"override_reason,omitempty"`
	CreatedBy           string                    `json:"created_by"`
	CreatedAt           time.Time                 `json:"created_at"`
	ExpiresAt           time.Time                 `json:"expires_at"`
}

// MedicationSafetyCheck is the aggregated pass/fail decision for one
// candidate medication. It is derived from session state, never persisted.
type MedicationSafetyCheck struct {
	MedicationName       string     `json:"medication_name"`
	IsAllergyReviewed    bool       `json:"is_allergy_reviewed"`
	HasAllergyWarning    bool       `json:"has_allergy_warning"`
	AllergyWarnings      []Warning  `json:"allergy_warnings"`
	IsHighRiskMedication bool       `json:"is_high_risk_medication"`
	IsWeightBased        bool       `json:"is_weight_based"`
	IsWeightVerified     bool       `json:"is_weight_verified"`
	PatientWeightKg      *float64   `json:"patient_weight_kg,omitempty"`
	WeightLastUpdated    *time.Time `json:"weight_last_updated,omitempty"`
	HasPassed            bool       `json:"has_passed"`
	IsOverrideConfirmed  bool       `json:"is_override_confirmed"`
}

// Evaluate computes the pass/fail decision: passed only when allergies
// were reviewed, no warning fired, and weight is verified for
// weight-based drugs. The result is advisory; the override flag is
// reported alongside, not folded into HasPassed.
func Evaluate(s *Session, medicationName string) *MedicationSafetyCheck {
	warnings := CheckAllergies(s.Allergies, medicationName)
	check := &MedicationSafetyCheck{
		MedicationName:       medicationName,
		IsAllergyReviewed:    s.IsAllergyReviewed,
		HasAllergyWarning:    len(warnings) > 0,
		AllergyWarnings:      warnings,
		IsHighRiskMedication: IsHighRiskMedication(medicationName),
		IsWeightBased:        IsWeightBasedMedication(medicationName),
		IsWeightVerified:     s.IsWeightVerified,
		PatientWeightKg:      s.PatientWeightKg,
		WeightLastUpdated:    s.WeightLastUpdated,
		IsOverrideConfirmed:  s.IsOverrideConfirmed,
	}
	check.HasPassed = check.IsAllergyReviewed &&
		!check.HasAllergyWarning &&
		(!check.IsWeightBased || check.IsWeightVerified)
	return check
}
