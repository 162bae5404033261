package allergy

import (
	"time"

	"github.com/google/uuid"
)

// Severity levels for a recorded allergy.
const (
	SeverityMild     = "Mild"
	SeverityModerate = "Moderate"
	SeveritySevere   = "Severe"
)

// PatientAllergy maps to the allergies table.
type PatientAllergy struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	Allergen   string    `db:"allergen" json:"allergen"`
	Severity   string    `db:"severity" json:"severity"`
	Reaction   *string   `db:"reaction" json:"reaction,omitempty"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	RecordedBy string    `db:"recorded_by" json:"recorded_by"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
