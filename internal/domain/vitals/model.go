package vitals

import (
	"time"

	"github.com/google/uuid"
)

// WeightRecord maps to the vital_signs table. Only weight is tracked;
// it feeds dose verification for weight-based medications.
type WeightRecord struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	WeightKg   float64   `db:"weight_kg" json:"weight_kg"`
	RecordedBy string    `db:"recorded_by" json:"recorded_by"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}
