package vitals

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// MaxWeightKg is the upper bound accepted for an adult weight entry.
// Values at or above this are treated as data entry errors.
const MaxWeightKg = 500

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ValidWeight reports whether kg is a usable weight measurement.
// NaN, infinities, zero, negatives, and implausibly large values are rejected.
func ValidWeight(kg float64) bool {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return false
	}
	return kg > 0 && kg < MaxWeightKg
}

func (s *Service) Record(ctx context.Context, w *WeightRecord) error {
	if w.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !ValidWeight(w.WeightKg) {
		return fmt.Errorf("invalid weight: %v", w.WeightKg)
	}
	return s.repo.Create(ctx, w)
}

func (s *Service) LatestByPatient(ctx context.Context, patientID uuid.UUID) (*WeightRecord, error) {
	return s.repo.LatestByPatient(ctx, patientID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*WeightRecord, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
