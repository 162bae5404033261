package allergy

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record stores a new allergy. Severity is free text so clinicians can
// note reactions like "Anaphylaxis"; an empty severity defaults to
// Moderate.
func (s *Service) Record(ctx context.Context, a *PatientAllergy) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	a.Allergen = strings.TrimSpace(a.Allergen)
	if a.Allergen == "" {
		return fmt.Errorf("allergen is required")
	}
	a.Severity = strings.TrimSpace(a.Severity)
	if a.Severity == "" {
		a.Severity = SeverityModerate
	}
	a.IsActive = true
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PatientAllergy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *PatientAllergy) error {
	a.Allergen = strings.TrimSpace(a.Allergen)
	if a.Allergen == "" {
		return fmt.Errorf("allergen is required")
	}
	a.Severity = strings.TrimSpace(a.Severity)
	if a.Severity == "" {
		a.Severity = SeverityModerate
	}
	return s.repo.Update(ctx, a)
}

// Deactivate marks an allergy inactive without deleting the record.
// Clinical history stays queryable.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PatientAllergy, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*PatientAllergy, error) {
	return s.repo.ListActiveByPatient(ctx, patientID)
}
