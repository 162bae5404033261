package allergy

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no allergy record matches the query.
var ErrNotFound = errors.New("allergy not found")

type Repository interface {
	Create(ctx context.Context, a *PatientAllergy) error
	GetByID(ctx context.Context, id uuid.UUID) (*PatientAllergy, error)
	Update(ctx context.Context, a *PatientAllergy) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PatientAllergy, int, error)
	ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*PatientAllergy, error)
}
