package vitals

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a patient has no recorded weight.
var ErrNotFound = errors.New("weight record not found")

type Repository interface {
	Create(ctx context.Context, w *WeightRecord) error
	LatestByPatient(ctx context.Context, patientID uuid.UUID) (*WeightRecord, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*WeightRecord, int, error)
}
