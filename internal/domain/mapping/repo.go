package mapping

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no mapping exists for the query.
	ErrNotFound = errors.New("mapping not found")
	// ErrDuplicate is returned when a mapping already exists for the RxNorm code.
	ErrDuplicate = errors.New("mapping already exists")
)

type Repository interface {
	Create(ctx context.Context, m *Mapping) error
	GetByRxNormCode(ctx context.Context, rxnormCode string) (*Mapping, error)
	Update(ctx context.Context, m *Mapping) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Mapping, int, error)
	SearchBilingual(ctx context.Context, term string, limit int) ([]*Mapping, error)
}
