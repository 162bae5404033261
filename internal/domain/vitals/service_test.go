package vitals

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	created *WeightRecord
	latest  *WeightRecord
}

func (m *mockRepo) Create(ctx context.Context, w *WeightRecord) error {
	m.created = w
	return nil
}

func (m *mockRepo) LatestByPatient(ctx context.Context, patientID uuid.UUID) (*WeightRecord, error) {
	if m.latest == nil {
		return nil, ErrNotFound
	}
	return m.latest, nil
}

func (m *mockRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*WeightRecord, int, error) {
	return nil, 0, nil
}

func TestValidWeight(t *testing.T) {
	tests := []struct {
		name string
		kg   float64
		want bool
	}{
		{"normal adult", 72.5, true},
		{"small child", 3.2, true},
		{"zero", 0, false},
		{"negative", -5, false},
		{"NaN", math.NaN(), false},
		{"positive infinity", math.Inf(1), false},
		{"negative infinity", math.Inf(-1), false},
		{"at upper bound", 500, false},
		{"just under bound", 499.9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidWeight(tt.kg); got != tt.want {
				t.Errorf("ValidWeight(%v) = %v, want %v", tt.kg, got, tt.want)
			}
		})
	}
}

func TestRecord_Valid(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	w := &WeightRecord{PatientID: uuid.New(), WeightKg: 80}
	if err := svc.Record(context.Background(), w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.created != w {
		t.Error("expected Create to be called")
	}
}

func TestRecord_InvalidWeight(t *testing.T) {
	svc := NewService(&mockRepo{})

	for _, kg := range []float64{0, -10, math.NaN(), math.Inf(1), 1200} {
		err := svc.Record(context.Background(), &WeightRecord{PatientID: uuid.New(), WeightKg: kg})
		if err == nil {
			t.Errorf("expected error for weight %v", kg)
		}
	}
}

func TestRecord_MissingPatient(t *testing.T) {
	svc := NewService(&mockRepo{})
	err := svc.Record(context.Background(), &WeightRecord{WeightKg: 70})
	if err == nil {
		t.Fatal("expected error for missing patient_id")
	}
}

func TestLatestByPatient_NotFound(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, err := svc.LatestByPatient(context.Background(), uuid.New())
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
