package safety

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medsafe/medsafe/internal/domain/allergy"
	"github.com/medsafe/medsafe/internal/domain/vitals"
)

// AllergySource provides the active allergy snapshot for a patient.
type AllergySource interface {
	ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*allergy.PatientAllergy, error)
}

// WeightSource provides the most recent recorded weight for a patient.
type WeightSource interface {
	LatestByPatient(ctx context.Context, patientID uuid.UUID) (*vitals.WeightRecord, error)
}

type Service struct {
	store     *SessionStore
	allergies AllergySource
	weights   WeightSource
	logger    zerolog.Logger
}

func NewService(store *SessionStore, allergies AllergySource, weights WeightSource, logger zerolog.Logger) *Service {
	return &Service{store: store, allergies: allergies, weights: weights, logger: logger}
}

// Start opens a safety session for a patient. The active allergy list is
// snapshotted into the session; the latest recorded weight is carried in
// as unverified context. A patient with no weight on file is not an error.
func (s *Service) Start(ctx context.Context, patientID uuid.UUID, createdBy string) (*Session, error) {
	if patientID == uuid.Nil {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}

	allergies, err := s.allergies.ListActiveByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("loading allergies: %w", err)
	}

	sess := &Session{
		ID:        uuid.New(),
		PatientID: patientID,
		Allergies: allergies,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(s.store.TTL()),
	}

	w, err := s.weights.LatestByPatient(ctx, patientID)
	if err != nil && !errors.Is(err, vitals.ErrNotFound) {
		return nil, fmt.Errorf("loading weight: %w", err)
	}
	if w != nil {
		kg := w.WeightKg
		recorded := w.RecordedAt
		sess.PatientWeightKg = &kg
		sess.WeightLastUpdated = &recorded
	}

	s.store.Put(sess)
	return sess, nil
}

func (s *Service) Get(id uuid.UUID) (*Session, error) {
	return s.store.Get(id)
}

// MarkAllergiesReviewed records that the clinician has visually reviewed
// the snapshotted allergy list. It does not re-fetch allergy data.
func (s *Service) MarkAllergiesReviewed(id uuid.UUID) (*Session, error) {
	return s.store.Update(id, func(sess *Session) {
		sess.IsAllergyReviewed = true
	})
}

// UpdateWeight verifies and records the patient weight on the session.
// Invalid values (NaN, infinite, non-positive, implausibly large) leave
// the session unchanged and return ErrValidation.
func (s *Service) UpdateWeight(id uuid.UUID, kg float64) (*Session, error) {
	if !vitals.ValidWeight(kg) {
		return nil, fmt.Errorf("%w: invalid weight %v", ErrValidation, kg)
	}
	now := time.Now().UTC()
	return s.store.Update(id, func(sess *Session) {
		sess.PatientWeightKg = &kg
		sess.WeightLastUpdated = &now
		sess.IsWeightVerified = true
	})
}

// EvaluateMedication produces the safety decision for a candidate
// medication against the current session state.
func (s *Service) EvaluateMedication(id uuid.UUID, medicationName string) (*MedicationSafetyCheck, error) {
	if medicationName == "" {
		return nil, fmt.Errorf("%w: medication_name is required", ErrValidation)
	}
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return Evaluate(sess, medicationName), nil
}

// Override records a clinician's decision to proceed regardless of the
// safety decision. The flag is advisory workflow state; nothing at the
// data layer enforces it.
func (s *Service) Override(id uuid.UUID, reason string) (*Session, error) {
	sess, err := s.store.Update(id, func(sess *Session) {
		sess.IsOverrideConfirmed = true
		sess.OverrideReason = reason
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn().
		Str("session_id", sess.ID.String()).
		Str("patient_id", sess.PatientID.String()).
		Str("created_by", sess.CreatedBy).
		Str("reason", reason).
		Msg("safety check overridden")

	return sess, nil
}
