package mapping

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medsafe/medsafe/internal/platform/rxnorm"
)

// TerminologyClient is the subset of the RxNorm client the mapping
// service uses. Satisfied by *rxnorm.Client.
type TerminologyClient interface {
	ValidateRxCUI(ctx context.Context, rxcui string) (*rxnorm.Concept, error)
	SearchByName(ctx context.Context, name string) (*rxnorm.Concept, error)
	ApproximateMatch(ctx context.Context, term string, maxEntries int) ([]rxnorm.Concept, error)
}

type Service struct {
	repo        Repository
	terminology TerminologyClient
	offlineMode bool
	logger      zerolog.Logger
}

func NewService(repo Repository, terminology TerminologyClient, offlineMode bool, logger zerolog.Logger) *Service {
	return &Service{repo: repo, terminology: terminology, offlineMode: offlineMode, logger: logger}
}

// GetPortugueseName looks up the Portuguese display name for an exact
// RxNorm code. Absent mappings return ErrNotFound; no fuzzy fallback
// happens at this call.
func (s *Service) GetPortugueseName(ctx context.Context, rxnormCode string) (string, error) {
	m, err := s.repo.GetByRxNormCode(ctx, rxnormCode)
	if err != nil {
		return "", err
	}
	return m.PortugueseName, nil
}

func (s *Service) Get(ctx context.Context, rxnormCode string) (*Mapping, error) {
	return s.repo.GetByRxNormCode(ctx, rxnormCode)
}

// SaveMapping validates the RxNorm code against the terminology server,
// then persists the mapping. In offline mode the remote validation is
// skipped. A duplicate code returns ErrDuplicate; an unreachable
// terminology server returns rxnorm.ErrUnavailable so the handler can
// report 502 instead of silently accepting an unverified code.
func (s *Service) SaveMapping(ctx context.Context, m *Mapping) error {
	m.RxNormCode = strings.TrimSpace(m.RxNormCode)
	m.EnglishName = strings.TrimSpace(m.EnglishName)
	m.PortugueseName = strings.TrimSpace(m.PortugueseName)

	if m.RxNormCode == "" {
		return fmt.Errorf("rxnorm_code is required")
	}
	if m.EnglishName == "" {
		return fmt.Errorf("english_name is required")
	}
	if m.PortugueseName == "" {
		return fmt.Errorf("portuguese_name is required")
	}

	if !s.offlineMode {
		concept, err := s.terminology.ValidateRxCUI(ctx, m.RxNormCode)
		if err != nil {
			return err
		}
		if concept == nil {
			return fmt.Errorf("unknown rxnorm code: %s", m.RxNormCode)
		}
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return err
	}

	s.logger.Info().
		Str("rxnorm_code", m.RxNormCode).
		Str("portuguese_name", m.PortugueseName).
		Str("created_by", m.CreatedBy).
		Msg("mapping saved")
	return nil
}

func (s *Service) Update(ctx context.Context, m *Mapping) error {
	if strings.TrimSpace(m.PortugueseName) == "" {
		return fmt.Errorf("portuguese_name is required")
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Mapping, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// SearchBilingual searches the local mapping table first so that
// crowd-sourced Portuguese translations outrank the English-only
// upstream source. When the table has no hits it queries the remote
// terminology server; if that is unreachable it degrades to the
// built-in offline dictionary.
func (s *Service) SearchBilingual(ctx context.Context, term string, limit int) ([]SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}
	if limit <= 0 {
		limit = 20
	}

	local, err := s.repo.SearchBilingual(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		results := make([]SearchResult, 0, len(local))
		for _, m := range local {
			results = append(results, SearchResult{
				RxNormCode:     m.RxNormCode,
				EnglishName:    m.EnglishName,
				PortugueseName: m.PortugueseName,
				Source:         "mapping",
			})
		}
		return results, nil
	}

	if s.offlineMode {
		return sortedOffline(term), nil
	}

	concepts, err := s.terminology.ApproximateMatch(ctx, term, limit)
	if err != nil {
		if errors.Is(err, rxnorm.ErrUnavailable) {
			s.logger.Warn().Err(err).Str("term", term).
				Msg("terminology server unreachable, using offline dictionary")
			return sortedOffline(term), nil
		}
		return nil, err
	}

	results := make([]SearchResult, 0, len(concepts))
	for _, c := range concepts {
		results = append(results, SearchResult{
			RxNormCode:  c.RxCUI,
			EnglishName: c.Name,
			Source:      "rxnorm",
		})
	}
	return results, nil
}

func sortedOffline(term string) []SearchResult {
	results := searchOffline(term)
	sort.Slice(results, func(i, j int) bool {
		return results[i].EnglishName < results[j].EnglishName
	})
	return results
}
