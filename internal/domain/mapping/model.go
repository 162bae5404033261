package mapping

import (
	"time"

	"github.com/google/uuid"
)

// Mapping maps to the rxnorm_anvisa_mappings table: a crowd-sourced
// bridge between a US RxNorm concept and its Brazilian ANVISA
// registration and Portuguese display name.
type Mapping struct {
	ID             uuid.UUID `db:"id" json:"id"`
	RxNormCode     string    `db:"rxnorm_code" json:"rxnorm_code"`
	EnglishName    string    `db:"english_name" json:"english_name"`
	PortugueseName string    `db:"portuguese_name" json:"portuguese_name"`
	AnvisaCode     *string   `db:"anvisa_code" json:"anvisa_code,omitempty"`
	Notes          *string   `db:"notes" json:"notes,omitempty"`
	CreatedBy      string    `db:"created_by" json:"created_by"`
	LastUpdated    time.Time `db:"last_updated" json:"last_updated"`
}

// SearchResult is one hit from a bilingual medication search. Source
// identifies where the hit came from: "mapping" (local table), "rxnorm"
// (remote terminology server), or "offline" (built-in dictionary).
type SearchResult struct {
	RxNormCode     string `json:"rxnorm_code,omitempty"`
	EnglishName    string `json:"english_name"`
	PortugueseName string `json:"portuguese_name,omitempty"`
	Source         string `json:"source"`
}
