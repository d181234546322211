package models

import (
	"github.com/google/uuid"

	dErrors "ayala/pkg/domain-errors"
)

// Tax figures are stored per year in this closed range.
const (
	FirstTaxYear = 2021
	LastTaxYear  = 2025
)

// Company is one registry record. BIN is the 12-digit business identification
// number; Taxes maps a year to the tax paid in tenge for that year.
type Company struct {
	ID       uuid.UUID       `json:"id"`
	BIN      string          `json:"bin"`
	Name     string          `json:"name"`
	OKED     string          `json:"oked,omitempty"`
	Activity string          `json:"activity,omitempty"`
	KATO     string          `json:"kato,omitempty"`
	Locality string          `json:"locality,omitempty"`
	KRP      string          `json:"krp,omitempty"`
	Size     string          `json:"size,omitempty"`
	Taxes    map[int]float64 `json:"taxes,omitempty"`
}

// LatestTax returns the most recent year with a recorded tax figure.
func (c Company) LatestTax() (year int, amount float64, ok bool) {
	for y := LastTaxYear; y >= FirstTaxYear; y-- {
		if v, found := c.Taxes[y]; found {
			return y, v, true
		}
	}
	return 0, 0, false
}

// SearchFilter is a fully resolved record-store query. Empty string fields and
// an empty keyword list do not constrain the result.
type SearchFilter struct {
	Location         string
	CompanyName      string
	ActivityKeywords []string
	Limit            int
	Offset           int
}

// Validate checks the paging invariants.
func (f SearchFilter) Validate() error {
	if f.Limit < 1 {
		return dErrors.New(dErrors.CodeValidation, "limit must be positive")
	}
	if f.Offset < 0 {
		return dErrors.New(dErrors.CodeValidation, "offset must not be negative")
	}
	return nil
}

// LocalityCount is a distinct registry locality and its number of companies.
type LocalityCount struct {
	Location     string `json:"location"`
	CompanyCount int    `json:"company_count"`
}

// SearchResult is one page of companies plus the total match count.
type SearchResult struct {
	Companies []Company `json:"companies"`
	Total     int       `json:"total"`
}
