package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	MinSearchLength  = 2
)

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortTotalDesc SortOrder = "total_desc"
	SortTotalAsc  SortOrder = "total_asc"
)

func ParseSortOrder(raw string) (SortOrder, error) {
	switch s := SortOrder(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortTotalDesc, SortTotalAsc:
		return s, nil
	default:
		return "", NewValidationError("sort", "unknown sort order "+raw)
	}
}

type PageRequest struct {
	Page  int
	Limit int
	Sort  SortOrder
}

// Validate enforces page ≥ 1 and 1 ≤ limit ≤ MaxPageLimit. An empty Sort means newest.
func (p PageRequest) Validate() error {
	if p.Page < 1 {
		return NewValidationError("page", "must be >= 1")
	}
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", MaxPageLimit))
	}
	if _, err := ParseSortOrder(string(p.Sort)); err != nil {
		return err
	}
	return nil
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.Limit }

func (p PageRequest) SortOrDefault() SortOrder {
	if p.Sort == "" {
		return SortNewest
	}
	return p.Sort
}

// Key renders the page shape for use in cache keys.
func (p PageRequest) Key() string {
	return strconv.Itoa(p.Page) + ":" + strconv.Itoa(p.Limit) + ":" + string(p.SortOrDefault())
}

// NormalizeSearch trims the query and rejects queries shorter than MinSearchLength runes.
func NormalizeSearch(q string) (string, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < MinSearchLength {
		return "", NewValidationError("query", fmt.Sprintf("must be at least %d characters", MinSearchLength))
	}
	return q, nil
}
