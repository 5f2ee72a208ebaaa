package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFilter wraps every listing filter parse failure
var ErrInvalidFilter = errors.New("invalid listing filter")

// ListingQuery is the raw query string of GET /listings
type ListingQuery struct {
	SearchTerm   string `query:"searchTerm"`
	PropertyType string `query:"propertyType"`
	MaxPrice     string `query:"maxPrice"`
	MinBedrooms  string `query:"minBedrooms"`
}

// ListingFilter is a validated set of listing constraints. Zero value matches everything.
type ListingFilter struct {
	SearchTerm  string
	Type        *PropertyType
	MaxPrice    *int
	MinBedrooms int
}

// ParseListingFilter validates the raw query. Numbers must be non-negative integers.
func ParseListingFilter(q ListingQuery) (ListingFilter, error) {
	f := ListingFilter{SearchTerm: strings.TrimSpace(q.SearchTerm)}

	if pt := strings.TrimSpace(q.PropertyType); pt != "" && !strings.EqualFold(pt, AnyPropertyType) {
		t, ok := ParsePropertyType(pt)
		if !ok {
			return ListingFilter{}, fmt.Errorf("%w: unknown propertyType %q", ErrInvalidFilter, pt)
		}
		f.Type = &t
	}

	if s := strings.TrimSpace(q.MaxPrice); s != "" {
		n, err := parseNonNegative(s)
		if err != nil {
			return ListingFilter{}, fmt.Errorf("%w: maxPrice %v", ErrInvalidFilter, err)
		}
		f.MaxPrice = &n
	}

	if s := strings.TrimSpace(q.MinBedrooms); s != "" {
		n, err := parseNonNegative(s)
		if err != nil {
			return ListingFilter{}, fmt.Errorf("%w: minBedrooms %v", ErrInvalidFilter, err)
		}
		f.MinBedrooms = n
	}

	return f, nil
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("must be an integer, got %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative, got %d", n)
	}
	return n, nil
}

// Matches evaluates the filter in memory with the same semantics as the SQL scope.
func (f ListingFilter) Matches(l Listing) bool {
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(l.Title), term) &&
			!strings.Contains(strings.ToLower(l.Address), term) {
			return false
		}
	}
	if f.Type != nil && l.Type != *f.Type {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms > 0 && l.Bedrooms < f.MinBedrooms {
		return false
	}
	return true
}
