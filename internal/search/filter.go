// Package search implements the client-side property filter pipeline: a
// pure derivation of the visible subset of a fetched property collection
// from the browsing page's filter criteria.
package search

import (
	"github.com/orbitlettings/orbit-api/internal/models"
)

// Tri-state values shared by the furnished and pets_allowed criteria and by
// the property_type criterion's wildcard.
const (
	TriStateAll = "all"
	TriStateYes = "yes"
	TriStateNo  = "no"
)

// Criteria is the user-selected set of filter predicates. It lives only for
// the duration of one request and is never persisted.
type Criteria struct {
	PropertyType string  // "all" or one of the models.PropertyType values
	MinBedrooms  int     // always applied
	MaxPrice     float64 // always applied
	Furnished    string  // "all" | "yes" | "no"
	PetsAllowed  string  // "all" | "yes" | "no"
}

// DefaultCriteria mirrors the browsing page's initial filter state: every
// optional predicate wide open and the price ceiling at the slider maximum.
func DefaultCriteria() Criteria {
	return Criteria{
		PropertyType: TriStateAll,
		MinBedrooms:  0,
		MaxPrice:     10000,
		Furnished:    TriStateAll,
		PetsAllowed:  TriStateAll,
	}
}

// Apply returns the ordered subsequence of base satisfying every active
// criterion. It is a total function: same inputs always produce the same
// output, base is never mutated, and no criteria combination is an error.
// A contradictory criteria set (e.g. MaxPrice below every listing) simply
// filters everything out.
func Apply(base []models.Property, c Criteria) []models.Property {
	result := make([]models.Property, 0, len(base))
	for _, p := range base {
		if !matches(p, c) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// matches evaluates all five predicates against a single property.
func matches(p models.Property, c Criteria) bool {
	if c.PropertyType != TriStateAll && string(p.PropertyType) != c.PropertyType {
		return false
	}
	if p.Bedrooms < c.MinBedrooms {
		return false
	}
	if p.PricePerMonth > c.MaxPrice {
		return false
	}
	if c.Furnished != TriStateAll && p.Furnished != (c.Furnished == TriStateYes) {
		return false
	}
	if c.PetsAllowed != TriStateAll && p.PetsAllowed != (c.PetsAllowed == TriStateYes) {
		return false
	}
	return true
}
