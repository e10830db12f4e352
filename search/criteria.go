// Package search implements the two property filtering modes and the nearby
// lookup. Everything here is pure: functions take a snapshot slice and return
// a filtered slice, preserving the input order.
package search

import "estateflow/domain"

// Criteria is the simple search form: a nil field is absent and always
// matches, a present field must equal or bound the property's value. All
// present fields combine with logical AND. The radius predicate applies only
// when Lat, Lng and Radius are all present.
type Criteria struct {
	City          *string
	Suburb        *string
	Area          *string
	RoadName      *string
	Category      *domain.Category
	PropertyType  *domain.PropertyType
	Configuration *domain.Configuration
	Furnishing    *domain.Furnishing
	MinPrice      *int64
	MaxPrice      *int64
	Status        *domain.PropertyStatus
	Lat           *float64
	Lng           *float64
	Radius        *float64
}

// Match reports whether p satisfies every present criterion.
func Match(p domain.Property, c Criteria) bool {
	if c.City != nil && p.Location.City != *c.City {
		return false
	}
	if c.Suburb != nil && p.Location.Suburb != *c.Suburb {
		return false
	}
	if c.Area != nil && p.Location.Area != *c.Area {
		return false
	}
	if c.RoadName != nil && p.Location.RoadName != *c.RoadName {
		return false
	}
	if c.Category != nil && p.Category != *c.Category {
		return false
	}
	if c.PropertyType != nil && p.PropertyType != *c.PropertyType {
		return false
	}
	if c.Configuration != nil && p.Configuration != *c.Configuration {
		return false
	}
	if c.Furnishing != nil && p.Furnishing != *c.Furnishing {
		return false
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	if c.Status != nil && p.Status != *c.Status {
		return false
	}
	if c.Lat != nil && c.Lng != nil && c.Radius != nil {
		if !withinRadius(p.Coordinates, *c.Lat, *c.Lng, *c.Radius) {
			return false
		}
	}
	return true
}

// withinRadius compares squared coordinate-degree differences against the
// squared radius. This is a planar approximation in degree space, not true
// geodesic distance; it intentionally reproduces the historical behavior so
// filter results stay stable.
func withinRadius(c domain.Coordinates, lat, lng, radius float64) bool {
	dLat := lat - c.Lat
	dLng := lng - c.Lng
	return dLat*dLat+dLng*dLng <= radius*radius
}

// Apply filters props by c, preserving order.
func Apply(props []domain.Property, c Criteria) []domain.Property {
	out := make([]domain.Property, 0, len(props))
	for _, p := range props {
		if Match(p, c) {
			out = append(out, p)
		}
	}
	return out
}
