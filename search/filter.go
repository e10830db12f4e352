package search

import "estateflow/domain"

// LocationValue is one allowed location in the advanced filter. An empty
// sub-field is a wildcard within the value; non-empty sub-fields must all
// match.
type LocationValue struct {
	City     string
	Suburb   string
	Area     string
	RoadName string
}

func (v LocationValue) matches(loc domain.Location) bool {
	if v.City != "" && loc.City != v.City {
		return false
	}
	if v.Suburb != "" && loc.Suburb != v.Suburb {
		return false
	}
	if v.Area != "" && loc.Area != v.Area {
		return false
	}
	if v.RoadName != "" && loc.RoadName != v.RoadName {
		return false
	}
	return true
}

// PriceRange is an inclusive price band.
type PriceRange struct {
	Min int64
	Max int64
}

// CoordinateValue is one allowed radius circle, evaluated with the same
// planar degree-space predicate as the simple search.
type CoordinateValue struct {
	Lat    float64
	Lng    float64
	Radius float64
}

// Filter is the advanced multi-value form. Each dimension carries a set of
// allowed values; within a dimension a property matches if it satisfies any
// value (OR), and a property must satisfy every non-empty dimension (AND).
// An empty dimension is a pass-through, not "match nothing".
type Filter struct {
	Locations      []LocationValue
	Categories     []domain.Category
	PropertyTypes  []domain.PropertyType
	Configurations []domain.Configuration
	Furnishings    []domain.Furnishing
	PriceRanges    []PriceRange
	Statuses       []domain.PropertyStatus
	Coordinates    []CoordinateValue
}

type idSet map[string]struct{}

func intersect(a, b idSet) idSet {
	out := make(idSet)
	for id := range a {
		if _, ok := b[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// ApplyFilter intersects the per-dimension OR-matched subsets by property id
// and returns the survivors in the order of the input slice.
func ApplyFilter(props []domain.Property, f Filter) []domain.Property {
	surviving := make(idSet, len(props))
	for _, p := range props {
		surviving[p.ID] = struct{}{}
	}

	dimensions := []func(domain.Property) bool{}
	if len(f.Locations) > 0 {
		dimensions = append(dimensions, func(p domain.Property) bool {
			for _, v := range f.Locations {
				if v.matches(p.Location) {
					return true
				}
			}
			return false
		})
	}
	if len(f.Categories) > 0 {
		dimensions = append(dimensions, func(p domain.Property) bool {
			for _, c := range f.Categories {
				if p.Category == c {
					return true
				}
			}
			return false
		})
	}
	if len(f.PropertyTypes) > 0 {
		dimensions = append(dimensions, func(p domain.Property) bool {
			for _, t := range f.PropertyTypes {
				if p.PropertyType == t {
					return true
				}
			}
			return false
		})
	}
	if len(f.Configurations) > 0 {
		dimensions = append(dimensions, func(p domain.Property) bool {
			for _, c := range f.Configurations {
				if p.Configuration == c {
					return true
				}
			}
			return false
		})
	}
	if len(f.Furnishings) > 0 {
		dimensions = append(dimensions, func(p domain.Property) bool {
			for _, fu := range f.Furnishings {
				if p.Furnishing == fu {
					return true
				}
			}
			return false
		})
	}
	if len(f.PriceRanges) > 0 {
		dimensions = append(dimensions, func(p domain.Property) bool {
			for _, r := range f.PriceRanges {
				if p.Price >= r.Min && p.Price <= r.Max {
					return true
				}
			}
			return false
		})
	}
	if len(f.Statuses) > 0 {
		dimensions = append(dimensions, func(p domain.Property) bool {
			for _, s := range f.Statuses {
				if p.Status == s {
					return true
				}
			}
			return false
		})
	}
	if len(f.Coordinates) > 0 {
		dimensions = append(dimensions, func(p domain.Property) bool {
			for _, v := range f.Coordinates {
				if withinRadius(p.Coordinates, v.Lat, v.Lng, v.Radius) {
					return true
				}
			}
			return false
		})
	}

	for _, matchesDim := range dimensions {
		matched := make(idSet)
		for _, p := range props {
			if matchesDim(p) {
				matched[p.ID] = struct{}{}
			}
		}
		surviving = intersect(surviving, matched)
		if len(surviving) == 0 {
			break
		}
	}

	out := make([]domain.Property, 0, len(surviving))
	for _, p := range props {
		if _, ok := surviving[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}
