package search

import (
	"sort"

	"github.com/umahmood/haversine"

	"estateflow/domain"
)

// Nearby returns up to limit properties ordered by ascending great-circle
// distance from center, in kilometers. Unlike the radius filter, this uses
// real geodesic distance; it is a convenience lookup and does not participate
// in criteria matching. A limit <= 0 means no limit.
func Nearby(props []domain.Property, center domain.Coordinates, limit int) []domain.Property {
	type scored struct {
		property domain.Property
		km       float64
	}
	ranked := make([]scored, len(props))
	origin := haversine.Coord{Lat: center.Lat, Lon: center.Lng}
	for i, p := range props {
		_, km := haversine.Distance(origin, haversine.Coord{Lat: p.Coordinates.Lat, Lon: p.Coordinates.Lng})
		ranked[i] = scored{property: p, km: km}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].km < ranked[j].km })
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	out := make([]domain.Property, len(ranked))
	for i, s := range ranked {
		out[i] = s.property
	}
	return out
}
