package search

import (
	"testing"

	"estateflow/domain"
)

func filterFixtures() []domain.Property {
	mk := func(id string, cat domain.Category, typ domain.PropertyType, price int64, status domain.PropertyStatus, city string) domain.Property {
		return domain.Property{
			ID:           id,
			Category:     cat,
			PropertyType: typ,
			Price:        price,
			Status:       status,
			Location:     domain.Location{City: city},
			Furnishing:   domain.Unfurnished,
		}
	}
	return []domain.Property{
		mk("p1", domain.CategoryResale, domain.TypeResidential, 200000, domain.StatusAvailable, "Avondale"),
		mk("p2", domain.CategoryRental, domain.TypeCommercial, 5000, domain.StatusAvailable, "Harborview"),
		mk("p3", domain.CategoryUnderConstruction, domain.TypeResidential, 450000, domain.StatusUnderContract, "Avondale"),
		mk("p4", domain.CategoryResale, domain.TypeIndustrial, 800000, domain.StatusSold, "Milton"),
	}
}

func ids(props []domain.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func assertIDs(t *testing.T, got []domain.Property, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestAllDimensionsEmptyReturnsEverythingInOrder(t *testing.T) {
	props := filterFixtures()
	assertIDs(t, ApplyFilter(props, Filter{}), "p1", "p2", "p3", "p4")
}

func TestSingleDimensionIsUnionWithinDimension(t *testing.T) {
	props := filterFixtures()
	got := ApplyFilter(props, Filter{
		Categories: []domain.Category{domain.CategoryResale, domain.CategoryRental},
	})
	assertIDs(t, got, "p1", "p2", "p4")
}

func TestDimensionsIntersect(t *testing.T) {
	props := filterFixtures()
	got := ApplyFilter(props, Filter{
		Categories:    []domain.Category{domain.CategoryResale, domain.CategoryRental},
		PropertyTypes: []domain.PropertyType{domain.TypeResidential},
	})
	assertIDs(t, got, "p1")
}

func TestPriceRangesAreUnioned(t *testing.T) {
	props := filterFixtures()
	got := ApplyFilter(props, Filter{
		PriceRanges: []PriceRange{
			{Min: 0, Max: 10000},
			{Min: 700000, Max: 900000},
		},
	})
	assertIDs(t, got, "p2", "p4")
}

func TestLocationValueWildcardSubfields(t *testing.T) {
	props := filterFixtures()
	got := ApplyFilter(props, Filter{
		Locations: []LocationValue{{City: "Avondale"}},
	})
	assertIDs(t, got, "p1", "p3")
}

func TestEmptyResultIsValid(t *testing.T) {
	props := filterFixtures()
	got := ApplyFilter(props, Filter{
		Categories: []domain.Category{domain.CategoryRental},
		Statuses:   []domain.PropertyStatus{domain.StatusSold},
	})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}

func TestCoordinateDimension(t *testing.T) {
	props := filterFixtures()
	props[0].Coordinates = domain.Coordinates{Lat: 1, Lng: 1}
	props[1].Coordinates = domain.Coordinates{Lat: 5, Lng: 5}

	got := ApplyFilter(props, Filter{
		Coordinates: []CoordinateValue{{Lat: 1, Lng: 1, Radius: 0.5}},
	})
	assertIDs(t, got, "p1")
}
