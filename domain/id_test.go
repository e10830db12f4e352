package domain

import (
	"testing"
	"time"
)

func TestPropertyIDDeterministic(t *testing.T) {
	loc := Location{City: "Avondale", Suburb: "Greendale", Area: "North", RoadName: "Oak Rd"}
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	first := PropertyID(loc, 250000, at)
	second := PropertyID(loc, 250000, at)
	if first != second {
		t.Fatalf("expected identical ids, got %q and %q", first, second)
	}

	if other := PropertyID(loc, 250001, at); other == first {
		t.Fatalf("expected different id for different price, got %q twice", first)
	}
	if other := PropertyID(loc, 250000, at.Add(time.Nanosecond)); other == first {
		t.Fatalf("expected different id for different creation time, got %q twice", first)
	}
}

func TestInquiryIDDeterministic(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	first := InquiryID("prop-1", "Jane Customer", at)
	second := InquiryID("prop-1", "Jane Customer", at)
	if first != second {
		t.Fatalf("expected identical ids, got %q and %q", first, second)
	}
	if other := InquiryID("prop-2", "Jane Customer", at); other == first {
		t.Fatalf("expected different id for different property, got %q twice", first)
	}
}
