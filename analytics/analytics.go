// Package analytics derives aggregate reports over a caller-scoped slice of
// properties. Aggregation is pure; authorization and scoping live in the
// service wrapper.
package analytics

import "estateflow/domain"

// PriceRange is the observed min and max price of the aggregated set.
type PriceRange struct {
	Min int64
	Max int64
}

// Report is the per-region aggregate. AveragePrice is nil when the scoped
// set is empty; otherwise it is the integer-division mean.
type Report struct {
	Region          string
	TotalProperties int
	ByCategory      map[domain.Category]int
	ByType          map[domain.PropertyType]int
	ByConfiguration map[domain.Configuration]int
	ByFurnishing    map[domain.Furnishing]int
	ByStatus        map[domain.PropertyStatus]int
	AveragePrice    *int64
	PriceRange      *PriceRange
}

// DensityView is the property-count projection of a region report. With a
// single configured region it is structurally a restatement of the same
// aggregate; multi-region support is a placeholder for future extension.
type DensityView struct {
	Region          string
	TotalProperties int
	ByStatus        map[domain.PropertyStatus]int
}

// PricingView is the pricing-heatmap projection of a region report.
type PricingView struct {
	Region       string
	AveragePrice *int64
	PriceRange   *PriceRange
}

// Combined bundles the full report with its density and pricing projections.
type Combined struct {
	Report  Report
	Density DensityView
	Pricing PricingView
}

// Aggregate computes the report for the service's configured region over the
// given scoped properties.
func Aggregate(region string, props []domain.Property) Report {
	r := Report{
		Region:          region,
		TotalProperties: len(props),
		ByCategory:      make(map[domain.Category]int),
		ByType:          make(map[domain.PropertyType]int),
		ByConfiguration: make(map[domain.Configuration]int),
		ByFurnishing:    make(map[domain.Furnishing]int),
		ByStatus:        make(map[domain.PropertyStatus]int),
	}
	if len(props) == 0 {
		return r
	}
	var sum int64
	rng := PriceRange{Min: props[0].Price, Max: props[0].Price}
	for _, p := range props {
		r.ByCategory[p.Category]++
		r.ByType[p.PropertyType]++
		r.ByConfiguration[p.Configuration]++
		r.ByFurnishing[p.Furnishing]++
		r.ByStatus[p.Status]++
		sum += p.Price
		if p.Price < rng.Min {
			rng.Min = p.Price
		}
		if p.Price > rng.Max {
			rng.Max = p.Price
		}
	}
	avg := sum / int64(len(props))
	r.AveragePrice = &avg
	r.PriceRange = &rng
	return r
}

// Combine projects the density and pricing views off a report.
func Combine(r Report) Combined {
	return Combined{
		Report: r,
		Density: DensityView{
			Region:          r.Region,
			TotalProperties: r.TotalProperties,
			ByStatus:        r.ByStatus,
		},
		Pricing: PricingView{
			Region:       r.Region,
			AveragePrice: r.AveragePrice,
			PriceRange:   r.PriceRange,
		},
	}
}

// ConfigurationDistribution returns a count for every known layout, zero
// included, in the fixed enumeration order of domain.Configurations.
func ConfigurationDistribution(props []domain.Property) map[domain.Configuration]int {
	out := make(map[domain.Configuration]int, len(domain.Configurations))
	for _, c := range domain.Configurations {
		out[c] = 0
	}
	for _, p := range props {
		out[p.Configuration]++
	}
	return out
}

// FurnishingDistribution returns a count for every furnishing state, zero
// included.
func FurnishingDistribution(props []domain.Property) map[domain.Furnishing]int {
	out := make(map[domain.Furnishing]int, len(domain.Furnishings))
	for _, f := range domain.Furnishings {
		out[f] = 0
	}
	for _, p := range props {
		out[p.Furnishing]++
	}
	return out
}
