// Package property implements listing management, search and location
// lookups. Create and update are restricted to property-managing roles;
// updating someone else's listing additionally requires admin.
package property

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"estateflow/domain"
	"estateflow/logging"
	"estateflow/metrics"
	"estateflow/policy"
	"estateflow/search"
	"estateflow/store"
)

var validate = validator.New()

// Service exposes listing operations.
type Service struct {
	store    *store.Store
	resolver *policy.Resolver
	now      func() time.Time
}

// NewService builds the property service.
func NewService(st *store.Store, resolver *policy.Resolver) *Service {
	return &Service{store: st, resolver: resolver, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateParams carries the caller-supplied fields of a new listing. The id,
// listing agent, status and timestamps are assigned by the service.
type CreateParams struct {
	Title         string `validate:"required"`
	Description   string
	Location      domain.Location `validate:"required"`
	Coordinates   domain.Coordinates
	Price         int64 `validate:"gte=0"`
	Category      domain.Category
	PropertyType  domain.PropertyType
	Configuration domain.Configuration
	Furnishing    domain.Furnishing
	Images        []domain.BlobRef
}

func validateListingEnums(category domain.Category, propertyType domain.PropertyType, configuration domain.Configuration, furnishing domain.Furnishing) error {
	if !domain.ValidCategory(category) {
		return fmt.Errorf("property: invalid category %q", category)
	}
	if !domain.ValidPropertyType(propertyType) {
		return fmt.Errorf("property: invalid property type %q", propertyType)
	}
	if !domain.ValidConfiguration(configuration) {
		return fmt.Errorf("property: invalid configuration %q", configuration)
	}
	if !domain.ValidFurnishing(furnishing) {
		return fmt.Errorf("property: invalid furnishing %q", furnishing)
	}
	return nil
}

// Add creates a listing owned by the caller. The id derives from location,
// price and creation time and never changes afterwards.
func (s *Service) Add(ctx context.Context, caller domain.Principal, params CreateParams) (domain.Property, error) {
	var created domain.Property
	err := s.store.Update(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanManageProperties() {
			return fmt.Errorf("property: add requires a property-managing role: %w", domain.ErrUnauthorized)
		}
		if err := validate.Struct(params); err != nil {
			return fmt.Errorf("property: invalid create params: %w", err)
		}
		if params.Location.City == "" {
			return fmt.Errorf("property: city required")
		}
		if err := validateListingEnums(params.Category, params.PropertyType, params.Configuration, params.Furnishing); err != nil {
			return err
		}
		now := s.now()
		created = domain.Property{
			ID:            domain.PropertyID(params.Location, params.Price, now),
			Title:         params.Title,
			Description:   params.Description,
			Location:      params.Location,
			Coordinates:   params.Coordinates,
			Price:         params.Price,
			Category:      params.Category,
			PropertyType:  params.PropertyType,
			Configuration: params.Configuration,
			Furnishing:    params.Furnishing,
			Status:        domain.StatusAvailable,
			ListedBy:      actor.Principal,
			Images:        params.Images,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		tx.PutProperty(created)
		return nil
	})
	if err != nil {
		metrics.Rejection("add_property", err)
		return domain.Property{}, err
	}
	metrics.Operation("add_property")
	logging.Logger.WithFields(map[string]interface{}{
		"property": created.ID,
		"agent":    string(created.ListedBy),
	}).Info("property listed")
	return created, nil
}

// UpdateParams carries the mutable fields of a listing.
type UpdateParams struct {
	Title         string `validate:"required"`
	Description   string
	Location      domain.Location `validate:"required"`
	Coordinates   domain.Coordinates
	Price         int64 `validate:"gte=0"`
	Category      domain.Category
	PropertyType  domain.PropertyType
	Configuration domain.Configuration
	Furnishing    domain.Furnishing
	Status        domain.PropertyStatus
	Images        []domain.BlobRef
}

// Update replaces the mutable fields of a listing. The caller must own the
// listing or be an administrator; id, listing agent and creation time are
// immutable.
func (s *Service) Update(ctx context.Context, caller domain.Principal, id string, params UpdateParams) (domain.Property, error) {
	var updated domain.Property
	err := s.store.Update(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanManageProperties() {
			return fmt.Errorf("property: update requires a property-managing role: %w", domain.ErrUnauthorized)
		}
		if err := validate.Struct(params); err != nil {
			return fmt.Errorf("property: invalid update params: %w", err)
		}
		if err := validateListingEnums(params.Category, params.PropertyType, params.Configuration, params.Furnishing); err != nil {
			return err
		}
		if !domain.ValidPropertyStatus(params.Status) {
			return fmt.Errorf("property: invalid status %q", params.Status)
		}
		rec, ok := tx.Property(id)
		if !ok {
			return fmt.Errorf("property: %s: %w", id, domain.ErrNotFound)
		}
		if rec.ListedBy != actor.Principal && !actor.Admin {
			return fmt.Errorf("property: %s is listed by another agent: %w", id, domain.ErrUnauthorized)
		}
		rec.Title = params.Title
		rec.Description = params.Description
		rec.Location = params.Location
		rec.Coordinates = params.Coordinates
		rec.Price = params.Price
		rec.Category = params.Category
		rec.PropertyType = params.PropertyType
		rec.Configuration = params.Configuration
		rec.Furnishing = params.Furnishing
		rec.Status = params.Status
		rec.Images = params.Images
		rec.UpdatedAt = s.now()
		tx.PutProperty(rec)
		updated = rec.Clone()
		return nil
	})
	if err != nil {
		metrics.Rejection("update_property", err)
		return domain.Property{}, err
	}
	metrics.Operation("update_property")
	logging.Logger.WithField("property", id).Info("property updated")
	return updated, nil
}

func (s *Service) viewProperties(caller domain.Principal, op string, pick func(tx *store.Tx) error) error {
	err := s.store.View(func(tx *store.Tx) error {
		actor, err := s.resolver.Resolve(tx, caller)
		if err != nil {
			return err
		}
		if !actor.CanViewProperties() {
			return fmt.Errorf("property: %s requires view access: %w", op, domain.ErrUnauthorized)
		}
		return pick(tx)
	})
	if err != nil {
		metrics.Rejection(op, err)
		return err
	}
	metrics.Operation(op)
	return nil
}

// Get returns one listing.
func (s *Service) Get(ctx context.Context, caller domain.Principal, id string) (domain.Property, error) {
	var out domain.Property
	err := s.viewProperties(caller, "get_property", func(tx *store.Tx) error {
		rec, ok := tx.Property(id)
		if !ok {
			return fmt.Errorf("property: %s: %w", id, domain.ErrNotFound)
		}
		out = rec
		return nil
	})
	if err != nil {
		return domain.Property{}, err
	}
	return out, nil
}

// List returns every listing in ascending createdAt order.
func (s *Service) List(ctx context.Context, caller domain.Principal) ([]domain.Property, error) {
	var out []domain.Property
	err := s.viewProperties(caller, "get_all_properties", func(tx *store.Tx) error {
		out = tx.Properties()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ByAgent returns the listings owned by the given agent, order-preserved.
func (s *Service) ByAgent(ctx context.Context, caller domain.Principal, agentID domain.Principal) ([]domain.Property, error) {
	var out []domain.Property
	err := s.viewProperties(caller, "get_properties_by_agent", func(tx *store.Tx) error {
		for _, p := range tx.Properties() {
			if p.ListedBy == agentID {
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ByStatus returns the listings in the given market state, order-preserved.
func (s *Service) ByStatus(ctx context.Context, caller domain.Principal, status domain.PropertyStatus) ([]domain.Property, error) {
	var out []domain.Property
	err := s.viewProperties(caller, "get_properties_by_status", func(tx *store.Tx) error {
		for _, p := range tx.Properties() {
			if p.Status == status {
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ByCategory returns the listings in the given sale class, order-preserved.
func (s *Service) ByCategory(ctx context.Context, caller domain.Principal, category domain.Category) ([]domain.Property, error) {
	var out []domain.Property
	err := s.viewProperties(caller, "get_properties_by_category", func(tx *store.Tx) error {
		for _, p := range tx.Properties() {
			if p.Category == category {
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SearchAndFilter applies the simple criteria search: every present field
// must match, absent fields always match.
func (s *Service) SearchAndFilter(ctx context.Context, caller domain.Principal, criteria search.Criteria) ([]domain.Property, error) {
	var out []domain.Property
	err := s.viewProperties(caller, "search_and_filter_properties", func(tx *store.Tx) error {
		out = search.Apply(tx.Properties(), criteria)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AdvancedFilter applies the multi-value filter: OR within a dimension, AND
// across non-empty dimensions, empty result is valid.
func (s *Service) AdvancedFilter(ctx context.Context, caller domain.Principal, filter search.Filter) ([]domain.Property, error) {
	var out []domain.Property
	err := s.viewProperties(caller, "advanced_filter_properties", func(tx *store.Tx) error {
		out = search.ApplyFilter(tx.Properties(), filter)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Nearby returns up to limit listings ordered by ascending great-circle
// distance from the given point.
func (s *Service) Nearby(ctx context.Context, caller domain.Principal, center domain.Coordinates, limit int) ([]domain.Property, error) {
	var out []domain.Property
	err := s.viewProperties(caller, "get_nearby_properties", func(tx *store.Tx) error {
		out = search.Nearby(tx.Properties(), center, limit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Cities returns the distinct cities present in the current listings.
func (s *Service) Cities(ctx context.Context, caller domain.Principal) ([]string, error) {
	var out []string
	err := s.viewProperties(caller, "get_all_cities", func(tx *store.Tx) error {
		var cities []string
		for _, p := range tx.Properties() {
			cities = append(cities, p.Location.City)
		}
		out = uniqueSorted(cities)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SuburbsForCity returns the distinct suburbs listed under the given city.
func (s *Service) SuburbsForCity(ctx context.Context, caller domain.Principal, city string) ([]string, error) {
	var out []string
	err := s.viewProperties(caller, "get_suburbs_for_city", func(tx *store.Tx) error {
		var suburbs []string
		for _, p := range tx.Properties() {
			if p.Location.City == city {
				suburbs = append(suburbs, p.Location.Suburb)
			}
		}
		out = uniqueSorted(suburbs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AreasForSuburb returns the distinct areas listed under the given suburb.
func (s *Service) AreasForSuburb(ctx context.Context, caller domain.Principal, suburb string) ([]string, error) {
	var out []string
	err := s.viewProperties(caller, "get_areas_for_suburb", func(tx *store.Tx) error {
		var areas []string
		for _, p := range tx.Properties() {
			if p.Location.Suburb == suburb {
				areas = append(areas, p.Location.Area)
			}
		}
		out = uniqueSorted(areas)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
