// Package domain holds the entity types shared by every service in the
// office backend. Entities carry no serialization annotations so they can be
// reused by different presentation layers.
package domain

import "time"

// Principal is an opaque caller identity supplied by the identity collaborator.
type Principal string

// BlobRef is an opaque reference to an externally stored binary object.
// The core never interprets its content.
type BlobRef string

// Role classifies an agent's position in the office.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleAgent       Role = "agent"
	RoleJuniorAgent Role = "junior_agent"
	RoleAssistant   Role = "assistant"
)

// ValidRole reports whether r is one of the known office roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleJuniorAgent, RoleAssistant:
		return true
	default:
		return false
	}
}

// Category describes the sale class of a property.
type Category string

const (
	CategoryResale            Category = "resale"
	CategoryRental            Category = "rental"
	CategoryUnderConstruction Category = "under_construction"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryResale, CategoryRental, CategoryUnderConstruction:
		return true
	default:
		return false
	}
}

// PropertyType describes the zoning class of a property.
type PropertyType string

const (
	TypeResidential PropertyType = "residential"
	TypeCommercial  PropertyType = "commercial"
	TypeIndustrial  PropertyType = "industrial"
)

func ValidPropertyType(t PropertyType) bool {
	switch t {
	case TypeResidential, TypeCommercial, TypeIndustrial:
		return true
	default:
		return false
	}
}

// Configuration describes the layout of a property.
type Configuration string

const (
	ConfigStudio    Configuration = "studio"
	ConfigOneRK     Configuration = "1rk"
	ConfigOneBHK    Configuration = "1bhk"
	ConfigTwoBHK    Configuration = "2bhk"
	ConfigThreeBHK  Configuration = "3bhk"
	ConfigFourBHK   Configuration = "4bhk"
	ConfigFiveBHK   Configuration = "5bhk"
	ConfigDuplex    Configuration = "duplex"
	ConfigTriplex   Configuration = "triplex"
	ConfigPenthouse Configuration = "penthouse"
	ConfigVilla     Configuration = "villa"
	ConfigRowHouse  Configuration = "row_house"
	ConfigFarmhouse Configuration = "farmhouse"
	ConfigPlot      Configuration = "plot"
)

// Configurations lists every layout in a fixed order, used by the analytics
// distribution report.
var Configurations = []Configuration{
	ConfigStudio, ConfigOneRK, ConfigOneBHK, ConfigTwoBHK, ConfigThreeBHK,
	ConfigFourBHK, ConfigFiveBHK, ConfigDuplex, ConfigTriplex, ConfigPenthouse,
	ConfigVilla, ConfigRowHouse, ConfigFarmhouse, ConfigPlot,
}

func ValidConfiguration(c Configuration) bool {
	for _, known := range Configurations {
		if c == known {
			return true
		}
	}
	return false
}

// Furnishing describes the fit-out state of a property.
type Furnishing string

const (
	Unfurnished   Furnishing = "unfurnished"
	SemiFurnished Furnishing = "semi_furnished"
	Furnished     Furnishing = "furnished"
)

// Furnishings lists every furnishing state in a fixed order.
var Furnishings = []Furnishing{Unfurnished, SemiFurnished, Furnished}

func ValidFurnishing(f Furnishing) bool {
	switch f {
	case Unfurnished, SemiFurnished, Furnished:
		return true
	default:
		return false
	}
}

// PropertyStatus describes the market state of a listing.
type PropertyStatus string

const (
	StatusAvailable     PropertyStatus = "available"
	StatusSold          PropertyStatus = "sold"
	StatusRented        PropertyStatus = "rented"
	StatusUnderContract PropertyStatus = "under_contract"
)

func ValidPropertyStatus(s PropertyStatus) bool {
	switch s {
	case StatusAvailable, StatusSold, StatusRented, StatusUnderContract:
		return true
	default:
		return false
	}
}

// InquirySource describes how a customer inquiry reached the office.
type InquirySource string

const (
	SourceWebsite     InquirySource = "website"
	SourceReferral    InquirySource = "referral"
	SourceWalkIn      InquirySource = "walk_in"
	SourcePhone       InquirySource = "phone"
	SourceSocialMedia InquirySource = "social_media"
)

func ValidInquirySource(s InquirySource) bool {
	switch s {
	case SourceWebsite, SourceReferral, SourceWalkIn, SourcePhone, SourceSocialMedia:
		return true
	default:
		return false
	}
}

// InquiryStatus describes where an inquiry sits in its follow-up lifecycle.
type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "new"
	InquiryInProgress InquiryStatus = "in_progress"
	InquiryClosed     InquiryStatus = "closed"
	InquiryFollowUp   InquiryStatus = "follow_up"
)

func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryNew, InquiryInProgress, InquiryClosed, InquiryFollowUp:
		return true
	default:
		return false
	}
}

// Agent is an office staff record keyed by principal. Agents are never
// deleted; deactivation is a soft state change.
type Agent struct {
	ID          Principal
	Name        string
	ContactInfo string
	Role        Role
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Location places a property inside the office's operating region.
type Location struct {
	City     string
	Suburb   string
	Area     string
	RoadName string
}

// Coordinates are geographic degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Property is a listing. ID and ListedBy are immutable after creation.
type Property struct {
	ID            string
	Title         string
	Description   string
	Location      Location
	Coordinates   Coordinates
	Price         int64
	Category      Category
	PropertyType  PropertyType
	Configuration Configuration
	Furnishing    Furnishing
	Status        PropertyStatus
	ListedBy      Principal
	Images        []BlobRef
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Clone returns a deep copy, including the image reference slice.
func (p Property) Clone() Property {
	out := p
	if p.Images != nil {
		out.Images = make([]BlobRef, len(p.Images))
		copy(out.Images, p.Images)
	}
	return out
}

// Inquiry is a customer contact about a specific property. ID is immutable
// after creation.
type Inquiry struct {
	ID            string
	PropertyID    string
	CustomerName  string
	ContactInfo   string
	Source        InquirySource
	Status        InquiryStatus
	AssignedAgent Principal
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserProfile is the per-identity display profile, owned by its identity.
type UserProfile struct {
	Name        string
	ContactInfo string
}
