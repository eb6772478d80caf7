package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TypeApartment = "Apartment"
	TypeRoom      = "Room"
	TypeStudio    = "Studio"
)

// Utilities lists what the rent covers. The zero value is the canonical
// default shape: nothing included.
type Utilities struct {
	Electricity bool `bson:"electricity" json:"electricity"`
	Water       bool `bson:"water" json:"water"`
	Internet    bool `bson:"internet" json:"internet"`
	Heating     bool `bson:"heating" json:"heating"`
}

type ContactInfo struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Location    string             `bson:"location" json:"location"`
	Address     string             `bson:"address" json:"address"`
	Description string             `bson:"description" json:"description"`
	Terms       string             `bson:"terms" json:"terms"`
	Type        string             `bson:"type" json:"type"`

	// Optional numerics: nil means unspecified, never zero.
	Price           *float64 `bson:"price,omitempty" json:"price,omitempty"`
	Bedrooms        *float64 `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms       *float64 `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Area            *float64 `bson:"area,omitempty" json:"area,omitempty"`
	SecurityDeposit *float64 `bson:"securityDeposit,omitempty" json:"securityDeposit,omitempty"`

	IsRented    bool `bson:"isRented" json:"isRented"`
	Furnished   bool `bson:"furnished" json:"furnished"`
	PetFriendly bool `bson:"petFriendly" json:"petFriendly"`
	Parking     bool `bson:"parking" json:"parking"`

	Utilities   Utilities   `bson:"utilities" json:"utilities"`
	ContactInfo ContactInfo `bson:"contactInfo" json:"contactInfo"`

	Amenities          []string `bson:"amenities" json:"amenities"`
	NearbyUniversities []string `bson:"nearbyUniversities" json:"nearbyUniversities"`
	TransportLinks     []string `bson:"transportLinks" json:"transportLinks"`
	Rules              []string `bson:"rules" json:"rules"`

	AvailableFrom *time.Time `bson:"availableFrom,omitempty" json:"availableFrom,omitempty"`
	LeaseDuration string     `bson:"leaseDuration" json:"leaseDuration"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func ValidPropertyType(t string) bool {
	switch t {
	case TypeApartment, TypeRoom, TypeStudio:
		return true
	}
	return false
}

// DefaultUtilities and DefaultContactInfo are the single source of the
// default shapes used by creation, updates and the edit form.
func DefaultUtilities() Utilities { return Utilities{} }

func DefaultContactInfo() ContactInfo { return ContactInfo{} }

// ApplyDefaults materializes the list fields as empty (never nil) slices so
// they serialize as [] rather than null.
func (p *Property) ApplyDefaults() {
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if p.NearbyUniversities == nil {
		p.NearbyUniversities = []string{}
	}
	if p.TransportLinks == nil {
		p.TransportLinks = []string{}
	}
	if p.Rules == nil {
		p.Rules = []string{}
	}
}

// Validate checks the fields required at creation time.
func (p *Property) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.Location == "" {
		return fmt.Errorf("location is required")
	}
	if !ValidPropertyType(p.Type) {
		return fmt.Errorf("type must be one of Apartment, Room, Studio; got %q", p.Type)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}
