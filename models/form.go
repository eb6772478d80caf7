package models

import (
	"strconv"
	"strings"
	"time"
)

// PropertyForm is the flat, all-string representation the edit screen binds
// to. Every field is always present so controlled inputs never see a missing
// value; list fields are a single comma-separated string and dates are
// YYYY-MM-DD.
type PropertyForm struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Terms       string `json:"terms"`
	Type        string `json:"type"`

	Price           string `json:"price"`
	Bedrooms        string `json:"bedrooms"`
	Bathrooms       string `json:"bathrooms"`
	Area            string `json:"area"`
	SecurityDeposit string `json:"securityDeposit"`

	IsRented    bool `json:"isRented"`
	Furnished   bool `json:"furnished"`
	PetFriendly bool `json:"petFriendly"`
	Parking     bool `json:"parking"`

	Utilities   Utilities   `json:"utilities"`
	ContactInfo ContactInfo `json:"contactInfo"`

	Amenities          string `json:"amenities"`
	NearbyUniversities string `json:"nearbyUniversities"`
	TransportLinks     string `json:"transportLinks"`
	Rules              string `json:"rules"`

	AvailableFrom string `json:"availableFrom"`
	LeaseDuration string `json:"leaseDuration"`
}

// PropertyUpdate is the payload produced by Compress and accepted by the PUT
// endpoint. Optional numerics and the date are omitted when unspecified; the
// list fields and the nested objects are always present.
type PropertyUpdate struct {
	Title       string `bson:"title" json:"title"`
	Location    string `bson:"location" json:"location"`
	Address     string `bson:"address" json:"address"`
	Description string `bson:"description" json:"description"`
	Terms       string `bson:"terms" json:"terms"`
	Type        string `bson:"type" json:"type"`

	Price           float64  `bson:"price" json:"price"`
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
}

const dateLayout = "2006-01-02"

// Expand maps a canonical Property onto the editable form representation.
// Absent scalars become empty strings, list fields are joined with ", ", the
// nested objects fall back to their default shapes, and availableFrom is
// reduced to the UTC calendar date. Pure; re-run whenever navigating to a
// different property.
func Expand(p *Property) PropertyForm {
	f := PropertyForm{
		Title:       p.Title,
		Location:    p.Location,
		Address:     p.Address,
		Description: p.Description,
		Terms:       p.Terms,
		Type:        p.Type,

		Price:           formatNumber(p.Price),
		Bedrooms:        formatNumber(p.Bedrooms),
		Bathrooms:       formatNumber(p.Bathrooms),
		Area:            formatNumber(p.Area),
		SecurityDeposit: formatNumber(p.SecurityDeposit),

		IsRented:    p.IsRented,
		Furnished:   p.Furnished,
		PetFriendly: p.PetFriendly,
		Parking:     p.Parking,

		Utilities:   p.Utilities,
		ContactInfo: p.ContactInfo,

		Amenities:          strings.Join(p.Amenities, ", "),
		NearbyUniversities: strings.Join(p.NearbyUniversities, ", "),
		TransportLinks:     strings.Join(p.TransportLinks, ", "),
		Rules:              strings.Join(p.Rules, ", "),

		LeaseDuration: p.LeaseDuration,
	}
	if f.Type == "" {
		f.Type = TypeApartment
	}
	if p.AvailableFrom != nil {
		f.AvailableFrom = p.AvailableFrom.UTC().Format(dateLayout)
	}
	return f
}

// Compress maps the form back into an update payload. Price falls back to 0
// when unparseable; the other numerics are omitted when empty or not a
// number. Comma-separated fields split on "," with each piece trimmed and
// empty pieces dropped. The nested objects pass through as-is, never omitted.
func Compress(f PropertyForm) PropertyUpdate {
	u := PropertyUpdate{
		Title:       f.Title,
		Location:    f.Location,
		Address:     f.Address,
		Description: f.Description,
		Terms:       f.Terms,
		Type:        f.Type,

		Price:           parseNumberOrZero(f.Price),
		Bedrooms:        parseNumber(f.Bedrooms),
		Bathrooms:       parseNumber(f.Bathrooms),
		Area:            parseNumber(f.Area),
		SecurityDeposit: parseNumber(f.SecurityDeposit),

		IsRented:    f.IsRented,
		Furnished:   f.Furnished,
		PetFriendly: f.PetFriendly,
		Parking:     f.Parking,

		Utilities:   f.Utilities,
		ContactInfo: f.ContactInfo,

		Amenities:          SplitList(f.Amenities),
		NearbyUniversities: SplitList(f.NearbyUniversities),
		TransportLinks:     SplitList(f.TransportLinks),
		Rules:              SplitList(f.Rules),

		LeaseDuration: f.LeaseDuration,
	}
	if f.AvailableFrom != "" {
		if t, err := time.ParseInLocation(dateLayout, f.AvailableFrom, time.UTC); err == nil {
			u.AvailableFrom = &t
		}
	}
	return u
}

// SplitList turns a comma-separated form field into the canonical sequence
// of trimmed, non-empty strings.
func SplitList(s string) []string {
	out := []string{}
	for _, piece := range strings.Split(s, ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseNumberOrZero(s string) float64 {
	if v := parseNumber(s); v != nil {
		return *v
	}
	return 0
}
