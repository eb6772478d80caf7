package controllers

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/unistay-app/unistay/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var numericPropertyFields = []string{"price", "bedrooms", "bathrooms", "area", "securityDeposit"}

var listPropertyFields = []string{"amenities", "nearbyUniversities", "transportLinks", "rules"}

var stringPropertyFields = []string{"title", "location", "address", "description", "terms", "leaseDuration"}

var boolPropertyFields = []string{"isRented", "furnished", "petFriendly", "parking"}

// BuildPropertyFilter translates the supported listing query parameters into
// a document filter: location is a case-insensitive containment match on the
// literal input, type is exact equality, maxPrice is an upper bound on price.
// A non-numeric maxPrice is rejected rather than coerced.
func BuildPropertyFilter(query url.Values) (bson.M, error) {
	filter := bson.M{}

	if location := strings.TrimSpace(query.Get("location")); location != "" {
		filter["location"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(location), Options: "i"}}
	}

	if typ := query.Get("type"); typ != "" {
		filter["type"] = typ
	}

	if raw := query.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("maxPrice must be a number; got %q", raw)
		}
		filter["price"] = bson.M{"$lte": maxPrice}
	}

	return filter, nil
}

// SanitizeUpdate validates and coerces a decoded PUT body into $set/$unset
// documents. Identity and timestamp fields are stripped, availableFrom
// strings become times, numerics submitted as empty or unparseable strings
// are unset rather than zeroed, list fields always materialize as string
// arrays, and the nested objects are filled out to their full default shape.
// Scalar fields must carry their schema type or the update is rejected;
// keys outside the schema are dropped.
func SanitizeUpdate(raw map[string]interface{}) (bson.M, bson.M, error) {
	set := bson.M{}
	unset := bson.M{}

	for key, value := range raw {
		switch key {
		case "_id", "id", "createdAt", "updatedAt":
			continue
		}

		if isNumericPropertyField(key) {
			switch v := value.(type) {
			case float64:
				set[key] = v
			case int:
				set[key] = float64(v)
			case string:
				n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
				if err != nil {
					unset[key] = ""
				} else {
					set[key] = n
				}
			case nil:
				unset[key] = ""
			default:
				return nil, nil, fmt.Errorf("%s must be a number", key)
			}
			continue
		}

		if isListPropertyField(key) {
			list, err := coerceStringList(key, value)
			if err != nil {
				return nil, nil, err
			}
			set[key] = list
			continue
		}

		if isStringPropertyField(key) {
			s, ok := value.(string)
			if !ok {
				return nil, nil, fmt.Errorf("%s must be a string", key)
			}
			set[key] = s
			continue
		}

		if isBoolPropertyField(key) {
			b, ok := value.(bool)
			if !ok {
				return nil, nil, fmt.Errorf("%s must be a boolean", key)
			}
			set[key] = b
			continue
		}

		switch key {
		case "type":
			typ, ok := value.(string)
			if !ok || !models.ValidPropertyType(typ) {
				return nil, nil, fmt.Errorf("type must be one of Apartment, Room, Studio")
			}
			set[key] = typ
		case "availableFrom":
			switch v := value.(type) {
			case string:
				if strings.TrimSpace(v) == "" {
					unset[key] = ""
					continue
				}
				t, err := parseDate(v)
				if err != nil {
					return nil, nil, fmt.Errorf("availableFrom must be an ISO date: %v", err)
				}
				set[key] = t
			case nil:
				unset[key] = ""
			default:
				return nil, nil, fmt.Errorf("availableFrom must be a date string")
			}
		case "utilities":
			u, err := coerceUtilities(value)
			if err != nil {
				return nil, nil, err
			}
			set[key] = u
		case "contactInfo":
			c, err := coerceContactInfo(value)
			if err != nil {
				return nil, nil, err
			}
			set[key] = c
		default:
			// Not part of the schema; dropped rather than persisted.
		}
	}

	return set, unset, nil
}

func isNumericPropertyField(key string) bool {
	for _, f := range numericPropertyFields {
		if f == key {
			return true
		}
	}
	return false
}

func isListPropertyField(key string) bool {
	for _, f := range listPropertyFields {
		if f == key {
			return true
		}
	}
	return false
}

func isStringPropertyField(key string) bool {
	for _, f := range stringPropertyFields {
		if f == key {
			return true
		}
	}
	return false
}

func isBoolPropertyField(key string) bool {
	for _, f := range boolPropertyFields {
		if f == key {
			return true
		}
	}
	return false
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

func coerceStringList(key string, value interface{}) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case string:
		return models.SplitList(v), nil
	case []string:
		out := []string{}
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	case []interface{}:
		out := []string{}
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s entries must be strings", key)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
}

func coerceUtilities(value interface{}) (models.Utilities, error) {
	u := models.DefaultUtilities()
	m, ok := value.(map[string]interface{})
	if !ok {
		if value == nil {
			return u, nil
		}
		return u, fmt.Errorf("utilities must be an object")
	}
	u.Electricity = boolField(m, "electricity")
	u.Water = boolField(m, "water")
	u.Internet = boolField(m, "internet")
	u.Heating = boolField(m, "heating")
	return u, nil
}

func coerceContactInfo(value interface{}) (models.ContactInfo, error) {
	c := models.DefaultContactInfo()
	m, ok := value.(map[string]interface{})
	if !ok {
		if value == nil {
			return c, nil
		}
		return c, fmt.Errorf("contactInfo must be an object")
	}
	c.Name = stringField(m, "name")
	c.Phone = stringField(m, "phone")
	c.Email = stringField(m, "email")
	return c, nil
}

func boolField(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}
