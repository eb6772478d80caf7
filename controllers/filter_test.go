package controllers

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/unistay-app/unistay/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildPropertyFilterEmpty(t *testing.T) {
	filter, err := BuildPropertyFilter(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filter) != 0 {
		t.Errorf("expected empty filter, got %+v", filter)
	}
}

func TestBuildPropertyFilterLocation(t *testing.T) {
	filter, err := BuildPropertyFilter(url.Values{"location": {"down.town"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clause, ok := filter["location"].(bson.M)
	if !ok {
		t.Fatalf("expected regex clause, got %+v", filter["location"])
	}
	re, ok := clause["$regex"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected primitive.Regex, got %T", clause["$regex"])
	}
	if re.Options != "i" {
		t.Errorf("expected case-insensitive match, got options %q", re.Options)
	}
	if re.Pattern != `down\.town` {
		t.Errorf("expected quoted pattern, got %q", re.Pattern)
	}
}

func TestBuildPropertyFilterTypeAndMaxPrice(t *testing.T) {
	filter, err := BuildPropertyFilter(url.Values{"type": {"Studio"}, "maxPrice": {"700"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filter["type"] != "Studio" {
		t.Errorf("type: got %v", filter["type"])
	}
	if !reflect.DeepEqual(filter["price"], bson.M{"$lte": 700.0}) {
		t.Errorf("price: got %+v", filter["price"])
	}
}

func TestBuildPropertyFilterRejectsNonNumericMaxPrice(t *testing.T) {
	if _, err := BuildPropertyFilter(url.Values{"maxPrice": {"abc"}}); err == nil {
		t.Error("expected error for non-numeric maxPrice")
	}
}

func TestSanitizeUpdateStripsImmutableFields(t *testing.T) {
	set, _, err := SanitizeUpdate(map[string]interface{}{
		"_id":       "ffffffffffffffffffffffff",
		"createdAt": "2020-01-01T00:00:00Z",
		"updatedAt": "2020-01-01T00:00:00Z",
		"title":     "New title",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{"_id", "createdAt", "updatedAt"} {
		if _, present := set[key]; present {
			t.Errorf("%s should not survive sanitization", key)
		}
	}
	if set["title"] != "New title" {
		t.Errorf("title: got %v", set["title"])
	}
}

func TestSanitizeUpdateNumerics(t *testing.T) {
	set, unset, err := SanitizeUpdate(map[string]interface{}{
		"price":    600.0,
		"bedrooms": "",
		"area":     "abc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set["price"] != 600.0 {
		t.Errorf("price: got %v", set["price"])
	}
	// Empty or non-numeric values clear the field rather than storing zero.
	if _, ok := unset["bedrooms"]; !ok {
		t.Error("expected bedrooms to be unset")
	}
	if _, ok := unset["area"]; !ok {
		t.Error("expected non-numeric area to be unset")
	}
	if _, ok := set["bedrooms"]; ok {
		t.Error("bedrooms must not be written as zero")
	}
}

func TestSanitizeUpdateRejectsBadType(t *testing.T) {
	if _, _, err := SanitizeUpdate(map[string]interface{}{"type": "Castle"}); err == nil {
		t.Error("expected error for invalid type")
	}
	if _, _, err := SanitizeUpdate(map[string]interface{}{"type": 7.0}); err == nil {
		t.Error("expected error for non-string type")
	}
}

func TestSanitizeUpdateRejectsMistypedScalars(t *testing.T) {
	// A mistyped scalar must fail validation, never be written into the
	// document where it would break later decodes.
	if _, _, err := SanitizeUpdate(map[string]interface{}{"furnished": "yes"}); err == nil {
		t.Error("expected error for string furnished")
	}
	if _, _, err := SanitizeUpdate(map[string]interface{}{"title": 5.0}); err == nil {
		t.Error("expected error for numeric title")
	}
	if _, _, err := SanitizeUpdate(map[string]interface{}{"parking": 1.0}); err == nil {
		t.Error("expected error for numeric parking")
	}

	set, _, err := SanitizeUpdate(map[string]interface{}{"furnished": true, "leaseDuration": "12 months"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set["furnished"] != true || set["leaseDuration"] != "12 months" {
		t.Errorf("well-typed scalars rejected: %+v", set)
	}
}

func TestSanitizeUpdateDropsUnknownKeys(t *testing.T) {
	set, unset, err := SanitizeUpdate(map[string]interface{}{
		"colorTheme": "dark",
		"title":      "Still here",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, present := set["colorTheme"]; present {
		t.Error("unknown key must not be written")
	}
	if _, present := unset["colorTheme"]; present {
		t.Error("unknown key must not be unset either")
	}
	if set["title"] != "Still here" {
		t.Errorf("title: got %v", set["title"])
	}
}

func TestSanitizeUpdateAvailableFrom(t *testing.T) {
	set, _, err := SanitizeUpdate(map[string]interface{}{"availableFrom": "2024-05-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	got, ok := set["availableFrom"].(time.Time)
	if !ok || !got.Equal(want) {
		t.Errorf("availableFrom: got %v, want %v", set["availableFrom"], want)
	}

	set, unset, err := SanitizeUpdate(map[string]interface{}{"availableFrom": ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := unset["availableFrom"]; !ok {
		t.Error("expected empty availableFrom to be unset")
	}
	if _, ok := set["availableFrom"]; ok {
		t.Error("empty availableFrom must not be written")
	}

	if _, _, err := SanitizeUpdate(map[string]interface{}{"availableFrom": "yesterday"}); err == nil {
		t.Error("expected error for unparseable availableFrom")
	}
}

func TestSanitizeUpdateListFields(t *testing.T) {
	set, _, err := SanitizeUpdate(map[string]interface{}{
		"amenities": []interface{}{"wifi", "", " gym "},
		"rules":     "no smoking,, quiet hours",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(set["amenities"], []string{"wifi", "gym"}) {
		t.Errorf("amenities: got %v", set["amenities"])
	}
	if !reflect.DeepEqual(set["rules"], []string{"no smoking", "quiet hours"}) {
		t.Errorf("rules: got %v", set["rules"])
	}

	if _, _, err := SanitizeUpdate(map[string]interface{}{"amenities": 5.0}); err == nil {
		t.Error("expected error for non-array amenities")
	}
}

func TestSanitizeUpdateNestedObjects(t *testing.T) {
	set, _, err := SanitizeUpdate(map[string]interface{}{
		"utilities":   map[string]interface{}{"internet": true},
		"contactInfo": map[string]interface{}{"name": "Sam"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, ok := set["utilities"].(models.Utilities)
	if !ok {
		t.Fatalf("utilities: got %T", set["utilities"])
	}
	if !u.Internet || u.Electricity || u.Water || u.Heating {
		t.Errorf("utilities: got %+v", u)
	}

	c, ok := set["contactInfo"].(models.ContactInfo)
	if !ok {
		t.Fatalf("contactInfo: got %T", set["contactInfo"])
	}
	if c.Name != "Sam" || c.Phone != "" || c.Email != "" {
		t.Errorf("contactInfo: got %+v", c)
	}
}

func TestListCacheKeyOrderIndependent(t *testing.T) {
	a := listCacheKey(url.Values{"type": {"Studio"}, "maxPrice": {"700"}})
	b := listCacheKey(url.Values{"maxPrice": {"700"}, "type": {"Studio"}})
	if a != b {
		t.Errorf("equivalent queries produced different keys: %s vs %s", a, b)
	}

	c := listCacheKey(url.Values{"type": {"Room"}})
	if a == c {
		t.Error("different queries produced the same key")
	}
}
