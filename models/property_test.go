package models

import "testing"

func TestPropertyValidate(t *testing.T) {
	valid := Property{Title: "A", Location: "Town", Type: TypeApartment}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid property, got %v", err)
	}

	cases := []struct {
		name string
		p    Property
	}{
		{"missing title", Property{Location: "Town", Type: TypeApartment}},
		{"missing location", Property{Title: "A", Type: TypeApartment}},
		{"bad type", Property{Title: "A", Location: "Town", Type: "Castle"}},
		{"negative price", Property{Title: "A", Location: "Town", Type: TypeRoom, Price: fptr(-1)}},
	}
	for _, tc := range cases {
		if err := tc.p.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestApplyDefaultsMaterializesLists(t *testing.T) {
	p := Property{}
	p.ApplyDefaults()

	for name, list := range map[string][]string{
		"amenities":          p.Amenities,
		"nearbyUniversities": p.NearbyUniversities,
		"transportLinks":     p.TransportLinks,
		"rules":              p.Rules,
	} {
		if list == nil {
			t.Errorf("%s: expected empty slice, got nil", name)
		}
	}
}
