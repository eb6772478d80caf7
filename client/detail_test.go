package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/unistay-app/unistay/backend/models"
)

func fptr(v float64) *float64 { return &v }

// fakeAPI serves a single property and records the last PUT payload,
// applying its price so re-fetches observe the update.
type fakeAPI struct {
	property models.Property
	lastPut  map[string]interface{}
	failGet  bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, "/api/properties/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if f.failGet {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "Server error"})
			return
		}
		json.NewEncoder(w).Encode(f.property)
	case http.MethodPut:
		body := map[string]interface{}{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.lastPut = body
		if price, ok := body["price"].(float64); ok {
			f.property.Price = &price
		}
		json.NewEncoder(w).Encode(f.property)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func testProperty() models.Property {
	available := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return models.Property{
		Title:         "Sunny studio",
		Location:      "Town",
		Type:          models.TypeStudio,
		Price:         fptr(500),
		Amenities:     []string{"wifi", "gym"},
		AvailableFrom: &available,
	}
}

func TestDetailViewOpenExpandsForm(t *testing.T) {
	api := &fakeAPI{property: testProperty()}
	server := httptest.NewServer(api)
	defer server.Close()

	v := NewDetailView(New(server.URL))
	if err := v.Open(context.Background(), "abc"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if v.Load != LoadReady || v.Mode != ModeViewing {
		t.Fatalf("expected ready/viewing, got load=%v mode=%v", v.Load, v.Mode)
	}
	if v.Form.Price != "500" {
		t.Errorf("form price: got %q", v.Form.Price)
	}
	if v.Form.Amenities != "wifi, gym" {
		t.Errorf("form amenities: got %q", v.Form.Amenities)
	}
	if v.Form.AvailableFrom != "2024-05-01" {
		t.Errorf("form availableFrom: got %q", v.Form.AvailableFrom)
	}
	if v.Form.Bedrooms != "" {
		t.Errorf("form bedrooms: got %q, want empty", v.Form.Bedrooms)
	}
}

func TestDetailViewOpenFailure(t *testing.T) {
	api := &fakeAPI{property: testProperty(), failGet: true}
	server := httptest.NewServer(api)
	defer server.Close()

	v := NewDetailView(New(server.URL))
	if err := v.Open(context.Background(), "abc"); err == nil {
		t.Fatal("expected error")
	}

	if v.Load != LoadFailed {
		t.Errorf("expected failed load state, got %v", v.Load)
	}
	if v.Err == nil {
		t.Error("expected Err to be set")
	}
	if v.Edit() {
		t.Error("Edit must be refused while the load has failed")
	}
}

func TestDetailViewCancelDiscardsDraft(t *testing.T) {
	api := &fakeAPI{property: testProperty()}
	server := httptest.NewServer(api)
	defer server.Close()

	v := NewDetailView(New(server.URL))
	if err := v.Open(context.Background(), "abc"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if !v.Edit() {
		t.Fatal("Edit refused")
	}
	v.Form.Title = "Scribbled over"
	v.Cancel()

	if v.Mode != ModeViewing {
		t.Errorf("expected viewing after cancel, got %v", v.Mode)
	}
	if v.Form.Title != "Sunny studio" {
		t.Errorf("draft not discarded: title %q", v.Form.Title)
	}
	if api.lastPut != nil {
		t.Error("cancel must not issue a PUT")
	}
}

func TestDetailViewSaveCompressesAndRefetches(t *testing.T) {
	api := &fakeAPI{property: testProperty()}
	server := httptest.NewServer(api)
	defer server.Close()

	v := NewDetailView(New(server.URL))
	if err := v.Open(context.Background(), "abc"); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if !v.Edit() {
		t.Fatal("Edit refused")
	}
	v.Form.Price = "600"
	v.Form.Bedrooms = ""

	if err := v.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if api.lastPut == nil {
		t.Fatal("no PUT issued")
	}
	if api.lastPut["price"] != 600.0 {
		t.Errorf("payload price: got %v", api.lastPut["price"])
	}
	if _, present := api.lastPut["bedrooms"]; present {
		t.Error("empty bedrooms must be omitted from the payload")
	}
	if _, present := api.lastPut["utilities"]; !present {
		t.Error("utilities must always be present in the payload")
	}

	if v.Mode != ModeViewing {
		t.Errorf("expected viewing after save, got %v", v.Mode)
	}
	if v.Property.Price == nil || *v.Property.Price != 600 {
		t.Errorf("canonical document not re-fetched: %+v", v.Property.Price)
	}
}
