package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/unistay-app/unistay/backend/config"
	"github.com/unistay-app/unistay/backend/utils"

	"github.com/gorilla/mux"
)

// The collections are nil: any request that reaches a handler's persistence
// call would panic, so a clean status proves the gate rejected it first.
func testRouter() *mux.Router {
	router := mux.NewRouter()
	Routes(router, &config.Collections{}, nil)
	return router
}

func TestBookmarkRoutesRequireAuth(t *testing.T) {
	t.Setenv("JWT_KEY", "test-secret")
	router := testRouter()

	for _, tc := range []struct {
		method, path string
	}{
		{"GET", "/api/bookmarks"},
		{"POST", "/api/bookmarks"},
		{"DELETE", "/api/bookmarks/ffffffffffffffffffffffff"},
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", tc.method, tc.path, rec.Code)
		}
	}
}

func TestPropertyMutationsRejectNonAdmin(t *testing.T) {
	t.Setenv("JWT_KEY", "test-secret")
	router := testRouter()

	token, err := utils.GenerateJWT("user-1", "user")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	for _, tc := range []struct {
		method, path string
	}{
		{"POST", "/api/properties"},
		{"PUT", "/api/properties/ffffffffffffffffffffffff"},
		{"DELETE", "/api/properties/ffffffffffffffffffffffff"},
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s: got %d, want 403", tc.method, tc.path, rec.Code)
		}
	}
}
