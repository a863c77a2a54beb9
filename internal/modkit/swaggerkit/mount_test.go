package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "addressbook/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func serve(enabled bool, path string) *httptest.ResponseRecorder {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, enabled)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMount_ServesDocument(t *testing.T) {
	t.Parallel()

	rec := serve(true, "/api/docs/doc.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var spec struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("document is not JSON: %v", err)
	}
	for path, method := range map[string]string{
		"/addresses":                   "post",
		"/addresses/query":             "post",
		"/addresses/{id}":              "delete",
		"/audit/addresses/{id}/events": "get",
		"/meta/ready":                  "get",
	} {
		if _, ok := spec.Paths[path][method]; !ok {
			t.Fatalf("document lacks %s %s", method, path)
		}
	}
}

func TestMount_RedirectAndDisabled(t *testing.T) {
	t.Parallel()

	if rec := serve(true, "/api/docs"); rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect status = %d", rec.Code)
	}
	if rec := serve(false, "/api/docs/doc.json"); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled status = %d", rec.Code)
	}
}
