package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"addressbook/internal/modkit/httpkit"
	phttp "addressbook/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func up(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func get(d Deps, path string) *httptest.ResponseRecorder {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/meta", func(rr httpkit.Router) { Register(rr, d) })
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	return env.Data
}

func TestReady(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		pg, ch func(context.Context) error
		want   string
	}{
		{name: "all ok", pg: up, ch: up, want: "ok"},
		{name: "ch switched off", pg: up, want: "degraded"},
		{name: "pg down", pg: down, ch: up, want: "fail"},
		{name: "pg down and ch off", pg: down, want: "fail"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := Deps{Backends: []Dependency{{Name: "pg", Ping: tc.pg}, {Name: "ch", Ping: tc.ch}}}
			rec := get(d, "/meta/ready")
			if rec.Code != stdhttp.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			got := decode[ReadyResponse](t, rec)
			if got.Status != tc.want || len(got.Checks) != 2 {
				t.Fatalf("ready = %+v, want %s", got, tc.want)
			}
			if tc.pg != nil && got.Checks[0].Status == "fail" && got.Checks[0].Error == "" {
				t.Fatalf("failed check lost its error: %+v", got.Checks[0])
			}
		})
	}
}

func TestHealthAndService(t *testing.T) {
	t.Parallel()

	d := Deps{ServiceName: "addressbook-api", StartedAt: time.Now().Add(-time.Minute)}

	h := decode[HealthResponse](t, get(d, "/meta/health"))
	if !h.OK || h.Service != "addressbook-api" {
		t.Fatalf("health = %+v", h)
	}
	s := decode[ServiceResponse](t, get(d, "/meta/service"))
	if s.Name != "addressbook-api" || s.Uptime < 59 {
		t.Fatalf("service = %+v", s)
	}
	if rec := get(d, "/meta/version"); rec.Code != stdhttp.StatusOK {
		t.Fatalf("version status = %d", rec.Code)
	}
}

func TestStorage_OnlyMountedWhenProvided(t *testing.T) {
	t.Parallel()

	if rec := get(Deps{}, "/meta/storage"); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("storage without reporter: status = %d", rec.Code)
	}

	d := Deps{Storage: func() StorageResponse {
		return StorageResponse{Addresses: "postgres", AuditSink: true, Migrations: 2}
	}}
	rec := get(d, "/meta/storage")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[StorageResponse](t, rec); got.Addresses != "postgres" || !got.AuditSink || got.Migrations != 2 {
		t.Fatalf("storage = %+v", got)
	}
}
