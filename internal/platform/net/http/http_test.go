package http

import (
	"context"
	"encoding/json"
	stderrs "errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"addressbook/internal/platform/config"
	perr "addressbook/internal/platform/errors"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func serve(t *testing.T, r Router, method, path string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	var env Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestRouter_RoutesNestedUnderPrefix(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	var hits []string
	r.Route("/addresses", func(sub Router) {
		sub.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				hits = append(hits, req.Method)
				next.ServeHTTP(w, req)
			})
		})
		sub.Get("/{id}", Handle(func(*stdhttp.Request) Response { return OK("get") }))
		sub.Post("/", Handle(func(*stdhttp.Request) Response { return Created("post") }))
		sub.Put("/{id}", Handle(func(*stdhttp.Request) Response { return OK("put") }))
		sub.Delete("/{id}", Handle(func(*stdhttp.Request) Response { return NoContent() }))
	})

	cases := []struct {
		method, path string
		want         int
	}{
		{stdhttp.MethodGet, "/addresses/1", stdhttp.StatusOK},
		{stdhttp.MethodPost, "/addresses/", stdhttp.StatusCreated},
		{stdhttp.MethodPut, "/addresses/1", stdhttp.StatusOK},
		{stdhttp.MethodDelete, "/addresses/1", stdhttp.StatusNoContent},
		{stdhttp.MethodGet, "/elsewhere", stdhttp.StatusNotFound},
	}
	for _, tc := range cases {
		if rec, _ := serve(t, r, tc.method, tc.path); rec.Code != tc.want {
			t.Fatalf("%s %s = %d, want %d", tc.method, tc.path, rec.Code, tc.want)
		}
	}
	if len(hits) != 4 {
		t.Fatalf("middleware saw %v", hits)
	}
}

func TestResponse_Envelope(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(chimw.RequestID)
	r.Get("/ok", Handle(func(*stdhttp.Request) Response { return OK(map[string]int{"id": 7}) }))
	r.Get("/zero", Handle(func(*stdhttp.Request) Response { return Response{Body: "x"} }))
	r.Get("/missing", Handle(func(*stdhttp.Request) Response {
		return Error(perr.NotFoundf("address 7 not found"))
	}))
	r.Get("/field", Handle(func(*stdhttp.Request) Response {
		return Error(perr.WithField(perr.DuplicateKeyf("email taken"), "email"))
	}))
	r.Get("/foreign", Handle(func(*stdhttp.Request) Response { return Error(stderrs.New("boom")) }))

	rec, env := serve(t, r, stdhttp.MethodGet, "/ok")
	if rec.Code != 200 || env.Status != "OK" || env.RequestID == "" || env.Data == nil {
		t.Fatalf("ok envelope = %+v", env)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if rec, _ := serve(t, r, stdhttp.MethodGet, "/zero"); rec.Code != 200 {
		t.Fatalf("zero status = %d", rec.Code)
	}

	cases := []struct {
		path  string
		code  int
		wire  perr.ErrorCode
		field string
	}{
		{"/missing", 404, perr.ErrorCodeNotFound, ""},
		{"/field", 409, perr.ErrorCodeDuplicateKey, "email"},
		{"/foreign", 500, perr.ErrorCodeUnknown, ""},
	}
	for _, tc := range cases {
		rec, env := serve(t, r, stdhttp.MethodGet, tc.path)
		if rec.Code != tc.code || env.StatusCode != tc.code || env.Code != tc.wire || env.Field != tc.field {
			t.Fatalf("%s: status=%d env=%+v", tc.path, rec.Code, env)
		}
		if env.Error == "" || env.Data != nil {
			t.Fatalf("%s: error body = %+v", tc.path, env)
		}
	}
}

func TestResponse_NoContentHasNoBody(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	NoContent().Write(rec, httptest.NewRequest(stdhttp.MethodDelete, "/addresses/1", nil))
	if rec.Code != stdhttp.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("status=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()

	off := AdaptChi(chi.NewRouter())
	MountProfiler(off, "/debug", false)
	if rec, _ := serve(t, off, stdhttp.MethodGet, "/debug/pprof/"); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler status = %d", rec.Code)
	}

	on := AdaptChi(chi.NewRouter())
	MountProfiler(on, "/debug", true)
	rec := httptest.NewRecorder()
	on.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("enabled profiler status = %d", rec.Code)
	}
}

func TestServer_RunAndShutdown(t *testing.T) {
	t.Setenv("CORE_API_PORT", "127.0.0.1:0")

	s := NewServer(config.New().Prefix("CORE_API_"))
	if s.Addr() != "127.0.0.1:0" {
		t.Fatalf("addr = %q", s.Addr())
	}
	s.Router().Get("/ping", Handle(func(*stdhttp.Request) Response { return OK("pong") }))

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Shutdown")
	}
}
