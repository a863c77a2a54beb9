package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"addressbook/internal/modkit"
	"addressbook/internal/platform/config"
	phttp "addressbook/internal/platform/net/http"
	"addressbook/internal/platform/store"
	"addressbook/internal/platform/testkit"
	"addressbook/internal/services/addresses/domain"

	"github.com/go-chi/chi/v5"
)

type nopTx struct{}

func (nopTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (nopTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (nopTx) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (nopTx) Tx(_ context.Context, fn func(store.RowQuerier) error) error    { return fn(nopTx{}) }

func TestSelectRepo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		deps modkit.Deps
		want Backend
		in   Backend
	}{
		{"auto without pg", modkit.Deps{}, BackendMemory, BackendAuto},
		{"empty without pg", modkit.Deps{}, BackendMemory, ""},
		{"auto with pg", modkit.Deps{PG: nopTx{}}, BackendPostgres, BackendAuto},
		{"forced memory", modkit.Deps{PG: nopTx{}}, BackendMemory, BackendMemory},
	}
	for _, tc := range cases {
		got, r := selectRepo(tc.deps, tc.in)
		if got != tc.want || r == nil {
			t.Fatalf("%s: backend = %q", tc.name, got)
		}
	}

	testkit.MustPanic(t, func() { selectRepo(modkit.Deps{}, BackendPostgres) })
	testkit.MustPanic(t, func() { selectRepo(modkit.Deps{}, Backend("sqlite")) })
}

func TestModule_MountsAndExposesBus(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{}, Options{Backend: BackendMemory})
	if m.Name() != "addresses" {
		t.Fatalf("name = %q", m.Name())
	}
	var _ modkit.Module = m

	ports, ok := m.Ports().(Ports)
	if !ok || ports.Bus == nil || ports.Service == nil {
		t.Fatalf("ports not wired: %#v", m.Ports())
	}

	seen := make(chan int64, 1)
	ports.Bus.Subscribe(domain.EventCreated, func(_ context.Context, ev domain.Event) error {
		seen <- ev.AddressID
		return nil
	})

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	body := `{"first_name":"John","last_name":"Doe","street":"Main Street","house_number":"123","zip_code":"12345","city":"New York","country":"USA"}`
	req := httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if id := <-seen; id != 1 {
		t.Fatalf("event id = %d", id)
	}
}

func TestModule_RejectsNonJSONBody(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{}, Options{Backend: BackendMemory})
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/addresses", strings.NewReader("first_name=John"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", rec.Code)
	}
}

func TestFromConfig_Default(t *testing.T) {
	t.Setenv("ADDRESSES_BACKEND", "")
	if got := FromConfig(config.New()).Backend; got != BackendAuto {
		t.Fatalf("backend = %q", got)
	}
	t.Setenv("ADDRESSES_BACKEND", "Memory")
	if got := FromConfig(config.New()).Backend; got != BackendMemory {
		t.Fatalf("backend = %q", got)
	}
}
