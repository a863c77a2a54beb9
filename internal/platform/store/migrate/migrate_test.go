package migrate

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSource_ListsEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	src, err := Source()
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	defer src.Close()

	first, err := src.First()
	if err != nil || first != 1 {
		t.Fatalf("first = %d, %v", first, err)
	}
	next, err := src.Next(first)
	if err != nil || next != 2 {
		t.Fatalf("next = %d, %v", next, err)
	}
	if _, err := src.Next(next); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected no migration after %d, got %v", next, err)
	}
}

func TestSource_SchemaShape(t *testing.T) {
	t.Parallel()

	src, err := Source()
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	defer src.Close()

	rc, _, err := src.ReadUp(1)
	if err != nil {
		t.Fatalf("read up: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	sql := string(body)

	for _, want := range []string{
		"first_name   VARCHAR(100) NOT NULL",
		"street       VARCHAR(200) NOT NULL",
		"house_number VARCHAR(10)  NOT NULL",
		"email        VARCHAR(200)",
		"phone        VARCHAR(20)",
		"is_deleted   BOOLEAN      NOT NULL DEFAULT FALSE",
		"ux_addresses_email",
		"WHERE email IS NOT NULL AND NOT is_deleted",
		"(first_name, last_name)",
		"(city)",
		"(zip_code)",
		"(is_deleted)",
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("migration 1 missing %q", want)
		}
	}

	for _, v := range []uint{1, 2} {
		rc, _, err := src.ReadDown(v)
		if err != nil {
			t.Fatalf("migration %d has no down: %v", v, err)
		}
		_ = rc.Close()
	}
}

func TestOpen_RejectsEmptyURL(t *testing.T) {
	t.Parallel()

	if _, err := Open("  ", nil); err == nil {
		t.Fatal("empty url should fail")
	}
}

func TestZlog_Printf(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	z := zlog{l: &l}
	z.Printf("Finished 1/u create_addresses (read 2ms, ran 5ms)\n")
	if !strings.Contains(buf.String(), `"message":"Finished 1/u create_addresses (read 2ms, ran 5ms)"`) {
		t.Fatalf("unexpected log output %q", buf.String())
	}
	if z.Verbose() {
		t.Fatal("verbose should be off")
	}
}

type fakeRunner struct {
	upErr, versionErr, closeErr error
	version                     uint
	calls                       []string
}

func (f *fakeRunner) Up() error {
	f.calls = append(f.calls, "up")
	return f.upErr
}

func (f *fakeRunner) Version() (uint, bool, bool, error) {
	f.calls = append(f.calls, "version")
	return f.version, false, f.versionErr == nil, f.versionErr
}

func (f *fakeRunner) Close() error {
	f.calls = append(f.calls, "close")
	return f.closeErr
}

func TestApply(t *testing.T) {
	t.Parallel()

	upErr := errors.New("dirty database")
	verErr := errors.New("version table gone")
	closeErr := errors.New("conn reset")

	cases := []struct {
		name      string
		r         *fakeRunner
		want      uint
		wantErrs  []error
		wantCalls string
	}{
		{name: "ok", r: &fakeRunner{version: 2}, want: 2, wantCalls: "up,version,close"},
		{name: "up fails", r: &fakeRunner{upErr: upErr}, wantErrs: []error{upErr}, wantCalls: "up,close"},
		{name: "version fails", r: &fakeRunner{versionErr: verErr}, wantErrs: []error{verErr}, wantCalls: "up,version,close"},
		{name: "close fails", r: &fakeRunner{version: 2, closeErr: closeErr}, wantErrs: []error{closeErr}, wantCalls: "up,version,close"},
		{name: "up and close fail", r: &fakeRunner{upErr: upErr, closeErr: closeErr}, wantErrs: []error{upErr, closeErr}, wantCalls: "up,close"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := apply(tc.r)
			if calls := strings.Join(tc.r.calls, ","); calls != tc.wantCalls {
				t.Fatalf("calls = %s, want %s", calls, tc.wantCalls)
			}
			if len(tc.wantErrs) == 0 {
				if err != nil || got != tc.want {
					t.Fatalf("apply = %d, %v; want %d", got, err, tc.want)
				}
				return
			}
			if got != 0 {
				t.Fatalf("version on failure = %d, want 0", got)
			}
			for _, want := range tc.wantErrs {
				if !errors.Is(err, want) {
					t.Fatalf("error %v should wrap %v", err, want)
				}
			}
		})
	}
}
