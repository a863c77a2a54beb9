package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func TestOpen_BadURL(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{URL: "postgres://%zz"}, zerolog.Nop())
	if err == nil || !strings.Contains(err.Error(), "parse url") {
		t.Fatalf("err = %v", err)
	}
}

// seam tests swap package vars and must not run in parallel
func TestOpen_RetriesUntilPingSucceeds(t *testing.T) {
	oldPing, oldBackoff := ping, backoff
	t.Cleanup(func() { ping, backoff = oldPing, oldBackoff })
	backoff = time.Millisecond

	calls := 0
	ping = func(context.Context, *pgxpool.Pool) error {
		calls++
		if calls < 3 {
			return errors.New("refused")
		}
		return nil
	}

	var buf bytes.Buffer
	db, err := Open(context.Background(), Config{URL: "postgres://u:p@127.0.0.1:1/db", Retries: 5}, zerolog.New(&buf))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if calls != 3 {
		t.Fatalf("ping calls = %d, want 3", calls)
	}
	if got := strings.Count(buf.String(), "postgres not ready"); got != 2 {
		t.Fatalf("retry warnings = %d, want 2", got)
	}
}

func TestOpen_GivesUpAfterRetries(t *testing.T) {
	oldPing, oldBackoff := ping, backoff
	t.Cleanup(func() { ping, backoff = oldPing, oldBackoff })
	backoff = time.Millisecond
	ping = func(context.Context, *pgxpool.Pool) error { return errors.New("refused") }

	_, err := Open(context.Background(), Config{URL: "postgres://u:p@127.0.0.1:1/db", Retries: 2}, zerolog.Nop())
	if err == nil || !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("err = %v", err)
	}
}

func TestTracer_LevelsAndSquash(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	tr.OnQuery(context.Background(), QueryEvent{SQL: "select *\n\t from  addresses", Args: []any{1}})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "select 1", Slow: true})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 log lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], `"level":"info"`) || !strings.Contains(lines[0], `"sql":"select * from addresses"`) {
		t.Fatalf("first line = %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || !strings.Contains(lines[1], `"slow":true`) {
		t.Fatalf("second line = %s", lines[1])
	}
}
