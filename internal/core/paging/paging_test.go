package paging

import (
	"math"
	"testing"

	perr "addressbook/internal/platform/errors"
)

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want SortKey
		ok   bool
	}{
		{"firstName", SortFirstName, true},
		{"FIRSTNAME", SortFirstName, true},
		{"lastname", SortLastName, true},
		{" city ", SortCity, true},
		{"ZipCode", SortZipCode, true},
		{"createdAt", SortCreatedAt, true},
		{"email", SortEmail, true},
		{"houseNumber", SortDefault, false},
		{"", SortDefault, false},
		{"drop table", SortDefault, false},
	}
	for _, tc := range cases {
		got, ok := ParseSortKey(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseSortKey(%q) = (%v,%v), want (%v,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSortKey_StringRoundTrip(t *testing.T) {
	t.Parallel()

	for k := SortFirstName; k <= SortCreatedAt; k++ {
		got, ok := ParseSortKey(k.String())
		if !ok || got != k {
			t.Fatalf("round trip of %v failed: got %v ok=%v", k, got, ok)
		}
	}
	if SortDefault.String() != "default" {
		t.Fatalf("unexpected default name %q", SortDefault.String())
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	cases := map[string]Direction{
		"desc":  Desc,
		"DESC":  Desc,
		" Desc": Desc,
		"asc":   Asc,
		"":      Asc,
		"down":  Asc,
	}
	for in, want := range cases {
		if got := ParseDirection(in); got != want {
			t.Fatalf("ParseDirection(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		req   Request
		field string
	}{
		{name: "ok", req: Request{Page: 1, PageSize: 10}},
		{name: "large size ok", req: Request{Page: 3, PageSize: 5000}},
		{name: "zero page", req: Request{Page: 0, PageSize: 10}, field: "page"},
		{name: "negative page", req: Request{Page: -2, PageSize: 10}, field: "page"},
		{name: "zero size", req: Request{Page: 1, PageSize: 0}, field: "pageSize"},
		{name: "negative size", req: Request{Page: 1, PageSize: -1}, field: "pageSize"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
				t.Fatalf("want invalid argument, got %v", err)
			}
			e, _ := perr.As(err)
			if e.Field() != tc.field {
				t.Fatalf("field = %q, want %q", e.Field(), tc.field)
			}
		})
	}
}

func TestRequest_Window(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		req    Request
		n      int
		lo, hi int
	}{
		{name: "first page", req: Request{Page: 1, PageSize: 2}, n: 3, lo: 0, hi: 2},
		{name: "partial last page", req: Request{Page: 2, PageSize: 2}, n: 3, lo: 2, hi: 3},
		{name: "past the end", req: Request{Page: 100, PageSize: 10}, n: 3, lo: 3, hi: 3},
		{name: "empty set", req: Request{Page: 1, PageSize: 10}, n: 0, lo: 0, hi: 0},
		{name: "huge page", req: Request{Page: math.MaxInt, PageSize: 1000}, n: 5, lo: 5, hi: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := tc.req.Window(tc.n)
			if lo != tc.lo || hi != tc.hi {
				t.Fatalf("Window(%d) = [%d,%d), want [%d,%d)", tc.n, lo, hi, tc.lo, tc.hi)
			}
		})
	}
}

func TestRequest_OffsetSaturates(t *testing.T) {
	t.Parallel()

	r := Request{Page: math.MaxInt, PageSize: 50}
	if got := r.Offset(); got != math.MaxInt {
		t.Fatalf("Offset = %d, want MaxInt", got)
	}
	if got := (Request{Page: 3, PageSize: 25}).Offset(); got != 50 {
		t.Fatalf("Offset = %d, want 50", got)
	}
}

func TestResult_TotalPages(t *testing.T) {
	t.Parallel()

	r := Result[int]{TotalCount: 7, Page: 3, PageSize: 3}
	if r.TotalPages() != 3 {
		t.Fatalf("TotalPages = %d, want 3", r.TotalPages())
	}
	if r.HasNext() {
		t.Fatal("last page should not report a next page")
	}
	r.Page = 2
	if !r.HasNext() {
		t.Fatal("page 2 of 3 should report a next page")
	}
	if (Result[int]{}).TotalPages() != 0 {
		t.Fatal("zero result should have zero pages")
	}
}
