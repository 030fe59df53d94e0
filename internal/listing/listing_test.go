package listing

import (
	"net/url"
	"testing"
)

func TestParseParamsDefaults(t *testing.T) {
	p := ParseParams(url.Values{})
	if p.Page != 1 || p.Limit != DefaultLimit {
		t.Fatalf("expected page=1 limit=%d, got %+v", DefaultLimit, p)
	}
}

func TestParseParamsClampsGarbage(t *testing.T) {
	p := ParseParams(url.Values{"page": {"-3"}, "limit": {"9999"}})
	if p.Page != 1 {
		t.Fatalf("negative page should clamp to 1, got %d", p.Page)
	}
	if p.Limit != MaxLimit {
		t.Fatalf("oversized limit should clamp to %d, got %d", MaxLimit, p.Limit)
	}

	p = ParseParams(url.Values{"page": {"abc"}, "limit": {"xyz"}})
	if p.Page != 1 || p.Limit != DefaultLimit {
		t.Fatalf("non-numeric input should degrade to defaults, got %+v", p)
	}
}

func TestParseParamsIgnoresUnknownKeys(t *testing.T) {
	p := ParseParams(url.Values{"page": {"3"}, "_t": {"1693526400"}})
	if p.Page != 3 {
		t.Fatalf("cache-breaker param should not break decoding, got %+v", p)
	}
}

func TestParamsOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 20}
	if got := p.Offset(); got != 40 {
		t.Fatalf("expected offset 40, got %d", got)
	}
}

func TestQuerySkipsBlankFilters(t *testing.T) {
	q := &Query{}
	q.Like("name", "  ").Equal("form_type", "").Bool("is_active", "").
		FromDate("created_at", "").ToDate("created_at", "not-a-date")

	where, args := q.Where()
	if where != "" || args != nil {
		t.Fatalf("blank filters should produce no clause, got %q %v", where, args)
	}
}

func TestQueryBuildsConditions(t *testing.T) {
	q := &Query{}
	q.Like("user_email", "a@b.com").
		Equal("utm_source", "google").
		Bool("is_active", "true").
		FromDate("created_at", "2026-01-10").
		ToDate("created_at", "2026-01-10")

	where, args := q.Where()
	want := " WHERE user_email LIKE ? AND utm_source = ? AND is_active = 1 AND created_at >= ? AND created_at < ?"
	if where != want {
		t.Fatalf("clause mismatch:\n got %q\nwant %q", where, want)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %v", args)
	}
	if args[0] != "%a@b.com%" || args[1] != "google" {
		t.Fatalf("unexpected args: %v", args)
	}
	// to_date is exclusive of the next day
	if args[3] != "2026-01-11 00:00:00" {
		t.Fatalf("to_date should be start of next day, got %v", args[3])
	}
}

func TestOrderByWhitelist(t *testing.T) {
	allowed := map[string]string{"name": "c.name", "created_at": "c.created_at"}

	if got := OrderBy("created_at", "desc", allowed, "c.name"); got != " ORDER BY c.created_at DESC" {
		t.Fatalf("unexpected order clause: %q", got)
	}
	if got := OrderBy("password; DROP TABLE", "asc", allowed, "c.name"); got != " ORDER BY c.name ASC" {
		t.Fatalf("unknown sort field should fall back, got %q", got)
	}
	if got := OrderBy("name", "sideways", allowed, "c.name"); got != " ORDER BY c.name ASC" {
		t.Fatalf("unknown direction should normalize to ASC, got %q", got)
	}
}

func TestNewPageInfoNeverBelowOnePage(t *testing.T) {
	info := NewPageInfo(Params{Page: 1, Limit: 20}, 0)
	if info.TotalPages != 1 {
		t.Fatalf("empty result should report 1 page, got %d", info.TotalPages)
	}

	info = NewPageInfo(Params{Page: 2, Limit: 20}, 41)
	if info.TotalPages != 3 {
		t.Fatalf("41 rows at limit 20 is 3 pages, got %d", info.TotalPages)
	}
	if info.Total != 41 || info.Page != 2 || info.Limit != 20 {
		t.Fatalf("unexpected page info: %+v", info)
	}
}

func TestClampPage(t *testing.T) {
	if got := ClampPage(5, 3); got != 3 {
		t.Fatalf("page past the end should clamp to last page, got %d", got)
	}
	if got := ClampPage(2, 3); got != 2 {
		t.Fatalf("in-range page should survive, got %d", got)
	}
	if got := ClampPage(0, 0); got != 1 {
		t.Fatalf("degenerate input should clamp to 1, got %d", got)
	}
}
