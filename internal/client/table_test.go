package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func staticFetch(rows []string, totalPages int) FetchFunc[string] {
	return func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		return Page[string]{Rows: rows, TotalPages: totalPages}, nil
	}
}

func TestTableIssuesOneRequestPerStateChange(t *testing.T) {
	var calls int
	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		calls++
		return Page[string]{Rows: []string{"row"}, TotalPages: 3}, nil
	})

	ctx := context.Background()
	if err := table.Refresh(ctx); err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if err := table.SetFilter(ctx, "utm_source", "google"); err != nil {
		t.Fatalf("set filter error: %v", err)
	}
	if err := table.SetPage(ctx, 2); err != nil {
		t.Fatalf("set page error: %v", err)
	}
	if err := table.ResetFilters(ctx); err != nil {
		t.Fatalf("reset error: %v", err)
	}

	if calls != 4 {
		t.Fatalf("expected exactly 4 requests, got %d", calls)
	}
}

func TestSetFilterResetsToPageOne(t *testing.T) {
	var lastPage int
	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		lastPage = page
		return Page[string]{TotalPages: 5}, nil
	})

	ctx := context.Background()
	_ = table.Refresh(ctx)
	_ = table.SetPage(ctx, 4)
	if lastPage != 4 {
		t.Fatalf("expected fetch at page 4, got %d", lastPage)
	}

	_ = table.SetFilter(ctx, "user_email", "a@b.com")
	if lastPage != 1 {
		t.Fatalf("changing a filter should refetch page 1, got %d", lastPage)
	}
	if table.Page() != 1 {
		t.Fatalf("table should sit on page 1, got %d", table.Page())
	}
}

func TestResetFiltersClearsEverything(t *testing.T) {
	var lastFilters FilterSet
	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		lastFilters = filters
		return Page[string]{TotalPages: 5}, nil
	})

	ctx := context.Background()
	_ = table.SetFilter(ctx, "utm_source", "google")
	_ = table.SetFilter(ctx, "user_email", "a@b.com")
	_ = table.SetPage(ctx, 3)
	_ = table.ResetFilters(ctx)

	if len(lastFilters) != 0 {
		t.Fatalf("reset should fetch with no filters, got %v", lastFilters)
	}
	if table.Page() != 1 {
		t.Fatalf("reset should return to page 1, got %d", table.Page())
	}
}

func TestSetPageRejectsOutOfRange(t *testing.T) {
	var calls int
	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		calls++
		return Page[string]{TotalPages: 3}, nil
	})

	ctx := context.Background()
	_ = table.Refresh(ctx)

	if err := table.SetPage(ctx, 0); err == nil {
		t.Fatal("page 0 should be rejected")
	}
	if err := table.SetPage(ctx, 4); err == nil {
		t.Fatal("page past the end should be rejected")
	}
	if calls != 1 {
		t.Fatalf("rejected pages must not issue requests, got %d calls", calls)
	}
}

func TestStaleResponseIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		if filters["which"] == "slow" {
			close(started)
			<-release
			return Page[string]{Rows: []string{"stale"}, TotalPages: 9}, nil
		}
		return Page[string]{Rows: []string{"fresh"}, TotalPages: 2}, nil
	})

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(1)

	table.mu.Lock()
	table.filters["which"] = "slow"
	table.mu.Unlock()
	go func() {
		defer wg.Done()
		_ = table.Refresh(ctx)
	}()

	// wait for the slow request to be in flight, then supersede it
	<-started
	if err := table.SetFilter(ctx, "which", "fast"); err != nil {
		t.Fatalf("superseding fetch error: %v", err)
	}

	close(release)
	wg.Wait()

	rows := table.Rows()
	if len(rows) != 1 || rows[0] != "fresh" {
		t.Fatalf("stale response must not overwrite the newer one, got %v", rows)
	}
	if table.TotalPages() != 2 {
		t.Fatalf("stale totalPages applied: %d", table.TotalPages())
	}
}

func TestFetchErrorClearsRows(t *testing.T) {
	fail := false
	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		if fail {
			return Page[string]{}, errors.New("backend unavailable")
		}
		return Page[string]{Rows: []string{"a", "b"}, TotalPages: 1}, nil
	})

	ctx := context.Background()
	_ = table.Refresh(ctx)
	if len(table.Rows()) != 2 {
		t.Fatalf("seed fetch failed: %v", table.Rows())
	}

	fail = true
	if err := table.Refresh(ctx); err == nil {
		t.Fatal("expected fetch error")
	}
	if len(table.Rows()) != 0 {
		t.Fatalf("error should clear rows, got %v", table.Rows())
	}
	if table.Err() == "" {
		t.Fatal("error message should be exposed")
	}

	fail = false
	_ = table.Refresh(ctx)
	if table.Err() != "" {
		t.Fatalf("success should clear the error, got %q", table.Err())
	}
}

func TestTotalPagesDefaultsToOne(t *testing.T) {
	table := NewTable(20, staticFetch(nil, 0))
	_ = table.Refresh(context.Background())
	if table.TotalPages() != 1 {
		t.Fatalf("zero totalPages should normalize to 1, got %d", table.TotalPages())
	}
}

func TestDeleteAndRefreshClampsPage(t *testing.T) {
	// three pages shrink to two after the delete
	totalPages := 3
	var fetchedPages []int
	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		fetchedPages = append(fetchedPages, page)
		return Page[string]{TotalPages: totalPages}, nil
	})

	ctx := context.Background()
	_ = table.Refresh(ctx)
	_ = table.SetPage(ctx, 3)

	totalPages = 2
	err := table.DeleteAndRefresh(ctx, func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}

	if table.Page() != 2 {
		t.Fatalf("page should clamp to the new last page, got %d", table.Page())
	}
	last := fetchedPages[len(fetchedPages)-1]
	if last != 2 {
		t.Fatalf("final refetch should hit the clamped page, got %d", last)
	}
}

func TestDeleteLastRowShiftsBackBeforeRefetch(t *testing.T) {
	// page 3 holds a single row; deleting it leaves two pages
	totalPages := 3
	var fetchedPages []int
	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		fetchedPages = append(fetchedPages, page)
		rows := []string{"a", "b"}
		if page == 3 {
			rows = []string{"last"}
		}
		return Page[string]{Rows: rows, TotalPages: totalPages}, nil
	})

	ctx := context.Background()
	_ = table.Refresh(ctx)
	_ = table.SetPage(ctx, 3)
	before := len(fetchedPages)

	totalPages = 2
	err := table.DeleteAndRefresh(ctx, func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}

	if table.Page() != 2 {
		t.Fatalf("page should land on the new last page, got %d", table.Page())
	}
	after := fetchedPages[before:]
	if len(after) != 1 || after[0] != 2 {
		t.Fatalf("refetch must be a single request for the shifted page, got %v", after)
	}
}

func TestDeleteAndRefreshPropagatesDeleteError(t *testing.T) {
	var calls int
	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		calls++
		return Page[string]{TotalPages: 1}, nil
	})

	wantErr := errors.New("delete failed")
	err := table.DeleteAndRefresh(context.Background(), func(context.Context) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected delete error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("failed delete must not refetch, got %d calls", calls)
	}
}

func TestBulkDeleteFailureSkipsRefetch(t *testing.T) {
	var calls int
	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		calls++
		return Page[string]{TotalPages: 1}, nil
	})

	deleted, failed, err := table.BulkDeleteAndRefresh(context.Background(),
		func(context.Context) (int, int, error) { return 2, 1, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 2 || failed != 1 {
		t.Fatalf("aggregate counts lost: %d/%d", deleted, failed)
	}
	if calls != 0 {
		t.Fatalf("partial failure must not refetch, got %d calls", calls)
	}

	// full success refetches once
	deleted, failed, err = table.BulkDeleteAndRefresh(context.Background(),
		func(context.Context) (int, int, error) { return 3, 0, nil })
	if err != nil || deleted != 3 || failed != 0 {
		t.Fatalf("unexpected result: %d/%d %v", deleted, failed, err)
	}
	if calls != 1 {
		t.Fatalf("full success should refetch exactly once, got %d calls", calls)
	}
}

func TestFetchCancellation(t *testing.T) {
	table := NewTable(20, func(ctx context.Context, page, limit int, filters FilterSet) (Page[string], error) {
		return Page[string]{}, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := table.Refresh(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSampleDownloadsWireFormat(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"success": true,
			"data": {
				"downloads": [{
					"id": 7,
					"user_email": "a@b.com",
					"product_name": "Exhibitor List",
					"adgroup_id": "adg-9",
					"sample_link": "https://files/x.xlsx",
					"createdAt": "2026-07-01 09:30:00"
				}],
				"totalPages": 4,
				"page": 1
			}
		}`)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("client init error: %v", err)
	}

	table := NewTable(20, c.SampleDownloads)
	if err := table.SetFilter(context.Background(), "user_email", "a@b.com"); err != nil {
		t.Fatalf("fetch error: %v", err)
	}

	if gotQuery != "limit=20&page=1&user_email=a%40b.com" {
		t.Fatalf("unexpected query string %q", gotQuery)
	}

	rows := table.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].AdgroupID != "adg-9" {
		t.Fatalf("adgroup_id not mapped: %+v", rows[0])
	}
	if rows[0].CreatedAt != "2026-07-01 09:30:00" {
		t.Fatalf("createdAt not mapped: %+v", rows[0])
	}
	if rows[0].UserName != "-" || rows[0].Country != "-" {
		t.Fatalf("blank fields should render as dashes: %+v", rows[0])
	}
	if table.TotalPages() != 4 {
		t.Fatalf("totalPages not applied: %d", table.TotalPages())
	}
}

func TestCategoryDownloadsNormalizeNestedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"success": true,
			"data": [{
				"id": 3,
				"user_email": "a@b.com",
				"utm_adgroup": "adg-2",
				"Category": {"name": "Trade Shows"},
				"CategorySampleFile": {"sample_link": "https://files/c.xlsx"},
				"createdAt": "2026-07-02 10:00:00"
			}],
			"pagination": {"page": 1, "limit": 20, "total": 1, "totalPages": 1}
		}`)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("client init error: %v", err)
	}

	page, err := c.CategorySampleDownloads(context.Background(), 1, 20, nil)
	if err != nil {
		t.Fatalf("fetch error: %v", err)
	}
	if len(page.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(page.Rows))
	}
	row := page.Rows[0]
	if row.AdgroupID != "adg-2" {
		t.Fatalf("utm_adgroup should normalize to AdgroupID: %+v", row)
	}
	if row.Category != "Trade Shows" || row.SampleLink != "https://files/c.xlsx" {
		t.Fatalf("nested fields not flattened: %+v", row)
	}
}
