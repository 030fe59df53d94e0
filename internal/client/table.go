package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
)

// FilterSet is the filter bar state. An empty value means unset and is
// never sent to the API.
type FilterSet map[string]string

// Values renders the set as query parameters, dropping empty entries.
func (f FilterSet) Values() url.Values {
	v := url.Values{}
	for k, val := range f {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// Clone copies the set so table snapshots stay independent.
func (f FilterSet) Clone() FilterSet {
	out := make(FilterSet, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Page is one fetched page of rows.
type Page[T any] struct {
	Rows       []T
	TotalPages int
}

// FetchFunc loads one page of rows for the current filter state.
type FetchFunc[T any] func(ctx context.Context, page, limit int, filters FilterSet) (Page[T], error)

// Table drives a paginated, filterable data table. Every state change
// issues exactly one request. Concurrent requests are serialized by a
// generation counter: only the newest issued request may apply its
// response, stale ones are dropped on arrival.
type Table[T any] struct {
	mu    sync.Mutex
	fetch FetchFunc[T]
	limit int

	filters    FilterSet
	page       int
	totalPages int
	rows       []T
	loading    bool
	err        string

	gen uint64
}

// NewTable builds a controller on page 1 with no filters. Nothing is
// fetched until the first Refresh.
func NewTable[T any](limit int, fetch FetchFunc[T]) *Table[T] {
	if limit <= 0 {
		limit = 20
	}
	return &Table[T]{
		fetch:      fetch,
		limit:      limit,
		filters:    FilterSet{},
		page:       1,
		totalPages: 1,
	}
}

// Rows returns the current page of rows.
func (t *Table[T]) Rows() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows
}

func (t *Table[T]) Page() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

func (t *Table[T]) TotalPages() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalPages
}

func (t *Table[T]) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// Err returns the last fetch error message, empty after a success.
func (t *Table[T]) Err() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Filters returns a copy of the current filter state.
func (t *Table[T]) Filters() FilterSet {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filters.Clone()
}

// Refresh refetches the current page.
func (t *Table[T]) Refresh(ctx context.Context) error {
	t.mu.Lock()
	gen, page, filters := t.issueLocked()
	t.mu.Unlock()
	return t.run(ctx, gen, page, filters)
}

// SetFilter updates one filter and resets to page 1. An empty value
// clears the filter.
func (t *Table[T]) SetFilter(ctx context.Context, key, value string) error {
	t.mu.Lock()
	if value == "" {
		delete(t.filters, key)
	} else {
		t.filters[key] = value
	}
	t.page = 1
	gen, page, filters := t.issueLocked()
	t.mu.Unlock()
	return t.run(ctx, gen, page, filters)
}

// ResetFilters clears every filter and returns to page 1.
func (t *Table[T]) ResetFilters(ctx context.Context) error {
	t.mu.Lock()
	t.filters = FilterSet{}
	t.page = 1
	gen, page, filters := t.issueLocked()
	t.mu.Unlock()
	return t.run(ctx, gen, page, filters)
}

// SetPage moves to page n. Out-of-range pages are rejected without a
// request.
func (t *Table[T]) SetPage(ctx context.Context, n int) error {
	t.mu.Lock()
	if n < 1 || n > t.totalPages {
		t.mu.Unlock()
		return fmt.Errorf("page %d out of range 1..%d", n, t.totalPages)
	}
	t.page = n
	gen, page, filters := t.issueLocked()
	t.mu.Unlock()
	return t.run(ctx, gen, page, filters)
}

// DeleteAndRefresh runs del, then refetches with the page clamped to
// the shrunken page count. Removing the only row of the last page
// shifts back one page before the refetch, so no request ever asks for
// a page past the new count. The delete error passes through untouched.
func (t *Table[T]) DeleteAndRefresh(ctx context.Context, del func(context.Context) error) error {
	if err := del(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	if len(t.rows) == 1 && t.page == t.totalPages && t.page > 1 {
		t.page--
	}
	t.mu.Unlock()

	if err := t.Refresh(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	clamped := t.page > t.totalPages
	if clamped {
		t.page = t.totalPages
	}
	t.mu.Unlock()

	if clamped {
		return t.Refresh(ctx)
	}
	return nil
}

// BulkDeleteAndRefresh runs del and refetches only on full success. A
// partial failure leaves the table untouched so the caller keeps its
// selection for a retry.
func (t *Table[T]) BulkDeleteAndRefresh(ctx context.Context, del func(context.Context) (deleted, failed int, err error)) (int, int, error) {
	deleted, failed, err := del(ctx)
	if err != nil || failed > 0 {
		return deleted, failed, err
	}
	return deleted, failed, t.DeleteAndRefresh(ctx, func(context.Context) error { return nil })
}

// issueLocked stamps a new generation and snapshots the request state.
// Callers must hold t.mu.
func (t *Table[T]) issueLocked() (uint64, int, FilterSet) {
	t.gen++
	t.loading = true
	return t.gen, t.page, t.filters.Clone()
}

func (t *Table[T]) run(ctx context.Context, gen uint64, page int, filters FilterSet) error {
	result, err := t.fetch(ctx, page, t.limit, filters)

	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		// a newer request was issued while this one was in flight
		return nil
	}
	t.loading = false

	if err != nil {
		t.rows = nil
		t.err = err.Error()
		return err
	}

	t.rows = result.Rows
	t.totalPages = result.TotalPages
	if t.totalPages < 1 {
		t.totalPages = 1
	}
	t.err = ""
	return nil
}

func pageQuery(page, limit int, filters FilterSet) url.Values {
	q := filters.Values()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
