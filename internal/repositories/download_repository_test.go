package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"admindash/internal/domain/models"
	"admindash/internal/listing"

	"github.com/DATA-DOG/go-sqlmock"
)

func downloadColumns() []string {
	return []string{
		"id", "user_name", "user_email", "product_name",
		"utm_source", "utm_medium", "utm_campaign_id", "utm_adgroup_id",
		"country", "city", "sample_link", "created_at",
	}
}

func TestDownloadListAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sample_downloads WHERE user_email LIKE \? AND utm_source = \?`).
		WithArgs("%a@b.com%", "google").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT id,").
		WithArgs("%a@b.com%", "google", 20, 0).
		WillReturnRows(sqlmock.NewRows(downloadColumns()).
			AddRow(7, "Jane", "a@b.com", "Exhibitor List",
				"google", "cpc", "cmp-1", "adg-9", "DE", "Berlin", "https://files/x.xlsx", created))

	repo := DownloadRepository{DB: db}
	rows, total, err := repo.List(
		listing.Params{Page: 1, Limit: 20},
		models.DownloadFilters{UserEmail: "a@b.com", UTMSource: "google"},
	)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected 1 row, got total=%d rows=%d", total, len(rows))
	}
	if rows[0].UTMAdgroupID != "adg-9" || rows[0].UserEmail != "a@b.com" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDownloadListBlankFiltersAddNoConditions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sample_downloads$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT id,").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(downloadColumns()))

	repo := DownloadRepository{DB: db}
	rows, total, err := repo.List(listing.Params{Page: 1, Limit: 20}, models.DownloadFilters{})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("expected empty result, got total=%d rows=%d", total, len(rows))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDownloadDeleteUnknownID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM sample_downloads").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := DownloadRepository{DB: db}
	if err := repo.Delete(99); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestBulkDeleteAggregatesFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM sample_downloads").
		WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM sample_downloads").
		WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM sample_downloads").
		WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

	repo := DownloadRepository{DB: db}
	deleted, failed := repo.BulkDelete([]int64{1, 2, 3})
	if deleted != 2 || failed != 1 {
		t.Fatalf("expected deleted=2 failed=1, got %d/%d", deleted, failed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
