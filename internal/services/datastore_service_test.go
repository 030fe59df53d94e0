package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"admindash/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCSVToRecords(t *testing.T) {
	csv := "name, city ,leads\nAcme,Berlin,120\nBeta,, 45\n"
	records, err := CSVToRecords(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	var first map[string]string
	if err := json.Unmarshal(records[0], &first); err != nil {
		t.Fatalf("record is not a JSON object: %v", err)
	}
	if first["name"] != "Acme" || first["city"] != "Berlin" || first["leads"] != "120" {
		t.Fatalf("header names should key the record, got %v", first)
	}

	var second map[string]string
	_ = json.Unmarshal(records[1], &second)
	if second["city"] != "" || second["leads"] != "45" {
		t.Fatalf("values should be trimmed, got %v", second)
	}
}

func TestCSVToRecordsEmpty(t *testing.T) {
	if _, err := CSVToRecords(strings.NewReader("")); !errors.Is(err, ErrEmptyCSV) {
		t.Fatalf("empty stream should be ErrEmptyCSV, got %v", err)
	}
	if _, err := CSVToRecords(strings.NewReader("name,city\n")); !errors.Is(err, ErrEmptyCSV) {
		t.Fatalf("header-only stream should be ErrEmptyCSV, got %v", err)
	}
}

func TestImportCSVStoresRowsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO product_data")
	mock.ExpectExec("INSERT INTO product_data").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO product_data").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	svc := DatastoreService{Repo: repositories.DatastoreRepository{DB: db}}
	inserted, err := svc.ImportCSV(3, strings.NewReader("name\nAcme\nBeta\n"))
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", inserted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportCSVRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO product_data")
	mock.ExpectExec("INSERT INTO product_data").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	svc := DatastoreService{Repo: repositories.DatastoreRepository{DB: db}}
	if _, err := svc.ImportCSV(3, strings.NewReader("name\nAcme\n")); err == nil {
		t.Fatal("expected import to fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
