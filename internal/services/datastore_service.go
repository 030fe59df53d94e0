package services

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"admindash/internal/repositories"
	"admindash/internal/utils"

	"github.com/google/uuid"
)

var ErrEmptyCSV = errors.New("csv file has no data rows")

// DatastoreService turns uploaded CSV/JSON product data into stored
// rows. Every upload gets one batch id so a bad import can be traced.
type DatastoreService struct {
	Repo      repositories.DatastoreRepository
	RequestID string
}

// ImportCSV parses a CSV stream (header row required) and stores each
// record as a JSON object keyed by the header names.
func (s DatastoreService) ImportCSV(productID int64, r io.Reader) (int, error) {
	records, err := CSVToRecords(r)
	if err != nil {
		return 0, err
	}
	return s.store(productID, records)
}

// ImportJSON stores an already-parsed array of JSON objects.
func (s DatastoreService) ImportJSON(productID int64, data []json.RawMessage) (int, error) {
	if len(data) == 0 {
		return 0, errors.New("data array is empty")
	}
	return s.store(productID, data)
}

func (s DatastoreService) store(productID int64, records []json.RawMessage) (int, error) {
	batchID := uuid.NewString()
	inserted, err := s.Repo.InsertRows(productID, batchID, records)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "datastore", "import",
		fmt.Sprintf("product_id=%d batch_id=%s inserted=%d", productID, batchID, inserted))
	return inserted, nil
}

// CSVToRecords converts a CSV stream into JSON objects, one per data
// row, using the header row for field names. Pure with respect to its
// input so imports stay testable.
func CSVToRecords(r io.Reader) ([]json.RawMessage, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCSV
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := []json.RawMessage{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(records)+2, err)
		}

		obj := map[string]string{}
		for i, v := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			obj[header[i]] = strings.TrimSpace(v)
		}

		encoded, err := json.Marshal(obj)
		if err != nil {
			return nil, err
		}
		records = append(records, encoded)
	}

	if len(records) == 0 {
		return nil, ErrEmptyCSV
	}
	return records, nil
}
