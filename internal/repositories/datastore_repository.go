package repositories

import (
	"database/sql"
	"encoding/json"
	"time"

	intconfig "admindash/internal/config"
)

// Product is an uploadable product as shown in the upload picker.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// DataRow is one uploaded datastore row. Fields holds the original CSV
// or JSON record as a JSON object.
type DataRow struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	BatchID   string          `json:"batch_id"`
	Fields    json.RawMessage `json:"fields"`
	CreatedAt time.Time       `json:"createdAt"`
}

// DatastoreRepository persists uploaded product data rows.
type DatastoreRepository struct {
	DB *sql.DB
}

func (r DatastoreRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListProducts returns every product, newest first.
func (r DatastoreRepository) ListProducts() ([]Product, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(name,''), COALESCE(slug,''), created_at
		FROM products
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// InsertRows stores a batch of records for a product inside one
// transaction so a half-failed upload leaves nothing behind.
func (r DatastoreRepository) InsertRows(productID int64, batchID string, records []json.RawMessage) (int, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO product_data (product_id, batch_id, fields, created_at)
		VALUES (?, ?, ?, NOW())`)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		if _, err := stmt.Exec(productID, batchID, string(rec)); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// ListRows returns every stored row for a product, newest batch first.
func (r DatastoreRepository) ListRows(productID int64) ([]DataRow, error) {
	rows, err := r.db().Query(`
		SELECT id, product_id, COALESCE(batch_id,''), COALESCE(fields,'{}'), created_at
		FROM product_data
		WHERE product_id = ?
		ORDER BY created_at DESC, id DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []DataRow{}
	for rows.Next() {
		var (
			d      DataRow
			fields []byte
		)
		if err := rows.Scan(&d.ID, &d.ProductID, &d.BatchID, &fields, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Fields = json.RawMessage(fields)
		list = append(list, d)
	}
	return list, rows.Err()
}
