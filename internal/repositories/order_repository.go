package repositories

import (
	"database/sql"
	"encoding/json"

	intconfig "admindash/internal/config"
	"admindash/internal/domain/models"
	"admindash/internal/listing"
)

// OrderRepository reads synced storefront orders. line_items and
// meta_data are stored as JSON text and returned untouched.
type OrderRepository struct {
	DB *sql.DB
}

func (r OrderRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns one page of orders, newest first, plus the total.
func (r OrderRepository) List(p listing.Params) ([]models.Order, int, error) {
	db := r.db()

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(`
		SELECT id,
		       COALESCE(order_number,''),
		       COALESCE(customer_name,''),
		       COALESCE(customer_email,''),
		       COALESCE(total,'0'),
		       COALESCE(currency,''),
		       COALESCE(status,''),
		       COALESCE(line_items,'[]'),
		       COALESCE(meta_data,'[]'),
		       COALESCE(leads,''),
		       created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Order{}
	for rows.Next() {
		var (
			o                models.Order
			lineItems, meta  []byte
		)
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail,
			&o.Total, &o.Currency, &o.Status, &lineItems, &meta, &o.Leads, &o.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		o.LineItems = json.RawMessage(lineItems)
		o.MetaData = json.RawMessage(meta)
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// GetByID fetches one order for the invoice export.
func (r OrderRepository) GetByID(id int64) (models.Order, error) {
	var (
		o               models.Order
		lineItems, meta []byte
	)
	err := r.db().QueryRow(`
		SELECT id,
		       COALESCE(order_number,''),
		       COALESCE(customer_name,''),
		       COALESCE(customer_email,''),
		       COALESCE(total,'0'),
		       COALESCE(currency,''),
		       COALESCE(status,''),
		       COALESCE(line_items,'[]'),
		       COALESCE(meta_data,'[]'),
		       COALESCE(leads,''),
		       created_at
		FROM orders
		WHERE id = ?`, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail,
		&o.Total, &o.Currency, &o.Status, &lineItems, &meta, &o.Leads, &o.CreatedAt,
	)
	if err != nil {
		return models.Order{}, err
	}
	o.LineItems = json.RawMessage(lineItems)
	o.MetaData = json.RawMessage(meta)
	return o, nil
}
