package repositories

import (
	"database/sql"

	intconfig "admindash/internal/config"
	"admindash/internal/domain/models"
	"admindash/internal/listing"
	"admindash/internal/utils"
)

// ContactRepository reads and deletes contact form submissions.
type ContactRepository struct {
	DB *sql.DB
}

func (r ContactRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns one page of submissions plus the filtered total. Search
// matches name, email and message text.
func (r ContactRepository) List(p listing.Params, f models.ContactFilters) ([]models.Contact, int, error) {
	db := r.db()

	q := &listing.Query{}
	q.Equal("form_type", f.FormType).
		FromDate("created_at", f.FromDate).
		ToDate("created_at", f.ToDate)
	where, args := q.Where()

	if s := utils.NormalizeSpace(f.Search); s != "" {
		cond := "(name LIKE ? OR email LIKE ? OR message LIKE ?)"
		like := "%" + s + "%"
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
		args = append(args, like, like, like)
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM contacts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(`
		SELECT id,
		       COALESCE(name,''),
		       COALESCE(email,''),
		       COALESCE(phone,''),
		       COALESCE(subject,''),
		       COALESCE(message,''),
		       COALESCE(form_type,''),
		       created_at
		FROM contacts`+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.FormType, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func (r ContactRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
