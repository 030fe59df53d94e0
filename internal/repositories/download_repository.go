package repositories

import (
	"database/sql"

	intconfig "admindash/internal/config"
	"admindash/internal/domain/models"
	"admindash/internal/listing"
)

// DownloadRepository reads and deletes product sample download events.
type DownloadRepository struct {
	DB *sql.DB
}

func (r DownloadRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func downloadQuery(f models.DownloadFilters) *listing.Query {
	q := &listing.Query{}
	q.Like("user_email", f.UserEmail).
		Like("product_name", f.ProductName).
		Equal("utm_source", f.UTMSource).
		Equal("utm_campaign_id", f.UTMCampaign).
		FromDate("created_at", f.FromDate).
		ToDate("created_at", f.ToDate)
	return q
}

// List returns one page of download events plus the filtered total.
func (r DownloadRepository) List(p listing.Params, f models.DownloadFilters) ([]models.SampleDownload, int, error) {
	db := r.db()
	where, args := downloadQuery(f).Where()

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sample_downloads`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(`
		SELECT id,
		       COALESCE(user_name,''),
		       COALESCE(user_email,''),
		       COALESCE(product_name,''),
		       COALESCE(utm_source,''),
		       COALESCE(utm_medium,''),
		       COALESCE(utm_campaign_id,''),
		       COALESCE(utm_adgroup_id,''),
		       COALESCE(country,''),
		       COALESCE(city,''),
		       COALESCE(sample_link,''),
		       created_at
		FROM sample_downloads`+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.SampleDownload{}
	for rows.Next() {
		var d models.SampleDownload
		if err := rows.Scan(
			&d.ID, &d.UserName, &d.UserEmail, &d.ProductName,
			&d.UTMSource, &d.UTMMedium, &d.UTMCampaignID, &d.UTMAdgroupID,
			&d.Country, &d.City, &d.SampleLink, &d.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// Delete removes one event. sql.ErrNoRows when the id is unknown.
func (r DownloadRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM sample_downloads WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BulkDelete removes a batch of events. The result is aggregate-only:
// callers learn how many deletes succeeded, not which ids failed.
func (r DownloadRepository) BulkDelete(ids []int64) (deleted, failed int) {
	for _, id := range ids {
		if err := r.Delete(id); err != nil {
			failed++
			continue
		}
		deleted++
	}
	return deleted, failed
}

// CategoryDownloadRepository reads and deletes category sample downloads.
// The joined category supplies the display name and the sample link.
type CategoryDownloadRepository struct {
	DB *sql.DB
}

func (r CategoryDownloadRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func categoryDownloadQuery(f models.DownloadFilters) *listing.Query {
	q := &listing.Query{}
	q.Like("d.user_email", f.UserEmail).
		Like("c.name", f.CategoryName).
		Equal("d.utm_source", f.UTMSource).
		Equal("d.utm_campaign_id", f.UTMCampaign).
		FromDate("d.created_at", f.FromDate).
		ToDate("d.created_at", f.ToDate)
	return q
}

// List returns one page of category download events plus the total.
func (r CategoryDownloadRepository) List(p listing.Params, f models.DownloadFilters) ([]models.CategorySampleDownload, int, error) {
	db := r.db()
	where, args := categoryDownloadQuery(f).Where()

	base := `
		FROM category_sample_downloads d
		LEFT JOIN categories c ON c.category_id = d.category_id
		LEFT JOIN category_sample_files sf ON sf.category_id = d.category_id`

	var total int
	if err := db.QueryRow(`SELECT COUNT(*)`+base+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(`
		SELECT d.id,
		       COALESCE(d.user_name,''),
		       COALESCE(d.user_email,''),
		       COALESCE(d.product_name,''),
		       COALESCE(d.category_id,0),
		       COALESCE(c.name,''),
		       COALESCE(d.utm_source,''),
		       COALESCE(d.utm_medium,''),
		       COALESCE(d.utm_campaign_id,''),
		       COALESCE(d.utm_adgroup,''),
		       COALESCE(d.country,''),
		       COALESCE(d.city,''),
		       COALESCE(sf.sample_link,''),
		       d.created_at`+base+where+`
		ORDER BY d.created_at DESC, d.id DESC
		LIMIT ? OFFSET ?`, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.CategorySampleDownload{}
	for rows.Next() {
		var d models.CategorySampleDownload
		if err := rows.Scan(
			&d.ID, &d.UserName, &d.UserEmail, &d.ProductName,
			&d.CategoryID, &d.CategoryName,
			&d.UTMSource, &d.UTMMedium, &d.UTMCampaignID, &d.UTMAdgroupID,
			&d.Country, &d.City, &d.SampleLink, &d.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

func (r CategoryDownloadRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM category_sample_downloads WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
