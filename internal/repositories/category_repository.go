package repositories

import (
	"database/sql"
	"encoding/json"

	intconfig "admindash/internal/config"
	intdb "admindash/internal/db"
	"admindash/internal/domain/models"
	"admindash/internal/listing"
)

// categorySortColumns is the sortBy whitelist for the admin list.
var categorySortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"count":      "count",
	"is_active":  "is_active",
}

// CategoryRepository owns category persistence, including the per-category
// sample file link.
type CategoryRepository struct {
	DB *sql.DB
}

func (r CategoryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns one page of categories with filter/sort applied.
func (r CategoryRepository) List(p listing.Params, f models.CategoryFilters) ([]models.Category, int, error) {
	db := r.db()

	q := &listing.Query{}
	q.Like("c.name", f.Search).Bool("c.is_active", f.IsActive)
	where, args := q.Where()

	base := `
		FROM categories c
		LEFT JOIN category_sample_files sf ON sf.category_id = c.category_id`

	var total int
	if err := db.QueryRow(`SELECT COUNT(*)`+base+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := listing.OrderBy(f.SortBy, f.Order, prefixed(categorySortColumns, "c."), "c.name")

	rows, err := db.Query(`
		SELECT c.category_id,
		       COALESCE(c.name,''),
		       COALESCE(c.slug,''),
		       COALESCE(c.description,''),
		       COALESCE(c.background_image,''),
		       COALESCE(c.stats_items,'[]'),
		       COALESCE(c.faq_items,'[]'),
		       COALESCE(c.page_sections,'{}'),
		       c.is_active,
		       COALESCE(c.count,0),
		       COALESCE(sf.sample_link,''),
		       c.created_at`+base+where+order+`
		LIMIT ? OFFSET ?`, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []models.Category{}
	for rows.Next() {
		var (
			c                   models.Category
			stats, faq, pgsects []byte
		)
		if err := rows.Scan(
			&c.CategoryID, &c.Name, &c.Slug, &c.Description, &c.BackgroundImage,
			&stats, &faq, &pgsects, &c.IsActive, &c.Count, &c.SampleLink, &c.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		c.StatsItems = json.RawMessage(stats)
		c.FAQItems = json.RawMessage(faq)
		c.PageSections = json.RawMessage(pgsects)
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// GetByID fetches one category.
func (r CategoryRepository) GetByID(id int64) (models.Category, error) {
	var (
		c                   models.Category
		stats, faq, pgsects []byte
	)
	err := r.db().QueryRow(`
		SELECT c.category_id,
		       COALESCE(c.name,''),
		       COALESCE(c.slug,''),
		       COALESCE(c.description,''),
		       COALESCE(c.background_image,''),
		       COALESCE(c.stats_items,'[]'),
		       COALESCE(c.faq_items,'[]'),
		       COALESCE(c.page_sections,'{}'),
		       c.is_active,
		       COALESCE(c.count,0),
		       COALESCE(sf.sample_link,''),
		       c.created_at
		FROM categories c
		LEFT JOIN category_sample_files sf ON sf.category_id = c.category_id
		WHERE c.category_id = ?`, id).Scan(
		&c.CategoryID, &c.Name, &c.Slug, &c.Description, &c.BackgroundImage,
		&stats, &faq, &pgsects, &c.IsActive, &c.Count, &c.SampleLink, &c.CreatedAt,
	)
	if err != nil {
		return models.Category{}, err
	}
	c.StatsItems = json.RawMessage(stats)
	c.FAQItems = json.RawMessage(faq)
	c.PageSections = json.RawMessage(pgsects)
	return c, nil
}

// CategoryInput carries the multipart create/update payload after the
// JSON sub-documents have been validated.
type CategoryInput struct {
	Name            string
	Slug            string
	Description     string
	BackgroundImage string
	StatsItems      []byte
	FAQItems        []byte
	PageSections    []byte
}

// Create inserts a category and returns the new id.
func (r CategoryRepository) Create(in CategoryInput) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO categories (name, slug, description, background_image, stats_items, faq_items, page_sections, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, NOW(), NOW())`,
		in.Name, in.Slug, in.Description, intdb.NullIfEmpty(in.BackgroundImage),
		string(in.StatsItems), string(in.FAQItems), string(in.PageSections))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites a category. sql.ErrNoRows when the id is unknown.
// An empty BackgroundImage keeps the stored image.
func (r CategoryRepository) Update(id int64, in CategoryInput) error {
	res, err := r.db().Exec(`
		UPDATE categories
		SET name = ?, slug = ?, description = ?,
		    background_image = COALESCE(?, background_image),
		    stats_items = ?, faq_items = ?, page_sections = ?, updated_at = NOW()
		WHERE category_id = ?`,
		in.Name, in.Slug, in.Description, intdb.NullIfEmpty(in.BackgroundImage),
		string(in.StatsItems), string(in.FAQItems), string(in.PageSections), id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r CategoryRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM categories WHERE category_id = ?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpsertSampleLink stores the category's public sample sheet link.
func (r CategoryRepository) UpsertSampleLink(categoryID int64, link string) error {
	_, err := r.db().Exec(`
		INSERT INTO category_sample_files (category_id, sample_link, created_at, updated_at)
		VALUES (?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE sample_link = VALUES(sample_link), updated_at = NOW()`,
		categoryID, link)
	return err
}

func prefixed(cols map[string]string, prefix string) map[string]string {
	out := make(map[string]string, len(cols))
	for k, v := range cols {
		out[k] = prefix + v
	}
	return out
}
