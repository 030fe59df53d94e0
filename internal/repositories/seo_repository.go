package repositories

import (
	"database/sql"
	"encoding/json"

	intconfig "admindash/internal/config"
	intdb "admindash/internal/db"
	"admindash/internal/domain/models"
)

// SEORepository persists per-entity SEO metadata.
type SEORepository struct {
	DB *sql.DB
}

func (r SEORepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const seoColumns = `
	seo_id, entity_type, entity_id,
	COALESCE(slug,''), COALESCE(seo_title,''), COALESCE(seo_description,''),
	COALESCE(seo_keywords,''), COALESCE(canonical_url,''), COALESCE(meta_robots,''),
	COALESCE(og_title,''), COALESCE(og_description,''), COALESCE(og_image,''),
	COALESCE(schema_json,'null'), created_at, updated_at`

func scanSEO(row *sql.Row) (models.SEOMeta, error) {
	var (
		s      models.SEOMeta
		schema []byte
	)
	err := row.Scan(
		&s.SEOID, &s.EntityType, &s.EntityID,
		&s.Slug, &s.SEOTitle, &s.SEODescription,
		&s.SEOKeywords, &s.CanonicalURL, &s.MetaRobots,
		&s.OGTitle, &s.OGDescription, &s.OGImage,
		&schema, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return models.SEOMeta{}, err
	}
	s.SchemaJSON = json.RawMessage(schema)
	return s, nil
}

// GetByEntity fetches the SEO record for (entity_type, entity_id).
func (r SEORepository) GetByEntity(entityType string, entityID int64) (models.SEOMeta, error) {
	return scanSEO(r.db().QueryRow(`
		SELECT`+seoColumns+`
		FROM seo_meta
		WHERE entity_type = ? AND entity_id = ?`, entityType, entityID))
}

// GetByID fetches one SEO record.
func (r SEORepository) GetByID(id int64) (models.SEOMeta, error) {
	return scanSEO(r.db().QueryRow(`
		SELECT`+seoColumns+`
		FROM seo_meta
		WHERE seo_id = ?`, id))
}

// Create inserts an SEO record and returns the new seo_id.
func (r SEORepository) Create(s models.SEOMeta) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO seo_meta (entity_type, entity_id, slug, seo_title, seo_description,
		                      seo_keywords, canonical_url, meta_robots, og_title,
		                      og_description, og_image, schema_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		s.EntityType, s.EntityID, s.Slug, s.SEOTitle, s.SEODescription,
		s.SEOKeywords, s.CanonicalURL, s.MetaRobots, s.OGTitle,
		s.OGDescription, s.OGImage, schemaOrNull(s.SchemaJSON))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites an SEO record. sql.ErrNoRows for unknown ids.
func (r SEORepository) Update(id int64, s models.SEOMeta) error {
	res, err := r.db().Exec(`
		UPDATE seo_meta
		SET slug = ?, seo_title = ?, seo_description = ?, seo_keywords = ?,
		    canonical_url = ?, meta_robots = ?, og_title = ?, og_description = ?,
		    og_image = ?, schema_json = ?, updated_at = NOW()
		WHERE seo_id = ?`,
		s.Slug, s.SEOTitle, s.SEODescription, s.SEOKeywords,
		s.CanonicalURL, s.MetaRobots, s.OGTitle, s.OGDescription,
		s.OGImage, schemaOrNull(s.SchemaJSON), id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func schemaOrNull(raw json.RawMessage) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return intdb.NullIfEmpty(string(raw))
}
