package repositories

import (
	"database/sql"
	"strings"

	intconfig "admindash/internal/config"
	"admindash/internal/domain/models"
)

// AdminRepository manages dashboard users and their roles.
type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListAdmins returns every user whose role contains the admin component.
func (r AdminRepository) ListAdmins() ([]models.AdminUser, error) {
	rows, err := r.db().Query(`
		SELECT id, email, COALESCE(role,'user'), created_at
		FROM users
		WHERE role = ? OR role = ?
		ORDER BY created_at DESC`, models.RoleAdmin, models.RoleAdminUser)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.AdminUser{}
	for rows.Next() {
		var a models.AdminUser
		if err := rows.Scan(&a.ID, &a.Email, &a.Role, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// GetByEmail fetches one user by address (case-insensitive).
func (r AdminRepository) GetByEmail(email string) (models.AdminUser, error) {
	var a models.AdminUser
	err := r.db().QueryRow(`
		SELECT id, email, COALESCE(role,'user'), created_at
		FROM users
		WHERE LOWER(email) = LOWER(?)`, strings.TrimSpace(email)).Scan(
		&a.ID, &a.Email, &a.Role, &a.CreatedAt)
	if err != nil {
		return models.AdminUser{}, err
	}
	return a, nil
}

// CreateUser inserts a plain user for the given email.
func (r AdminRepository) CreateUser(email string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (email, role, created_at, updated_at)
		VALUES (?, ?, NOW(), NOW())`, strings.TrimSpace(email), models.RoleUser)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SetRole assigns a role by email. sql.ErrNoRows for unknown users.
func (r AdminRepository) SetRole(email, role string) error {
	res, err := r.db().Exec(`
		UPDATE users SET role = ?, updated_at = NOW()
		WHERE LOWER(email) = LOWER(?)`, role, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DemoteAdmin strips the admin component from a user by id, leaving a
// plain user row behind rather than deleting the account.
func (r AdminRepository) DemoteAdmin(id int64) error {
	res, err := r.db().Exec(`
		UPDATE users SET role = ?, updated_at = NOW()
		WHERE id = ? AND (role = ? OR role = ?)`,
		models.RoleUser, id, models.RoleAdmin, models.RoleAdminUser)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
