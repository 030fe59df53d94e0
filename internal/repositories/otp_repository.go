package repositories

import (
	"database/sql"
	"strings"
	"time"

	intconfig "admindash/internal/config"
)

// OTPRecord is a pending login challenge. Only the bcrypt hash of the
// code is stored.
type OTPRecord struct {
	ID        int64
	Email     string
	CodeHash  string
	ExpiresAt time.Time
}

// OTPRepository stores one pending OTP per email address.
type OTPRepository struct {
	DB *sql.DB
}

func (r OTPRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Save replaces any pending OTP for the email.
func (r OTPRepository) Save(email, codeHash string, expiresAt time.Time) error {
	_, err := r.db().Exec(`
		INSERT INTO admin_otps (email, code_hash, expires_at, created_at)
		VALUES (?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE code_hash = VALUES(code_hash), expires_at = VALUES(expires_at), created_at = NOW()`,
		strings.ToLower(strings.TrimSpace(email)), codeHash, expiresAt.Format("2006-01-02 15:04:05"))
	return err
}

// Get fetches the pending OTP for an email, if any.
func (r OTPRepository) Get(email string) (OTPRecord, error) {
	var rec OTPRecord
	err := r.db().QueryRow(`
		SELECT id, email, code_hash, expires_at
		FROM admin_otps
		WHERE email = ?`, strings.ToLower(strings.TrimSpace(email))).Scan(
		&rec.ID, &rec.Email, &rec.CodeHash, &rec.ExpiresAt)
	if err != nil {
		return OTPRecord{}, err
	}
	return rec, nil
}

// Consume deletes the pending OTP so a code is single-use.
func (r OTPRepository) Consume(email string) error {
	_, err := r.db().Exec(`DELETE FROM admin_otps WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	return err
}
