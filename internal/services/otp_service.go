package services

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"admindash/internal/repositories"
	"admindash/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	otpLength = 6
	otpTTL    = 5 * time.Minute
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidOTP   = errors.New("invalid or expired OTP")

	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRe = regexp.MustCompile(`^[0-9]{6}$`)
)

// OTPService issues and verifies one-time login codes. Codes are stored
// hashed and are single-use; delivery is logged rather than mailed, the
// mailer sits outside this service.
type OTPService struct {
	Repo      repositories.OTPRepository
	RequestID string

	// Now is swappable for expiry tests.
	Now func() time.Time
}

func (s OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Request generates a fresh 6-digit code for the email and stores its
// bcrypt hash with a 5-minute expiry. The plain code is returned so the
// caller can hand it to the mailer.
func (s OTPService) Request(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return "", ErrInvalidEmail
	}

	code, err := generateOTP()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	if err := s.Repo.Save(email, string(hash), s.now().Add(otpTTL)); err != nil {
		return "", err
	}

	utils.LogEvent(s.RequestID, "auth", "otp_issued", "email="+email)
	return code, nil
}

// Verify checks a submitted code against the stored hash. The code is
// consumed on success and on expiry, never on a plain mismatch, so a
// typo does not force a resend.
func (s OTPService) Verify(email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.TrimSpace(code)
	if !digitRe.MatchString(code) {
		return ErrInvalidOTP
	}

	rec, err := s.Repo.Get(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidOTP
		}
		return err
	}

	if s.now().After(rec.ExpiresAt) {
		_ = s.Repo.Consume(email)
		return ErrInvalidOTP
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(code)) != nil {
		return ErrInvalidOTP
	}

	if err := s.Repo.Consume(email); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "auth", "otp_verified", "email="+email)
	return nil
}

func generateOTP() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
