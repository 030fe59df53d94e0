package config

import (
	"log"
	"os"
	"strings"

	"github.com/creasty/defaults"
)

type Env struct {
	AppAddr       string `default:":8080"`
	GinMode       string
	MySQLDSN      string `default:"root:@tcp(127.0.0.1:3306)/admin_dashboard?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"`
	JWTSecret     string `default:"super-secret-key-change-me"`
	CookieName    string `default:"admin_session"`
	CloudinaryURL string
	AdminEmails   []string
	CORSOrigins   []string
}

// LoadEnv reads configuration from the environment, falling back to defaults.
func LoadEnv() Env {
	var env Env
	if err := defaults.Set(&env); err != nil {
		log.Printf("warning: could not apply config defaults: %v", err)
	}

	if v := strings.TrimSpace(os.Getenv("APP_ADDR")); v != "" {
		env.AppAddr = v
	}
	env.GinMode = strings.TrimSpace(os.Getenv("GIN_MODE"))
	if v := strings.TrimSpace(os.Getenv("MYSQL_DSN")); v != "" {
		env.MySQLDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		env.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_COOKIE")); v != "" {
		env.CookieName = v
	}
	env.CloudinaryURL = strings.TrimSpace(os.Getenv("CLOUDINARY_URL"))
	env.AdminEmails = splitList(os.Getenv("ADMIN_EMAILS"))
	env.CORSOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	return env
}

// IsAdminEmail reports whether email may request an OTP login.
// An empty allow-list means every known user may log in (dev setups).
func (e Env) IsAdminEmail(email string) bool {
	if len(e.AdminEmails) == 0 {
		return true
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range e.AdminEmails {
		if strings.ToLower(a) == email {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
