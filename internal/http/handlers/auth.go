package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"admindash/internal/domain/models"
	"admindash/internal/http/middleware"
	"admindash/internal/repositories"
	"admindash/internal/services"

	"github.com/gin-gonic/gin"
)

type otpRequest struct {
	Email string `json:"email"`
}

type otpVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// POST /api/admin/request-otp-admin
func RequestOTP(c *gin.Context) {
	var req otpRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if !env.IsAdminEmail(req.Email) {
		// do not reveal which addresses are allow-listed
		RespondError(c, http.StatusUnauthorized, "email is not authorized for admin login", nil)
		return
	}

	svc := services.OTPService{
		Repo:      repositories.OTPRepository{},
		RequestID: middleware.GetRequestID(c),
	}

	code, err := svc.Request(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmail) {
			RespondError(c, http.StatusBadRequest, "invalid email address", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to issue OTP", err)
		return
	}

	// mailer integration pending; the code is only visible in server logs
	log.Printf("[AUTH] OTP for %s: %s", req.Email, code)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent"})
}

// POST /api/admin/verify-otp-admin (legacy alias: /api/verify-otp-admin)
func VerifyOTP(c *gin.Context) {
	var req otpVerifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.OTPService{
		Repo:      repositories.OTPRepository{},
		RequestID: middleware.GetRequestID(c),
	}

	if err := svc.Verify(req.Email, req.OTP); err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			RespondError(c, http.StatusUnauthorized, "invalid or expired OTP", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to verify OTP", err)
		return
	}

	role := models.RoleAdmin
	adminRepo := repositories.AdminRepository{}
	user, err := adminRepo.GetByEmail(req.Email)
	switch {
	case err == nil:
		if user.Role != "" {
			role = user.Role
		}
	case errors.Is(err, sql.ErrNoRows):
		// first login of an allow-listed address: provision the account
		if _, cerr := adminRepo.CreateUser(req.Email); cerr == nil {
			_ = adminRepo.SetRole(req.Email, models.RoleAdmin)
		}
	default:
		RespondError(c, http.StatusInternalServerError, "failed to load user", err)
		return
	}

	if !models.RoleHasAdmin(role) {
		RespondError(c, http.StatusForbidden, "account has no admin access", nil)
		return
	}

	token, err := middleware.NewSessionToken(env.JWTSecret, req.Email, role)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create session", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(env.CookieName, token, int((24 * 60 * 60)), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "login successful",
		"user":    gin.H{"email": req.Email, "role": role},
	})
}

// GET /api/admin/check-auth
func CheckAuth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"email": middleware.UserEmail(c),
			"role":  middleware.UserRole(c),
		},
	})
}

// POST /api/admin/logout
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(env.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}
