package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"admindash/internal/domain/models"
	"admindash/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

// GET /api/admin/admins
func GetAdmins(c *gin.Context) {
	repo := repositories.AdminRepository{}
	admins, err := repo.ListAdmins()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load admins", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "admins": admins})
}

type setRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// POST /api/admin/set-role
func SetRole(c *gin.Context) {
	var req setRoleRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		RespondError(c, http.StatusBadRequest, "email is required", nil)
		return
	}
	if !models.ValidRole(req.Role) {
		RespondError(c, http.StatusBadRequest, "invalid role", nil)
		return
	}

	repo := repositories.AdminRepository{}
	if err := repo.SetRole(req.Email, strings.TrimSpace(req.Role)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// the dashboard matches this literal message to trigger
			// its create-user-then-retry flow
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to set role", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "role updated"})
}

type createUserRequest struct {
	Email string `json:"email"`
}

// POST /api/admin/create-user
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		RespondError(c, http.StatusBadRequest, "email is required", nil)
		return
	}

	repo := repositories.AdminRepository{}
	id, err := repo.CreateUser(req.Email)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			RespondError(c, http.StatusConflict, "email already registered", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

// DELETE /api/admin/remove-admin/:id
func RemoveAdmin(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	repo := repositories.AdminRepository{}
	if err := repo.DemoteAdmin(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "admin not found", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to remove admin", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "admin removed"})
}
