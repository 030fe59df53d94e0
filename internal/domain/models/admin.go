package models

import (
	"strings"
	"time"
)

// Valid role values. "admin,user" is a legacy compound value the
// dashboard still sends; it is stored verbatim, not split.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleAdminUser = "admin,user"
)

// AdminUser is a dashboard user with an assigned role.
type AdminUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidRole reports whether role is one of the accepted values.
func ValidRole(role string) bool {
	switch strings.TrimSpace(role) {
	case RoleUser, RoleAdmin, RoleAdminUser:
		return true
	}
	return false
}

// RoleHasAdmin reports whether the (possibly compound) role string
// contains the admin component.
func RoleHasAdmin(role string) bool {
	for _, part := range strings.Split(role, ",") {
		if strings.EqualFold(strings.TrimSpace(part), RoleAdmin) {
			return true
		}
	}
	return false
}
