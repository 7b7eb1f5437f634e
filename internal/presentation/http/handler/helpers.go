package handler

import (
	"github.com/baysidepv/charter-api/internal/domain/enum"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.Role {
	role, exists := c.Get("user_role")
	if !exists {
		return enum.RoleCaptain
	}
	roleStr, ok := role.(string)
	if !ok {
		return enum.RoleCaptain
	}
	return enum.Role(roleStr)
}

// IsAdmin checks if the user carries the admin role
func IsAdmin(c *gin.Context) bool {
	return GetUserRole(c) == enum.RoleAdmin
}
