package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/internal/domain/enum"
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

// GetUsername extracts the username from the Gin context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get("username")
	if !exists {
		return ""
	}
	return username.(string)
}

// GetFullName extracts the user's full name from the Gin context
func GetFullName(c *gin.Context) string {
	fullName, exists := c.Get("full_name")
	if !exists {
		return ""
	}
	return fullName.(string)
}

// GetUserRole extracts the user's role from the Gin context
func GetUserRole(c *gin.Context) enum.Role {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	role, ok := roleVal.(enum.Role)
	if !ok {
		return ""
	}
	return role
}

// IsManager checks if the authenticated user holds the manager role
func IsManager(c *gin.Context) bool {
	return GetUserRole(c) == enum.RoleManager
}
