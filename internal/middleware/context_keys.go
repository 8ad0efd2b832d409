package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// userEmailKey holds the authenticated user's email, carried from the
// identity token into checkout for payment-customer resolution.
const userEmailKey = contextKey("userEmail")

// userRoleKey holds the authenticated user's role claim.
const userRoleKey = contextKey("userRole")

// RoleAdmin is the role claim value that unlocks the admin review endpoints.
const RoleAdmin = "admin"

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIdVal := c.Request.Context().Value(userIDKey)
		if userIdVal != nil {
			return userIdVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetUserEmailFromContext retrieves the authenticated user's email from the
// Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	emailVal, exists := c.Get(string(userEmailKey))
	if !exists {
		emailVal = c.Request.Context().Value(userEmailKey)
		if emailVal == nil {
			return "", false
		}
	}
	email, ok := emailVal.(string)
	return email, ok && email != ""
}

// GetUserRoleFromContext retrieves the authenticated user's role from the
// Gin context.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	roleVal, exists := c.Get(string(userRoleKey))
	if !exists {
		roleVal = c.Request.Context().Value(userRoleKey)
		if roleVal == nil {
			return "", false
		}
	}
	role, ok := roleVal.(string)
	return role, ok && role != ""
}
