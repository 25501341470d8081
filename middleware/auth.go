package middleware

import (
	"net/http"
	"strings"

	staffRepo "harborview/database/repository/staff"
	"harborview/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthStaffMiddleware authenticates back-office staff by bearer token and
// sets "staffID" in the request context.
func JWTAuthStaffMiddleware(repo staffRepo.StaffRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		id, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		rec, err := repo.GetByID(c.Request.Context(), id)
		if err != nil || rec == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Staff account not found"})
			return
		}

		c.Set("staffID", rec.ID)
		c.Set("staffRole", rec.Role)
		c.Next()
	}
}
