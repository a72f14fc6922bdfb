package authorization

import (
	"github.com/gin-gonic/gin"
)

// RequireRole aborts the request unless the authenticated role matches one of
// the allowed roles. Ownership checks on individual messages stay in the use
// cases; this guard only gates whole route groups.
func RequireRole(roles ...UserRole) gin.HandlerFunc {
	allowed := make(map[UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role, ok := ParseUserRole(c.GetString("user_role"))
		if !ok || !allowed[role] {
			c.JSON(403, gin.H{
				"error": "insufficient role",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// PrincipalFromContext extracts the authenticated principal set by the auth
// middleware. The bool is false when the request never passed authentication.
func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	userID := c.GetUint("user_id")
	role, ok := ParseUserRole(c.GetString("user_role"))
	if userID == 0 || !ok {
		return Principal{}, false
	}
	return Principal{UserID: userID, Role: role}, true
}
