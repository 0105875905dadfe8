package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"GradLinkUp-backend/internal/utilities"
)

// NoRole match user that has not selected a role yet
const NoRole = ""

// CheckRole will protect endpoint from user whose profile role is not one of roles.
// Must run after RequireAuth.
func CheckRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
			return
		}

		if !utilities.Contains(roles, user.Role()) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "User doesn't have permission to access",
			})
			return
		}
		ctx.Next()
	}
}
