package middleware

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/vannt010391/staff-management/internal/errors"
	"github.com/vannt010391/staff-management/internal/policy"
)

// RequirePolicy gates a route on the role policy table. Denials carry no
// resource detail.
func RequirePolicy(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !policy.Allows(user, action) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
