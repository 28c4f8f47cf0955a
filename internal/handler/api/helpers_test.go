//go:build unit

package api_test

import (
	"decor-booking/internal/domain/booking"

	"github.com/gin-gonic/gin"
)

const bearer = "bearer-token"

// fakeAuth stands in for the JWT middleware. Requests carrying an
// Authorization header act as *actor.
func fakeAuth(actor *booking.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", actor.ID)
			c.Set("user_role", actor.Role)
		}
		c.Next()
	}
}
