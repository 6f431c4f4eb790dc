package cartControllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "cart_session"

// 30 days, matching how long an abandoned cart is worth keeping around.
const sessionMaxAge = 30 * 24 * 60 * 60

// SessionID returns the shopper's cart session id, issuing a fresh one via
// cookie on first contact. The id is the sole owner key of the cart resource.
func SessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
	return id
}
