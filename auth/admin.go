package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lzloop13-dot/LZ-Loop/config"
)

const tokenTTL = 24 * time.Hour

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminLogin exchanges the back-office password for a bearer token. The
// client caches the token in durable storage and clears it on logout; there
// is no server-side session to tear down.
func AdminLogin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.AdminPassword)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
			return
		}

		expiresAt := time.Now().Add(tokenTTL)
		token, err := IssueAdminToken(cfg.JWTSecret, expiresAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access_token": token,
			"token_type":   "bearer",
			"expires_at":   expiresAt,
		})
	}
}

// IssueAdminToken signs a short-lived admin token.
func IssueAdminToken(secret string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
