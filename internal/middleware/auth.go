package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig selects how the static bearer credential is checked. With both
// fields empty every request is allowed.
type AuthConfig struct {
	// JWTSecret verifies HS256 bearer tokens, such as a project anon key.
	JWTSecret string
	// APIKeyHash is a bcrypt hash of a static API key.
	APIKeyHash string
}

func (a AuthConfig) enabled() bool {
	return a.JWTSecret != "" || a.APIKeyHash != ""
}

// Auth requires a valid static bearer credential, taken from the
// Authorization header or, failing that, the apikey header.
func Auth(cfg AuthConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.enabled() {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			Unauthorized(c)
			return
		}

		if cfg.APIKeyHash != "" && bcrypt.CompareHashAndPassword([]byte(cfg.APIKeyHash), []byte(token)) == nil {
			c.Next()
			return
		}

		if cfg.JWTSecret != "" {
			err := verifyJWT(token, cfg.JWTSecret)
			if err == nil {
				c.Next()
				return
			}
			logger.Warn("JWT verification failed", zap.Error(err))
		}

		Unauthorized(c)
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		token := strings.TrimPrefix(header, "Bearer ")
		if token != header {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.GetHeader("apikey"))
}

func verifyJWT(tokenString, secret string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}
