package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Auth carries the signing secret and token lifetime for issuing and
// verifying session tokens.
type Auth struct {
	Secret []byte
	TTL    time.Duration
}

func NewAuth(secret string, ttl time.Duration) *Auth {
	return &Auth{Secret: []byte(secret), TTL: ttl}
}

// Issue signs a token carrying the user id and effective role.
func (a *Auth) Issue(userID, role string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  userID,
		"role": role,
		"exp":  time.Now().Add(a.TTL).Unix(),
	}).SignedString(a.Secret)
}

// Middleware validates the bearer token, stores uid/role on the context and
// renews tokens that are within a day of expiring.
func (a *Auth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		token, err := jwt.Parse(header[7:], func(t *jwt.Token) (interface{}, error) {
			return a.Secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		uid, _ := claims["uid"].(string)
		role, _ := claims["role"].(string)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("user_id", uid)
		c.Set("role", role)

		if exp, ok := claims["exp"].(float64); ok {
			if time.Until(time.Unix(int64(exp), 0)) < 24*time.Hour {
				if renewed, err := a.Issue(uid, role); err == nil {
					c.Header("X-New-Token", renewed)
				}
			}
		}

		c.Next()
	}
}

// RequireRole guards a route group; any of the given roles passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
