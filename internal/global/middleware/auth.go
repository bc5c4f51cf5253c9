package middleware

import (
	"campus-discover/internal/global/database"
	"campus-discover/internal/global/jwt"
	"campus-discover/internal/global/response"
	"campus-discover/internal/model"
	"strings"

	"github.com/gin-gonic/gin"
)

// Auth requires a valid bearer token: 401 when no token is presented,
// 403 when the token is invalid, expired, or its user is gone or
// deactivated. On success the resolved identity is set as "payload".
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := resolveUser(c)
		if err != nil {
			response.Fail(c, err)
			c.Abort()
			return
		}
		c.Set("payload", payload)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity when a valid token is
// presented but lets the request through anonymously otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if payload, err := resolveUser(c); err == nil {
			c.Set("payload", payload)
		}
		c.Next()
	}
}

// RequireRoles gates a route (after Auth) to an allow-list of roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := jwt.GetUserPayload(c)
		if !ok {
			response.Fail(c, response.New(401, "Authentication required"))
			c.Abort()
			return
		}
		for _, role := range roles {
			if payload.Role == role {
				c.Next()
				return
			}
		}
		response.Fail(c, response.ErrPermission)
		c.Abort()
	}
}

// resolveUser re-reads the user row on every request so deactivation
// takes effect on the next call, not at token expiry.
func resolveUser(c *gin.Context) (*jwt.UserPayload, *response.Error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, response.ErrTokenRequired
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, valid := jwt.ParseToken(token)
	if !valid {
		return nil, response.ErrTokenInvalid
	}

	var user model.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil {
		return nil, response.ErrTokenInvalid.WithOrigin(err)
	}
	if !user.IsActive {
		return nil, response.ErrTokenInvalid
	}

	return &jwt.UserPayload{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
