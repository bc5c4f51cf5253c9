package jwt

import (
	"campus-discover/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed token payload. Only the user id goes into the
// token; email, role and the active flag are re-read from the store on
// every request so deactivation takes effect immediately.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// UserPayload is the resolved caller identity attached to the request
// context after a successful token check.
type UserPayload struct {
	ID    uint
	Email string
	Role  string
}

// CreateToken signs a token for the user, expiring per config
// (7 days by default).
func CreateToken(userID uint) string {
	cfg := config.Get()
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.JWT.AccessExpire) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWT.AccessSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.Get().JWT.AccessSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
