package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issue signs an HS256 session token. Subject is the login id (studentId
// or username), role is carried as a custom claim. Validation happens in
// the echo-jwt middleware, not here.
func Issue(secret string, loginID string, role string, ttlHours int) (string, error) {
	claims := jwt.MapClaims{
		"sub":  loginID,
		"role": role,
		"exp":  time.Now().Add(time.Duration(ttlHours) * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
