// Admin tokens for the administrative reset endpoint. HS256-signed
// with the configured secret; minted via the `admin token` CLI.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNonValidToken    = errors.New("token did not pass validation")
	ErrInvalidClaimType = errors.New("invalid claim type")
	ErrNotAdminToken    = errors.New("token does not carry the admin role")
)

var tokenSignatureAlg = jwt.SigningMethodHS256

const RoleAdmin = "admin"

// Claim for administrative actions
type AdminClaim struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewAdminClaim creates an admin claim for the given operator name.
// ttl is in minutes.
func NewAdminClaim(subject string, ttl uint) AdminClaim {
	return AdminClaim{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Duration(ttl) * time.Minute)),
		},
	}
}

// Generic JWT token generation function
func GenerateJWT(claims jwt.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(tokenSignatureAlg, claims)
	return token.SignedString([]byte(secret))
}

// DecodeAdminJWT verifies the signature, expiry and admin role.
func DecodeAdminJWT(tokenString string, secret string) (*AdminClaim, error) {
	claims, err := decodeJWT(tokenString, &AdminClaim{}, secret)
	if err != nil {
		return nil, err
	}
	if claims.Role != RoleAdmin {
		return nil, ErrNotAdminToken
	}
	return claims, nil
}

func decodeJWT[T jwt.Claims](tokenString string, claimsType T, secret string) (T, error) {
	var zero T

	parsedToken, err := jwt.ParseWithClaims(tokenString, claimsType, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{tokenSignatureAlg.Alg()}))

	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrNonValidToken, err)
	} else if parsedToken == nil || !parsedToken.Valid {
		return zero, ErrNonValidToken
	} else if claims, ok := parsedToken.Claims.(T); ok {
		return claims, nil
	}

	return zero, ErrInvalidClaimType
}
