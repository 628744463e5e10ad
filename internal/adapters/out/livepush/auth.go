package livepush

import (
	"fmt"

	"bazaarlink/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the access token. The hub only verifies tokens, it never
// issues them.
const (
	RoleCustomer      = "CUSTOMER"
	RoleVendor        = "VENDOR"
	RoleDeliveryAgent = "DELIVERY_AGENT"
	RoleAdmin         = "ADMIN"
)

type identity struct {
	userID kernel.UUID
	role   string
}

// verifyToken checks the HMAC signature and extracts the caller's identity
// from the userId and role claims.
func verifyToken(tokenString string, secret []byte) (identity, error) {
	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return identity{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return identity{}, fmt.Errorf("token is not valid")
	}

	rawUserID, ok := claims["userId"].(string)
	if !ok {
		return identity{}, fmt.Errorf("token has no userId claim")
	}
	userID, err := kernel.UUIDFromString(rawUserID)
	if err != nil {
		return identity{}, fmt.Errorf("token userId claim: %w", err)
	}

	role, ok := claims["role"].(string)
	if !ok {
		return identity{}, fmt.Errorf("token has no role claim")
	}

	return identity{userID: userID, role: role}, nil
}
