package credstore

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ProviderClaims is what the identity provider asserts about a user in the
// exchange token delivered to the callback route.
type ProviderClaims struct {
	Email    string `json:"email"`
	FullName string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"` // optional hint, may be absent
	jwt.RegisteredClaims
}

var ErrBadExchangeCode = errors.New("invalid exchange code")

// exchangeSecret returns the shared secret the provider signs exchange tokens with.
func exchangeSecret() []byte {
	if s := os.Getenv("OAUTH_CLIENT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("devoauthsecret")
}

// ExchangeCode verifies a provider exchange token and returns its claims.
// Any parse, signature, expiry, or missing-email failure maps to
// ErrBadExchangeCode; the callback treats them all the same way.
func ExchangeCode(code string) (*ProviderClaims, error) {
	claims := &ProviderClaims{}
	token, err := jwt.ParseWithClaims(code, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadExchangeCode
		}
		return exchangeSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrBadExchangeCode
	}
	if claims.Email == "" {
		return nil, ErrBadExchangeCode
	}
	return claims, nil
}

// SignExchangeCode builds a provider exchange token. Exists for tests and the
// local fake-provider login used in development.
func SignExchangeCode(claims ProviderClaims) (string, error) {
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(5 * time.Minute))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(exchangeSecret())
}
