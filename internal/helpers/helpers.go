package helpers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/staynest/api/internal/media"
	"github.com/staynest/api/internal/models"
)

// ValidateToken verifies a JWT either against the identity provider's
// JWKS endpoint (AUTH_JWKS_URL) or, when none is configured, with the
// shared HMAC secret (JWT_SECRET).
func ValidateToken(tokenStr string) (*CustomClaims, error) {
	jwksURL := os.Getenv("AUTH_JWKS_URL")
	if jwksURL != "" {
		return validateWithJWKS(tokenStr, jwksURL)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("neither AUTH_JWKS_URL nor JWT_SECRET is set")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

func validateWithJWKS(tokenStr, jwksURL string) (*CustomClaims, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx: ctx,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get JWKS: %v", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}

// StatusForError maps domain failures to HTTP statuses: 400 for
// validation/ownership/not-found, 404 for a bad media link, 500 for
// anything unexpected.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrForbidden),
		errors.Is(err, models.ErrDuplicateAddress),
		errors.Is(err, models.ErrSelfBooking),
		errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, media.ErrNoFiles):
		return http.StatusBadRequest
	}

	var fetchErr *media.FetchError
	if errors.As(err, &fetchErr) {
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}
