package access

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Extractor pulls caller credentials out of an incoming request.
// It never rejects: missing credentials simply leave fields empty and the
// oracle decides what an anonymous caller may do.
type Extractor struct {
	// CookieName is the session cookie to read, e.g. "express_sid".
	CookieName string

	// JWTSecret, when set, enables local verification of bearer tokens.
	// A verified token's subject claim becomes the resolved user id passed
	// to the oracle alongside the raw token.
	JWTSecret string
}

// FromRequest extracts whatever credentials are present on the request.
func (e Extractor) FromRequest(r *http.Request) Credentials {
	var creds Credentials

	if e.CookieName != "" {
		if c, err := r.Cookie(e.CookieName); err == nil && c.Value != "" {
			creds.SessionID = c.Value
		}
	}

	if token := bearerToken(r); token != "" {
		creds.Token = token
		if e.JWTSecret != "" {
			creds.UserID = e.verifiedSubject(token)
		}
	}

	return creds
}

// bearerToken returns the token from an "Authorization: Bearer" header,
// or empty when absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// verifiedSubject parses and verifies an HMAC-signed JWT, returning its
// subject claim. Verification failure yields an empty subject; the raw
// token still reaches the oracle, which remains the authority.
func (e Extractor) verifiedSubject(token string) string {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(e.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return ""
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
