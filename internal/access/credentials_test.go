package access

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, secret, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return s
}

func TestFromRequestEmpty(t *testing.T) {
	t.Parallel()

	e := Extractor{CookieName: "express_sid"}
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	creds := e.FromRequest(r)
	require.Equal(t, Credentials{}, creds)
}

func TestFromRequestSessionCookie(t *testing.T) {
	t.Parallel()

	e := Extractor{CookieName: "express_sid"}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "express_sid", Value: "sess-123"})
	r.AddCookie(&http.Cookie{Name: "other", Value: "ignored"})

	creds := e.FromRequest(r)
	require.Equal(t, "sess-123", creds.SessionID)
	require.Empty(t, creds.Token)
}

func TestFromRequestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"well formed", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"case insensitive scheme", "bearer tok", "tok"},
		{"wrong scheme", "Basic dXNlcg==", ""},
		{"missing token", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := Extractor{}
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", tt.header)

			require.Equal(t, tt.want, e.FromRequest(r).Token)
		})
	}
}

func TestFromRequestVerifiedSubject(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"

	t.Run("valid token resolves user id", func(t *testing.T) {
		t.Parallel()

		e := Extractor{JWTSecret: secret}
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+signedToken(t, secret, "user-42"))

		creds := e.FromRequest(r)
		require.Equal(t, "user-42", creds.UserID)
		require.NotEmpty(t, creds.Token)
	})

	t.Run("wrong secret leaves user id empty", func(t *testing.T) {
		t.Parallel()

		e := Extractor{JWTSecret: secret}
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", "user-42"))

		creds := e.FromRequest(r)
		require.Empty(t, creds.UserID)
		// The raw token still reaches the oracle.
		require.NotEmpty(t, creds.Token)
	})

	t.Run("no secret configured skips verification", func(t *testing.T) {
		t.Parallel()

		e := Extractor{}
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+signedToken(t, secret, "user-42"))

		creds := e.FromRequest(r)
		require.Empty(t, creds.UserID)
		require.NotEmpty(t, creds.Token)
	})
}
