package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indieneer/backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth0Domain:    "indieneer.test",
		Auth0Audience:  "https://api.indieneer.test",
		Auth0Namespace: "https://indieneer.com",
	}
}

func TestParseAuthHeader(t *testing.T) {
	cases := []struct {
		name   string
		header string
		token  string
		code   string
	}{
		{"missing header", "", "", "authorization_header_missing"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", "invalid_header"},
		{"token only", "sometoken", "", "invalid_header"},
		{"too many parts", "Bearer a b", "", "invalid_header"},
		{"valid", "Bearer sometoken", "sometoken", ""},
		{"case insensitive scheme", "bearer sometoken", "sometoken", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			token, code := parseAuthHeader(req)
			assert.Equal(t, tc.token, token)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestVerifyRegisteredClaims(t *testing.T) {
	audience := "https://api.indieneer.test"
	issuer := "https://indieneer.test/"

	valid := jwt.MapClaims{"aud": audience, "iss": issuer}
	assert.Empty(t, verifyRegisteredClaims(valid, audience, issuer))

	listAud := jwt.MapClaims{"aud": []interface{}{audience, "https://other.example"}, "iss": issuer}
	assert.Empty(t, verifyRegisteredClaims(listAud, audience, issuer))

	wrongAudience := jwt.MapClaims{"aud": "https://other.example", "iss": issuer}
	assert.Equal(t, "invalid_claims", verifyRegisteredClaims(wrongAudience, audience, issuer))

	wrongIssuer := jwt.MapClaims{"aud": audience, "iss": "https://evil.example/"}
	assert.Equal(t, "invalid_claims", verifyRegisteredClaims(wrongIssuer, audience, issuer))

	missingAudience := jwt.MapClaims{"iss": issuer}
	assert.Equal(t, "invalid_claims", verifyRegisteredClaims(missingAudience, audience, issuer))

	missingIssuer := jwt.MapClaims{"aud": audience}
	assert.Equal(t, "invalid_claims", verifyRegisteredClaims(missingIssuer, audience, issuer))
}

func TestClassifyTokenError(t *testing.T) {
	assert.Equal(t, "token_expired", classifyTokenError(&jwt.ValidationError{Errors: jwt.ValidationErrorExpired}))
	assert.Equal(t, "invalid_claims", classifyTokenError(&jwt.ValidationError{Errors: jwt.ValidationErrorAudience}))
	assert.Equal(t, "invalid_claims", classifyTokenError(&jwt.ValidationError{Errors: jwt.ValidationErrorIssuer}))
	assert.Equal(t, "invalid_header", classifyTokenError(&jwt.ValidationError{Errors: jwt.ValidationErrorMalformed}))
	assert.Equal(t, "invalid_header", classifyTokenError(assert.AnError))
}

func TestAuthMiddlewareHeaderErrors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})
	handler := AuthMiddleware(nil, testConfig())(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "authorization_header_missing", body["error"])
	})

	t.Run("broken header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "invalid_header", body["error"])
	})
}

func TestAuthMiddlewareReentry(t *testing.T) {
	bound := &Principal{Subject: "auth0|123", ProfileID: "abc"}

	var seen *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetPrincipal(r.Context())
	})
	handler := AuthMiddleware(nil, testConfig())(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithPrincipal(req.Context(), bound))

	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Same(t, bound, seen)
}

func TestPrincipalFromClaims(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":          "auth0|42",
		ProfileIDClaim: "6540f1d2c0ffee0000000001",
		"https://indieneer.com/roles": []interface{}{"User", "Admin"},
	}

	principal := principalFromClaims(claims, "https://indieneer.com/roles")
	assert.Equal(t, "auth0|42", principal.Subject)
	assert.Equal(t, "6540f1d2c0ffee0000000001", principal.ProfileID)
	assert.Equal(t, []string{"User", "Admin"}, principal.Roles)
}

func TestGetPrincipalMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetPrincipal(req.Context()))
}
