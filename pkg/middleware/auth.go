package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"github.com/indieneer/backend/internal/config"
	"github.com/indieneer/backend/internal/httpx"
)

type contextKey string

const principalKey contextKey = "principal"

// ProfileIDClaim is the custom claim correlating a token to a profile.
const ProfileIDClaim = "https://indieneer.com/profile_id"

// Principal is the verified caller bound to the request context.
type Principal struct {
	Subject   string
	ProfileID string
	Roles     []string
	Claims    jwt.MapClaims
}

// GetPrincipal extracts the verified principal from the context, or nil.
func GetPrincipal(ctx context.Context) *Principal {
	principal, ok := ctx.Value(principalKey).(*Principal)
	if !ok {
		return nil
	}
	return principal
}

// WithPrincipal binds a principal to the context. Exposed for tests and
// for the guess-game handler's optional authentication.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// NewJWKS fetches and caches the provider's signing keys, refreshing in
// the background. Concurrent reads are safe.
func NewJWKS(cfg *config.Config) (*keyfunc.JWKS, error) {
	jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", cfg.Auth0Domain)
	return keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logrus.WithError(err).Warn("JWKS refresh failed")
		},
	})
}

// parseAuthHeader extracts the bearer token from the Authorization header.
func parseAuthHeader(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "authorization_header_missing"
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "invalid_header"
	}
	return parts[1], ""
}

// AuthMiddleware validates the bearer token against the provider's JWKS
// and binds the decoded claims to the request as the principal. Re-entry
// reuses an already bound principal.
func AuthMiddleware(jwks *keyfunc.JWKS, cfg *config.Config) func(http.Handler) http.Handler {
	audience := cfg.Auth0Audience
	issuer := fmt.Sprintf("https://%s/", cfg.Auth0Domain)
	rolesClaim := cfg.Auth0Namespace + "/roles"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetPrincipal(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, code := parseAuthHeader(r)
			if code != "" {
				httpx.WriteError(w, http.StatusUnauthorized, code)
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(
				tokenString,
				claims,
				jwks.Keyfunc,
				jwt.WithValidMethods([]string{"RS256"}),
			)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, classifyTokenError(err))
				return
			}

			if code := verifyRegisteredClaims(claims, audience, issuer); code != "" {
				httpx.WriteError(w, http.StatusUnauthorized, code)
				return
			}

			principal := principalFromClaims(claims, rolesClaim)
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// verifyRegisteredClaims enforces the audience and issuer bindings on an
// already signature-verified token. Both claims are required.
func verifyRegisteredClaims(claims jwt.MapClaims, audience, issuer string) string {
	if !claims.VerifyAudience(audience, true) {
		return "invalid_claims"
	}
	if !claims.VerifyIssuer(issuer, true) {
		return "invalid_claims"
	}
	return ""
}

// classifyTokenError maps verification failures onto the three auth
// error codes the API exposes.
func classifyTokenError(err error) string {
	var validationErr *jwt.ValidationError
	if errors.As(err, &validationErr) {
		switch {
		case validationErr.Errors&jwt.ValidationErrorExpired != 0:
			return "token_expired"
		case validationErr.Errors&(jwt.ValidationErrorAudience|jwt.ValidationErrorIssuer|jwt.ValidationErrorClaimsInvalid) != 0:
			return "invalid_claims"
		}
	}
	return "invalid_header"
}

func principalFromClaims(claims jwt.MapClaims, rolesClaim string) *Principal {
	principal := &Principal{Claims: claims}
	if sub, ok := claims["sub"].(string); ok {
		principal.Subject = sub
	}
	if profileID, ok := claims[ProfileIDClaim].(string); ok {
		principal.ProfileID = profileID
	}
	if rawRoles, ok := claims[rolesClaim].([]interface{}); ok {
		for _, raw := range rawRoles {
			if role, ok := raw.(string); ok {
				principal.Roles = append(principal.Roles, role)
			}
		}
	}
	return principal
}
