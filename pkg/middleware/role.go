package middleware

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/indieneer/backend/internal/httpx"
)

// RequireRole admits the request only when the principal's roles claim
// contains the given role (case-insensitive). A missing principal is a
// middleware-order misconfiguration and surfaces as 500.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r.Context())
			if principal == nil {
				logrus.Error("RequireRole invoked without a decoded principal")
				httpx.WriteError(w, http.StatusInternalServerError, "missing decoded user")
				return
			}

			for _, have := range principal.Roles {
				if strings.EqualFold(have, role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			logrus.WithFields(logrus.Fields{
				"subject": principal.Subject,
				"role":    role,
			}).Warn("Role check failed")
			httpx.WriteError(w, http.StatusForbidden, "no permission")
		})
	}
}
