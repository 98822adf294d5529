package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/indieneer/backend/pkg/logger"
)

// maxLoggedBody caps captured request/response bodies at 64 KiB.
const maxLoggedBody = 64 * 1024

// LoggingOptions tunes the request logging middleware.
type LoggingOptions struct {
	// RequestID generates a v4 UUID per request, sets the X-Request-Id
	// response header and records it as request.id.
	RequestID bool
	// LogBodies captures request and response bodies.
	LogBodies bool
	// CustomAttributes are merged into every logged line.
	CustomAttributes map[string]interface{}
}

// responseRecorder captures status, size and (optionally) body of the
// downstream response.
type responseRecorder struct {
	http.ResponseWriter
	status  int
	length  int
	body    *bytes.Buffer
	capture bool
}

func (rec *responseRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *responseRecorder) Write(b []byte) (int, error) {
	rec.length += len(b)
	if rec.capture && rec.body.Len() < maxLoggedBody {
		remaining := maxLoggedBody - rec.body.Len()
		if remaining > len(b) {
			remaining = len(b)
		}
		rec.body.Write(b[:remaining])
	}
	return rec.ResponseWriter.Write(b)
}

// LoggingMiddleware emits one line per request with its attributes. The
// line level follows the response class: WARN for 4xx, ERROR for 5xx,
// INFO otherwise.
func LoggingMiddleware(opts LoggingOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startedAt := time.Now().UTC()

			fields := logrus.Fields{
				"request.method":     r.Method,
				"request.path":       r.URL.Path,
				"request.user_agent": r.UserAgent(),
				"request.ip":         clientIP(r),
				"request.started_at": startedAt.Format(time.RFC3339),
			}
			for k, v := range opts.CustomAttributes {
				fields[k] = v
			}

			if opts.RequestID {
				requestID := uuid.NewString()
				w.Header().Set("X-Request-Id", requestID)
				fields["request.id"] = requestID
			}

			var requestBody []byte
			if opts.LogBodies && r.Body != nil {
				requestBody, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewReader(requestBody))
				fields["request.length"] = len(requestBody)
				fields["request.body"] = formatBody(requestBody)
			}

			rec := &responseRecorder{
				ResponseWriter: w,
				status:         http.StatusOK,
				body:           &bytes.Buffer{},
				capture:        opts.LogBodies,
			}

			next.ServeHTTP(rec, r)

			finishedAt := time.Now().UTC()
			fields["request.finished_at"] = finishedAt.Format(time.RFC3339)
			fields["response.latency"] = finishedAt.Sub(startedAt).Milliseconds()
			fields["response.status"] = rec.status
			if opts.LogBodies {
				fields["response.length"] = rec.length
				fields["response.body"] = formatBody(rec.body.Bytes())
			}

			entry := logger.Log.WithFields(fields)
			switch {
			case rec.status >= 500:
				entry.Error("request")
			case rec.status >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
		})
	}
}

// formatBody truncates the captured bytes and compacts them onto a
// single line when they parse as JSON.
func formatBody(body []byte) string {
	if len(body) > maxLoggedBody {
		body = body[:maxLoggedBody]
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err == nil {
		return compact.String()
	}
	return string(body)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
