package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/indieneer/backend/internal/apperrors"
)

// decodeBody decodes a JSON request body into dst, rejecting unknown
// keys with 422 and malformed JSON with 400.
func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewBadRequest("request body is empty")
		}
		if strings.Contains(err.Error(), "unknown field") {
			key := strings.TrimSuffix(strings.TrimPrefix(err.Error(), `json: unknown field "`), `"`)
			return apperrors.NewUnprocessableEntity("unknown key %q", key)
		}
		return apperrors.NewBadRequest("invalid request payload")
	}
	return nil
}

// requiredField pairs a payload key with its submitted value.
type requiredField struct {
	Key   string
	Value string
}

// requireFields fails with 422 naming the first missing required field.
// Fields are checked in declaration order so the same payload always
// yields the same message.
func requireFields(fields []requiredField) error {
	for _, field := range fields {
		if field.Value == "" {
			return apperrors.NewUnprocessableEntity("missing required field %q", field.Key)
		}
	}
	return nil
}

// pageParam parses the page query parameter, defaulting to 1.
func pageParam(r *http.Request) int64 {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// remoteIP returns the caller address, honoring forwarding proxies.
func remoteIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx > 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// deletedMessage is the uniform body for successful deletions.
func deletedMessage(entity, id string) map[string]string {
	return map[string]string{"message": entity + " " + id + " successfully deleted"}
}
