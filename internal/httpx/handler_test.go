package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indieneer/backend/internal/apperrors"
)

func serve(t *testing.T, h Handler) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(rec, req)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestHandlerErrorMapping(t *testing.T) {
	t.Run("nil error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Handler(func(w http.ResponseWriter, r *http.Request) error {
			WriteData(w, http.StatusOK, map[string]string{"ping": "pong"})
			return nil
		}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found uses the not found envelope", func(t *testing.T) {
		rec, envelope := serve(t, func(w http.ResponseWriter, r *http.Request) error {
			return apperrors.NewNotFound("Product", "abc")
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not found", envelope.Status)
		assert.Equal(t, "Product abc not found", envelope.Error)
	})

	t.Run("bad request maps to 400", func(t *testing.T) {
		rec, envelope := serve(t, func(w http.ResponseWriter, r *http.Request) error {
			return apperrors.NewBadRequest("invalid request payload")
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "error", envelope.Status)
	})

	t.Run("unprocessable entity maps to 422", func(t *testing.T) {
		rec, envelope := serve(t, func(w http.ResponseWriter, r *http.Request) error {
			return apperrors.NewUnprocessableEntity("unknown key %q", "bogus")
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, `unknown key "bogus"`, envelope.Error)
	})

	t.Run("empty patch maps to 422", func(t *testing.T) {
		rec, _ := serve(t, func(w http.ResponseWriter, r *http.Request) error {
			return apperrors.ErrEmptyPatch
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("invalid id maps to 400", func(t *testing.T) {
		rec, envelope := serve(t, func(w http.ResponseWriter, r *http.Request) error {
			return apperrors.NewInvalidID("xyz")
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid id: xyz", envelope.Error)
	})

	t.Run("auth error carries its own status", func(t *testing.T) {
		rec, envelope := serve(t, func(w http.ResponseWriter, r *http.Request) error {
			return apperrors.Forbidden()
		})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Forbidden", envelope.Error)
	})

	t.Run("invalid login credentials map to 403", func(t *testing.T) {
		rec, envelope := serve(t, func(w http.ResponseWriter, r *http.Request) error {
			return &apperrors.InvalidLoginCredentialsError{}
		})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Wrong email or password.", envelope.Error)
	})

	t.Run("unknown errors are masked as 500", func(t *testing.T) {
		rec, envelope := serve(t, func(w http.ResponseWriter, r *http.Request) error {
			return errors.New("connection reset by peer")
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", envelope.Error)
	})

	t.Run("panics are recovered as 500", func(t *testing.T) {
		rec, envelope := serve(t, func(w http.ResponseWriter, r *http.Request) error {
			panic("boom")
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", envelope.Error)
	})

	t.Run("wrapped typed errors still map", func(t *testing.T) {
		rec, _ := serve(t, func(w http.ResponseWriter, r *http.Request) error {
			return errors.Join(errors.New("context"), apperrors.NewNotFound("Tag", "t1"))
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestResponseEnvelopes(t *testing.T) {
	assert.Equal(t, Envelope{Status: "ok", Data: 1}, NewSuccessResponse(1))
	assert.Equal(t, Envelope{Status: "ok", Data: 1, Meta: 2}, NewSuccessResponseWithMeta(1, 2))
	assert.Equal(t, Envelope{Status: "error", Error: "nope"}, NewErrorResponse("nope"))
	assert.Equal(t, Envelope{Status: "not found", Error: "gone"}, NewNotFoundResponse("gone"))
}
