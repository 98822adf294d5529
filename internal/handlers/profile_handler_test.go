package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/indieneer/backend/internal/httpx"
	"github.com/indieneer/backend/internal/models"
	"github.com/indieneer/backend/pkg/middleware"
)

type profileServiceStub struct {
	get        func(ctx context.Context, id string) (*models.Profile, error)
	getByIdpID func(ctx context.Context, idpID string) (*models.Profile, error)
	getAll     func(ctx context.Context) ([]models.Profile, error)
	create     func(ctx context.Context, input models.CreateProfile) (*models.Profile, error)
	patch      func(ctx context.Context, id string, input models.PatchProfile) (*models.Profile, error)
	delete     func(ctx context.Context, id string) (*models.Profile, error)
}

func (s *profileServiceStub) Get(ctx context.Context, id string) (*models.Profile, error) {
	return s.get(ctx, id)
}

func (s *profileServiceStub) GetByIdpID(ctx context.Context, idpID string) (*models.Profile, error) {
	return s.getByIdpID(ctx, idpID)
}

func (s *profileServiceStub) GetAll(ctx context.Context) ([]models.Profile, error) {
	return s.getAll(ctx)
}

func (s *profileServiceStub) Create(ctx context.Context, input models.CreateProfile) (*models.Profile, error) {
	return s.create(ctx, input)
}

func (s *profileServiceStub) Patch(ctx context.Context, id string, input models.PatchProfile) (*models.Profile, error) {
	return s.patch(ctx, id, input)
}

func (s *profileServiceStub) Delete(ctx context.Context, id string) (*models.Profile, error) {
	return s.delete(ctx, id)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httpx.Envelope {
	t.Helper()
	var envelope httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestProfileHandlerCreate(t *testing.T) {
	t.Run("registers and returns 201", func(t *testing.T) {
		oid := primitive.NewObjectID()
		stub := &profileServiceStub{
			create: func(ctx context.Context, input models.CreateProfile) (*models.Profile, error) {
				assert.Equal(t, "dev@indieneer.com", input.Email)
				return &models.Profile{ID: oid, Email: input.Email, Nickname: input.Nickname}, nil
			},
		}
		handler := NewProfileHandler(stub)

		rec := httptest.NewRecorder()
		req := jsonRequest(http.MethodPost, "/v1/profiles", `{"email": "dev@indieneer.com", "password": "hunter22", "nickname": "dev"}`)
		httpx.Handler(handler.Create).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "ok", decodeEnvelope(t, rec).Status)
	})

	t.Run("missing nickname is unprocessable", func(t *testing.T) {
		handler := NewProfileHandler(&profileServiceStub{})

		rec := httptest.NewRecorder()
		req := jsonRequest(http.MethodPost, "/v1/profiles", `{"email": "dev@indieneer.com", "password": "hunter22"}`)
		httpx.Handler(handler.Create).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, `missing required field "nickname"`, decodeEnvelope(t, rec).Error)
	})
}

func TestProfileHandlerMe(t *testing.T) {
	oid := primitive.NewObjectID()

	t.Run("resolves by profile id claim", func(t *testing.T) {
		stub := &profileServiceStub{
			get: func(ctx context.Context, id string) (*models.Profile, error) {
				assert.Equal(t, oid.Hex(), id)
				return &models.Profile{ID: oid}, nil
			},
		}
		handler := NewProfileHandler(stub)

		req := httptest.NewRequest(http.MethodGet, "/v1/profiles/me", nil)
		req = req.WithContext(middleware.WithPrincipal(req.Context(), &middleware.Principal{
			Subject:   "auth0|1",
			ProfileID: oid.Hex(),
		}))

		rec := httptest.NewRecorder()
		httpx.Handler(handler.Me).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("falls back to idp subject", func(t *testing.T) {
		stub := &profileServiceStub{
			getByIdpID: func(ctx context.Context, idpID string) (*models.Profile, error) {
				assert.Equal(t, "auth0|1", idpID)
				return &models.Profile{ID: oid}, nil
			},
		}
		handler := NewProfileHandler(stub)

		req := httptest.NewRequest(http.MethodGet, "/v1/profiles/me", nil)
		req = req.WithContext(middleware.WithPrincipal(req.Context(), &middleware.Principal{Subject: "auth0|1"}))

		rec := httptest.NewRecorder()
		httpx.Handler(handler.Me).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unauthenticated is 401", func(t *testing.T) {
		handler := NewProfileHandler(&profileServiceStub{})

		rec := httptest.NewRecorder()
		httpx.Handler(handler.Me).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/profiles/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProfileHandlerSelfScope(t *testing.T) {
	own := primitive.NewObjectID()
	other := primitive.NewObjectID()

	withPrincipal := func(req *http.Request) *http.Request {
		return req.WithContext(middleware.WithPrincipal(req.Context(), &middleware.Principal{
			Subject:   "auth0|1",
			ProfileID: own.Hex(),
		}))
	}

	t.Run("patching another profile is forbidden", func(t *testing.T) {
		handler := NewProfileHandler(&profileServiceStub{})

		req := withPrincipal(jsonRequest(http.MethodPatch, "/v1/profiles/"+other.Hex(), `{"nickname": "sneaky"}`))
		req = mux.SetURLVars(req, map[string]string{"id": other.Hex()})

		rec := httptest.NewRecorder()
		httpx.Handler(handler.PatchSelf).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Forbidden", decodeEnvelope(t, rec).Error)
	})

	t.Run("patching own profile passes through", func(t *testing.T) {
		stub := &profileServiceStub{
			patch: func(ctx context.Context, id string, input models.PatchProfile) (*models.Profile, error) {
				assert.Equal(t, own.Hex(), id)
				require.NotNil(t, input.Nickname)
				return &models.Profile{ID: own, Nickname: *input.Nickname}, nil
			},
		}
		handler := NewProfileHandler(stub)

		req := withPrincipal(jsonRequest(http.MethodPatch, "/v1/profiles/"+own.Hex(), `{"nickname": "legit"}`))
		req = mux.SetURLVars(req, map[string]string{"id": own.Hex()})

		rec := httptest.NewRecorder()
		httpx.Handler(handler.PatchSelf).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestProfileHandlerDelete(t *testing.T) {
	oid := primitive.NewObjectID()
	stub := &profileServiceStub{
		delete: func(ctx context.Context, id string) (*models.Profile, error) {
			return &models.Profile{ID: oid}, nil
		},
	}
	handler := NewProfileHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/profiles/"+oid.Hex(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": oid.Hex()})

	rec := httptest.NewRecorder()
	httpx.Handler(handler.Delete).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	data, ok := decodeEnvelope(t, rec).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Profile "+oid.Hex()+" successfully deleted", data["message"])
}
