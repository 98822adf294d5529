package httpx

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/indieneer/backend/internal/apperrors"
)

// Handler is an http.Handler whose function may return an error. Errors
// are translated into the response envelope in one place so controllers
// never build error bodies themselves.
type Handler func(w http.ResponseWriter, r *http.Request) error

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			logrus.WithField("panic", rec).Error("Recovered from panic in handler")
			WriteError(w, http.StatusInternalServerError, "internal server error")
		}
	}()

	err := h(w, r)
	if err == nil {
		return
	}

	var (
		notFound      *apperrors.NotFoundError
		unprocessable *apperrors.UnprocessableEntityError
		badRequest    *apperrors.BadRequestError
		invalidID     *apperrors.InvalidIDError
		authErr       *apperrors.AuthError
		badLogin      *apperrors.InvalidLoginCredentialsError
	)

	switch {
	case errors.As(err, &notFound):
		WriteError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &badRequest):
		WriteError(w, http.StatusBadRequest, badRequest.Error())
	case errors.As(err, &unprocessable):
		WriteError(w, http.StatusUnprocessableEntity, unprocessable.Error())
	case errors.Is(err, apperrors.ErrEmptyPatch):
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &invalidID):
		WriteError(w, http.StatusBadRequest, invalidID.Error())
	case errors.As(err, &authErr):
		WriteError(w, authErr.Status, authErr.Description)
	case errors.As(err, &badLogin):
		WriteError(w, http.StatusForbidden, badLogin.Error())
	default:
		logrus.WithError(err).Error("Unhandled error in request pipeline")
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
