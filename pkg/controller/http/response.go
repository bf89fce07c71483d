package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airegister/pkg/domain/model"
	"github.com/secmon-lab/airegister/pkg/usecase"
	"github.com/secmon-lab/airegister/pkg/utils/errutil"
	"github.com/secmon-lab/airegister/pkg/utils/safe"
)

// ErrInvalidRequest is returned for malformed request bodies and parameters
var ErrInvalidRequest = errors.New("invalid request")

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(ErrInvalidRequest, "failed to decode request body", goerr.V("cause", err.Error()))
	}
	return nil
}

// statusOf maps use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest), usecase.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrSystemNotFound), errors.Is(err, usecase.ErrAssessmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrDuplicateName):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func systemIDParam(r *http.Request) model.AISystemID {
	return model.AISystemID(chi.URLParam(r, "systemID"))
}
