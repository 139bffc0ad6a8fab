package handler

import (
	"errors"
	"net/http"
	"strconv"

	"dipstudio/internal/domain"
	"dipstudio/internal/httputil"
)

// PathParam extracts a required path parameter, writing a 400 response and
// returning false if it's missing.
func PathParam(w http.ResponseWriter, r *http.Request, name, resourceName string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, resourceName+" is required")
		return "", false
	}
	return value, true
}

// PathInt64 extracts a required int64 path parameter.
func PathInt64(w http.ResponseWriter, r *http.Request, name, resourceName string) (int64, bool) {
	raw, ok := PathParam(w, r, name, resourceName)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, resourceName+" must be an integer")
		return 0, false
	}
	return value, true
}

// handleError converts a domain error into an HTTP problem-details
// response.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
