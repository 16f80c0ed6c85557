package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/taskhive/taskhive-api/internal/repo"
	"github.com/taskhive/taskhive-api/internal/service"
	"github.com/taskhive/taskhive-api/pkg/respond"
)

// handleError maps the service/repo error taxonomy onto HTTP statuses.
// Ownership failures surface as 404, indistinguishable from absence, so a
// caller cannot probe for foreign record ids. Upstream failures keep their
// message in the 500 body.
func handleError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	default:
		logger.Error("upstream failure", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, err.Error())
	}
}
