package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/taskhive/taskhive-api/internal/auth"
	"github.com/taskhive/taskhive-api/internal/service"
	"github.com/taskhive/taskhive-api/pkg/respond"
)

type DashboardHandler struct {
	service *service.DashboardService
	logger  *zap.Logger
}

func NewDashboardHandler(srv *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, stats)
}

func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	analytics, err := h.service.Analytics(r.Context(), auth.UserID(r.Context()), days)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, analytics)
}
