package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taskhive/taskhive-api/internal/auth"
	"github.com/taskhive/taskhive-api/internal/model"
	"github.com/taskhive/taskhive-api/internal/service"
	"github.com/taskhive/taskhive-api/pkg/respond"
)

// multipart framing allowance on top of the attachment size limit
const uploadBodyLimit = model.MaxAttachmentSize + 1<<20

type AttachmentHandler struct {
	service *service.AttachmentService
	logger  *zap.Logger
}

func NewAttachmentHandler(srv *service.AttachmentService, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, uploadBodyLimit)

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	attachment, err := h.service.Upload(r.Context(), auth.UserID(r.Context()),
		taskID, header.Filename, mimeType, header.Size, file)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, attachment)
}

func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	attachments, err := h.service.List(r.Context(), auth.UserID(r.Context()), taskID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, attachments)
}

func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	attachmentID, ok := parseID(w, r, "attachmentID")
	if !ok {
		return
	}

	err := h.service.Delete(r.Context(), auth.UserID(r.Context()), taskID, attachmentID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.NoContent(w)
}

// Serve streams stored bytes back under the original filename and MIME type.
func (h *AttachmentHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	attachment, rc, err := h.service.Open(r.Context(), auth.UserID(r.Context()), filename)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", attachment.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.OriginalName))
	w.Header().Set("Content-Length", strconv.FormatInt(attachment.Size, 10))

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("streaming attachment failed", zap.String("filename", filename), zap.Error(err))
	}
}
