package handlers

import (
	"github.com/gin-gonic/gin"

	"kontora/internal/backup"
)

// BackupHandler exposes snapshot export, import and stats.
type BackupHandler struct {
	*BaseHandler
	service *backup.Service
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(base *BaseHandler, service *backup.Service) *BackupHandler {
	return &BackupHandler{BaseHandler: base, service: service}
}

// Export handles GET /backup/export - returns the full snapshot.
func (h *BackupHandler) Export(c *gin.Context) {
	snap, err := h.service.Export(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, snap)
}

// ImportRequest wraps a snapshot with its import options.
type ImportRequest struct {
	Snapshot backup.Snapshot      `json:"snapshot"`
	Options  backup.ImportOptions `json:"options"`
}

// Import handles POST /backup/import.
func (h *BackupHandler) Import(c *gin.Context) {
	var req ImportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Import(c.Request.Context(), &req.Snapshot, req.Options)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Stats handles GET /backup/stats - per-collection counts only.
func (h *BackupHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stats)
}
