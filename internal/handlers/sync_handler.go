package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"menu-service/internal/engine"
	"menu-service/internal/events"
	"menu-service/internal/models"
)

// SyncHandler exposes cross-outlet menu synchronization: a read-only
// preview and the executing endpoint.
type SyncHandler struct {
	planner   *engine.Planner
	executor  *engine.Executor
	publisher *events.Publisher
}

func NewSyncHandler(planner *engine.Planner, executor *engine.Executor, publisher *events.Publisher) *SyncHandler {
	return &SyncHandler{
		planner:   planner,
		executor:  executor,
		publisher: publisher,
	}
}

// PreviewSync forecasts a sync without writing anything
// POST /api/v1/menu/sync/preview
func (h *SyncHandler) PreviewSync(c *gin.Context) {
	var req models.SyncPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	preview, err := h.planner.Preview(tenantID(c), req.SourceOutletID, req.TargetOutletIDs, req.Options)
	if err != nil {
		if err == engine.ErrOutletNotFound {
			respondError(c, http.StatusNotFound, "OUTLET_NOT_FOUND", "Source outlet not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "PREVIEW_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: preview})
}

// ExecuteSync propagates the source outlet's menu to the targets.
// Per-target failures are reported in-band; only a missing source
// outlet fails the request itself.
// POST /api/v1/menu/sync
func (h *SyncHandler) ExecuteSync(c *gin.Context) {
	var req models.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	for _, target := range req.TargetOutletIDs {
		if target == req.SourceOutletID {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Source outlet cannot be a sync target")
			return
		}
	}

	result, err := h.executor.Sync(tenantID(c), req.SourceOutletID, req.TargetOutletIDs, req.Options)
	if err != nil {
		if err == engine.ErrOutletNotFound {
			respondError(c, http.StatusNotFound, "OUTLET_NOT_FOUND", "Source outlet not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "SYNC_FAILED", err.Error())
		return
	}

	if h.publisher != nil {
		_ = h.publisher.PublishSyncCompleted(c.Request.Context(), tenantID(c), req.SourceOutletID, actorID(c),
			len(req.TargetOutletIDs), result.Success)
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: result})
}
