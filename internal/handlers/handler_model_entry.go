package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// modelEntryHandler handles HTTP requests for entry templates.
type modelEntryHandler struct {
	modelService portssvc.ModelEntrySvcFacade
}

// newModelEntryHandler creates a new modelEntryHandler.
func newModelEntryHandler(modelService portssvc.ModelEntrySvcFacade) *modelEntryHandler {
	return &modelEntryHandler{modelService: modelService}
}

// registerModelEntryRoutes registers entry template specific routes
func registerModelEntryRoutes(rg *gin.RouterGroup, modelService portssvc.ModelEntrySvcFacade) {
	h := newModelEntryHandler(modelService)

	models := rg.Group("/model-entries")
	{
		models.POST("", h.saveModelEntry)
		models.GET("", h.listModelEntries)
		models.GET("/:model_entry_id", h.getModelEntry)
		models.DELETE("/:model_entry_id", h.deleteModelEntry)
		models.POST("/:model_entry_id/stamp", h.stampModel)
	}
}

// saveModelEntry godoc
// @Summary Create or update an entry template
// @Tags model-entries
// @Accept  json
// @Produce  json
// @Param   model body dto.SaveModelEntryRequest true "Template with its lines"
// @Success 200 {object} dto.ModelEntryResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /model-entries [post]
func (h *modelEntryHandler) saveModelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.SaveModelEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for saveModelEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	model, err := h.modelService.SaveModelEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to save entry template")
		return
	}

	logger.Info("Entry template saved", slog.String("model_entry_id", model.ModelEntryID))
	c.JSON(http.StatusOK, dto.ToModelEntryResponse(model, nil))
}

// listModelEntries godoc
// @Summary List entry templates
// @Tags model-entries
// @Produce  json
// @Success 200 {array} dto.ModelEntryResponse
// @Router /model-entries [get]
func (h *modelEntryHandler) listModelEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	templates, err := h.modelService.ListModelEntries(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list entry templates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListModelEntryResponse(templates))
}

// getModelEntry godoc
// @Summary Get an entry template with its lines
// @Tags model-entries
// @Produce  json
// @Param   model_entry_id path string true "Template ID"
// @Success 200 {object} dto.ModelEntryResponse
// @Failure 404 {object} map[string]string "Template not found"
// @Router /model-entries/{model_entry_id} [get]
func (h *modelEntryHandler) getModelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	modelEntryID := c.Param("model_entry_id")

	model, lines, err := h.modelService.GetModelEntry(c.Request.Context(), modelEntryID)
	if err != nil {
		respondError(c, logger, err, "Failed to get entry template")
		return
	}

	c.JSON(http.StatusOK, dto.ToModelEntryResponse(model, lines))
}

// deleteModelEntry godoc
// @Summary Delete an entry template
// @Tags model-entries
// @Param   model_entry_id path string true "Template ID"
// @Success 204 "Deleted"
// @Router /model-entries/{model_entry_id} [delete]
func (h *modelEntryHandler) deleteModelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	modelEntryID := c.Param("model_entry_id")

	if err := h.modelService.DeleteModelEntry(c.Request.Context(), modelEntryID); err != nil {
		respondError(c, logger, err, "Failed to delete entry template")
		return
	}

	logger.Info("Entry template deleted", slog.String("model_entry_id", modelEntryID))
	c.Status(http.StatusNoContent)
}

// stampModel godoc
// @Summary Stamp a template into a working serial
// @Description Resolves the template's codes in the target year and returns its lines scaled by factor
// @Tags model-entries
// @Accept  json
// @Produce  json
// @Param   model_entry_id path string true "Template ID"
// @Param   stamp body dto.StampModelRequest true "Target year and factor"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Template has no lines"
// @Router /model-entries/{model_entry_id}/stamp [post]
func (h *modelEntryHandler) stampModel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	modelEntryID := c.Param("model_entry_id")

	req := dto.StampModelRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for stampModel", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	serial, err := h.modelService.StampModel(c.Request.Context(), modelEntryID, req.Factor, req.FiscalYearID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to stamp entry template")
		return
	}

	logger.Info("Entry template stamped", slog.String("model_entry_id", modelEntryID))
	c.JSON(http.StatusOK, gin.H{"serial": serial})
}
