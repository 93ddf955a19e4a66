package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// costAccountingHandler handles HTTP requests for the analytic dimension.
type costAccountingHandler struct {
	costService portssvc.CostAccountingSvcFacade
}

// newCostAccountingHandler creates a new costAccountingHandler.
func newCostAccountingHandler(costService portssvc.CostAccountingSvcFacade) *costAccountingHandler {
	return &costAccountingHandler{costService: costService}
}

// registerCostAccountingRoutes registers cost accounting specific routes
func registerCostAccountingRoutes(rg *gin.RouterGroup, costService portssvc.CostAccountingSvcFacade) {
	h := newCostAccountingHandler(costService)

	costs := rg.Group("/cost-accountings")
	{
		costs.POST("", h.createCostAccounting)
		costs.GET("", h.listCostAccountings)
		costs.POST("/sweep-closed-refs", h.sweepClosedCostRefs)
		costs.PUT("/:cost_accounting_id", h.updateCostAccounting)
		costs.POST("/:cost_accounting_id/close", h.closeCostAccounting)
		costs.POST("/:cost_accounting_id/toggle-default", h.toggleDefault)
		costs.GET("/:cost_accounting_id/result", h.costAccountingResult)
	}
}

// createCostAccounting godoc
// @Summary Create a cost accounting
// @Tags cost-accountings
// @Accept  json
// @Produce  json
// @Param   cost body dto.CreateCostAccountingRequest true "Cost accounting"
// @Success 201 {object} dto.CostAccountingResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /cost-accountings [post]
func (h *costAccountingHandler) createCostAccounting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateCostAccountingRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createCostAccounting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	cost, err := h.costService.CreateCostAccounting(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create cost accounting")
		return
	}

	logger.Info("Cost accounting created", slog.String("cost_accounting_id", cost.CostAccountingID))
	c.JSON(http.StatusCreated, dto.ToCostAccountingResponse(cost))
}

// updateCostAccounting godoc
// @Summary Update a cost accounting
// @Description Updates name, description and fiscal year; a year contradicting posted entries is refused
// @Tags cost-accountings
// @Accept  json
// @Param   cost_accounting_id path string true "Cost accounting ID"
// @Param   cost body dto.UpdateCostAccountingRequest true "Editable fields"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Closed or contradicting year"
// @Router /cost-accountings/{cost_accounting_id} [put]
func (h *costAccountingHandler) updateCostAccounting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	costAccountingID := c.Param("cost_accounting_id")

	req := dto.UpdateCostAccountingRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateCostAccounting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	cost := domain.CostAccounting{
		CostAccountingID: costAccountingID,
		Name:             req.Name,
		Description:      req.Description,
		FiscalYearID:     req.FiscalYearID,
	}
	if err := h.costService.UpdateCostAccounting(c.Request.Context(), cost, userID); err != nil {
		respondError(c, logger, err, "Failed to update cost accounting")
		return
	}

	logger.Info("Cost accounting updated", slog.String("cost_accounting_id", costAccountingID))
	c.Status(http.StatusNoContent)
}

// listCostAccountings godoc
// @Summary List cost accountings
// @Tags cost-accountings
// @Produce  json
// @Param   fiscalYearID query string false "Scope to a fiscal year"
// @Success 200 {array} dto.CostAccountingResponse
// @Router /cost-accountings [get]
func (h *costAccountingHandler) listCostAccountings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Query("fiscalYearID")

	costs, err := h.costService.ListCostAccountings(c.Request.Context(), fiscalYearID)
	if err != nil {
		respondError(c, logger, err, "Failed to list cost accountings")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCostAccountingResponse(costs))
}

// closeCostAccounting godoc
// @Summary Close a cost accounting
// @Description Open entries or referencing templates block the close
// @Tags cost-accountings
// @Param   cost_accounting_id path string true "Cost accounting ID"
// @Success 204 "Closed"
// @Failure 400 {object} map[string]string "Close blocked"
// @Router /cost-accountings/{cost_accounting_id}/close [post]
func (h *costAccountingHandler) closeCostAccounting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	costAccountingID := c.Param("cost_accounting_id")

	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.costService.CloseCostAccounting(c.Request.Context(), costAccountingID, userID); err != nil {
		respondError(c, logger, err, "Failed to close cost accounting")
		return
	}

	logger.Info("Cost accounting closed", slog.String("cost_accounting_id", costAccountingID))
	c.Status(http.StatusNoContent)
}

// toggleDefault godoc
// @Summary Toggle the default cost accounting
// @Description Keeps at most one default among opened cost accountings
// @Tags cost-accountings
// @Param   cost_accounting_id path string true "Cost accounting ID"
// @Success 204 "Toggled"
// @Router /cost-accountings/{cost_accounting_id}/toggle-default [post]
func (h *costAccountingHandler) toggleDefault(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	costAccountingID := c.Param("cost_accounting_id")

	if err := h.costService.ToggleDefault(c.Request.Context(), costAccountingID); err != nil {
		respondError(c, logger, err, "Failed to toggle default cost accounting")
		return
	}

	c.Status(http.StatusNoContent)
}

// costAccountingResult godoc
// @Summary Get a cost accounting's result
// @Tags cost-accountings
// @Produce  json
// @Param   cost_accounting_id path string true "Cost accounting ID"
// @Success 200 {object} dto.CostAccountingResultResponse
// @Router /cost-accountings/{cost_accounting_id}/result [get]
func (h *costAccountingHandler) costAccountingResult(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	costAccountingID := c.Param("cost_accounting_id")

	result, err := h.costService.CostAccountingResult(c.Request.Context(), costAccountingID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute cost accounting result")
		return
	}

	c.JSON(http.StatusOK, dto.ToCostAccountingResultResponse(result))
}

// sweepClosedCostRefs godoc
// @Summary Detach closed cost accountings from unclosed entries
// @Tags cost-accountings
// @Produce  json
// @Success 200 {object} map[string]int "Number of entries cleaned"
// @Router /cost-accountings/sweep-closed-refs [post]
func (h *costAccountingHandler) sweepClosedCostRefs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	cleaned, err := h.costService.SweepClosedCostRefs(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to sweep closed cost references")
		return
	}

	logger.Info("Closed cost references swept", slog.Int("cleaned", cleaned))
	c.JSON(http.StatusOK, gin.H{"cleaned": cleaned})
}
