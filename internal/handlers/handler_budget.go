package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// budgetHandler handles HTTP requests for budget lines.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(budgetService portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: budgetService}
}

// registerBudgetRoutes registers budget specific routes
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.saveBudget)
		budgets.GET("", h.listBudgets)
		budgets.DELETE("/:budget_id", h.deleteBudget)
	}
}

// saveBudget godoc
// @Summary Create or update a budget line
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.SaveBudgetRequest true "Budget line"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /budgets [post]
func (h *budgetHandler) saveBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.SaveBudgetRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for saveBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.SaveBudget(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to save budget line")
		return
	}

	logger.Info("Budget line saved", slog.String("budget_id", budget.BudgetID))
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budget lines with totals
// @Tags budgets
// @Produce  json
// @Param   fiscalYearID query string false "Scope to a fiscal year"
// @Param   costAccountingID query string false "Scope to a cost accounting"
// @Success 200 {object} dto.ListBudgetsResponse
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	budgets, revenue, expense, err := h.budgetService.ListBudgets(c.Request.Context(), c.Query("fiscalYearID"), c.Query("costAccountingID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list budget lines")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBudgetsResponse(budgets, revenue, expense))
}

// deleteBudget godoc
// @Summary Delete a budget line
// @Tags budgets
// @Param   budget_id path string true "Budget ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Budget line not found"
// @Router /budgets/{budget_id} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budget_id")

	if err := h.budgetService.DeleteBudget(c.Request.Context(), budgetID); err != nil {
		respondError(c, logger, err, "Failed to delete budget line")
		return
	}

	logger.Info("Budget line deleted", slog.String("budget_id", budgetID))
	c.Status(http.StatusNoContent)
}
