package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// chartAccountHandler handles HTTP requests for a year's chart of accounts.
type chartAccountHandler struct {
	chartService portssvc.ChartAccountSvcFacade
}

// newChartAccountHandler creates a new chartAccountHandler.
func newChartAccountHandler(chartService portssvc.ChartAccountSvcFacade) *chartAccountHandler {
	return &chartAccountHandler{chartService: chartService}
}

// registerChartAccountRoutes registers chart account specific routes
func registerChartAccountRoutes(rg *gin.RouterGroup, chartService portssvc.ChartAccountSvcFacade) {
	h := newChartAccountHandler(chartService)

	accounts := rg.Group("/chart-accounts")
	{
		accounts.POST("", h.createChartAccount)
		accounts.GET("/:chart_account_id/totals", h.chartAccountTotals)
	}

	// Listing is scoped to a year; the chart only exists within one.
	rg.GET("/fiscal-years/:fiscal_year_id/chart-accounts", h.listChartAccounts)
}

// createChartAccount godoc
// @Summary Create a chart account
// @Description Creates an account with a normalized code in the year's chart
// @Tags chart-accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateChartAccountRequest true "Chart account"
// @Success 201 {object} dto.ChartAccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Code already exists in the year"
// @Router /chart-accounts [post]
func (h *chartAccountHandler) createChartAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateChartAccountRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createChartAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	account, err := h.chartService.CreateChartAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create chart account")
		return
	}

	logger.Info("Chart account created", slog.String("code", account.Code), slog.String("fiscal_year_id", account.FiscalYearID))
	c.JSON(http.StatusCreated, dto.ToChartAccountResponse(account))
}

// listChartAccounts godoc
// @Summary List a year's chart of accounts
// @Tags chart-accounts
// @Produce  json
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Param   prefix query string false "Code prefix filter"
// @Success 200 {array} dto.ChartAccountResponse
// @Router /fiscal-years/{fiscal_year_id}/chart-accounts [get]
func (h *chartAccountHandler) listChartAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	params := dto.ListChartAccountsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listChartAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	accounts, err := h.chartService.ListChartAccounts(c.Request.Context(), fiscalYearID, params.Prefix)
	if err != nil {
		respondError(c, logger, err, "Failed to list chart accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListChartAccountResponse(accounts))
}

// chartAccountTotals godoc
// @Summary Get an account's balances
// @Description Reports last-year, current and validated positions signed by the account's credit/debit way
// @Tags chart-accounts
// @Produce  json
// @Param   chart_account_id path int true "Chart account ID"
// @Success 200 {object} dto.ChartAccountTotalsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /chart-accounts/{chart_account_id}/totals [get]
func (h *chartAccountHandler) chartAccountTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	chartAccountID, err := strconv.ParseInt(c.Param("chart_account_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chart account ID"})
		return
	}

	totals, err := h.chartService.ChartAccountTotals(c.Request.Context(), chartAccountID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute chart account totals")
		return
	}

	c.JSON(http.StatusOK, dto.ToChartAccountTotalsResponse(totals))
}
