package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for read-only reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// registerReportingRoutes registers reporting specific routes
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/fiscal-years/:fiscal_year_id/ledger", h.yearLedger)
	rg.GET("/fiscal-years/:fiscal_year_id/trial-balance", h.trialBalance)
	rg.GET("/cost-accountings/:cost_accounting_id/report", h.costAccountingReport)
}

// yearLedger godoc
// @Summary Get the full-year ledger
// @Description Returns the year's closed entries grouped by journal
// @Tags reporting
// @Produce  json
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Success 200 {object} dto.YearLedgerResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Router /fiscal-years/{fiscal_year_id}/ledger [get]
func (h *reportingHandler) yearLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	ledger, err := h.reportingService.YearLedger(c.Request.Context(), fiscalYearID)
	if err != nil {
		respondError(c, logger, err, "Failed to assemble year ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToYearLedgerResponse(ledger))
}

// trialBalance godoc
// @Summary Get the trial balance of a year
// @Tags reporting
// @Produce  json
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Param   prefix query string false "Code prefix filter"
// @Success 200 {object} dto.TrialBalanceResponse
// @Router /fiscal-years/{fiscal_year_id}/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), fiscalYearID, c.Query("prefix"))
	if err != nil {
		respondError(c, logger, err, "Failed to compute trial balance")
		return
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	c.JSON(http.StatusOK, dto.TrialBalanceResponse{
		FiscalYearID: fiscalYearID,
		Rows:         rows,
		TotalDebit:   totalDebit,
		TotalCredit:  totalCredit,
	})
}

// costAccountingReport godoc
// @Summary Get a cost accounting's report
// @Description Combines the cost accounting's actuals with its budget totals
// @Tags reporting
// @Produce  json
// @Param   cost_accounting_id path string true "Cost accounting ID"
// @Success 200 {object} dto.CostAccountingReport
// @Failure 404 {object} map[string]string "Cost accounting not found"
// @Router /cost-accountings/{cost_accounting_id}/report [get]
func (h *reportingHandler) costAccountingReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	costAccountingID := c.Param("cost_accounting_id")

	report, err := h.reportingService.CostAccountingReport(c.Request.Context(), costAccountingID)
	if err != nil {
		respondError(c, logger, err, "Failed to assemble cost accounting report")
		return
	}

	c.JSON(http.StatusOK, report)
}
