package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// fiscalYearHandler handles HTTP requests for the fiscal-year lifecycle.
type fiscalYearHandler struct {
	yearService portssvc.FiscalYearSvcFacade
}

// newFiscalYearHandler creates a new fiscalYearHandler.
func newFiscalYearHandler(yearService portssvc.FiscalYearSvcFacade) *fiscalYearHandler {
	return &fiscalYearHandler{yearService: yearService}
}

// registerFiscalYearRoutes registers fiscal year specific routes
func registerFiscalYearRoutes(rg *gin.RouterGroup, yearService portssvc.FiscalYearSvcFacade) {
	h := newFiscalYearHandler(yearService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/current", h.getCurrentFiscalYear)
		years.GET("/:fiscal_year_id", h.getFiscalYear)
		years.DELETE("/:fiscal_year_id", h.deleteFiscalYear)
		years.POST("/:fiscal_year_id/activate", h.activateFiscalYear)
		years.POST("/:fiscal_year_id/run", h.setFiscalYearRunning)
		years.POST("/:fiscal_year_id/import-charts", h.importChartsAccounts)
		years.GET("/:fiscal_year_id/check-close", h.checkCloseFiscalYear)
		years.POST("/:fiscal_year_id/close", h.closeFiscalYear)
		years.GET("/:fiscal_year_id/totals", h.fiscalYearTotals)
	}
}

// createFiscalYear godoc
// @Summary Open a new fiscal year
// @Description Opens a new fiscal year; missing dates follow the latest existing year
// @Tags fiscal-years
// @Accept  json
// @Produce  json
// @Param   year body dto.CreateFiscalYearRequest true "Fiscal year dates"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /fiscal-years [post]
func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateFiscalYearRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	year, err := h.yearService.CreateFiscalYear(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create fiscal year")
		return
	}

	logger.Info("Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID))
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(year))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal-years
// @Produce  json
// @Success 200 {array} dto.FiscalYearResponse
// @Router /fiscal-years [get]
func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	years, err := h.yearService.ListFiscalYears(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list fiscal years")
		return
	}

	c.JSON(http.StatusOK, dto.ToListFiscalYearResponse(years))
}

// getCurrentFiscalYear godoc
// @Summary Get the active fiscal year
// @Tags fiscal-years
// @Produce  json
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "No active fiscal year"
// @Router /fiscal-years/current [get]
func (h *fiscalYearHandler) getCurrentFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := h.yearService.GetCurrentFiscalYear(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to get current fiscal year")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// getFiscalYear godoc
// @Summary Get a fiscal year
// @Tags fiscal-years
// @Produce  json
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Router /fiscal-years/{fiscal_year_id} [get]
func (h *fiscalYearHandler) getFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	year, err := h.yearService.GetFiscalYear(c.Request.Context(), fiscalYearID)
	if err != nil {
		respondError(c, logger, err, "Failed to get fiscal year")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(year))
}

// deleteFiscalYear godoc
// @Summary Delete a fiscal year
// @Description Removes the most-recently-ended, unfinished year
// @Tags fiscal-years
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Year cannot be deleted"
// @Router /fiscal-years/{fiscal_year_id} [delete]
func (h *fiscalYearHandler) deleteFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	if err := h.yearService.DeleteFiscalYear(c.Request.Context(), fiscalYearID); err != nil {
		respondError(c, logger, err, "Failed to delete fiscal year")
		return
	}

	logger.Info("Fiscal year deleted", slog.String("fiscal_year_id", fiscalYearID))
	c.Status(http.StatusNoContent)
}

// activateFiscalYear godoc
// @Summary Activate a fiscal year
// @Description Makes the year the single active one
// @Tags fiscal-years
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Success 204 "Activated"
// @Router /fiscal-years/{fiscal_year_id}/activate [post]
func (h *fiscalYearHandler) activateFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	if err := h.yearService.ActivateFiscalYear(c.Request.Context(), fiscalYearID); err != nil {
		respondError(c, logger, err, "Failed to activate fiscal year")
		return
	}

	logger.Info("Fiscal year activated", slog.String("fiscal_year_id", fiscalYearID))
	c.Status(http.StatusNoContent)
}

// setFiscalYearRunning godoc
// @Summary Move a building year to running
// @Tags fiscal-years
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Success 204 "Running"
// @Failure 400 {object} map[string]string "Year is not in building state"
// @Router /fiscal-years/{fiscal_year_id}/run [post]
func (h *fiscalYearHandler) setFiscalYearRunning(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.yearService.SetFiscalYearRunning(c.Request.Context(), fiscalYearID, userID); err != nil {
		respondError(c, logger, err, "Failed to set fiscal year running")
		return
	}

	logger.Info("Fiscal year running", slog.String("fiscal_year_id", fiscalYearID))
	c.Status(http.StatusNoContent)
}

// importChartsAccounts godoc
// @Summary Import the predecessor's chart of accounts
// @Description Copies the predecessor's chart into the year, skipping existing codes
// @Tags fiscal-years
// @Produce  json
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Success 200 {object} map[string]int "Number of accounts imported"
// @Router /fiscal-years/{fiscal_year_id}/import-charts [post]
func (h *fiscalYearHandler) importChartsAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	userID, ok := callerID(c)
	if !ok {
		return
	}

	imported, err := h.yearService.ImportChartsAccounts(c.Request.Context(), fiscalYearID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to import chart of accounts")
		return
	}

	logger.Info("Chart of accounts imported", slog.String("fiscal_year_id", fiscalYearID), slog.Int("imported", imported))
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// checkCloseFiscalYear godoc
// @Summary Check fiscal year close preconditions
// @Description Returns the count of unclosed entries that will be carried forward
// @Tags fiscal-years
// @Produce  json
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string "Close preconditions not met"
// @Router /fiscal-years/{fiscal_year_id}/check-close [get]
func (h *fiscalYearHandler) checkCloseFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	unclosed, err := h.yearService.CheckCloseFiscalYear(c.Request.Context(), fiscalYearID)
	if err != nil {
		respondError(c, logger, err, "Failed to check fiscal year close")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unclosedEntries": unclosed})
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Carries unclosed entries forward, runs the jurisdiction finalize hook and marks the year finished
// @Tags fiscal-years
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Success 204 "Closed"
// @Failure 400 {object} map[string]string "Close preconditions not met"
// @Router /fiscal-years/{fiscal_year_id}/close [post]
func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.yearService.CloseFiscalYear(c.Request.Context(), fiscalYearID, userID); err != nil {
		respondError(c, logger, err, "Failed to close fiscal year")
		return
	}

	logger.Info("Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	c.Status(http.StatusNoContent)
}

// fiscalYearTotals godoc
// @Summary Get a fiscal year's headline figures
// @Tags fiscal-years
// @Produce  json
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearTotalsResponse
// @Router /fiscal-years/{fiscal_year_id}/totals [get]
func (h *fiscalYearHandler) fiscalYearTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	totals, err := h.yearService.FiscalYearTotals(c.Request.Context(), fiscalYearID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute fiscal year totals")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearTotalsResponse(totals))
}
