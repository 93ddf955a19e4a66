package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// parameterHandler handles HTTP requests for configuration parameters.
type parameterHandler struct {
	parameterService portssvc.ParameterSvcFacade
}

// newParameterHandler creates a new parameterHandler.
func newParameterHandler(parameterService portssvc.ParameterSvcFacade) *parameterHandler {
	return &parameterHandler{parameterService: parameterService}
}

// registerParameterRoutes registers parameter specific routes
func registerParameterRoutes(rg *gin.RouterGroup, parameterService portssvc.ParameterSvcFacade) {
	h := newParameterHandler(parameterService)

	parameters := rg.Group("/parameters")
	{
		parameters.GET("/:name", h.getParameter)
		parameters.PUT("/:name", h.setParameter)
	}

	rg.GET("/currency", h.currencyInfo)
}

// getParameter godoc
// @Summary Get a configuration parameter
// @Tags parameters
// @Produce  json
// @Param   name path string true "Parameter name"
// @Success 200 {object} dto.ParameterResponse
// @Failure 400 {object} map[string]string "Unknown parameter"
// @Router /parameters/{name} [get]
func (h *parameterHandler) getParameter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	value, err := h.parameterService.GetParameter(c.Request.Context(), name)
	if err != nil {
		respondError(c, logger, err, "Failed to get parameter")
		return
	}

	c.JSON(http.StatusOK, dto.ParameterResponse{Name: name, Value: value})
}

// setParameter godoc
// @Summary Set a configuration parameter
// @Tags parameters
// @Accept  json
// @Produce  json
// @Param   name path string true "Parameter name"
// @Param   parameter body dto.SetParameterRequest true "New value"
// @Success 200 {object} dto.ParameterResponse
// @Failure 400 {object} map[string]string "Unknown parameter or invalid value"
// @Router /parameters/{name} [put]
func (h *parameterHandler) setParameter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	req := dto.SetParameterRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for setParameter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.parameterService.SetParameter(c.Request.Context(), name, req.Value, userID); err != nil {
		respondError(c, logger, err, "Failed to set parameter")
		return
	}

	logger.Info("Parameter updated", slog.String("name", name))
	c.JSON(http.StatusOK, dto.ParameterResponse{Name: name, Value: req.Value})
}

// currencyInfo godoc
// @Summary Get the configured currency
// @Tags parameters
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Router /currency [get]
func (h *parameterHandler) currencyInfo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	symbol, iso, precision, err := h.parameterService.CurrencyInfo(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to get currency info")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":    symbol,
		"iso":       iso,
		"precision": precision,
	})
}
