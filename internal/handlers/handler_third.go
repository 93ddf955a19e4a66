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

// thirdHandler handles HTTP requests for counterparties.
type thirdHandler struct {
	thirdService portssvc.ThirdSvcFacade
}

// newThirdHandler creates a new thirdHandler.
func newThirdHandler(thirdService portssvc.ThirdSvcFacade) *thirdHandler {
	return &thirdHandler{thirdService: thirdService}
}

// registerThirdRoutes registers counterparty specific routes
func registerThirdRoutes(rg *gin.RouterGroup, thirdService portssvc.ThirdSvcFacade) {
	h := newThirdHandler(thirdService)

	thirds := rg.Group("/thirds")
	{
		thirds.POST("", h.createThird)
		thirds.GET("", h.listThirds)
		thirds.GET("/:third_id", h.getThird)
		thirds.POST("/:third_id/accounts", h.attachAccount)
		thirds.GET("/:third_id/total", h.thirdTotal)
	}
}

// thirdID parses the path parameter shared by the third routes.
func thirdID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("third_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid third ID"})
		return 0, false
	}
	return id, true
}

// createThird godoc
// @Summary Register a counterparty
// @Tags thirds
// @Accept  json
// @Produce  json
// @Param   third body dto.CreateThirdRequest true "Counterparty"
// @Success 201 {object} dto.ThirdResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /thirds [post]
func (h *thirdHandler) createThird(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateThirdRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createThird", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	third, err := h.thirdService.CreateThird(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create third")
		return
	}

	logger.Info("Third created", slog.Int64("third_id", third.ThirdID))
	c.JSON(http.StatusCreated, dto.ToThirdResponse(third, nil))
}

// getThird godoc
// @Summary Get a counterparty with its account codes
// @Tags thirds
// @Produce  json
// @Param   third_id path int true "Third ID"
// @Success 200 {object} dto.ThirdResponse
// @Failure 404 {object} map[string]string "Third not found"
// @Router /thirds/{third_id} [get]
func (h *thirdHandler) getThird(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := thirdID(c)
	if !ok {
		return
	}

	third, accounts, err := h.thirdService.GetThird(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to get third")
		return
	}

	c.JSON(http.StatusOK, dto.ToThirdResponse(third, accounts))
}

// listThirds godoc
// @Summary List counterparties
// @Tags thirds
// @Produce  json
// @Success 200 {array} dto.ThirdResponse
// @Router /thirds [get]
func (h *thirdHandler) listThirds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	thirds, err := h.thirdService.ListThirds(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list thirds")
		return
	}

	c.JSON(http.StatusOK, dto.ToListThirdResponse(thirds))
}

// attachAccount godoc
// @Summary Attach an account code to a counterparty
// @Tags thirds
// @Accept  json
// @Produce  json
// @Param   third_id path int true "Third ID"
// @Param   account body dto.AttachThirdAccountRequest true "Account code"
// @Success 201 {object} dto.ThirdAccountResponse
// @Failure 409 {object} map[string]string "Code already attached"
// @Router /thirds/{third_id}/accounts [post]
func (h *thirdHandler) attachAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := thirdID(c)
	if !ok {
		return
	}

	req := dto.AttachThirdAccountRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for attachAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	account, err := h.thirdService.AttachAccount(c.Request.Context(), id, req.Code)
	if err != nil {
		respondError(c, logger, err, "Failed to attach account to third")
		return
	}

	logger.Info("Account attached to third", slog.Int64("third_id", id), slog.String("code", account.Code))
	c.JSON(http.StatusCreated, dto.ThirdAccountResponse{
		ThirdAccountID: account.ThirdAccountID,
		Code:           account.Code,
	})
}

// thirdTotal godoc
// @Summary Get a counterparty's outstanding balance
// @Tags thirds
// @Produce  json
// @Param   third_id path int true "Third ID"
// @Success 200 {object} map[string]string
// @Router /thirds/{third_id}/total [get]
func (h *thirdHandler) thirdTotal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := thirdID(c)
	if !ok {
		return
	}

	total, err := h.thirdService.ThirdTotal(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to compute third total")
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total})
}
