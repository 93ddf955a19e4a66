package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// payoffHandler handles HTTP requests for payments and bank accounts.
type payoffHandler struct {
	payoffService portssvc.PayoffSvcFacade
}

// newPayoffHandler creates a new payoffHandler.
func newPayoffHandler(payoffService portssvc.PayoffSvcFacade) *payoffHandler {
	return &payoffHandler{payoffService: payoffService}
}

// registerPayoffRoutes registers payment specific routes
func registerPayoffRoutes(rg *gin.RouterGroup, payoffService portssvc.PayoffSvcFacade) {
	h := newPayoffHandler(payoffService)

	payoffs := rg.Group("/payoffs")
	{
		payoffs.POST("", h.createPayoff)
		payoffs.POST("/multi", h.multiPay)
		payoffs.PUT("/:payoff_id", h.updatePayoff)
		payoffs.DELETE("/:payoff_id", h.deletePayoff)
	}

	rg.GET("/bills/:bill_id/payoffs", h.listPayoffs)

	bankAccounts := rg.Group("/bank-accounts")
	{
		bankAccounts.POST("", h.createBankAccount)
		bankAccounts.GET("", h.listBankAccounts)
	}
}

// createPayoff godoc
// @Summary Record a payment
// @Description Records a payment against a document and generates its accounting entry
// @Tags payoffs
// @Accept  json
// @Produce  json
// @Param   payoff body dto.CreatePayoffRequest true "Payment"
// @Success 201 {object} dto.PayoffResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 422 {object} map[string]string "Cash or bank charge account not configured"
// @Router /payoffs [post]
func (h *payoffHandler) createPayoff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreatePayoffRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createPayoff", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	payoff, err := h.payoffService.CreatePayoff(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create payoff")
		return
	}

	logger.Info("Payoff created", slog.String("payoff_id", payoff.PayoffID))
	c.JSON(http.StatusCreated, dto.ToPayoffResponse(payoff))
}

// updatePayoff godoc
// @Summary Rewrite a payment
// @Description Drops the previous unclosed entry and generates a fresh one; a closed entry blocks the update
// @Tags payoffs
// @Accept  json
// @Produce  json
// @Param   payoff_id path string true "Payoff ID"
// @Param   payoff body dto.CreatePayoffRequest true "Payment"
// @Success 200 {object} dto.PayoffResponse
// @Failure 400 {object} map[string]string "Entry already closed"
// @Router /payoffs/{payoff_id} [put]
func (h *payoffHandler) updatePayoff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payoffID := c.Param("payoff_id")

	req := dto.CreatePayoffRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updatePayoff", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	payoff, err := h.payoffService.UpdatePayoff(c.Request.Context(), payoffID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update payoff")
		return
	}

	logger.Info("Payoff updated", slog.String("payoff_id", payoffID))
	c.JSON(http.StatusOK, dto.ToPayoffResponse(payoff))
}

// deletePayoff godoc
// @Summary Delete a payment
// @Description Removes the payment and its open accounting entry
// @Tags payoffs
// @Param   payoff_id path string true "Payoff ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Entry already closed"
// @Router /payoffs/{payoff_id} [delete]
func (h *payoffHandler) deletePayoff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payoffID := c.Param("payoff_id")

	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.payoffService.DeletePayoff(c.Request.Context(), payoffID, userID); err != nil {
		respondError(c, logger, err, "Failed to delete payoff")
		return
	}

	logger.Info("Payoff deleted", slog.String("payoff_id", payoffID))
	c.Status(http.StatusNoContent)
}

// multiPay godoc
// @Summary Spread one payment across several documents
// @Description Splits the amount over documents of the same third, pro rata or oldest first
// @Tags payoffs
// @Accept  json
// @Produce  json
// @Param   payment body dto.MultiPayRequest true "Multi-document payment"
// @Success 201 {array} dto.PayoffResponse
// @Failure 400 {object} map[string]string "Documents belong to different thirds"
// @Router /payoffs/multi [post]
func (h *payoffHandler) multiPay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.MultiPayRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for multiPay", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	payoffs, err := h.payoffService.MultiPay(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to spread payment")
		return
	}

	logger.Info("Multi-pay recorded", slog.Int("documents", len(payoffs)))
	c.JSON(http.StatusCreated, dto.ToListPayoffResponse(payoffs))
}

// listPayoffs godoc
// @Summary List payments recorded against a document
// @Tags payoffs
// @Produce  json
// @Param   bill_id path string true "Bill ID"
// @Success 200 {array} dto.PayoffResponse
// @Router /bills/{bill_id}/payoffs [get]
func (h *payoffHandler) listPayoffs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("bill_id")

	payoffs, err := h.payoffService.ListPayoffs(c.Request.Context(), billID)
	if err != nil {
		respondError(c, logger, err, "Failed to list payoffs")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPayoffResponse(payoffs))
}

// createBankAccount godoc
// @Summary Register a bank account
// @Tags bank-accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBankAccountRequest true "Bank account"
// @Success 201 {object} dto.BankAccountResponse
// @Router /bank-accounts [post]
func (h *payoffHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateBankAccountRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	account, err := h.payoffService.CreateBankAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create bank account")
		return
	}

	logger.Info("Bank account created", slog.Int64("bank_account_id", account.BankAccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List registered bank accounts
// @Tags bank-accounts
// @Produce  json
// @Success 200 {array} dto.BankAccountResponse
// @Router /bank-accounts [get]
func (h *payoffHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.payoffService.ListBankAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list bank accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankAccountResponse(accounts))
}
