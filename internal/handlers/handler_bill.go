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

// billHandler handles HTTP requests for sales documents.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

// newBillHandler creates a new billHandler.
func newBillHandler(billService portssvc.BillSvcFacade) *billHandler {
	return &billHandler{billService: billService}
}

// registerBillRoutes registers sales document specific routes
func registerBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := newBillHandler(billService)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:bill_id", h.getBill)
		bills.POST("/:bill_id/validate", h.validateBill)
		bills.POST("/:bill_id/cancel", h.cancelBill)
		bills.POST("/:bill_id/convert", h.convertQuotation)
		bills.GET("/:bill_id/rest-to-pay", h.restToPay)
	}
}

// createBill godoc
// @Summary Create a sales document
// @Description Creates a building document with its detail lines
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   bill body dto.CreateBillRequest true "Document"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateBillRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create bill")
		return
	}

	logger.Info("Bill created", slog.String("bill_id", bill.BillID))
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// getBill godoc
// @Summary Get a sales document with its details
// @Tags bills
// @Produce  json
// @Param   bill_id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} map[string]string "Bill not found"
// @Router /bills/{bill_id} [get]
func (h *billHandler) getBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("bill_id")

	bill, err := h.billService.GetBill(c.Request.Context(), billID)
	if err != nil {
		respondError(c, logger, err, "Failed to get bill")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List sales documents
// @Description Lists bills newest first, paginated; status filters by wire label
// @Tags bills
// @Produce  json
// @Param   status query string false "Status filter (BUILDING, VALID, CANCELLED, ARCHIVED)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListBillsResponse
// @Router /bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListBillsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listBills", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	status := domain.BillStatus(-1)
	if params.Status != "" {
		parsed, ok := dto.BillStatusFromLabel(params.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown bill status: " + params.Status})
			return
		}
		status = parsed
	}

	bills, nextToken, err := h.billService.ListBills(c.Request.Context(), status, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list bills")
		return
	}

	c.JSON(http.StatusOK, dto.ListBillsResponse{
		Bills:     dto.ToListBillResponse(bills),
		NextToken: nextToken,
	})
}

// validateBill godoc
// @Summary Validate a sales document
// @Description Numbers the document and, for billing types, generates and closes its accounting entry
// @Tags bills
// @Produce  json
// @Param   bill_id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Document not in building state or has no details"
// @Router /bills/{bill_id}/validate [post]
func (h *billHandler) validateBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("bill_id")

	userID, ok := callerID(c)
	if !ok {
		return
	}

	bill, err := h.billService.ValidateBill(c.Request.Context(), billID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to validate bill")
		return
	}

	logger.Info("Bill validated", slog.String("bill_id", billID))
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// cancelBill godoc
// @Summary Cancel a sales document
// @Description Voids a validated quotation, or cancels a billing document by issuing its credit note
// @Tags bills
// @Produce  json
// @Param   bill_id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse "Credit note issued for the cancelled document"
// @Success 204 "Cancelled"
// @Failure 400 {object} map[string]string "Document cannot be cancelled"
// @Router /bills/{bill_id}/cancel [post]
func (h *billHandler) cancelBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("bill_id")

	userID, ok := callerID(c)
	if !ok {
		return
	}

	creditNote, err := h.billService.CancelBill(c.Request.Context(), billID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to cancel bill")
		return
	}

	logger.Info("Bill cancelled", slog.String("bill_id", billID))
	if creditNote != nil {
		c.JSON(http.StatusOK, dto.ToBillResponse(creditNote))
		return
	}
	c.Status(http.StatusNoContent)
}

// convertQuotation godoc
// @Summary Convert a quotation into a bill
// @Description Turns an accepted quotation into a building bill carrying its details
// @Tags bills
// @Produce  json
// @Param   bill_id path string true "Quotation ID"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Document is not a validated quotation"
// @Router /bills/{bill_id}/convert [post]
func (h *billHandler) convertQuotation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("bill_id")

	userID, ok := callerID(c)
	if !ok {
		return
	}

	bill, err := h.billService.ConvertQuotation(c.Request.Context(), billID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to convert quotation")
		return
	}

	logger.Info("Quotation converted", slog.String("quotation_id", billID), slog.String("bill_id", bill.BillID))
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// restToPay godoc
// @Summary Get the amount still owed on a document
// @Tags bills
// @Produce  json
// @Param   bill_id path string true "Bill ID"
// @Success 200 {object} map[string]string
// @Router /bills/{bill_id}/rest-to-pay [get]
func (h *billHandler) restToPay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	billID := c.Param("bill_id")

	rest, err := h.billService.RestToPay(c.Request.Context(), billID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute rest to pay")
		return
	}

	c.JSON(http.StatusOK, gin.H{"restToPay": rest})
}
