package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// entryHandler handles HTTP requests for accounting entries.
type entryHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(ledgerService portssvc.LedgerSvcFacade) *entryHandler {
	return &entryHandler{ledgerService: ledgerService}
}

// registerEntryRoutes registers ledger entry specific routes
func registerEntryRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newEntryHandler(ledgerService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.POST("/ghost-sweep", h.clearGhostEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
		entries.GET("/:entry_id/serial", h.entrySerial)
		entries.PUT("/:entry_id/lines", h.replaceLines)
		entries.POST("/:entry_id/staged-lines", h.stageLine)
		entries.POST("/:entry_id/staged-lines/remove", h.removeStagedLine)
		entries.POST("/:entry_id/balance", h.balance)
		entries.POST("/:entry_id/close", h.closeEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
		entries.POST("/:entry_id/payment", h.createLinkedPayment)
		entries.POST("/:entry_id/edit-session", h.beginEditSession)
		entries.DELETE("/:entry_id/edit-session", h.endEditSession)
	}

	rg.GET("/fiscal-years/:fiscal_year_id/entries", h.listEntries)
}

// createEntry godoc
// @Summary Create an accounting entry
// @Description Opens a new building entry in the given year and journal
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry header"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid request or finished year"
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create entry")
		return
	}

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get an entry with its lines and balance state
// @Tags entries
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.GetEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entry_id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	entry, lines, err := h.ledgerService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to get entry")
		return
	}

	serial, err := h.ledgerService.EntrySerial(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to serialize entry lines")
		return
	}

	balance, err := h.ledgerService.Balance(c.Request.Context(), entryID, serial)
	if err != nil {
		respondError(c, logger, err, "Failed to compute entry balance")
		return
	}

	c.JSON(http.StatusOK, dto.GetEntryResponse{
		Entry:   dto.ToEntryResponse(entry),
		Lines:   dto.ToEntryLineResponses(lines),
		Serial:  serial,
		Balance: dto.ToBalanceResponse(balance),
	})
}

// listEntries godoc
// @Summary List a year's entries
// @Tags entries
// @Produce  json
// @Param   fiscal_year_id path string true "Fiscal year ID"
// @Param   journalID query int false "Journal filter (0 = all)"
// @Param   closedOnly query bool false "Only closed entries"
// @Success 200 {array} dto.EntryResponse
// @Router /fiscal-years/{fiscal_year_id}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("fiscal_year_id")

	params := dto.ListEntriesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), fiscalYearID, params.JournalID, params.ClosedOnly)
	if err != nil {
		respondError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntryResponse(entries))
}

// entrySerial godoc
// @Summary Get the entry's lines in staged wire form
// @Tags entries
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} map[string]string
// @Router /entries/{entry_id}/serial [get]
func (h *entryHandler) entrySerial(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	serial, err := h.ledgerService.EntrySerial(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to serialize entry lines")
		return
	}

	c.JSON(http.StatusOK, gin.H{"serial": serial})
}

// stageLine godoc
// @Summary Stage one line into a working serial
// @Description Upserts the line into the serial carried in the request and returns the new serial
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Param   line body dto.StageLineRequest true "Line to stage"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /entries/{entry_id}/staged-lines [post]
func (h *entryHandler) stageLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	req := dto.StageLineRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for stageLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	serial, err := h.ledgerService.StageLine(c.Request.Context(), entryID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to stage line")
		return
	}

	c.JSON(http.StatusOK, gin.H{"serial": serial})
}

// removeStagedLine godoc
// @Summary Remove one line from a working serial
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Param   removal body dto.RemoveStagedLineRequest true "Line to drop"
// @Success 200 {object} map[string]string
// @Router /entries/{entry_id}/staged-lines/remove [post]
func (h *entryHandler) removeStagedLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.RemoveStagedLineRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for removeStagedLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	serial, err := h.ledgerService.RemoveStagedLine(req.Serial, req.LineSerialID)
	if err != nil {
		respondError(c, logger, err, "Failed to remove staged line")
		return
	}

	c.JSON(http.StatusOK, gin.H{"serial": serial})
}

// replaceLines godoc
// @Summary Replace the entry's lines from a working serial
// @Tags entries
// @Accept  json
// @Param   entry_id path string true "Entry ID"
// @Param   lines body dto.ReplaceLinesRequest true "Full serial to persist"
// @Success 204 "Lines replaced"
// @Failure 400 {object} map[string]string "Closed entry or invalid serial"
// @Router /entries/{entry_id}/lines [put]
func (h *entryHandler) replaceLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	req := dto.ReplaceLinesRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for replaceLines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.ledgerService.ReplaceLines(c.Request.Context(), entryID, req.Serial, userID); err != nil {
		respondError(c, logger, err, "Failed to replace entry lines")
		return
	}

	logger.Info("Entry lines replaced", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// balance godoc
// @Summary Compare a working serial against the persisted lines
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Param   serial body dto.BalanceRequest true "Working serial"
// @Success 200 {object} dto.BalanceResponse
// @Router /entries/{entry_id}/balance [post]
func (h *entryHandler) balance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	req := dto.BalanceRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for balance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	state, err := h.ledgerService.Balance(c.Request.Context(), entryID, req.Serial)
	if err != nil {
		respondError(c, logger, err, "Failed to compute entry balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(state))
}

// closeEntry godoc
// @Summary Close an entry
// @Description Assigns the entry its sequence number and marks it immutable
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Param   options body dto.CloseEntryRequest true "Close options"
// @Success 200 {object} map[string]int "Assigned sequence number"
// @Failure 400 {object} map[string]string "Unbalanced entry"
// @Failure 409 {object} map[string]string "Entry already closed"
// @Router /entries/{entry_id}/close [post]
func (h *entryHandler) closeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	req := dto.CloseEntryRequest{CheckBalance: true}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for closeEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	num, err := h.ledgerService.CloseEntry(c.Request.Context(), entryID, req.CheckBalance, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to close entry")
		return
	}

	logger.Info("Entry closed", slog.String("entry_id", entryID), slog.Int("num", num))
	c.JSON(http.StatusOK, gin.H{"num": num})
}

// deleteEntry godoc
// @Summary Delete an unclosed entry
// @Tags entries
// @Param   entry_id path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 409 {object} map[string]string "Entry is closed"
// @Router /entries/{entry_id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), entryID); err != nil {
		respondError(c, logger, err, "Failed to delete entry")
		return
	}

	logger.Info("Entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// reverseEntry godoc
// @Summary Reverse an unclosed entry in place
// @Description Negates every line amount of the entry
// @Tags entries
// @Param   entry_id path string true "Entry ID"
// @Success 204 "Reversed"
// @Failure 400 {object} map[string]string "Entry is closed"
// @Router /entries/{entry_id}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.ledgerService.ReverseEntry(c.Request.Context(), entryID, userID); err != nil {
		respondError(c, logger, err, "Failed to reverse entry")
		return
	}

	logger.Info("Entry reversed", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// createLinkedPayment godoc
// @Summary Create the inverse payment entry
// @Description Creates and links a payment entry mirroring the entry's third lines; returns the new entry with its staged lines
// @Tags entries
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Entry has no third lines or already has cash lines"
// @Router /entries/{entry_id}/payment [post]
func (h *entryHandler) createLinkedPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	userID, ok := callerID(c)
	if !ok {
		return
	}

	payment, serial, err := h.ledgerService.CreateLinkedPayment(c.Request.Context(), entryID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create linked payment")
		return
	}

	logger.Info("Linked payment created", slog.String("entry_id", entryID), slog.String("payment_entry_id", payment.EntryID))
	c.JSON(http.StatusCreated, gin.H{
		"entry":  dto.ToEntryResponse(payment),
		"serial": serial,
	})
}

// clearGhostEntries godoc
// @Summary Delete lineless unclosed entries
// @Tags entries
// @Produce  json
// @Success 200 {object} map[string]int "Number of entries swept"
// @Router /entries/ghost-sweep [post]
func (h *entryHandler) clearGhostEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	swept, err := h.ledgerService.ClearGhostEntries(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to sweep ghost entries")
		return
	}

	logger.Info("Ghost entries swept", slog.Int("swept", swept))
	c.JSON(http.StatusOK, gin.H{"swept": swept})
}

// beginEditSession godoc
// @Summary Begin an interactive edit session
// @Description Shields the entry from the ghost sweep while it is being staged
// @Tags entries
// @Param   entry_id path string true "Entry ID"
// @Success 204 "Session started"
// @Router /entries/{entry_id}/edit-session [post]
func (h *entryHandler) beginEditSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	if err := h.ledgerService.BeginEditSession(c.Request.Context(), entryID); err != nil {
		respondError(c, logger, err, "Failed to begin edit session")
		return
	}

	c.Status(http.StatusNoContent)
}

// endEditSession godoc
// @Summary End an interactive edit session
// @Tags entries
// @Param   entry_id path string true "Entry ID"
// @Success 204 "Session ended"
// @Router /entries/{entry_id}/edit-session [delete]
func (h *entryHandler) endEditSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	if err := h.ledgerService.EndEditSession(c.Request.Context(), entryID); err != nil {
		respondError(c, logger, err, "Failed to end edit session")
		return
	}

	c.Status(http.StatusNoContent)
}
