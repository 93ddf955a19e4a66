package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// linkHandler handles HTTP requests for entry lettering.
type linkHandler struct {
	linkService portssvc.LinkSvcFacade
}

// newLinkHandler creates a new linkHandler.
func newLinkHandler(linkService portssvc.LinkSvcFacade) *linkHandler {
	return &linkHandler{linkService: linkService}
}

// registerLinkRoutes registers lettering specific routes
func registerLinkRoutes(rg *gin.RouterGroup, linkService portssvc.LinkSvcFacade) {
	h := newLinkHandler(linkService)

	links := rg.Group("/links")
	{
		links.POST("", h.createLink)
		links.GET("/:link_id/letter", h.linkLetter)
	}

	rg.DELETE("/entries/:entry_id/link", h.unlink)
}

// createLink godoc
// @Summary Letter entries together
// @Description Groups entries whose combined balance nets to zero; entries already linked are unlinked first
// @Tags links
// @Accept  json
// @Param   link body dto.CreateLinkRequest true "Entries to letter"
// @Success 204 "Linked"
// @Failure 400 {object} map[string]string "Entries do not net to zero"
// @Router /links [post]
func (h *linkHandler) createLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateLinkRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createLink", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.linkService.CreateLink(c.Request.Context(), req.EntryIDs); err != nil {
		respondError(c, logger, err, "Failed to link entries")
		return
	}

	logger.Info("Entries linked", slog.Int("count", len(req.EntryIDs)))
	c.Status(http.StatusNoContent)
}

// unlink godoc
// @Summary Dissolve an entry's link
// @Tags links
// @Param   entry_id path string true "Entry ID"
// @Success 204 "Unlinked"
// @Router /entries/{entry_id}/link [delete]
func (h *linkHandler) unlink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	if err := h.linkService.Unlink(c.Request.Context(), entryID); err != nil {
		respondError(c, logger, err, "Failed to unlink entry")
		return
	}

	logger.Info("Entry unlinked", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// linkLetter godoc
// @Summary Get a link's display letter
// @Description Returns the link's base-26 code within its year
// @Tags links
// @Produce  json
// @Param   link_id path string true "Link ID"
// @Success 200 {object} map[string]string
// @Router /links/{link_id}/letter [get]
func (h *linkHandler) linkLetter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	linkID := c.Param("link_id")

	letter, err := h.linkService.LinkLetter(c.Request.Context(), linkID)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve link letter")
		return
	}

	c.JSON(http.StatusOK, gin.H{"letter": letter})
}
