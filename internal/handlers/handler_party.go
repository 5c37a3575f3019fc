package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/dto"
	"github.com/saralbooks/bank_recon_app/internal/middleware"
)

// partyHandler manages the party directory.
type partyHandler struct {
	directoryService portssvc.DirectorySvcFacade
}

func registerPartyRoutes(rg *gin.RouterGroup, directoryService portssvc.DirectorySvcFacade) {
	h := &partyHandler{directoryService: directoryService}

	parties := rg.Group("/parties")
	{
		parties.GET("", h.listParties)
		parties.POST("", h.createParty)
	}
}

func (h *partyHandler) listParties(c *gin.Context) {
	parties, err := h.directoryService.ListParties(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list parties")
		return
	}
	c.JSON(http.StatusOK, gin.H{"parties": dto.ToPartyResponses(parties)})
}

func (h *partyHandler) createParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createParty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	party, err := h.directoryService.AddParty(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err, "Failed to create party")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}
