package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/dto"
)

// mappingHandler exposes the learned mapping store read-only; writes only
// happen through the learning engine.
type mappingHandler struct {
	mappingService portssvc.MappingSvcFacade
}

func registerMappingRoutes(rg *gin.RouterGroup, mappingService portssvc.MappingSvcFacade) {
	h := &mappingHandler{mappingService: mappingService}

	mappings := rg.Group("/mappings")
	{
		mappings.GET("", h.listMappings)
		mappings.GET("/resolve", h.resolve)
	}
}

func (h *mappingHandler) listMappings(c *gin.Context) {
	mappings, err := h.mappingService.ListMappings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list mappings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"mappings": dto.ToMappingResponses(mappings)})
}

// resolve answers "what name would this narration fragment map to" for
// debugging and client-side previews.
func (h *mappingHandler) resolve(c *gin.Context) {
	candidate := strings.TrimSpace(c.Query("candidate"))
	if candidate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate query parameter is required"})
		return
	}

	name, found, err := h.mappingService.Resolve(c.Request.Context(), candidate)
	if err != nil {
		respondError(c, err, "Failed to resolve candidate")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"candidate": candidate,
		"found":     found,
		"name":      name,
	})
}
