package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := &inventoryHandler{inventoryService: inventoryService}

	ingredients := rg.Group("/ingredients")
	{
		ingredients.GET("", h.listIngredients)
		ingredients.POST("/:ingredientId/restock", h.restockIngredient)
	}
}

// listIngredients godoc
// @Summary List ingredients
// @Description Current stock levels with low-stock flags.
// @Tags ingredients
// @Produce  json
// @Success 200 {array} dto.IngredientResponse
// @Security BearerAuth
// @Router /ingredients [get]
func (h *inventoryHandler) listIngredients(c *gin.Context) {
	items, err := h.inventoryService.ListIngredients(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list ingredients")
		return
	}
	c.JSON(http.StatusOK, dto.ToIngredientResponses(items))
}

// restockIngredient godoc
// @Summary Restock an ingredient
// @Tags ingredients
// @Accept  json
// @Produce  json
// @Param   ingredientId path string true "Ingredient ID"
// @Param   request body dto.RestockRequest true "Quantity to add"
// @Success 200 {object} dto.IngredientResponse
// @Failure 400 {object} map[string]string "Quantity must be positive"
// @Failure 404 {object} map[string]string "Ingredient not found"
// @Security BearerAuth
// @Router /ingredients/{ingredientId}/restock [post]
func (h *inventoryHandler) restockIngredient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RestockIngredient", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	operator, ok := operatorOrAbort(c)
	if !ok {
		return
	}

	ingredient, err := h.inventoryService.RestockIngredient(c.Request.Context(), c.Param("ingredientId"), req.Quantity, operator)
	if err != nil {
		respondError(c, err, "Failed to restock ingredient")
		return
	}
	c.JSON(http.StatusOK, dto.ToIngredientResponse(ingredient))
}
