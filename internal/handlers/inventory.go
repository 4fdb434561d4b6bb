// internal/handlers/inventory.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mercadocesar/storefront/internal/i18n"
	"github.com/mercadocesar/storefront/internal/services"
	"github.com/mercadocesar/storefront/internal/utils"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// POST /estoque (staff)
// Sets the quantity for a (produto, armazem) pair, creating the ledger row
// on first entry.
func (h *InventoryHandler) SetStock(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	entry, err := h.inventoryService.SetStock(&req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyEstoqueAtualizado),
		"estoque": entry,
	})
}

// GET /estoque-baixo (staff)
func (h *InventoryHandler) LowStock(c *gin.Context) {
	report, err := h.inventoryService.BelowThreshold()
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, report)
}

// GET /produtos/:id/estoque
func (h *InventoryHandler) TotalStock(c *gin.Context) {
	produtoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	total, err := h.inventoryService.TotalStock(produtoID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"produto_id": produtoID,
		"disponivel": total,
	})
}

// POST /armazens (staff)
func (h *InventoryHandler) CreateArmazem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateArmazemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	armazem, err := h.inventoryService.CreateArmazem(&req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, armazem)
}

// GET /armazens (staff)
func (h *InventoryHandler) ListArmazens(c *gin.Context) {
	armazens, err := h.inventoryService.ListArmazens()
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, armazens)
}
