// internal/handlers/store.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mercadocesar/storefront/internal/i18n"
	"github.com/mercadocesar/storefront/internal/services"
	"github.com/mercadocesar/storefront/internal/utils"
)

type StoreHandler struct {
	storeService *services.StoreService
}

func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

// GET /lojas
// Lists the active stores offered for pickup.
func (h *StoreHandler) ListActive(c *gin.Context) {
	lojas, err := h.storeService.ListActive()
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, lojas)
}

// GET /admin/lojas
func (h *StoreHandler) ListAll(c *gin.Context) {
	lojas, err := h.storeService.ListAll()
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, lojas)
}

// POST /lojas (admin)
func (h *StoreHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateLojaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	loja, err := h.storeService.Create(&req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, loja)
}

// PATCH /lojas/:id/ativa (admin)
func (h *StoreHandler) ToggleActive(c *gin.Context) {
	lojaID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	loja, err := h.storeService.ToggleActive(lojaID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, loja)
}
