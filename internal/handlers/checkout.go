// internal/handlers/checkout.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mercadocesar/storefront/internal/i18n"
	"github.com/mercadocesar/storefront/internal/services"
	"github.com/mercadocesar/storefront/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// POST /checkout
// Enters checkout: succeeds only with a non-empty active cart.
func (h *CheckoutHandler) Enter(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	carrinho, err := h.checkoutService.Enter(userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"carrinho": carrinho,
		"subtotal": carrinho.Total(),
	})
}

// POST /checkout/domicilio
func (h *CheckoutHandler) ChooseHomeDelivery(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.HomeDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	summary, err := h.checkoutService.ChooseHomeDelivery(userID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}

// POST /checkout/retirada
func (h *CheckoutHandler) ChoosePickup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.PickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	summary, err := h.checkoutService.ChoosePickup(userID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}

// GET /checkout/resumo
func (h *CheckoutHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	summary, err := h.checkoutService.Summary(userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}

// POST /checkout/finalizar
func (h *CheckoutHandler) Finalize(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	pedido, err := h.checkoutService.Finalize(userID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCheckoutConcluido),
		"pedido":  pedido,
		"total":   pedido.Total(),
	})
}

// DELETE /checkout
// Aborts the staged delivery choice; the cart is kept.
func (h *CheckoutHandler) Abort(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	h.checkoutService.Abort(userID)
	utils.SuccessResponse(c, gin.H{"aborted": true})
}

// POST /pedidos/:id/reordenar
func (h *CheckoutHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	pedidoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	carrinho, indisponiveis, err := h.checkoutService.Reorder(userID, pedidoID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"carrinho":            carrinho,
		"total":               carrinho.Total(),
		"itens_indisponiveis": indisponiveis,
	})
}
