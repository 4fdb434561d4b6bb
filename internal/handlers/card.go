// internal/handlers/card.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mercadocesar/storefront/internal/i18n"
	"github.com/mercadocesar/storefront/internal/services"
	"github.com/mercadocesar/storefront/internal/utils"
)

type CardHandler struct {
	cardService *services.CardService
}

func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// POST /cartoes
func (h *CardHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.RegisterCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	cartao, err := h.cardService.Register(userID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartaoCriado),
		"cartao":  cartao,
	})
}

// GET /cartoes
func (h *CardHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	cartoes, err := h.cardService.List(userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, cartoes)
}

// DELETE /cartoes/:id
func (h *CardHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	cartaoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.cardService.Delete(userID, cartaoID); err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartaoRemovido),
	})
}
