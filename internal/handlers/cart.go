// internal/handlers/cart.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mercadocesar/storefront/internal/i18n"
	"github.com/mercadocesar/storefront/internal/models"
	"github.com/mercadocesar/storefront/internal/services"
	"github.com/mercadocesar/storefront/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func cartPayload(carrinho *models.Carrinho) gin.H {
	return gin.H{
		"carrinho":         carrinho,
		"total":            carrinho.Total(),
		"quantidade_itens": carrinho.QuantidadeItens(),
	}
}

// GET /carrinho
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	carrinho, err := h.cartService.GetOrCreateActive(userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, cartPayload(carrinho))
}

// POST /carrinho/itens
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req struct {
		ProdutoID  uuid.UUID `json:"produto_id" validate:"required"`
		Quantidade int       `json:"quantidade"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if req.Quantidade == 0 {
		req.Quantidade = 1
	}

	carrinho, err := h.cartService.Add(userID, req.ProdutoID, req.Quantidade)
	if err != nil {
		serviceError(c, err)
		return
	}

	payload := cartPayload(carrinho)
	payload["message"] = i18n.T(lang, i18n.KeyItemAdicionado)
	utils.SuccessResponse(c, payload)
}

// DELETE /carrinho/itens/:produto_id?quantidade=2
// Without a quantidade the whole line is removed.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	produtoID, ok := pathUUID(c, "produto_id")
	if !ok {
		return
	}

	var carrinho *models.Carrinho
	var err error

	if quantidadeStr := c.Query("quantidade"); quantidadeStr != "" {
		quantidade, convErr := strconv.Atoi(quantidadeStr)
		if convErr != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "quantidade"), nil)
			return
		}
		carrinho, err = h.cartService.Remove(userID, produtoID, quantidade)
	} else {
		carrinho, err = h.cartService.RemoveLine(userID, produtoID)
	}

	if err != nil {
		serviceError(c, err)
		return
	}

	payload := cartPayload(carrinho)
	payload["message"] = i18n.T(lang, i18n.KeyItemRemovido)
	utils.SuccessResponse(c, payload)
}

// DELETE /carrinho
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	carrinho, err := h.cartService.Clear(userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, cartPayload(carrinho))
}
