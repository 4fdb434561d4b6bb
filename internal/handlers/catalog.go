// internal/handlers/catalog.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mercadocesar/storefront/internal/i18n"
	"github.com/mercadocesar/storefront/internal/services"
	"github.com/mercadocesar/storefront/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /busca?q=arroz&categoria=Alimentos,Limpeza
func (h *CatalogHandler) Search(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filters := services.SearchFilters{
		Termo: c.Query("q"),
	}
	if categorias := c.Query("categoria"); categorias != "" {
		filters.Categorias = strings.Split(categorias, ",")
	}

	result, err := h.catalogService.Search(filters, params)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// POST /busca
// The storefront search form posts its filters as a JSON body.
func (h *CatalogHandler) SearchPost(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	params := utils.GetPaginationParams(c)

	var body struct {
		Termo      string   `json:"termo"`
		Categorias []string `json:"categorias"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	result, err := h.catalogService.Search(services.SearchFilters{
		Termo:      body.Termo,
		Categorias: body.Categorias,
	}, params)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}

// GET /produtos/:id
func (h *CatalogHandler) GetProduto(c *gin.Context) {
	produtoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	produto, err := h.catalogService.GetByID(produtoID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, produto)
}

// GET /categorias
func (h *CatalogHandler) Categories(c *gin.Context) {
	categorias, err := h.catalogService.Categories()
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, categorias)
}

// POST /produtos (staff)
func (h *CatalogHandler) CreateProduto(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProdutoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	produto, err := h.catalogService.Create(&req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProdutoCreated),
		"produto": produto,
	})
}

// PUT /produtos/:id (staff)
func (h *CatalogHandler) UpdateProduto(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	produtoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProdutoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	produto, err := h.catalogService.Update(produtoID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProdutoUpdated),
		"produto": produto,
	})
}

// DELETE /produtos/:id (staff)
func (h *CatalogHandler) DeleteProduto(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	produtoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(produtoID); err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProdutoDeleted),
	})
}
