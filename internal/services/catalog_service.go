// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/mercadocesar/storefront/internal/models"
	"github.com/mercadocesar/storefront/internal/utils"
)

// CatalogService serves product search and the staff-side catalog CRUD.
type CatalogService struct {
	db        *gorm.DB
	inventory *InventoryService
}

type CreateProdutoRequest struct {
	Codigo        string   `json:"codigo" validate:"required,max=30"`
	Nome          string   `json:"nome" validate:"required,max=100"`
	Descricao     string   `json:"descricao" validate:"required,max=255"`
	Categoria     string   `json:"categoria" validate:"required,max=50"`
	PrecoCusto    float64  `json:"preco_custo" validate:"min=0"`
	PrecoVenda    float64  `json:"preco_venda" validate:"min=0"`
	UnidadeMedida string   `json:"unidade_medida" validate:"required,max=20"`
	Imagens       []string `json:"imagens" validate:"omitempty,dive,url"`
}

type UpdateProdutoRequest struct {
	Nome          *string  `json:"nome" validate:"omitempty,max=100"`
	Descricao     *string  `json:"descricao" validate:"omitempty,max=255"`
	Categoria     *string  `json:"categoria" validate:"omitempty,max=50"`
	PrecoCusto    *float64 `json:"preco_custo" validate:"omitempty,min=0"`
	PrecoVenda    *float64 `json:"preco_venda" validate:"omitempty,min=0"`
	UnidadeMedida *string  `json:"unidade_medida" validate:"omitempty,max=20"`
	Imagens       []string `json:"imagens" validate:"omitempty,dive,url"`
}

// SearchFilters narrows a catalog search. Termo matches name, description and
// code case-insensitively; an empty termo with no filters lists everything.
type SearchFilters struct {
	Termo      string
	Categorias []string
}

// ProdutoComEstoque decorates a catalog row with its cross-warehouse total.
type ProdutoComEstoque struct {
	models.Produto
	EstoqueDisponivel int `json:"estoque_disponivel"`
}

func NewCatalogService(db *gorm.DB, inventory *InventoryService) *CatalogService {
	return &CatalogService{db: db, inventory: inventory}
}

// Search runs the storefront product search with pagination. Results carry
// the total available stock so the front end can flag unavailable items.
func (s *CatalogService) Search(filters SearchFilters, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Produto{})

	if termo := strings.TrimSpace(filters.Termo); termo != "" {
		like := "%" + strings.ToLower(termo) + "%"
		query = query.Where(
			"LOWER(nome) LIKE ? OR LOWER(descricao) LIKE ? OR LOWER(codigo) LIKE ?",
			like, like, like,
		)
	}
	if len(filters.Categorias) > 0 {
		query = query.Where("categoria IN ?", filters.Categorias)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var produtos []models.Produto
	query = utils.ApplySort(query, params, []string{"nome", "preco_venda", "categoria", "created_at"})
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Estoques").Find(&produtos).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	decorated := make([]ProdutoComEstoque, 0, len(produtos))
	for _, p := range produtos {
		decorated = append(decorated, ProdutoComEstoque{
			Produto:           p,
			EstoqueDisponivel: p.EstoqueTotal(),
		})
	}

	result := utils.CreatePaginationResult(decorated, total, params)
	return &result, nil
}

// GetByID returns one product with its stock total.
func (s *CatalogService) GetByID(produtoID uuid.UUID) (*ProdutoComEstoque, error) {
	var produto models.Produto
	if err := s.db.Preload("Estoques.Armazem").First(&produto, produtoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("produto: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &ProdutoComEstoque{
		Produto:           produto,
		EstoqueDisponivel: produto.EstoqueTotal(),
	}, nil
}

// Categories lists the distinct categories present in the catalog.
func (s *CatalogService) Categories() ([]string, error) {
	var categorias []string
	if err := s.db.Model(&models.Produto{}).
		Distinct("categoria").
		Order("categoria ASC").
		Pluck("categoria", &categorias).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categorias, nil
}

// Create adds a catalog record. Code, name and description must each be
// unique; the database constraint backstops the pre-checks.
func (s *CatalogService) Create(req *CreateProdutoRequest) (*models.Produto, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	s.db.Model(&models.Produto{}).
		Where("codigo = ? OR nome = ? OR descricao = ?", req.Codigo, req.Nome, req.Descricao).
		Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("codigo, nome and descricao must be unique: %w", ErrValidation)
	}

	produto := models.Produto{
		Codigo:        req.Codigo,
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		Categoria:     req.Categoria,
		PrecoCusto:    req.PrecoCusto,
		PrecoVenda:    req.PrecoVenda,
		UnidadeMedida: req.UnidadeMedida,
		Imagens:       pq.StringArray(req.Imagens),
	}
	if err := s.db.Create(&produto).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &produto, nil
}

// Update patches the mutable fields of a product. Past order lines are frozen
// copies, so a price change here never rewrites purchase history.
func (s *CatalogService) Update(produtoID uuid.UUID, req *UpdateProdutoRequest) (*models.Produto, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var produto models.Produto
	if err := s.db.First(&produto, produtoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("produto: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Nome != nil {
		updates["nome"] = *req.Nome
	}
	if req.Descricao != nil {
		updates["descricao"] = *req.Descricao
	}
	if req.Categoria != nil {
		updates["categoria"] = *req.Categoria
	}
	if req.PrecoCusto != nil {
		updates["preco_custo"] = *req.PrecoCusto
	}
	if req.PrecoVenda != nil {
		updates["preco_venda"] = *req.PrecoVenda
	}
	if req.UnidadeMedida != nil {
		updates["unidade_medida"] = *req.UnidadeMedida
	}
	if req.Imagens != nil {
		updates["imagens"] = pq.StringArray(req.Imagens)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&produto).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}
	return &produto, nil
}

// Delete soft-deletes a product. Existing order lines keep their frozen copy.
func (s *CatalogService) Delete(produtoID uuid.UUID) error {
	result := s.db.Delete(&models.Produto{}, produtoID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("produto: %w", ErrNotFound)
	}
	return nil
}
