// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercadocesar/storefront/internal/models"
	"github.com/mercadocesar/storefront/internal/utils"
)

// OrderService reads the permanent order history. Orders are created only by
// checkout finalize; nothing here mutates them.
type OrderService struct {
	db *gorm.DB
}

// OrderFilters narrows the administrative order listing.
type OrderFilters struct {
	TipoEntrega string
	DataInicio  *time.Time
	DataFim     *time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Recent returns the user's latest orders, newest first, with frozen lines
// and delivery details preloaded.
func (s *OrderService) Recent(userID uuid.UUID, limit int) ([]models.Pedido, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var pedidos []models.Pedido
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Itens.Produto").Preload("Loja").Preload("Cartao").
		Find(&pedidos).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}
	return pedidos, nil
}

// Get returns one order scoped to its owner. Another user's order answers
// ErrNotFound, indistinguishable from a nonexistent one.
func (s *OrderService) Get(userID, pedidoID uuid.UUID) (*models.Pedido, error) {
	var pedido models.Pedido
	if err := s.db.Where("id = ? AND user_id = ?", pedidoID, userID).
		Preload("Itens.Produto").Preload("Loja").Preload("Cartao").
		First(&pedido).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pedido: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &pedido, nil
}

// ListAll is the staff-side listing across all users, filterable by delivery
// type and creation date range.
func (s *OrderService) ListAll(filters OrderFilters, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Pedido{})

	if filters.TipoEntrega != "" {
		query = query.Where("tipo_entrega = ?", filters.TipoEntrega)
	}
	if filters.DataInicio != nil {
		query = query.Where("created_at >= ?", *filters.DataInicio)
	}
	if filters.DataFim != nil {
		query = query.Where("created_at <= ?", *filters.DataFim)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var pedidos []models.Pedido
	query = utils.ApplySort(query, params, []string{"created_at", "tipo_entrega", "custo_entrega"})
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Itens.Produto").Preload("Loja").
		Find(&pedidos).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	result := utils.CreatePaginationResult(pedidos, total, params)
	return &result, nil
}
