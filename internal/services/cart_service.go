// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercadocesar/storefront/internal/models"
	"github.com/mercadocesar/storefront/internal/session"
)

// CartService manages the single active cart per user. Carts are ephemeral:
// totals are computed live from catalog prices and nothing is frozen until
// checkout creates an order. Emptying the cart also drops any staged checkout,
// so a delivery choice never outlives the cart it was made for.
type CartService struct {
	db      *gorm.DB
	staging *session.StagingStore
}

func NewCartService(db *gorm.DB, staging *session.StagingStore) *CartService {
	return &CartService{db: db, staging: staging}
}

// GetOrCreateActive returns the user's active cart, creating one when none
// exists. The partial unique index on carrinhos(user_id) backstops the
// create window under concurrent requests.
func (s *CartService) GetOrCreateActive(userID uuid.UUID) (*models.Carrinho, error) {
	var carrinho models.Carrinho
	err := s.db.Where("user_id = ? AND ativo = ?", userID, true).
		Preload("Itens.Produto").
		First(&carrinho).Error

	if err == nil {
		return &carrinho, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	carrinho = models.Carrinho{UserID: userID, Ativo: true}
	if err := s.db.Create(&carrinho).Error; err != nil {
		// Lost the race against another request of the same user
		findErr := s.db.Where("user_id = ? AND ativo = ?", userID, true).
			Preload("Itens.Produto").
			First(&carrinho).Error
		if findErr != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
	}
	return &carrinho, nil
}

// Add puts quantidade units of a product into the active cart. Adding a
// product already in the cart increments its line instead of creating a
// duplicate.
func (s *CartService) Add(userID, produtoID uuid.UUID, quantidade int) (*models.Carrinho, error) {
	if quantidade < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	var produto models.Produto
	if err := s.db.First(&produto, produtoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("produto: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	carrinho, err := s.GetOrCreateActive(userID)
	if err != nil {
		return nil, err
	}

	var item models.ItemCarrinho
	err = s.db.Where("carrinho_id = ? AND produto_id = ?", carrinho.ID, produtoID).First(&item).Error
	switch {
	case err == nil:
		if err := s.db.Model(&item).
			UpdateColumn("quantidade", gorm.Expr("quantidade + ?", quantidade)).Error; err != nil {
			return nil, fmt.Errorf("failed to increment cart item: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.ItemCarrinho{
			CarrinhoID: carrinho.ID,
			ProdutoID:  produtoID,
			Quantidade: quantidade,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.GetOrCreateActive(userID)
}

// Remove takes quantidade units of a product out of the active cart. When
// the line reaches zero (or quantidade covers the whole line) the line is
// deleted; zero-quantity lines are never persisted.
func (s *CartService) Remove(userID, produtoID uuid.UUID, quantidade int) (*models.Carrinho, error) {
	if quantidade < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	carrinho, err := s.GetOrCreateActive(userID)
	if err != nil {
		return nil, err
	}

	var item models.ItemCarrinho
	if err := s.db.Where("carrinho_id = ? AND produto_id = ?", carrinho.ID, produtoID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if quantidade >= item.Quantidade {
		if err := s.db.Delete(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
	} else {
		if err := s.db.Model(&item).
			UpdateColumn("quantidade", gorm.Expr("quantidade - ?", quantidade)).Error; err != nil {
			return nil, fmt.Errorf("failed to decrement cart item: %w", err)
		}
	}

	return s.reloadAfterRemoval(userID)
}

// RemoveLine drops a product's entire line regardless of quantity.
func (s *CartService) RemoveLine(userID, produtoID uuid.UUID) (*models.Carrinho, error) {
	carrinho, err := s.GetOrCreateActive(userID)
	if err != nil {
		return nil, err
	}

	result := s.db.Where("carrinho_id = ? AND produto_id = ?", carrinho.ID, produtoID).
		Delete(&models.ItemCarrinho{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("item: %w", ErrNotFound)
	}

	return s.reloadAfterRemoval(userID)
}

// Clear empties the active cart without deactivating it. The staged checkout,
// if any, is dropped along with the items.
func (s *CartService) Clear(userID uuid.UUID) (*models.Carrinho, error) {
	carrinho, err := s.GetOrCreateActive(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("carrinho_id = ?", carrinho.ID).
		Delete(&models.ItemCarrinho{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	return s.reloadAfterRemoval(userID)
}

// reloadAfterRemoval reloads the cart and drops the staged checkout once the
// cart has been emptied.
func (s *CartService) reloadAfterRemoval(userID uuid.UUID) (*models.Carrinho, error) {
	carrinho, err := s.GetOrCreateActive(userID)
	if err != nil {
		return nil, err
	}
	if len(carrinho.Itens) == 0 {
		s.staging.Clear(userID)
	}
	return carrinho, nil
}

// deactivate retires a cart after its order is committed. Runs inside the
// finalize transaction.
func (s *CartService) deactivate(tx *gorm.DB, carrinhoID uuid.UUID) error {
	if err := tx.Model(&models.Carrinho{}).Where("id = ?", carrinhoID).
		Update("ativo", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate cart: %w", err)
	}
	return nil
}
