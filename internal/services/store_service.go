// internal/services/store_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercadocesar/storefront/internal/models"
	"github.com/mercadocesar/storefront/internal/utils"
)

// StoreService manages the physical pickup locations.
type StoreService struct {
	db *gorm.DB
}

type CreateLojaRequest struct {
	Nome              string `json:"nome" validate:"required,max=100"`
	Endereco          string `json:"endereco" validate:"required,max=255"`
	Numero            string `json:"numero" validate:"max=20"`
	Bairro            string `json:"bairro" validate:"max=100"`
	Cidade            string `json:"cidade" validate:"required,max=100"`
	Estado            string `json:"estado" validate:"required,len=2"`
	PrazoRetiradaDias int    `json:"prazo_retirada_dias" validate:"min=0"`
}

func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{db: db}
}

// ListActive returns the stores offered at checkout.
func (s *StoreService) ListActive() ([]models.Loja, error) {
	var lojas []models.Loja
	if err := s.db.Where("ativa = ?", true).
		Order("nome ASC").
		Find(&lojas).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return lojas, nil
}

// ListAll returns every store, active or not, for the admin screens.
func (s *StoreService) ListAll() ([]models.Loja, error) {
	var lojas []models.Loja
	if err := s.db.Order("nome ASC").Find(&lojas).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return lojas, nil
}

func (s *StoreService) Create(req *CreateLojaRequest) (*models.Loja, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	loja := models.Loja{
		Nome:              req.Nome,
		Endereco:          req.Endereco,
		Numero:            req.Numero,
		Bairro:            req.Bairro,
		Cidade:            req.Cidade,
		Estado:            req.Estado,
		PrazoRetiradaDias: req.PrazoRetiradaDias,
		Ativa:             true,
	}
	if err := s.db.Create(&loja).Error; err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return &loja, nil
}

// ToggleActive flips a store's availability. Deactivating a store removes it
// from future checkouts; past pickup orders keep their reference.
func (s *StoreService) ToggleActive(lojaID uuid.UUID) (*models.Loja, error) {
	var loja models.Loja
	if err := s.db.First(&loja, lojaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("loja: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&loja).Update("ativa", !loja.Ativa).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle store: %w", err)
	}
	return &loja, nil
}
