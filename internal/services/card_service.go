// internal/services/card_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercadocesar/storefront/internal/models"
	"github.com/mercadocesar/storefront/internal/utils"
)

// CardService registers and lists card metadata. The PAN and CVV arrive in
// the request, are validated in memory and discarded; only the brand, last
// four digits and expiry are stored.
type CardService struct {
	db *gorm.DB
}

type RegisterCardRequest struct {
	Numero      string `json:"numero" validate:"required"`
	CVV         string `json:"cvv" validate:"required"`
	MesValidade int    `json:"mes_validade" validate:"required"`
	AnoValidade int    `json:"ano_validade" validate:"required"`
	Apelido     string `json:"apelido" validate:"max=50"`
}

func NewCardService(db *gorm.DB) *CardService {
	return &CardService{db: db}
}

// Register validates the full card data and persists the metadata. The same
// card (user, last four, expiry) cannot be registered twice; the composite
// unique index backstops the pre-check.
func (s *CardService) Register(userID uuid.UUID, req *RegisterCardRequest) (*models.Cartao, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	numero, err := utils.ValidateCardNumber(req.Numero)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrValidation)
	}
	if err := utils.ValidateCVV(req.CVV); err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrValidation)
	}
	ano, err := utils.ValidateExpiry(req.MesValidade, req.AnoValidade)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrValidation)
	}

	ultimos := utils.Last4(numero)

	var count int64
	s.db.Model(&models.Cartao{}).
		Where("user_id = ? AND ultimos_digitos = ? AND mes_validade = ? AND ano_validade = ?",
			userID, ultimos, req.MesValidade, ano).
		Count(&count)
	if count > 0 {
		return nil, ErrCartaoDuplicado
	}

	cartao := models.Cartao{
		UserID:         userID,
		Bandeira:       utils.CardBrand(numero),
		UltimosDigitos: ultimos,
		MesValidade:    req.MesValidade,
		AnoValidade:    ano,
		Apelido:        req.Apelido,
	}
	if err := s.db.Create(&cartao).Error; err != nil {
		return nil, fmt.Errorf("failed to register card: %w", err)
	}
	return &cartao, nil
}

// List returns the user's registered cards, newest first.
func (s *CardService) List(userID uuid.UUID) ([]models.Cartao, error) {
	var cartoes []models.Cartao
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cartoes).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cartoes, nil
}

// Delete removes a card scoped to its owner. Past orders keep their
// reference; only future checkouts lose the option.
func (s *CardService) Delete(userID, cartaoID uuid.UUID) error {
	var cartao models.Cartao
	if err := s.db.Where("id = ? AND user_id = ?", cartaoID, userID).First(&cartao).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cartao: %w", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&cartao).Error; err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}
