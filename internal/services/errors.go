// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors shared across services. Handlers map them to HTTP status
// codes with errors.Is/As; user-facing text comes from the i18n layer.
var (
	// ErrNotFound also covers resources that exist but belong to another
	// user, so ownership is never leaked through error messages.
	ErrNotFound = errors.New("not found")

	ErrValidation = errors.New("validation")

	ErrCarrinhoVazio        = errors.New("active cart is empty")
	ErrCEPForaAreaEntrega   = errors.New("postal code outside the delivery area")
	ErrCheckoutNaoPreparado = errors.New("no staged checkout for this session")
	ErrCartaoDuplicado      = errors.New("card already registered")
)

// InsufficientStockError reports a single product whose requested quantity
// exceeds the total ledger stock.
type InsufficientStockError struct {
	ProdutoID  uuid.UUID `json:"produto_id"`
	Nome       string    `json:"nome"`
	Solicitado int       `json:"solicitado"`
	Disponivel int       `json:"disponivel"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.Nome, e.Solicitado, e.Disponivel)
}

// StockValidationError carries the itemized list of failing cart lines so a
// rejected finalize can show every shortage at once.
type StockValidationError struct {
	Faltas []InsufficientStockError `json:"faltas"`
}

func (e *StockValidationError) Error() string {
	return fmt.Sprintf("insufficient stock for %d item(s)", len(e.Faltas))
}
