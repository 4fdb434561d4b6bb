// internal/services/checkout_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercadocesar/storefront/internal/database"
	"github.com/mercadocesar/storefront/internal/models"
	"github.com/mercadocesar/storefront/internal/session"
	"github.com/mercadocesar/storefront/internal/utils"
)

// CheckoutService orchestrates the two-step purchase flow: a delivery choice
// is staged in session memory, then finalize turns the active cart into a
// permanent order inside a single transaction. Stock is validated at both
// steps but only debited at finalize.
type CheckoutService struct {
	db        *gorm.DB
	carts     *CartService
	inventory *InventoryService
	staging   *session.StagingStore
}

type HomeDeliveryRequest struct {
	CEP         string `json:"cep" validate:"required,cep"`
	Endereco    string `json:"endereco" validate:"required,max=255"`
	Numero      string `json:"numero" validate:"required,max=20"`
	Complemento string `json:"complemento" validate:"max=100"`
	Bairro      string `json:"bairro" validate:"required,max=100"`
	Cidade      string `json:"cidade" validate:"required,max=100"`
	Estado      string `json:"estado" validate:"required,len=2"`
}

type PickupRequest struct {
	LojaID uuid.UUID `json:"loja_id" validate:"required"`
}

type FinalizeRequest struct {
	CartaoID uuid.UUID `json:"cartao_id" validate:"required"`
}

// CheckoutSummary mirrors the confirmation screen: the live cart plus the
// staged delivery choice and its derived costs. It is the staged counterpart
// of a confirmed Pedido behind the models.ResumoCompra view.
type CheckoutSummary struct {
	Carrinho     *models.Carrinho        `json:"carrinho"`
	TipoEntrega  models.TipoEntrega      `json:"tipo_entrega"`
	Pendente     session.PendingCheckout `json:"entrega"`
	Loja         *models.Loja            `json:"loja,omitempty"`
	CustoEntrega float64                 `json:"custo_entrega"`
	PrazoDias    int                     `json:"prazo_dias"`
}

var _ models.ResumoCompra = (*CheckoutSummary)(nil)

// LinhasCompra prices the cart lines live from the catalog; nothing is frozen
// until finalize.
func (cs *CheckoutSummary) LinhasCompra() []models.LinhaCompra {
	linhas := make([]models.LinhaCompra, 0, len(cs.Carrinho.Itens))
	for _, item := range cs.Carrinho.Itens {
		linhas = append(linhas, models.LinhaCompra{
			ProdutoID:     item.ProdutoID,
			Nome:          item.Produto.Nome,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.Produto.PrecoVenda,
		})
	}
	return linhas
}

func (cs *CheckoutSummary) Subtotal() float64 {
	return cs.Carrinho.Total()
}

func (cs *CheckoutSummary) Total() float64 {
	return cs.Subtotal() + cs.CustoEntrega
}

// MarshalJSON inlines the derived totals so the confirmation screen payload
// carries them alongside the staged fields.
func (cs *CheckoutSummary) MarshalJSON() ([]byte, error) {
	type alias CheckoutSummary
	return json.Marshal(struct {
		*alias
		Subtotal float64 `json:"subtotal"`
		Total    float64 `json:"total"`
	}{(*alias)(cs), cs.Subtotal(), cs.Total()})
}

func NewCheckoutService(db *gorm.DB, carts *CartService, inventory *InventoryService, staging *session.StagingStore) *CheckoutService {
	return &CheckoutService{
		db:        db,
		carts:     carts,
		inventory: inventory,
		staging:   staging,
	}
}

// Enter guards the checkout entrance: an empty active cart cannot proceed.
func (s *CheckoutService) Enter(userID uuid.UUID) (*models.Carrinho, error) {
	carrinho, err := s.carts.GetOrCreateActive(userID)
	if err != nil {
		return nil, err
	}
	if len(carrinho.Itens) == 0 {
		return nil, ErrCarrinhoVazio
	}
	return carrinho, nil
}

// ChooseHomeDelivery stages a home delivery. The CEP must parse and fall
// inside the delivery area; cost and lead time are derived from its prefix
// and frozen into the staged entry.
func (s *CheckoutService) ChooseHomeDelivery(userID uuid.UUID, req *HomeDeliveryRequest) (*CheckoutSummary, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	carrinho, err := s.Enter(userID)
	if err != nil {
		return nil, err
	}

	cep, err := utils.NormalizeCEP(req.CEP)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrValidation)
	}
	if !utils.CEPServiceable(cep) {
		return nil, ErrCEPForaAreaEntrega
	}

	pending := session.PendingCheckout{
		TipoEntrega:  models.EntregaDomicilio,
		CEP:          cep,
		Endereco:     req.Endereco,
		Numero:       req.Numero,
		Complemento:  req.Complemento,
		Bairro:       req.Bairro,
		Cidade:       req.Cidade,
		Estado:       req.Estado,
		CustoEntrega: utils.DeliveryCost(cep),
		PrazoDias:    utils.DeliveryLeadTimeDays(cep),
	}
	s.staging.Put(userID, pending)

	return s.buildSummary(carrinho, pending)
}

// ChoosePickup stages an in-store pickup. Pickup is free; the lead time comes
// from the chosen store. Inactive stores are not offered and not accepted.
func (s *CheckoutService) ChoosePickup(userID uuid.UUID, req *PickupRequest) (*CheckoutSummary, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	carrinho, err := s.Enter(userID)
	if err != nil {
		return nil, err
	}

	var loja models.Loja
	if err := s.db.Where("id = ? AND ativa = ?", req.LojaID, true).First(&loja).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("loja: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	lojaID := loja.ID
	pending := session.PendingCheckout{
		TipoEntrega:  models.EntregaRetirada,
		LojaID:       &lojaID,
		CustoEntrega: 0,
		PrazoDias:    loja.PrazoRetiradaDias,
	}
	s.staging.Put(userID, pending)

	return s.buildSummary(carrinho, pending)
}

// Summary rebuilds the confirmation screen from the staged choice and the
// live cart. Fails when nothing is staged or the staging expired.
func (s *CheckoutService) Summary(userID uuid.UUID) (*CheckoutSummary, error) {
	pending, ok := s.staging.Get(userID)
	if !ok {
		return nil, ErrCheckoutNaoPreparado
	}

	carrinho, err := s.Enter(userID)
	if err != nil {
		return nil, err
	}

	return s.buildSummary(carrinho, pending)
}

func (s *CheckoutService) buildSummary(carrinho *models.Carrinho, pending session.PendingCheckout) (*CheckoutSummary, error) {
	summary := &CheckoutSummary{
		Carrinho:     carrinho,
		TipoEntrega:  pending.TipoEntrega,
		Pendente:     pending,
		CustoEntrega: pending.CustoEntrega,
		PrazoDias:    pending.PrazoDias,
	}

	if pending.LojaID != nil {
		var loja models.Loja
		if err := s.db.First(&loja, *pending.LojaID).Error; err == nil {
			summary.Loja = &loja
		}
	}

	return summary, nil
}

// Abort drops the staged delivery choice; the cart is untouched.
func (s *CheckoutService) Abort(userID uuid.UUID) {
	s.staging.Clear(userID)
}

// Finalize commits the purchase: inside one transaction it revalidates every
// cart line against row-locked stock, freezes the lines into an order,
// debits the ledger and retires the cart. Any failure rolls the whole
// transaction back, so stock is never debited for an order that was not
// created. The staged choice is cleared only after commit.
func (s *CheckoutService) Finalize(userID uuid.UUID, req *FinalizeRequest) (*models.Pedido, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pending, ok := s.staging.Get(userID)
	if !ok {
		return nil, ErrCheckoutNaoPreparado
	}

	var cartao models.Cartao
	if err := s.db.Where("id = ? AND user_id = ?", req.CartaoID, userID).First(&cartao).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cartao: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var pedidoID uuid.UUID
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var carrinho models.Carrinho
		if err := tx.Where("user_id = ? AND ativo = ?", userID, true).
			Preload("Itens.Produto").
			First(&carrinho).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarrinhoVazio
			}
			return fmt.Errorf("database error: %w", err)
		}
		if len(carrinho.Itens) == 0 {
			return ErrCarrinhoVazio
		}

		// Validate every line before touching the ledger so a rejection
		// reports all shortages at once and nothing is half-debited.
		var faltas []InsufficientStockError
		for _, item := range carrinho.Itens {
			total, err := s.inventory.TotalStockForUpdate(tx, item.ProdutoID)
			if err != nil {
				return err
			}
			if total < item.Quantidade {
				faltas = append(faltas, InsufficientStockError{
					ProdutoID:  item.ProdutoID,
					Nome:       item.Produto.Nome,
					Solicitado: item.Quantidade,
					Disponivel: total,
				})
			}
		}
		if len(faltas) > 0 {
			return &StockValidationError{Faltas: faltas}
		}

		pedido := models.Pedido{
			UserID:       userID,
			TipoEntrega:  pending.TipoEntrega,
			CEP:          pending.CEP,
			Endereco:     pending.Endereco,
			Numero:       pending.Numero,
			Complemento:  pending.Complemento,
			Bairro:       pending.Bairro,
			Cidade:       pending.Cidade,
			Estado:       pending.Estado,
			LojaID:       pending.LojaID,
			CartaoID:     cartao.ID,
			CustoEntrega: pending.CustoEntrega,
			PrazoDias:    pending.PrazoDias,
		}
		if err := tx.Create(&pedido).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range carrinho.Itens {
			itemPedido := models.ItemPedido{
				PedidoID:      pedido.ID,
				ProdutoID:     item.ProdutoID,
				Quantidade:    item.Quantidade,
				PrecoUnitario: item.Produto.PrecoVenda,
			}
			if err := tx.Create(&itemPedido).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			if err := s.inventory.Reserve(tx, item.ProdutoID, item.Quantidade); err != nil {
				return err
			}
		}

		if err := s.carts.deactivate(tx, carrinho.ID); err != nil {
			return err
		}

		pedidoID = pedido.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.staging.Clear(userID)

	var pedido models.Pedido
	if err := s.db.Preload("Itens.Produto").Preload("Loja").Preload("Cartao").
		First(&pedido, pedidoID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	return &pedido, nil
}

// Reorder replaces the active cart with a past order's lines at current
// catalog prices: the current cart, whatever it holds, is deactivated and a
// fresh one is created. Products gone from the catalog are skipped and
// reported by name; stock is not reserved, the usual checkout revalidation
// applies at finalize.
func (s *CheckoutService) Reorder(userID, pedidoID uuid.UUID) (*models.Carrinho, []string, error) {
	var pedido models.Pedido
	if err := s.db.Where("id = ? AND user_id = ?", pedidoID, userID).
		Preload("Itens.Produto").
		First(&pedido).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("pedido: %w", ErrNotFound)
		}
		return nil, nil, fmt.Errorf("database error: %w", err)
	}

	var indisponiveis []string
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&models.Carrinho{}).
			Where("user_id = ? AND ativo = ?", userID, true).
			Update("ativo", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate cart: %w", err)
		}

		novo := models.Carrinho{UserID: userID, Ativo: true}
		if err := tx.Create(&novo).Error; err != nil {
			return fmt.Errorf("failed to create cart: %w", err)
		}

		indisponiveis = nil
		for _, item := range pedido.Itens {
			var produto models.Produto
			if err := tx.First(&produto, item.ProdutoID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Soft-deleted products keep their name for the report
					var removido models.Produto
					if tx.Unscoped().First(&removido, item.ProdutoID).Error == nil {
						indisponiveis = append(indisponiveis, removido.Nome)
					} else {
						indisponiveis = append(indisponiveis, item.ProdutoID.String())
					}
					continue
				}
				return fmt.Errorf("database error: %w", err)
			}

			linha := models.ItemCarrinho{
				CarrinhoID: novo.ID,
				ProdutoID:  item.ProdutoID,
				Quantidade: item.Quantidade,
			}
			if err := tx.Create(&linha).Error; err != nil {
				return fmt.Errorf("failed to create cart item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// The replaced cart invalidates any delivery choice staged against it
	s.staging.Clear(userID)

	carrinho, err := s.carts.GetOrCreateActive(userID)
	if err != nil {
		return nil, nil, err
	}
	return carrinho, indisponiveis, nil
}
