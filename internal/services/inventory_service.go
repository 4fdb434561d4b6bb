// internal/services/inventory_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mercadocesar/storefront/internal/models"
	"github.com/mercadocesar/storefront/internal/utils"
)

// InventoryService is the per-(produto, armazem) stock ledger. Rows are
// mutated only by staff stock entry and by order finalization; they are never
// deleted on reaching zero.
type InventoryService struct {
	db        *gorm.DB
	threshold int
}

type SetStockRequest struct {
	ProdutoID  uuid.UUID `json:"produto_id" validate:"required"`
	ArmazemID  uuid.UUID `json:"armazem_id" validate:"required"`
	Quantidade int       `json:"quantidade" validate:"min=0"`
}

// LowStockEntry is one row of the low-stock report. Armazem is nil for the
// synthesized placeholder of a product without any ledger rows.
type LowStockEntry struct {
	Produto    models.Produto  `json:"produto"`
	Armazem    *models.Armazem `json:"armazem,omitempty"`
	Quantidade int             `json:"quantidade"`
}

func NewInventoryService(db *gorm.DB, lowStockThreshold int) *InventoryService {
	return &InventoryService{
		db:        db,
		threshold: lowStockThreshold,
	}
}

type CreateArmazemRequest struct {
	Nome     string `json:"nome" validate:"required,max=100"`
	Endereco string `json:"endereco" validate:"max=255"`
}

// CreateArmazem registers a warehouse. Ledger rows reference it afterwards.
func (s *InventoryService) CreateArmazem(req *CreateArmazemRequest) (*models.Armazem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	armazem := models.Armazem{Nome: req.Nome, Endereco: req.Endereco}
	if err := s.db.Create(&armazem).Error; err != nil {
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}
	return &armazem, nil
}

func (s *InventoryService) ListArmazens() ([]models.Armazem, error) {
	var armazens []models.Armazem
	if err := s.db.Order("nome ASC").Find(&armazens).Error; err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	return armazens, nil
}

// TotalStock sums the ledger rows for a product across all warehouses.
// A product with no rows has total zero; this never fails with "no rows".
func (s *InventoryService) TotalStock(produtoID uuid.UUID) (int, error) {
	return s.totalStock(s.db, produtoID, false)
}

// TotalStockForUpdate is TotalStock inside a caller transaction, with the
// ledger rows row-locked so a concurrent finalize cannot pass the same
// check-then-act window. On sqlite (tests) the single writer serializes
// transactions and the lock clause is skipped.
func (s *InventoryService) TotalStockForUpdate(tx *gorm.DB, produtoID uuid.UUID) (int, error) {
	return s.totalStock(tx, produtoID, true)
}

func (s *InventoryService) totalStock(tx *gorm.DB, produtoID uuid.UUID, lock bool) (int, error) {
	query := tx.Where("produto_id = ?", produtoID)
	if lock {
		query = lockForUpdate(query)
	}

	var entries []models.Estoque
	if err := query.Find(&entries).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch stock entries: %w", err)
	}

	total := 0
	for _, e := range entries {
		total += e.Quantidade
	}
	return total, nil
}

// SetStock is the staff "set or add" entry: re-entering stock for an existing
// (produto, armazem) pair updates the row instead of duplicating it. The
// composite unique index backstops the read-then-write window.
func (s *InventoryService) SetStock(req *SetStockRequest) (*models.Estoque, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var produto models.Produto
	if err := s.db.First(&produto, req.ProdutoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("produto: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var armazem models.Armazem
	if err := s.db.First(&armazem, req.ArmazemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("armazem: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var entry models.Estoque
	err := s.db.Where("produto_id = ? AND armazem_id = ?", req.ProdutoID, req.ArmazemID).First(&entry).Error
	switch {
	case err == nil:
		if err := s.db.Model(&entry).Update("quantidade", req.Quantidade).Error; err != nil {
			return nil, fmt.Errorf("failed to update stock entry: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.Estoque{
			ProdutoID:  req.ProdutoID,
			ArmazemID:  req.ArmazemID,
			Quantidade: req.Quantidade,
		}
		if err := s.db.Create(&entry).Error; err != nil {
			return nil, fmt.Errorf("failed to create stock entry: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.db.Preload("Produto").Preload("Armazem").First(&entry, entry.ID)
	return &entry, nil
}

// BelowThreshold returns every ledger row strictly below the configured
// threshold, plus a zero-quantity placeholder for each product that has no
// ledger rows at all, so products never silently vanish from the report.
func (s *InventoryService) BelowThreshold() ([]LowStockEntry, error) {
	var rows []models.Estoque
	if err := s.db.Where("quantidade < ?", s.threshold).
		Order("quantidade ASC").
		Preload("Produto").Preload("Armazem").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch low stock entries: %w", err)
	}

	report := make([]LowStockEntry, 0, len(rows))
	for _, row := range rows {
		armazem := row.Armazem
		report = append(report, LowStockEntry{
			Produto:    row.Produto,
			Armazem:    &armazem,
			Quantidade: row.Quantidade,
		})
	}

	var semEstoque []models.Produto
	if err := s.db.
		Where("NOT EXISTS (SELECT 1 FROM estoques WHERE estoques.produto_id = produtos.id AND estoques.deleted_at IS NULL)").
		Find(&semEstoque).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products without stock entries: %w", err)
	}

	for _, produto := range semEstoque {
		report = append(report, LowStockEntry{
			Produto:    produto,
			Quantidade: 0,
		})
	}

	return report, nil
}

// Reserve decrements the ledger for one product inside the caller's
// transaction. Candidate rows are drained greatest-remaining-first, each row
// fully before the next, which touches the fewest warehouses per order.
// Nothing is mutated when the total is short.
func (s *InventoryService) Reserve(tx *gorm.DB, produtoID uuid.UUID, quantidade int) error {
	if quantidade < 1 {
		return fmt.Errorf("reserve quantity must be at least 1: %w", ErrValidation)
	}

	var entries []models.Estoque
	if err := lockForUpdate(tx.Where("produto_id = ? AND quantidade > 0", produtoID)).
		Order("quantidade DESC, created_at ASC").
		Find(&entries).Error; err != nil {
		return fmt.Errorf("failed to fetch stock entries: %w", err)
	}

	total := 0
	for _, e := range entries {
		total += e.Quantidade
	}
	if total < quantidade {
		return &InsufficientStockError{
			ProdutoID:  produtoID,
			Solicitado: quantidade,
			Disponivel: total,
		}
	}

	restante := quantidade
	for _, e := range entries {
		take := e.Quantidade
		if take > restante {
			take = restante
		}

		if err := tx.Model(&models.Estoque{}).Where("id = ?", e.ID).
			UpdateColumn("quantidade", gorm.Expr("quantidade - ?", take)).Error; err != nil {
			return fmt.Errorf("failed to decrement stock entry: %w", err)
		}

		restante -= take
		if restante == 0 {
			break
		}
	}

	return nil
}

// lockForUpdate adds FOR UPDATE on Postgres. The sqlite driver used in tests
// has no row locks; its single-writer transactions give the same guarantee.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
