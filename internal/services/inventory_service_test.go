// internal/services/inventory_service_test.go
package services

import (
	"errors"

	"github.com/google/uuid"
)

func (s *ServiceTestSuite) TestTotalStockSumsAcrossWarehouses() {
	s.setStock(s.produtoA.ID, 50, 20, 5)

	total, err := s.inventory.TotalStock(s.produtoA.ID)
	s.NoError(err)
	s.Equal(75, total)
}

func (s *ServiceTestSuite) TestTotalStockZeroWithoutEntries() {
	total, err := s.inventory.TotalStock(s.produtoA.ID)
	s.NoError(err)
	s.Equal(0, total)
}

func (s *ServiceTestSuite) TestSetStockUpdatesExistingPair() {
	s.setStock(s.produtoA.ID, 10)

	// Re-entering the same (produto, armazem) pair updates, not duplicates
	_, err := s.inventory.SetStock(&SetStockRequest{
		ProdutoID:  s.produtoA.ID,
		ArmazemID:  s.armazens[0].ID,
		Quantidade: 42,
	})
	s.NoError(err)

	var count int64
	s.db.Table("estoques").
		Where("produto_id = ? AND deleted_at IS NULL", s.produtoA.ID).
		Count(&count)
	s.Equal(int64(1), count)

	total, err := s.inventory.TotalStock(s.produtoA.ID)
	s.NoError(err)
	s.Equal(42, total)
}

func (s *ServiceTestSuite) TestSetStockUnknownProduct() {
	_, err := s.inventory.SetStock(&SetStockRequest{
		ProdutoID:  uuid.New(),
		ArmazemID:  s.armazens[0].ID,
		Quantidade: 10,
	})
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestReserveDrainsGreatestRemainingFirst() {
	s.setStock(s.produtoA.ID, 50, 20, 5)

	err := s.inventory.Reserve(s.db, s.produtoA.ID, 55)
	s.NoError(err)

	// 50 is drained fully, then 5 comes from the 20-row
	s.Equal([]int{0, 15, 5}, s.stockLevels(s.produtoA.ID))

	total, err := s.inventory.TotalStock(s.produtoA.ID)
	s.NoError(err)
	s.Equal(20, total)
}

func (s *ServiceTestSuite) TestReserveExactTotal() {
	s.setStock(s.produtoA.ID, 50, 20, 5)

	err := s.inventory.Reserve(s.db, s.produtoA.ID, 75)
	s.NoError(err)
	s.Equal([]int{0, 0, 0}, s.stockLevels(s.produtoA.ID))

	// Rows rest at zero, they are not deleted
	var count int64
	s.db.Table("estoques").
		Where("produto_id = ? AND deleted_at IS NULL", s.produtoA.ID).
		Count(&count)
	s.Equal(int64(3), count)
}

func (s *ServiceTestSuite) TestReserveShortLeavesLedgerUntouched() {
	s.setStock(s.produtoA.ID, 50, 20, 5)

	err := s.inventory.Reserve(s.db, s.produtoA.ID, 76)

	var shortErr *InsufficientStockError
	s.True(errors.As(err, &shortErr))
	s.Equal(76, shortErr.Solicitado)
	s.Equal(75, shortErr.Disponivel)

	s.Equal([]int{50, 20, 5}, s.stockLevels(s.produtoA.ID))
}

func (s *ServiceTestSuite) TestBelowThresholdReport() {
	s.setStock(s.produtoA.ID, 10, 50, 0)
	// produtoB has no ledger rows at all

	report, err := s.inventory.BelowThreshold()
	s.NoError(err)

	// Two low rows for A (10 and 0) plus the zero placeholder for B
	s.Len(report, 3)

	var placeholder *LowStockEntry
	for i := range report {
		if report[i].Produto.ID == s.produtoB.ID {
			placeholder = &report[i]
		} else {
			s.Less(report[i].Quantidade, 30)
			s.NotNil(report[i].Armazem)
		}
	}
	s.Require().NotNil(placeholder, "productless rows must surface as zero placeholders")
	s.Equal(0, placeholder.Quantidade)
	s.Nil(placeholder.Armazem)
}

func (s *ServiceTestSuite) TestCreateAndListArmazens() {
	armazem, err := s.inventory.CreateArmazem(&CreateArmazemRequest{
		Nome:     "Armazém Paulista",
		Endereco: "BR-101, km 42",
	})
	s.NoError(err)
	s.NotEqual(uuid.Nil, armazem.ID)

	armazens, err := s.inventory.ListArmazens()
	s.NoError(err)
	s.Len(armazens, 4)
}
