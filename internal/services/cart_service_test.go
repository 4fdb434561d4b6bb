// internal/services/cart_service_test.go
package services

func (s *ServiceTestSuite) TestGetOrCreateActiveReturnsSameCart() {
	primeiro, err := s.carts.GetOrCreateActive(s.user.ID)
	s.NoError(err)

	segundo, err := s.carts.GetOrCreateActive(s.user.ID)
	s.NoError(err)
	s.Equal(primeiro.ID, segundo.ID)

	var count int64
	s.db.Table("carrinhos").
		Where("user_id = ? AND ativo = ? AND deleted_at IS NULL", s.user.ID, true).
		Count(&count)
	s.Equal(int64(1), count)
}

func (s *ServiceTestSuite) TestAddIncrementsExistingLine() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)

	carrinho, err := s.carts.Add(s.user.ID, s.produtoA.ID, 3)
	s.NoError(err)

	s.Require().Len(carrinho.Itens, 1)
	s.Equal(5, carrinho.Itens[0].Quantidade)
	s.Equal(5, carrinho.QuantidadeItens())
}

func (s *ServiceTestSuite) TestAddUnknownProduct() {
	_, err := s.carts.Add(s.user.ID, s.armazens[0].ID, 1)
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestAddRejectsNonPositiveQuantity() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 0)
	s.ErrorIs(err, ErrValidation)

	_, err = s.carts.Add(s.user.ID, s.produtoA.ID, -3)
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceTestSuite) TestCartTotalTracksCurrentPrice() {
	carrinho, err := s.carts.Add(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)
	s.InDelta(2*s.produtoA.PrecoVenda, carrinho.Total(), 0.001)

	// Pre-purchase totals follow the live catalog price
	s.Require().NoError(s.db.Model(&s.produtoA).Update("preco_venda", 9.99).Error)

	carrinho, err = s.carts.GetOrCreateActive(s.user.ID)
	s.NoError(err)
	s.InDelta(2*9.99, carrinho.Total(), 0.001)
}

func (s *ServiceTestSuite) TestRemovePartialQuantity() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 5)
	s.NoError(err)

	carrinho, err := s.carts.Remove(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)
	s.Require().Len(carrinho.Itens, 1)
	s.Equal(3, carrinho.Itens[0].Quantidade)
}

func (s *ServiceTestSuite) TestRemoveToZeroDeletesLine() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)

	carrinho, err := s.carts.Remove(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)
	s.Empty(carrinho.Itens)

	var count int64
	s.db.Table("itens_carrinho").Where("deleted_at IS NULL").Count(&count)
	s.Equal(int64(0), count)
}

func (s *ServiceTestSuite) TestRemoveLine() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 7)
	s.NoError(err)
	_, err = s.carts.Add(s.user.ID, s.produtoB.ID, 1)
	s.NoError(err)

	carrinho, err := s.carts.RemoveLine(s.user.ID, s.produtoA.ID)
	s.NoError(err)
	s.Require().Len(carrinho.Itens, 1)
	s.Equal(s.produtoB.ID, carrinho.Itens[0].ProdutoID)
}

func (s *ServiceTestSuite) TestRemoveMissingLine() {
	_, err := s.carts.Remove(s.user.ID, s.produtoA.ID, 1)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.carts.RemoveLine(s.user.ID, s.produtoA.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestClearCart() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)
	_, err = s.carts.Add(s.user.ID, s.produtoB.ID, 4)
	s.NoError(err)

	carrinho, err := s.carts.Clear(s.user.ID)
	s.NoError(err)
	s.Empty(carrinho.Itens)
	s.True(carrinho.Ativo)
}
