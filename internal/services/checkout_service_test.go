// internal/services/checkout_service_test.go
package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/mercadocesar/storefront/internal/models"
)

func (s *ServiceTestSuite) stageDomicilio(cep string) (*CheckoutSummary, error) {
	return s.checkout.ChooseHomeDelivery(s.user.ID, &HomeDeliveryRequest{
		CEP:      cep,
		Endereco: "Rua da Aurora",
		Numero:   "123",
		Bairro:   "Boa Vista",
		Cidade:   "Recife",
		Estado:   "PE",
	})
}

func (s *ServiceTestSuite) TestEnterRequiresNonEmptyCart() {
	_, err := s.checkout.Enter(s.user.ID)
	s.ErrorIs(err, ErrCarrinhoVazio)

	_, err = s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)

	carrinho, err := s.checkout.Enter(s.user.ID)
	s.NoError(err)
	s.Len(carrinho.Itens, 1)
}

func (s *ServiceTestSuite) TestChooseHomeDeliveryDerivesCostAndLeadTime() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)

	summary, err := s.stageDomicilio("50050-000")
	s.NoError(err)
	s.Equal(models.EntregaDomicilio, summary.TipoEntrega)
	s.InDelta(15.00, summary.CustoEntrega, 0.001)
	s.Equal(2, summary.PrazoDias)
	s.InDelta(s.produtoA.PrecoVenda+15.00, summary.Total(), 0.001)

	// Farther prefix band inside the area: same fee, longer lead time
	summary, err = s.stageDomicilio("54999-999")
	s.NoError(err)
	s.InDelta(15.00, summary.CustoEntrega, 0.001)
	s.Equal(3, summary.PrazoDias)
}

func (s *ServiceTestSuite) TestChooseHomeDeliveryOutsideArea() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)

	_, err = s.stageDomicilio("99999-999")
	s.ErrorIs(err, ErrCEPForaAreaEntrega)

	// Nothing staged after the rejection
	_, err = s.checkout.Summary(s.user.ID)
	s.ErrorIs(err, ErrCheckoutNaoPreparado)
}

func (s *ServiceTestSuite) TestChooseHomeDeliveryMalformedCEP() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)

	_, err = s.stageDomicilio("9874-23")
	s.Error(err)

	_, err = s.stageDomicilio("00000-000")
	s.Error(err)
}

func (s *ServiceTestSuite) TestChoosePickup() {
	loja := s.createLoja(true)

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)

	summary, err := s.checkout.ChoosePickup(s.user.ID, &PickupRequest{LojaID: loja.ID})
	s.NoError(err)
	s.Equal(models.EntregaRetirada, summary.TipoEntrega)
	s.InDelta(0.0, summary.CustoEntrega, 0.001)
	s.Equal(loja.PrazoRetiradaDias, summary.PrazoDias)
	s.Require().NotNil(summary.Loja)
	s.Equal(loja.ID, summary.Loja.ID)
}

func (s *ServiceTestSuite) TestChoosePickupInactiveStore() {
	loja := s.createLoja(false)

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)

	_, err = s.checkout.ChoosePickup(s.user.ID, &PickupRequest{LojaID: loja.ID})
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestSummaryRequiresStagedChoice() {
	_, err := s.checkout.Summary(s.user.ID)
	s.ErrorIs(err, ErrCheckoutNaoPreparado)
}

func (s *ServiceTestSuite) TestAbortDropsStagedChoiceKeepsCart() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)

	s.checkout.Abort(s.user.ID)

	_, err = s.checkout.Summary(s.user.ID)
	s.ErrorIs(err, ErrCheckoutNaoPreparado)

	carrinho, err := s.carts.GetOrCreateActive(s.user.ID)
	s.NoError(err)
	s.Len(carrinho.Itens, 1)
}

func (s *ServiceTestSuite) TestFinalizeHomeDelivery() {
	s.setStock(s.produtoA.ID, 50, 20, 5)
	s.setStock(s.produtoB.ID, 10)
	cartao := s.registerCard()

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 3)
	s.NoError(err)
	_, err = s.carts.Add(s.user.ID, s.produtoB.ID, 2)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)

	pedido, err := s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.Require().NoError(err)

	s.Equal(models.EntregaDomicilio, pedido.TipoEntrega)
	s.Equal("50050-000", pedido.CEP)
	s.InDelta(15.00, pedido.CustoEntrega, 0.001)
	s.Equal(2, pedido.PrazoDias)
	s.Equal(cartao.ID, pedido.CartaoID)
	s.Require().Len(pedido.Itens, 2)
	s.InDelta(3*s.produtoA.PrecoVenda+2*s.produtoB.PrecoVenda, pedido.Subtotal(), 0.001)
	s.InDelta(pedido.Subtotal()+15.00, pedido.Total(), 0.001)

	// Ledger debited greatest-remaining-first
	s.Equal([]int{47, 20, 5}, s.stockLevels(s.produtoA.ID))
	totalB, _ := s.inventory.TotalStock(s.produtoB.ID)
	s.Equal(8, totalB)

	// Cart retired, staging cleared, a fresh cart starts empty
	_, err = s.checkout.Summary(s.user.ID)
	s.ErrorIs(err, ErrCheckoutNaoPreparado)

	carrinho, err := s.carts.GetOrCreateActive(s.user.ID)
	s.NoError(err)
	s.Empty(carrinho.Itens)
}

func (s *ServiceTestSuite) TestFinalizePickup() {
	loja := s.createLoja(true)
	s.setStock(s.produtoA.ID, 10)
	cartao := s.registerCard()

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)
	_, err = s.checkout.ChoosePickup(s.user.ID, &PickupRequest{LojaID: loja.ID})
	s.NoError(err)

	pedido, err := s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.Require().NoError(err)

	s.Equal(models.EntregaRetirada, pedido.TipoEntrega)
	s.Empty(pedido.CEP)
	s.Require().NotNil(pedido.LojaID)
	s.Equal(loja.ID, *pedido.LojaID)
	s.InDelta(0.0, pedido.CustoEntrega, 0.001)
	s.Equal(loja.PrazoRetiradaDias, pedido.PrazoDias)
}

func (s *ServiceTestSuite) TestFinalizeShortStockRollsBackEverything() {
	s.setStock(s.produtoA.ID, 2)
	s.setStock(s.produtoB.ID, 10)
	cartao := s.registerCard()

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 5)
	s.NoError(err)
	_, err = s.carts.Add(s.user.ID, s.produtoB.ID, 2)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)

	_, err = s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})

	var stockErr *StockValidationError
	s.Require().True(errors.As(err, &stockErr))
	s.Require().Len(stockErr.Faltas, 1)
	s.Equal(s.produtoA.ID, stockErr.Faltas[0].ProdutoID)
	s.Equal(5, stockErr.Faltas[0].Solicitado)
	s.Equal(2, stockErr.Faltas[0].Disponivel)

	// No order, no debit anywhere, cart intact
	var pedidos int64
	s.db.Table("pedidos").Where("deleted_at IS NULL").Count(&pedidos)
	s.Equal(int64(0), pedidos)

	totalA, _ := s.inventory.TotalStock(s.produtoA.ID)
	totalB, _ := s.inventory.TotalStock(s.produtoB.ID)
	s.Equal(2, totalA)
	s.Equal(10, totalB)

	carrinho, err := s.carts.GetOrCreateActive(s.user.ID)
	s.NoError(err)
	s.Len(carrinho.Itens, 2)
}

func (s *ServiceTestSuite) TestFinalizeWithoutStagedChoice() {
	s.setStock(s.produtoA.ID, 10)
	cartao := s.registerCard()

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)

	_, err = s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.ErrorIs(err, ErrCheckoutNaoPreparado)
}

func (s *ServiceTestSuite) TestFinalizeRejectsForeignCard() {
	s.setStock(s.produtoA.ID, 10)

	outro := models.User{
		Username: "outro",
		Email:    "outro@example.com",
		UserType: models.UserTypeCustomer,
		Status:   models.UserStatusActive,
	}
	s.Require().NoError(outro.SetPassword("Senha123!@#"))
	s.Require().NoError(s.db.Create(&outro).Error)

	cartaoAlheio, err := s.cards.Register(outro.ID, &RegisterCardRequest{
		Numero:      "5555555555554444",
		CVV:         "321",
		MesValidade: 11,
		AnoValidade: 2032,
	})
	s.Require().NoError(err)

	_, err = s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)

	_, err = s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartaoAlheio.ID})
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestOrderSnapshotSurvivesPriceChange() {
	s.setStock(s.produtoA.ID, 10)
	cartao := s.registerCard()

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)

	pedido, err := s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.Require().NoError(err)
	precoOriginal := s.produtoA.PrecoVenda

	s.Require().NoError(s.db.Model(&models.Produto{}).
		Where("id = ?", s.produtoA.ID).
		Update("preco_venda", precoOriginal*2).Error)

	recarregado, err := s.orders.Get(s.user.ID, pedido.ID)
	s.Require().NoError(err)
	s.InDelta(2*precoOriginal, recarregado.Subtotal(), 0.001)
	s.InDelta(precoOriginal, recarregado.Itens[0].PrecoUnitario, 0.001)
}

func (s *ServiceTestSuite) TestReorderReplacesActiveCart() {
	s.setStock(s.produtoA.ID, 10)
	s.setStock(s.produtoB.ID, 10)
	cartao := s.registerCard()

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)
	pedido, err := s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.Require().NoError(err)

	// A new cart with unrelated items, and a staged choice against it
	atual, err := s.carts.Add(s.user.ID, s.produtoB.ID, 5)
	s.Require().NoError(err)
	_, err = s.stageDomicilio("54000-000")
	s.NoError(err)

	carrinho, indisponiveis, err := s.checkout.Reorder(s.user.ID, pedido.ID)
	s.NoError(err)
	s.Empty(indisponiveis)

	// A fresh cart holds only the past order's lines, nothing merged
	s.NotEqual(atual.ID, carrinho.ID)
	s.Require().Len(carrinho.Itens, 1)
	s.Equal(s.produtoA.ID, carrinho.Itens[0].ProdutoID)
	s.Equal(2, carrinho.Itens[0].Quantidade)

	var anterior models.Carrinho
	s.Require().NoError(s.db.First(&anterior, atual.ID).Error)
	s.False(anterior.Ativo)

	// The choice staged against the replaced cart is gone
	_, err = s.checkout.Summary(s.user.ID)
	s.ErrorIs(err, ErrCheckoutNaoPreparado)
}

func (s *ServiceTestSuite) TestReorderDoesNotBypassStockValidation() {
	s.setStock(s.produtoA.ID, 10)
	cartao := s.registerCard()

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)
	pedido, err := s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.Require().NoError(err)

	// Stock ran out since the purchase
	s.setStock(s.produtoA.ID, 0)

	carrinho, indisponiveis, err := s.checkout.Reorder(s.user.ID, pedido.ID)
	s.Require().NoError(err)
	s.Empty(indisponiveis)
	s.Len(carrinho.Itens, 1)

	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)
	_, err = s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})

	var stockErr *StockValidationError
	s.Require().True(errors.As(err, &stockErr))
	s.Require().Len(stockErr.Faltas, 1)
	s.Equal(s.produtoA.ID, stockErr.Faltas[0].ProdutoID)
	s.Equal(2, stockErr.Faltas[0].Solicitado)
	s.Equal(0, stockErr.Faltas[0].Disponivel)

	// Only the original order exists
	var pedidos int64
	s.db.Table("pedidos").Where("deleted_at IS NULL").Count(&pedidos)
	s.Equal(int64(1), pedidos)
}

func (s *ServiceTestSuite) TestClearCartDropsStagedChoice() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)

	_, err = s.carts.Clear(s.user.ID)
	s.NoError(err)

	_, err = s.checkout.Summary(s.user.ID)
	s.ErrorIs(err, ErrCheckoutNaoPreparado)
}

func (s *ServiceTestSuite) TestRemovingLastItemDropsStagedChoice() {
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)

	_, err = s.carts.Remove(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)

	_, err = s.checkout.Summary(s.user.ID)
	s.ErrorIs(err, ErrCheckoutNaoPreparado)

	// A partial removal keeps the staged choice alive
	_, err = s.carts.Add(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)
	_, err = s.carts.Remove(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)

	summary, err := s.checkout.Summary(s.user.ID)
	s.NoError(err)
	s.Equal(1, summary.Carrinho.QuantidadeItens())
}

func (s *ServiceTestSuite) TestStagedAndConfirmedShareSummaryView() {
	s.setStock(s.produtoA.ID, 10)
	cartao := s.registerCard()

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 2)
	s.NoError(err)
	summary, err := s.stageDomicilio("50050-000")
	s.Require().NoError(err)

	pedido, err := s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.Require().NoError(err)

	for _, resumo := range []models.ResumoCompra{summary, pedido} {
		linhas := resumo.LinhasCompra()
		s.Require().Len(linhas, 1)
		s.Equal(s.produtoA.ID, linhas[0].ProdutoID)
		s.Equal(2, linhas[0].Quantidade)
		s.InDelta(s.produtoA.PrecoVenda, linhas[0].PrecoUnitario, 0.001)
		s.InDelta(2*s.produtoA.PrecoVenda, resumo.Subtotal(), 0.001)
		s.InDelta(resumo.Subtotal()+15.00, resumo.Total(), 0.001)
	}
}

func (s *ServiceTestSuite) TestReorderSkipsRemovedProducts() {
	s.setStock(s.produtoA.ID, 10)
	s.setStock(s.produtoB.ID, 10)
	cartao := s.registerCard()

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)
	_, err = s.carts.Add(s.user.ID, s.produtoB.ID, 1)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)

	pedido, err := s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.catalog.Delete(s.produtoB.ID))

	carrinho, indisponiveis, err := s.checkout.Reorder(s.user.ID, pedido.ID)
	s.NoError(err)
	s.Equal([]string{s.produtoB.Nome}, indisponiveis)
	s.Require().Len(carrinho.Itens, 1)
	s.Equal(s.produtoA.ID, carrinho.Itens[0].ProdutoID)
}

func (s *ServiceTestSuite) TestReorderForeignOrder() {
	_, _, err := s.checkout.Reorder(s.user.ID, uuid.New())
	s.ErrorIs(err, ErrNotFound)
}
