// internal/services/order_service_test.go
package services

import (
	"github.com/google/uuid"

	"github.com/mercadocesar/storefront/internal/models"
	"github.com/mercadocesar/storefront/internal/utils"
)

func (s *ServiceTestSuite) placeOrder(produto models.Produto, quantidade int) *models.Pedido {
	_, err := s.carts.Add(s.user.ID, produto.ID, quantidade)
	s.Require().NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.Require().NoError(err)

	cartoes, err := s.cards.List(s.user.ID)
	s.Require().NoError(err)
	var cartao models.Cartao
	if len(cartoes) > 0 {
		cartao = cartoes[0]
	} else {
		cartao = s.registerCard()
	}

	pedido, err := s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.Require().NoError(err)
	return pedido
}

func (s *ServiceTestSuite) TestRecentNewestFirst() {
	s.setStock(s.produtoA.ID, 100)
	s.setStock(s.produtoB.ID, 100)

	primeiro := s.placeOrder(s.produtoA, 1)
	segundo := s.placeOrder(s.produtoB, 2)

	pedidos, err := s.orders.Recent(s.user.ID, 10)
	s.NoError(err)
	s.Require().Len(pedidos, 2)
	s.Equal(segundo.ID, pedidos[0].ID)
	s.Equal(primeiro.ID, pedidos[1].ID)
	s.NotEmpty(pedidos[0].Itens)
}

func (s *ServiceTestSuite) TestRecentScopedToOwner() {
	s.setStock(s.produtoA.ID, 100)
	s.placeOrder(s.produtoA, 1)

	outro := models.User{
		Username: "vizinho",
		Email:    "vizinho@example.com",
		UserType: models.UserTypeCustomer,
		Status:   models.UserStatusActive,
	}
	s.Require().NoError(outro.SetPassword("Senha123!@#"))
	s.Require().NoError(s.db.Create(&outro).Error)

	pedidos, err := s.orders.Recent(outro.ID, 10)
	s.NoError(err)
	s.Empty(pedidos)
}

func (s *ServiceTestSuite) TestGetForeignOrderIsNotFound() {
	s.setStock(s.produtoA.ID, 100)
	pedido := s.placeOrder(s.produtoA, 1)

	_, err := s.orders.Get(uuid.New(), pedido.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *ServiceTestSuite) TestListAllFiltersByDeliveryType() {
	loja := s.createLoja(true)
	s.setStock(s.produtoA.ID, 100)
	cartao := s.registerCard()

	// One home delivery order
	s.placeOrder(s.produtoA, 1)

	// One pickup order
	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.Require().NoError(err)
	_, err = s.checkout.ChoosePickup(s.user.ID, &PickupRequest{LojaID: loja.ID})
	s.Require().NoError(err)
	_, err = s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.Require().NoError(err)

	params := utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}

	result, err := s.orders.ListAll(OrderFilters{TipoEntrega: string(models.EntregaRetirada)}, params)
	s.NoError(err)
	s.Equal(int64(1), result.Total)

	result, err = s.orders.ListAll(OrderFilters{}, params)
	s.NoError(err)
	s.Equal(int64(2), result.Total)
}
