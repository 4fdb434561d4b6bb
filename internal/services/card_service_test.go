// internal/services/card_service_test.go
package services

import (
	"time"

	"github.com/mercadocesar/storefront/internal/models"
)

func (s *ServiceTestSuite) TestRegisterCardStoresMetadataOnly() {
	cartao, err := s.cards.Register(s.user.ID, &RegisterCardRequest{
		Numero:      "4532 0151 1283 0366",
		CVV:         "123",
		MesValidade: 12,
		AnoValidade: 30,
		Apelido:     "Pessoal",
	})
	s.Require().NoError(err)

	s.Equal("Visa", cartao.Bandeira)
	s.Equal("0366", cartao.UltimosDigitos)
	s.Equal(12, cartao.MesValidade)
	s.Equal(2030, cartao.AnoValidade)
	s.Equal("Pessoal", cartao.Apelido)

	// The PAN never reaches storage in any column
	var raw map[string]interface{}
	s.Require().NoError(s.db.Table("cartoes").
		Where("id = ?", cartao.ID).
		Take(&raw).Error)
	for _, v := range raw {
		if str, ok := v.(string); ok {
			s.NotContains(str, "4532015112830366")
		}
	}
}

func (s *ServiceTestSuite) TestRegisterCardRejectsBadNumber() {
	_, err := s.cards.Register(s.user.ID, &RegisterCardRequest{
		Numero:      "4532015112830367",
		CVV:         "123",
		MesValidade: 12,
		AnoValidade: 2030,
	})
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceTestSuite) TestRegisterCardRejectsExpired() {
	_, err := s.cards.Register(s.user.ID, &RegisterCardRequest{
		Numero:      "4532015112830366",
		CVV:         "123",
		MesValidade: 1,
		AnoValidade: time.Now().Year() - 1,
	})
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceTestSuite) TestRegisterDuplicateCard() {
	req := &RegisterCardRequest{
		Numero:      "4532015112830366",
		CVV:         "123",
		MesValidade: 12,
		AnoValidade: 2030,
	}

	_, err := s.cards.Register(s.user.ID, req)
	s.Require().NoError(err)

	_, err = s.cards.Register(s.user.ID, req)
	s.ErrorIs(err, ErrCartaoDuplicado)

	// Another user may register the same card
	outro := models.User{
		Username: "segundo",
		Email:    "segundo@example.com",
		UserType: models.UserTypeCustomer,
		Status:   models.UserStatusActive,
	}
	s.Require().NoError(outro.SetPassword("Senha123!@#"))
	s.Require().NoError(s.db.Create(&outro).Error)

	_, err = s.cards.Register(outro.ID, req)
	s.NoError(err)
}

func (s *ServiceTestSuite) TestListCards() {
	s.registerCard()

	cartoes, err := s.cards.List(s.user.ID)
	s.NoError(err)
	s.Len(cartoes, 1)
}

func (s *ServiceTestSuite) TestDeleteCardKeepsOrderReference() {
	s.setStock(s.produtoA.ID, 10)
	cartao := s.registerCard()

	_, err := s.carts.Add(s.user.ID, s.produtoA.ID, 1)
	s.NoError(err)
	_, err = s.stageDomicilio("50050-000")
	s.NoError(err)

	pedido, err := s.checkout.Finalize(s.user.ID, &FinalizeRequest{CartaoID: cartao.ID})
	s.Require().NoError(err)

	s.Require().NoError(s.cards.Delete(s.user.ID, cartao.ID))

	cartoes, err := s.cards.List(s.user.ID)
	s.NoError(err)
	s.Empty(cartoes)

	// The order still references the deleted card
	recarregado, err := s.orders.Get(s.user.ID, pedido.ID)
	s.NoError(err)
	s.Equal(cartao.ID, recarregado.CartaoID)
}

func (s *ServiceTestSuite) TestDeleteForeignCard() {
	cartao := s.registerCard()

	outro := models.User{
		Username: "intruso",
		Email:    "intruso@example.com",
		UserType: models.UserTypeCustomer,
		Status:   models.UserStatusActive,
	}
	s.Require().NoError(outro.SetPassword("Senha123!@#"))
	s.Require().NoError(s.db.Create(&outro).Error)

	err := s.cards.Delete(outro.ID, cartao.ID)
	s.ErrorIs(err, ErrNotFound)

	cartoes, err := s.cards.List(s.user.ID)
	s.NoError(err)
	s.Len(cartoes, 1)
}
