// internal/services/store_service_test.go
package services

func (s *ServiceTestSuite) TestListActiveExcludesInactive() {
	ativa := s.createLoja(true)
	s.createLoja(false)

	lojas, err := s.stores.ListActive()
	s.NoError(err)
	s.Require().Len(lojas, 1)
	s.Equal(ativa.ID, lojas[0].ID)

	todas, err := s.stores.ListAll()
	s.NoError(err)
	s.Len(todas, 2)
}

func (s *ServiceTestSuite) TestCreateLoja() {
	loja, err := s.stores.Create(&CreateLojaRequest{
		Nome:              "Mercado Cesar Casa Forte",
		Endereco:          "Av. 17 de Agosto",
		Numero:            "2000",
		Bairro:            "Casa Forte",
		Cidade:            "Recife",
		Estado:            "PE",
		PrazoRetiradaDias: 2,
	})
	s.NoError(err)
	s.True(loja.Ativa)
	s.Equal(2, loja.PrazoRetiradaDias)
}

func (s *ServiceTestSuite) TestToggleActive() {
	loja := s.createLoja(true)

	alterada, err := s.stores.ToggleActive(loja.ID)
	s.NoError(err)
	s.False(alterada.Ativa)

	lojas, err := s.stores.ListActive()
	s.NoError(err)
	s.Empty(lojas)
}
