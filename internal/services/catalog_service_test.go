// internal/services/catalog_service_test.go
package services

import (
	"github.com/mercadocesar/storefront/internal/utils"
)

func defaultParams() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}
}

func (s *ServiceTestSuite) TestSearchByTerm() {
	result, err := s.catalog.Search(SearchFilters{Termo: "arroz"}, defaultParams())
	s.NoError(err)
	s.Equal(int64(1), result.Total)

	produtos := result.Data.([]ProdutoComEstoque)
	s.Require().Len(produtos, 1)
	s.Equal(s.produtoA.ID, produtos[0].ID)
}

func (s *ServiceTestSuite) TestSearchIsCaseInsensitive() {
	result, err := s.catalog.Search(SearchFilters{Termo: "ARROZ"}, defaultParams())
	s.NoError(err)
	s.Equal(int64(1), result.Total)
}

func (s *ServiceTestSuite) TestSearchMatchesCode() {
	result, err := s.catalog.Search(SearchFilters{Termo: "FEJ-001"}, defaultParams())
	s.NoError(err)
	s.Equal(int64(1), result.Total)
}

func (s *ServiceTestSuite) TestSearchEmptyTermListsAll() {
	result, err := s.catalog.Search(SearchFilters{}, defaultParams())
	s.NoError(err)
	s.Equal(int64(2), result.Total)
}

func (s *ServiceTestSuite) TestSearchNoMatches() {
	result, err := s.catalog.Search(SearchFilters{Termo: "nao-existe"}, defaultParams())
	s.NoError(err)
	s.Equal(int64(0), result.Total)
}

func (s *ServiceTestSuite) TestSearchByCategory() {
	limpeza := s.createProduto("YPE-001", "Detergente Ypê", "Detergente líquido Ypê 500ml", 2.99)
	s.Require().NoError(s.db.Model(&limpeza).Update("categoria", "Limpeza").Error)

	result, err := s.catalog.Search(SearchFilters{Categorias: []string{"Limpeza"}}, defaultParams())
	s.NoError(err)
	s.Equal(int64(1), result.Total)

	result, err = s.catalog.Search(SearchFilters{Categorias: []string{"Limpeza", "Alimentos"}}, defaultParams())
	s.NoError(err)
	s.Equal(int64(3), result.Total)
}

func (s *ServiceTestSuite) TestSearchCarriesStockTotals() {
	s.setStock(s.produtoA.ID, 50, 20, 5)

	result, err := s.catalog.Search(SearchFilters{Termo: "arroz"}, defaultParams())
	s.NoError(err)

	produtos := result.Data.([]ProdutoComEstoque)
	s.Require().Len(produtos, 1)
	s.Equal(75, produtos[0].EstoqueDisponivel)
}

func (s *ServiceTestSuite) TestCreateProdutoRejectsDuplicates() {
	_, err := s.catalog.Create(&CreateProdutoRequest{
		Codigo:        "ARZ-001",
		Nome:          "Outro Arroz",
		Descricao:     "Outro arroz qualquer 1kg",
		Categoria:     "Alimentos",
		PrecoCusto:    1.0,
		PrecoVenda:    2.0,
		UnidadeMedida: "unidade",
	})
	s.ErrorIs(err, ErrValidation)
}

func (s *ServiceTestSuite) TestUpdateProdutoPrice() {
	novoPreco := 12.50
	produto, err := s.catalog.Update(s.produtoA.ID, &UpdateProdutoRequest{PrecoVenda: &novoPreco})
	s.NoError(err)
	s.InDelta(novoPreco, produto.PrecoVenda, 0.001)

	recarregado, err := s.catalog.GetByID(s.produtoA.ID)
	s.NoError(err)
	s.InDelta(novoPreco, recarregado.PrecoVenda, 0.001)
}

func (s *ServiceTestSuite) TestCategoriesAreDistinctSorted() {
	limpeza := s.createProduto("YPE-002", "Sabão em Pó", "Sabão em pó 1kg", 10.99)
	s.Require().NoError(s.db.Model(&limpeza).Update("categoria", "Limpeza").Error)

	categorias, err := s.catalog.Categories()
	s.NoError(err)
	s.Equal([]string{"Alimentos", "Limpeza"}, categorias)
}
