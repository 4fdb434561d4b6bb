// internal/models/produto.go
package models

import (
	"github.com/lib/pq"
)

// Produto is a catalog record. Code, name and description are unique and the
// text columns carry CHECK constraints as a storage-level backstop: an empty
// code or category is a programming error upstream, not user input.
type Produto struct {
	BaseModel
	Codigo        string         `json:"codigo" gorm:"size:30;uniqueIndex;not null;check:codigo <> ''"`
	Nome          string         `json:"nome" gorm:"size:100;uniqueIndex;not null;check:nome <> ''"`
	Descricao     string         `json:"descricao" gorm:"size:255;uniqueIndex;not null;check:descricao <> ''"`
	Categoria     string         `json:"categoria" gorm:"size:50;not null;index;check:categoria <> ''"`
	PrecoCusto    float64        `json:"preco_custo" gorm:"type:decimal(10,2);not null;check:preco_custo >= 0"`
	PrecoVenda    float64        `json:"preco_venda" gorm:"type:decimal(10,2);not null;check:preco_venda >= 0"`
	UnidadeMedida string         `json:"unidade_medida" gorm:"size:20;not null;check:unidade_medida <> ''"`
	Imagens       pq.StringArray `json:"imagens" gorm:"type:text[]"`

	// Relationships
	Estoques []Estoque `json:"estoques,omitempty" gorm:"foreignKey:ProdutoID"`
}

// EstoqueTotal sums the preloaded ledger rows. Services that need the
// authoritative value query the inventory service instead.
func (p *Produto) EstoqueTotal() int {
	total := 0
	for _, e := range p.Estoques {
		total += e.Quantidade
	}
	return total
}
