// internal/models/pedido.go
package models

import (
	"github.com/google/uuid"
)

// ResumoCompra is the read-only view shared by the staged checkout summary
// and a confirmed order: the purchase lines plus their derived totals. The
// staged variant prices lines live from the catalog, the confirmed variant
// from the frozen order items.
type ResumoCompra interface {
	LinhasCompra() []LinhaCompra
	Subtotal() float64
	Total() float64
}

// LinhaCompra is one purchase line as presented on a summary screen.
type LinhaCompra struct {
	ProdutoID     uuid.UUID `json:"produto_id"`
	Nome          string    `json:"nome"`
	Quantidade    int       `json:"quantidade"`
	PrecoUnitario float64   `json:"preco_unitario"`
}

var _ ResumoCompra = (*Pedido)(nil)

// Pedido is the permanent, audit-grade record of a completed checkout.
// It is immutable once created except by administrative correction. The card
// is referenced, never owned: deleting a card does not touch past orders.
type Pedido struct {
	BaseModel
	UserID      uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	TipoEntrega TipoEntrega `json:"tipo_entrega" gorm:"type:varchar(10);not null;index"`

	// Home-delivery fields, populated only for DOMICILIO.
	CEP         string `json:"cep,omitempty" gorm:"size:9"`
	Endereco    string `json:"endereco,omitempty" gorm:"size:255"`
	Numero      string `json:"numero,omitempty" gorm:"size:20"`
	Complemento string `json:"complemento,omitempty" gorm:"size:100"`
	Bairro      string `json:"bairro,omitempty" gorm:"size:100"`
	Cidade      string `json:"cidade,omitempty" gorm:"size:100"`
	Estado      string `json:"estado,omitempty" gorm:"size:2"`

	// Pickup field, populated only for RETIRADA.
	LojaID *uuid.UUID `json:"loja_id,omitempty" gorm:"type:uuid"`

	CartaoID     uuid.UUID `json:"cartao_id" gorm:"type:uuid;not null"`
	CustoEntrega float64   `json:"custo_entrega" gorm:"type:decimal(10,2);not null"`
	PrazoDias    int       `json:"prazo_dias" gorm:"not null"`

	// Relationships
	Loja   *Loja        `json:"loja,omitempty" gorm:"foreignKey:LojaID"`
	Cartao Cartao       `json:"cartao,omitempty" gorm:"foreignKey:CartaoID"`
	Itens  []ItemPedido `json:"itens,omitempty" gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
}

// Subtotal sums the frozen line prices. Catalog price changes after the
// purchase never alter this value.
func (p *Pedido) Subtotal() float64 {
	total := 0.0
	for _, item := range p.Itens {
		total += item.Subtotal()
	}
	return total
}

func (p *Pedido) Total() float64 {
	return p.Subtotal() + p.CustoEntrega
}

// LinhasCompra adapts the frozen order items to the shared summary shape.
func (p *Pedido) LinhasCompra() []LinhaCompra {
	linhas := make([]LinhaCompra, 0, len(p.Itens))
	for _, item := range p.Itens {
		linhas = append(linhas, LinhaCompra{
			ProdutoID:     item.ProdutoID,
			Nome:          item.Produto.Nome,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
		})
	}
	return linhas
}

// ItemPedido is a frozen copy of a cart line: quantity and the unit price at
// the instant of purchase. Created once, immutable.
type ItemPedido struct {
	BaseModel
	PedidoID      uuid.UUID `json:"pedido_id" gorm:"type:uuid;not null;index"`
	ProdutoID     uuid.UUID `json:"produto_id" gorm:"type:uuid;not null"`
	Quantidade    int       `json:"quantidade" gorm:"not null;check:quantidade >= 1"`
	PrecoUnitario float64   `json:"preco_unitario" gorm:"type:decimal(10,2);not null"`

	// Relationships
	Produto Produto `json:"produto,omitempty" gorm:"foreignKey:ProdutoID"`
}

func (ItemPedido) TableName() string { return "itens_pedido" }

func (i *ItemPedido) Subtotal() float64 {
	return i.PrecoUnitario * float64(i.Quantidade)
}
