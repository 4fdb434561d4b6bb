// internal/models/carrinho.go
package models

import (
	"github.com/google/uuid"
)

// Carrinho is the user's pre-purchase collection of items. At most one cart
// per user may be active at a time; besides the get-or-create query logic this
// is enforced at the storage boundary by a partial unique index created in
// database.RunMigrations.
type Carrinho struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Ativo  bool      `json:"ativo" gorm:"not null;default:true"`

	// Relationships
	Itens []ItemCarrinho `json:"itens,omitempty" gorm:"foreignKey:CarrinhoID;constraint:OnDelete:CASCADE"`
}

// Total is computed live from the current catalog price. The cart is
// ephemeral and pre-purchase, so price changes are reflected immediately;
// snapshotting happens only when an order is created.
func (c *Carrinho) Total() float64 {
	total := 0.0
	for _, item := range c.Itens {
		total += item.Subtotal()
	}
	return total
}

func (c *Carrinho) QuantidadeItens() int {
	qty := 0
	for _, item := range c.Itens {
		qty += item.Quantidade
	}
	return qty
}

// ItemCarrinho is unique per (cart, produto); repeated adds increment the
// quantity. Zero-quantity lines are never persisted.
type ItemCarrinho struct {
	BaseModel
	CarrinhoID uuid.UUID `json:"carrinho_id" gorm:"type:uuid;not null;uniqueIndex:idx_item_carrinho_produto"`
	ProdutoID  uuid.UUID `json:"produto_id" gorm:"type:uuid;not null;uniqueIndex:idx_item_carrinho_produto"`
	Quantidade int       `json:"quantidade" gorm:"not null;check:quantidade >= 1"`

	// Relationships
	Produto Produto `json:"produto,omitempty" gorm:"foreignKey:ProdutoID"`
}

func (ItemCarrinho) TableName() string { return "itens_carrinho" }

func (i *ItemCarrinho) Subtotal() float64 {
	return i.Produto.PrecoVenda * float64(i.Quantidade)
}
