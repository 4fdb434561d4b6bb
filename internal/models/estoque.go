// internal/models/estoque.go
package models

import (
	"github.com/google/uuid"
)

type Armazem struct {
	BaseModel
	Nome     string `json:"nome" gorm:"size:100;not null;check:nome <> ''"`
	Endereco string `json:"endereco" gorm:"size:255"`
}

// TableName avoids the default English pluralization ("armazems").
func (Armazem) TableName() string { return "armazens" }

// Estoque is one (produto, armazem) ledger row. The pair is unique so that
// re-adding stock updates the row instead of duplicating it. Quantity never
// goes negative; zero is a valid resting state and rows are never deleted on
// reaching it.
type Estoque struct {
	BaseModel
	ProdutoID  uuid.UUID `json:"produto_id" gorm:"type:uuid;not null;uniqueIndex:idx_estoque_produto_armazem"`
	ArmazemID  uuid.UUID `json:"armazem_id" gorm:"type:uuid;not null;uniqueIndex:idx_estoque_produto_armazem"`
	Quantidade int       `json:"quantidade" gorm:"not null;default:0;check:quantidade >= 0"`

	// Relationships
	Produto Produto `json:"produto,omitempty" gorm:"foreignKey:ProdutoID"`
	Armazem Armazem `json:"armazem,omitempty" gorm:"foreignKey:ArmazemID"`
}
