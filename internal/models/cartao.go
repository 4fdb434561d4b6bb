// internal/models/cartao.go
package models

import (
	"github.com/google/uuid"
)

// Cartao stores card metadata only. The PAN and CVV are used transiently
// during registration for validation and never persisted; the brand is
// derived from the number, not user-supplied.
type Cartao struct {
	BaseModel
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_cartao_user_digitos"`
	Bandeira       string    `json:"bandeira" gorm:"size:30;not null"`
	UltimosDigitos string    `json:"ultimos_digitos" gorm:"size:4;not null;uniqueIndex:idx_cartao_user_digitos"`
	MesValidade    int       `json:"mes_validade" gorm:"not null;uniqueIndex:idx_cartao_user_digitos"`
	AnoValidade    int       `json:"ano_validade" gorm:"not null;uniqueIndex:idx_cartao_user_digitos"`
	Apelido        string    `json:"apelido" gorm:"size:50"`
}

// TableName avoids the default English pluralization ("cartaos").
func (Cartao) TableName() string { return "cartoes" }
