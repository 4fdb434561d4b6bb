// internal/models/loja.go
package models

// Loja is a physical pickup location. Only active stores can be chosen at
// checkout; the flag is toggled by an admin.
type Loja struct {
	BaseModel
	Nome              string `json:"nome" gorm:"size:100;not null;check:nome <> ''"`
	Endereco          string `json:"endereco" gorm:"size:255;not null"`
	Numero            string `json:"numero" gorm:"size:20"`
	Bairro            string `json:"bairro" gorm:"size:100"`
	Cidade            string `json:"cidade" gorm:"size:100;not null"`
	Estado            string `json:"estado" gorm:"size:2;not null"`
	PrazoRetiradaDias int    `json:"prazo_retirada_dias" gorm:"not null;default:1;check:prazo_retirada_dias >= 0"`
	Ativa             bool   `json:"ativa" gorm:"not null;default:true;index"`
}
