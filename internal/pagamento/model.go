// internal/pagamento/model.go
package pagamento

import (
	"time"

	"gorm.io/gorm"
)

// Pagamento representa uma única parcela recebida de uma venda fechada.
// Pagamento não é editado: corrigir é apagar e lançar de novo.
type Pagamento struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AtividadeID   uint      `gorm:"not null;index" json:"atividadeId"`
	ValorPago     float64   `gorm:"not null" json:"valorPago"`
	DataPagamento time.Time `gorm:"not null" json:"dataPagamento"`
	MeioPagamento string    `gorm:"size:50" json:"meioPagamento"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Pagamento{})
}
