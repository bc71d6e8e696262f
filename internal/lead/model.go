package lead

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead é a empresa/contato prospectado. O diário referencia o lead pelo
// nome; o cadastro aqui existe para manter histórico e anotações.
type Lead struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Nome        string `gorm:"uniqueIndex;not null" json:"nome"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	Origem      string `json:"origem"`
	Observacoes string `json:"observacoes"`
	NomeBDR     string `json:"nomeBdr"`
}

// BeforeCreate garante o UUID do registro.
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Lead{})
}
