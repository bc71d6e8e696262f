package perfil

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Perfil é um usuário do sistema (closer, BDR ou admin). O ID é o UUID do
// provedor de identidade, o mesmo gravado em atividades.closer_id.
type Perfil struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	NomeCompleto string `json:"nomeCompleto"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	Senha        string `json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"isAdmin"`
	Ativo        bool   `gorm:"default:true" json:"ativo"`
}

// BeforeCreate garante o UUID do registro.
func (p *Perfil) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Perfil{})
}
