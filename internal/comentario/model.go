package comentario

import "gorm.io/gorm"

// Comentario é uma anotação de follow-up presa a uma atividade do diário
// (ligações, combinados com o lead, contexto da proposta).
type Comentario struct {
	gorm.Model
	Texto       string `json:"texto"`
	AtividadeID uint   `gorm:"index" json:"atividadeId"`
	AutorID     string `gorm:"type:uuid" json:"autorId"`
	Autor       string `json:"autor"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Comentario{})
}
