// internal/pagamento/repository.go
package pagamento

import (
	"gorm.io/gorm"
)

// Repository encapsula o acesso a dados de pagamentos.
type Repository struct {
	DB *gorm.DB
}

// NewRepository instancia um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar insere um pagamento.
func (r *Repository) Criar(p *Pagamento) error {
	return r.DB.Create(p).Error
}

// BuscarPorID busca um único pagamento pelo seu ID.
func (r *Repository) BuscarPorID(id uint) (*Pagamento, error) {
	var p Pagamento
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListarPorAtividade busca todos os pagamentos de uma venda, do mais
// antigo para o mais novo.
func (r *Repository) ListarPorAtividade(atividadeID uint) ([]Pagamento, error) {
	var pagamentos []Pagamento
	err := r.DB.
		Where("atividade_id = ?", atividadeID).
		Order("data_pagamento ASC").
		Find(&pagamentos).Error
	return pagamentos, err
}

// ListarTodos devolve todos os pagamentos, do mais recente para o mais
// antigo (tela de recebíveis).
func (r *Repository) ListarTodos() ([]Pagamento, error) {
	var pagamentos []Pagamento
	err := r.DB.Order("data_pagamento DESC").Find(&pagamentos).Error
	return pagamentos, err
}

// DeletarPorID apaga o pagamento; retorna gorm.ErrRecordNotFound se nada
// foi deletado. Não existe update de pagamento.
func (r *Repository) DeletarPorID(id uint) error {
	res := r.DB.Delete(&Pagamento{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SomarPorAtividade soma os valores pagos de uma venda.
func (r *Repository) SomarPorAtividade(atividadeID uint) (float64, error) {
	var total float64
	err := r.DB.Model(&Pagamento{}).
		Where("atividade_id = ?", atividadeID).
		Select("COALESCE(SUM(valor_pago), 0)").
		Scan(&total).Error
	return total, err
}
