package lead

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorNome(db *gorm.DB, nome string) (*Lead, error)
	BuscarOuCriar(db *gorm.DB, nome, observacoes string) (*Lead, error)
	ListarTodos(db *gorm.DB) ([]Lead, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorNome(db *gorm.DB, nome string) (*Lead, error) {
	var l Lead
	if err := db.Where("nome = ?", nome).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// BuscarOuCriar devolve o lead com esse nome, criando-o se não existir.
// Usado pelo lançamento diário: o closer digita só o nome da empresa.
func (r *repositoryImpl) BuscarOuCriar(db *gorm.DB, nome, observacoes string) (*Lead, error) {
	existente, err := r.BuscarPorNome(db, nome)
	if err == nil {
		return existente, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("busca de lead: %w", err)
	}
	novo := &Lead{Nome: nome, Observacoes: observacoes}
	if err := db.Create(novo).Error; err != nil {
		return nil, fmt.Errorf("criação de lead: %w", err)
	}
	return novo, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Lead, error) {
	var leads []Lead
	err := db.Order("nome ASC").Find(&leads).Error
	return leads, err
}
