package perfil

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, p *Perfil) error
	BuscarPorID(db *gorm.DB, id string) (*Perfil, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Perfil, error)
	Listar(db *gorm.DB, somenteAtivos bool) ([]Perfil, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Perfil) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id string) (*Perfil, error) {
	var p Perfil
	if err := db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Perfil, error) {
	var p Perfil
	if err := db.Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Listar devolve os perfis ordenados pelo nome de exibição, opcionalmente
// só os ativos (é o que alimenta o seletor de closer do painel).
func (r *repositoryImpl) Listar(db *gorm.DB, somenteAtivos bool) ([]Perfil, error) {
	var perfis []Perfil
	q := db.Order("nome_completo ASC")
	if somenteAtivos {
		q = q.Where("ativo = ?", true)
	}
	err := q.Find(&perfis).Error
	return perfis, err
}
