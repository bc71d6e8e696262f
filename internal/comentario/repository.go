package comentario

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, c *Comentario) error
	ListarPorAtividade(db *gorm.DB, atividadeID uint) ([]Comentario, error)
	Remover(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Comentario) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) ListarPorAtividade(db *gorm.DB, atividadeID uint) ([]Comentario, error) {
	var list []Comentario
	err := db.Where("atividade_id = ?", atividadeID).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Remover(db *gorm.DB, id uint) error {
	res := db.Delete(&Comentario{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
