package atividade

import (
	"gorm.io/gorm"
)

// LimiteLinhas é o teto de linhas de uma listagem completa, herdado do
// limite do provedor anterior.
const LimiteLinhas = 10000

// Filtro restringe as listagens por igualdade no banco; o recorte de
// período fica em memória, no chamador.
type Filtro struct {
	CloserID string
	Canal    string
}

type Repository interface {
	Salvar(db *gorm.DB, a *Atividade) error
	BuscarPorID(db *gorm.DB, id uint) (*Atividade, error)
	Listar(db *gorm.DB, f Filtro) ([]Atividade, error)
	ListarPropostasAbertas(db *gorm.DB) ([]Atividade, error)
	Atualizar(db *gorm.DB, a *Atividade) error
	AtualizarCampos(db *gorm.DB, id uint, campos map[string]interface{}) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, a *Atividade) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Atividade, error) {
	var a Atividade
	if err := db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro) ([]Atividade, error) {
	var list []Atividade
	q := db.Order("data DESC").Limit(LimiteLinhas)
	if f.CloserID != "" {
		q = q.Where("closer_id = ?", f.CloserID)
	}
	if f.Canal != "" {
		q = q.Where("canal = ?", f.Canal)
	}
	err := q.Find(&list).Error
	return list, err
}

// ListarPropostasAbertas devolve atividades com proposta enviada, valor de
// proposta preenchido e negociação ainda sem desfecho, da mais recente
// para a mais antiga.
func (r *repositoryImpl) ListarPropostasAbertas(db *gorm.DB) ([]Atividade, error) {
	var list []Atividade
	err := db.
		Where("proposta_enviada IN ?", []string{"Sim", "Yes"}).
		Where("resultado IS NULL OR resultado = '' OR resultado IN ?", []string{"Em Aberto", "Open"}).
		Where("valor_proposta IS NOT NULL").
		Order("data DESC").
		Limit(LimiteLinhas).
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, a *Atividade) error {
	return db.Save(a).Error
}

// AtualizarCampos aplica atualização parcial; usado pelo desfecho de
// proposta e pela remoção de venda (campos vão a NULL).
func (r *repositoryImpl) AtualizarCampos(db *gorm.DB, id uint, campos map[string]interface{}) error {
	res := db.Model(&Atividade{}).Where("id = ?", id).Updates(campos)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
