package atividade

import (
	"time"

	"github.com/GrupoRugido/api-vendas/internal/status"
	"gorm.io/gorm"
)

// Atividade representa um registro do diário de prospecção: uma reunião
// com um lead, conduzida por um closer, com o desdobramento comercial
// (proposta, venda, perda). Os campos textuais legados (Status, Resultado,
// Qualificacao...) guardam o valor bruto do banco; a leitura classificada
// passa sempre pelo pacote status.
type Atividade struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Data     *time.Time `json:"data"`
	Closer   string     `json:"closer"`
	CloserID string     `gorm:"type:uuid;index" json:"closerId"`
	Lead     string     `json:"lead"`
	BDR      string     `json:"bdr"`

	Canal        string `gorm:"index" json:"canal"`
	Tipo         string `json:"tipo"` // etapa da reunião: R1..R5
	Status       string `json:"status"`
	Evolucao     string `json:"evolucao"`
	Qualificacao string `json:"qualificacao"`

	PropostaEnviada  string   `json:"propostaEnviada"`  // "Sim"/"Não" (legado: "Yes"/"No")
	ReuniaoResgatada string   `json:"reuniaoResgatada"` // idem
	ValorProposta    *float64 `json:"valorProposta"`

	Resultado  string     `json:"resultado"` // "Ganho"/"Perdido"/"Em Aberto" + variantes legadas
	ValorVenda *float64   `json:"valorVenda"`
	DataVenda  *time.Time `json:"dataVenda"`

	Setor              string `json:"setor"`
	FaturamentoEmpresa string `json:"faturamentoEmpresa"`
	Observacoes        string `json:"observacoes"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Atividade{})
}

// ResultadoNormalizado devolve o desfecho canônico da negociação.
func (a Atividade) ResultadoNormalizado() status.Resultado {
	return status.NormalizarResultado(a.Resultado)
}

// ValorDaVenda devolve o valor efetivo da venda. Quando a negociação foi
// ganha sem valor de venda preenchido, o valor da proposta entra como
// substituto (remendo para os registros migrados, mantido de propósito).
func (a Atividade) ValorDaVenda() float64 {
	if a.ValorVenda != nil && *a.ValorVenda > 0 {
		return *a.ValorVenda
	}
	if a.ResultadoNormalizado() == status.ResultadoGanho && a.ValorProposta != nil && *a.ValorProposta > 0 {
		return *a.ValorProposta
	}
	return 0
}

// EhVenda diz se a atividade conta como venda para o módulo de recebíveis.
func (a Atividade) EhVenda() bool {
	return a.ValorDaVenda() > 0
}

// DataReferencia é a data usada nos recortes de período do painel; cai no
// created_at quando o lançamento não tem data própria.
func (a Atividade) DataReferencia() time.Time {
	if a.Data != nil && !a.Data.IsZero() {
		return *a.Data
	}
	return a.CreatedAt
}

// DataDaVenda é a data usada nos recortes de período dos recebíveis.
// Venda sem data fica com zero e sai de qualquer período limitado.
func (a Atividade) DataDaVenda() time.Time {
	if a.DataVenda != nil {
		return *a.DataVenda
	}
	return time.Time{}
}
