// Package recebiveis concilia os pagamentos parcelados contra as vendas
// fechadas: total pago, saldo devedor e situação de cada venda, mais o
// resumo agregado da carteira.
package recebiveis

import (
	"time"

	"github.com/GrupoRugido/api-vendas/internal/atividade"
	"github.com/GrupoRugido/api-vendas/internal/filtro"
	"github.com/GrupoRugido/api-vendas/internal/pagamento"
)

// Situação da venda perante os pagamentos.
const (
	StatusPago     = "Pago"
	StatusPendente = "Pendente"
)

// Filtro da tela de recebíveis. PeriodoVenda recorta pela data da venda;
// PeriodoPagamento entra SOMENTE no TotalRecebido do resumo — o saldo
// devedor por linha considera sempre todos os pagamentos da venda
// (decisão de produto, não bug; não "consertar").
type Filtro struct {
	CloserID         string
	PeriodoVenda     filtro.Periodo
	PeriodoPagamento filtro.Periodo
	Status           string // "", "todos", "Pago" ou "Pendente"
}

func (f Filtro) filtraCloser() bool {
	return f.CloserID != "" && f.CloserID != filtro.Todos
}

func (f Filtro) filtraStatus() bool {
	return f.Status != "" && f.Status != filtro.Todos
}

// Venda é a linha da tela de recebíveis: uma venda e sua posição de
// pagamento. SaldoDevedor é assinado; pagamento a maior fica negativo e
// é exibido assim mesmo, nunca truncado em zero.
type Venda struct {
	AtividadeID  uint                  `json:"atividadeId"`
	Lead         string                `json:"lead"`
	Closer       string                `json:"closer"`
	CloserID     string                `json:"closerId"`
	DataVenda    *time.Time            `json:"dataVenda"`
	ValorVenda   float64               `json:"valorVenda"`
	TotalPago    float64               `json:"totalPago"`
	SaldoDevedor float64               `json:"saldoDevedor"`
	Status       string                `json:"status"`
	Pagamentos   []pagamento.Pagamento `json:"pagamentos"`
}

// Resumo consolida a carteira sob os filtros ativos.
type Resumo struct {
	TotalVendido  float64 `json:"totalVendido"`
	TotalRecebido float64 `json:"totalRecebido"`
	SaldoPendente float64 `json:"saldoPendente"`
}

// Conciliar cruza vendas e pagamentos e devolve as linhas da tela mais o
// resumo. Função pura sobre os snapshots recebidos.
//
// Qualifica como venda a atividade com valor de venda positivo ou ganha
// com valor de proposta (fallback legado) — ver Atividade.EhVenda.
func Conciliar(atividades []atividade.Atividade, pagamentos []pagamento.Pagamento, f Filtro, agora time.Time) ([]Venda, Resumo) {
	porAtividade := map[uint][]pagamento.Pagamento{}
	for _, p := range pagamentos {
		porAtividade[p.AtividadeID] = append(porAtividade[p.AtividadeID], p)
	}

	vendas := []Venda{}
	var resumo Resumo

	for _, a := range atividades {
		if !a.EhVenda() {
			continue
		}
		if f.filtraCloser() && a.CloserID != f.CloserID {
			continue
		}
		if !f.PeriodoVenda.Contem(a.DataDaVenda(), agora) {
			continue
		}

		pags := porAtividade[a.ID]
		v := Venda{
			AtividadeID: a.ID,
			Lead:        a.Lead,
			Closer:      a.Closer,
			CloserID:    a.CloserID,
			DataVenda:   a.DataVenda,
			ValorVenda:  a.ValorDaVenda(),
			Pagamentos:  pags,
		}
		for _, p := range pags {
			v.TotalPago += p.ValorPago
		}
		v.SaldoDevedor = v.ValorVenda - v.TotalPago
		if v.SaldoDevedor <= 0 {
			v.Status = StatusPago
		} else {
			v.Status = StatusPendente
		}

		if f.filtraStatus() && v.Status != f.Status {
			continue
		}

		vendas = append(vendas, v)

		resumo.TotalVendido += v.ValorVenda
		// só o recebido do resumo respeita o recorte de período de
		// pagamento; o TotalPago da linha é sempre o histórico inteiro
		for _, p := range pags {
			if f.PeriodoPagamento.Contem(p.DataPagamento, agora) {
				resumo.TotalRecebido += p.ValorPago
			}
		}
	}

	resumo.SaldoPendente = resumo.TotalVendido - resumo.TotalRecebido
	return vendas, resumo
}
