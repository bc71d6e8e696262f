// Package dashboard agrega as atividades de prospecção nas métricas do
// painel: funil, performance por canal, ranking de closers.
package dashboard

import (
	"time"

	"github.com/GrupoRugido/api-vendas/internal/atividade"
	"github.com/GrupoRugido/api-vendas/internal/filtro"
	"github.com/GrupoRugido/api-vendas/internal/status"
)

// Metricas é o view-model completo do painel. É derivado e descartável:
// cada agregação devolve um valor novo, sem estado retido.
type Metricas struct {
	ValorTotalVendido   float64 `json:"valorTotalVendido"`
	NegociosGanhos      int     `json:"negociosGanhos"`
	Perdidas            int     `json:"perdidas"`
	PropostasEnviadas   int     `json:"propostasEnviadas"`
	LeadsAtendimento    int     `json:"leadsAtendimento"`
	TotalReunioes       int     `json:"totalReunioes"`
	ReunioesRealizadas  int     `json:"reunioesRealizadas"`
	ValorPropostaAberto float64 `json:"valorPropostaAberto"`

	Qualificadas       int `json:"qualificadas"`
	Desqualificadas    int `json:"desqualificadas"`
	Reagendadas        int `json:"reagendadas"`
	NoShow             int `json:"noShow"`
	ReunioesResgatadas int `json:"reunioesResgatadas"`

	PerformanceCanal []PerformanceCanal `json:"performanceCanal"`
	EtapasReuniao    []EtapaReuniao     `json:"etapasReuniao"`
	EvolucaoFunil    []EvolucaoFunil    `json:"evolucaoFunil"`
	Ranking          []PosicaoRanking   `json:"ranking"`

	// SemDados sinaliza snapshot vazio para o aviso do front; não é erro.
	SemDados bool `json:"semDados"`
}

// PerformanceCanal consolida um canal de aquisição.
type PerformanceCanal struct {
	Canal       string  `json:"canal"`
	Reunioes    int     `json:"reunioes"`
	Vendas      int     `json:"vendas"`
	NoShow      int     `json:"noShow"`
	ValorVendas float64 `json:"valorVendas"`
}

// EtapaReuniao conta as atividades em uma etapa do funil (R1..R5).
type EtapaReuniao struct {
	Tipo  string `json:"tipo"`
	Count int    `json:"count"`
}

// EvolucaoFunil conta as transições registradas entre etapas adjacentes.
type EvolucaoFunil struct {
	Evolucao string `json:"evolucao"`
	Count    int    `json:"count"`
}

// PosicaoRanking é uma linha do top-5 de closers por valor ganho.
type PosicaoRanking struct {
	Rank   int     `json:"rank"`
	Nome   string  `json:"nome"`
	Vendas int     `json:"vendas"`
	Valor  float64 `json:"valor"`
}

// Agregar reduz o conjunto de atividades nas métricas do painel sob a
// seleção de filtros (closer AND canal AND período). Função pura: duas
// chamadas com o mesmo snapshot devolvem o mesmo resultado.
func Agregar(atividades []atividade.Atividade, sel filtro.Selecao, agora time.Time) Metricas {
	filtradas := aplicarSelecao(atividades, sel, agora)

	m := Metricas{SemDados: len(filtradas) == 0}
	m.LeadsAtendimento = len(filtradas)
	m.TotalReunioes = len(filtradas)

	for _, a := range filtradas {
		switch a.ResultadoNormalizado() {
		case status.ResultadoGanho:
			m.NegociosGanhos++
			m.ValorTotalVendido += a.ValorDaVenda()
		case status.ResultadoPerdido:
			m.Perdidas++
		case status.ResultadoEmAberto:
			if a.ValorProposta != nil {
				m.ValorPropostaAberto += *a.ValorProposta
			}
		}

		if status.Sim(a.PropostaEnviada) {
			m.PropostasEnviadas++
		}
		if status.Sim(a.ReuniaoResgatada) {
			m.ReunioesResgatadas++
		}

		switch status.NormalizarStatusAtividade(a.Status) {
		case status.AtividadeRealizada:
			m.ReunioesRealizadas++
		case status.AtividadeNoShow:
			m.NoShow++
		case status.AtividadeReagendada:
			m.Reagendadas++
		}

		switch status.NormalizarQualificacao(a.Qualificacao) {
		case status.Qualificado:
			m.Qualificadas++
		case status.NaoQualificado:
			m.Desqualificadas++
		}
	}

	m.PerformanceCanal = performancePorCanal(filtradas)
	m.EtapasReuniao = etapasReuniao(filtradas)
	m.EvolucaoFunil = evolucaoFunil(filtradas)
	m.Ranking = rankingVendas(filtradas)
	return m
}

func aplicarSelecao(atividades []atividade.Atividade, sel filtro.Selecao, agora time.Time) []atividade.Atividade {
	out := make([]atividade.Atividade, 0, len(atividades))
	for _, a := range atividades {
		if sel.FiltraCloser() && a.CloserID != sel.CloserID {
			continue
		}
		if sel.FiltraCanal() && a.Canal != sel.Canal {
			continue
		}
		if !sel.Periodo.Contem(a.DataReferencia(), agora) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func performancePorCanal(atividades []atividade.Atividade) []PerformanceCanal {
	out := make([]PerformanceCanal, 0, len(status.Canais))
	for _, canal := range status.Canais {
		p := PerformanceCanal{Canal: canal}
		for _, a := range atividades {
			if a.Canal != canal {
				continue
			}
			p.Reunioes++
			if a.ValorVenda != nil && *a.ValorVenda > 0 {
				p.Vendas++
				p.ValorVendas += *a.ValorVenda
			}
			if status.NormalizarStatusAtividade(a.Status) == status.AtividadeNoShow {
				p.NoShow++
			}
		}
		out = append(out, p)
	}
	return out
}

func etapasReuniao(atividades []atividade.Atividade) []EtapaReuniao {
	out := make([]EtapaReuniao, 0, len(status.TiposReuniao))
	for _, tipo := range status.TiposReuniao {
		e := EtapaReuniao{Tipo: tipo}
		for _, a := range atividades {
			if a.Tipo == tipo {
				e.Count++
			}
		}
		out = append(out, e)
	}
	return out
}

func evolucaoFunil(atividades []atividade.Atividade) []EvolucaoFunil {
	out := make([]EvolucaoFunil, 0, len(status.Evolucoes))
	for _, evo := range status.Evolucoes {
		e := EvolucaoFunil{Evolucao: evo.Rotulo}
		for _, a := range atividades {
			if evo.Corresponde(a.Evolucao) {
				e.Count++
			}
		}
		out = append(out, e)
	}
	return out
}

// rankingVendas agrupa as negociações ganhas por closer, soma o valor e
// devolve o top-5 por valor. O sort é estável: empate mantém a ordem de
// primeira aparição no snapshot.
func rankingVendas(atividades []atividade.Atividade) []PosicaoRanking {
	type acumulado struct {
		nome   string
		vendas int
		valor  float64
	}
	porCloser := map[string]*acumulado{}
	ordem := []string{}

	for _, a := range atividades {
		if a.ResultadoNormalizado() != status.ResultadoGanho || a.CloserID == "" {
			continue
		}
		ac, ok := porCloser[a.CloserID]
		if !ok {
			nome := a.Closer
			if nome == "" {
				nome = "Sem nome"
			}
			ac = &acumulado{nome: nome}
			porCloser[a.CloserID] = ac
			ordem = append(ordem, a.CloserID)
		}
		ac.vendas++
		ac.valor += a.ValorDaVenda()
	}

	// insertion sort estável sobre a ordem de aparição
	ids := make([]string, 0, len(ordem))
	for _, id := range ordem {
		pos := len(ids)
		for i, outro := range ids {
			if porCloser[id].valor > porCloser[outro].valor {
				pos = i
				break
			}
		}
		ids = append(ids[:pos], append([]string{id}, ids[pos:]...)...)
	}

	if len(ids) > 5 {
		ids = ids[:5]
	}
	out := make([]PosicaoRanking, 0, len(ids))
	for i, id := range ids {
		ac := porCloser[id]
		out = append(out, PosicaoRanking{Rank: i + 1, Nome: ac.nome, Vendas: ac.vendas, Valor: ac.valor})
	}
	return out
}
