// Package status concentra a normalização dos campos textuais legados.
// Os dados migrados chegam em português e inglês ("Ganho"/"Won",
// "Reagendada"/"Rescheduled"); toda a classificação do sistema passa por
// aqui, nunca por comparação de string espalhada pelos pacotes.
package status

import "strings"

// Resultado é o desfecho canônico de uma negociação.
type Resultado int

const (
	ResultadoIndefinido Resultado = iota
	ResultadoEmAberto
	ResultadoGanho
	ResultadoPerdido
)

func (r Resultado) String() string {
	switch r {
	case ResultadoGanho:
		return "Ganho"
	case ResultadoPerdido:
		return "Perdido"
	case ResultadoEmAberto:
		return "Em Aberto"
	default:
		return "—"
	}
}

// NormalizarResultado mapeia qualquer variante conhecida ("Ganho", "Ganha",
// "Won", "Perdida", "Lost", "Em Aberto", "Open", vazio) para o valor
// canônico. Valor vazio conta como Em Aberto, igual ao dado original.
func NormalizarResultado(bruto string) Resultado {
	s := strings.ToLower(strings.TrimSpace(bruto))
	switch {
	case s == "":
		return ResultadoEmAberto
	case strings.Contains(s, "ganh") || strings.Contains(s, "won"):
		return ResultadoGanho
	case strings.Contains(s, "perd") || strings.Contains(s, "lost"):
		return ResultadoPerdido
	case strings.Contains(s, "abert") || strings.Contains(s, "open"):
		return ResultadoEmAberto
	default:
		return ResultadoIndefinido
	}
}

// StatusAtividade é o status canônico de uma reunião registrada.
type StatusAtividade int

const (
	AtividadeOutro StatusAtividade = iota
	AtividadeRealizada
	AtividadeNoShow
	AtividadeReagendada
)

// NormalizarStatusAtividade reconhece "Reunião Realizada"/"Completed",
// "No Show" e "Reagendada"/"Rescheduled" em qualquer caixa.
func NormalizarStatusAtividade(bruto string) StatusAtividade {
	s := strings.ToLower(strings.TrimSpace(bruto))
	switch {
	case strings.Contains(s, "realizada") || strings.Contains(s, "completed") || strings.Contains(s, "reuni"):
		return AtividadeRealizada
	case strings.Contains(s, "no show") || strings.Contains(s, "noshow") || strings.Contains(s, "no-show"):
		return AtividadeNoShow
	case strings.Contains(s, "reagend") || strings.Contains(s, "resched"):
		return AtividadeReagendada
	default:
		return AtividadeOutro
	}
}

// Qualificacao é a classificação canônica do lead.
type Qualificacao int

const (
	QualificacaoDesconhecida Qualificacao = iota
	Qualificado
	NaoQualificado
	NaoIdentificado
)

// NormalizarQualificacao: atenção à ordem, "não qualificado" contém
// "qualificado" como substring.
func NormalizarQualificacao(bruto string) Qualificacao {
	s := strings.ToLower(strings.TrimSpace(bruto))
	switch {
	case strings.Contains(s, "não qualificado") || strings.Contains(s, "nao qualificado") || strings.Contains(s, "unqualified"):
		return NaoQualificado
	case strings.Contains(s, "não identificado") || strings.Contains(s, "nao identificado") || strings.Contains(s, "unidentified"):
		return NaoIdentificado
	case strings.Contains(s, "qualificado") || strings.Contains(s, "qualified"):
		return Qualificado
	default:
		return QualificacaoDesconhecida
	}
}

// Sim interpreta os flags textuais "Sim"/"Yes" (proposta enviada,
// reunião resgatada). Qualquer outra coisa conta como não.
func Sim(bruto string) bool {
	s := strings.ToLower(strings.TrimSpace(bruto))
	return s == "sim" || s == "yes"
}

// Canais fixos de aquisição. A ordem é a exibida no painel.
var Canais = []string{"Inbound", "Outbound", "Webinar", "Vanguarda"}

// TiposReuniao são as etapas ordenadas do funil.
var TiposReuniao = []string{"R1", "R2", "R3", "R4", "R5"}

// Evolucao é uma transição de etapa do funil.
type Evolucao struct {
	Rotulo    string   // exibido no painel, ex.: "R1 → R2"
	Variantes []string // grafias conhecidas no banco
}

// Evolucoes são as quatro transições adjacentes rastreadas, nas duas
// grafias históricas.
var Evolucoes = []Evolucao{
	{Rotulo: "R1 → R2", Variantes: []string{"De R1 para R2", "R1 > R2"}},
	{Rotulo: "R2 → R3", Variantes: []string{"De R2 para R3", "R2 > R3"}},
	{Rotulo: "R3 → R4", Variantes: []string{"De R3 para R4", "R3 > R4"}},
	{Rotulo: "R4 → R5", Variantes: []string{"De R4 para R5", "R4 > R5"}},
}

// Corresponde informa se o valor bruto registra esta transição.
func (e Evolucao) Corresponde(bruto string) bool {
	s := strings.TrimSpace(bruto)
	for _, v := range e.Variantes {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// MeiosPagamento aceitos no cadastro de recebíveis.
var MeiosPagamento = []string{
	"PIX",
	"Cartão de Crédito",
	"Cartão de Débito",
	"Boleto",
	"Transferência",
	"Dinheiro",
}

// MeioPagamentoValido valida sem diferenciar caixa.
func MeioPagamentoValido(meio string) bool {
	for _, m := range MeiosPagamento {
		if strings.EqualFold(strings.TrimSpace(meio), m) {
			return true
		}
	}
	return false
}
