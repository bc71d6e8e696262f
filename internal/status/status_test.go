package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizarResultado(t *testing.T) {
	casos := []struct {
		bruto    string
		esperado Resultado
	}{
		{"Ganho", ResultadoGanho},
		{"Ganha", ResultadoGanho},
		{"ganho", ResultadoGanho},
		{"Won", ResultadoGanho},
		{"Perdido", ResultadoPerdido},
		{"Perdida", ResultadoPerdido},
		{"Lost", ResultadoPerdido},
		{"Em Aberto", ResultadoEmAberto},
		{"Open", ResultadoEmAberto},
		{"", ResultadoEmAberto},
		{"  ", ResultadoEmAberto},
		{"qualquer coisa", ResultadoIndefinido},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, NormalizarResultado(c.bruto), "bruto=%q", c.bruto)
	}
}

// Linha legada em português não pode cair fora das métricas.
func TestResultadoLegadoPerdida(t *testing.T) {
	assert.Equal(t, ResultadoPerdido, NormalizarResultado("Perdida"))
}

func TestNormalizarStatusAtividade(t *testing.T) {
	casos := []struct {
		bruto    string
		esperado StatusAtividade
	}{
		{"Reunião Realizada", AtividadeRealizada},
		{"Completed", AtividadeRealizada},
		{"No Show", AtividadeNoShow},
		{"no show", AtividadeNoShow},
		{"Reagendada", AtividadeReagendada},
		{"Rescheduled", AtividadeReagendada},
		{"Em Andamento", AtividadeOutro},
		{"", AtividadeOutro},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, NormalizarStatusAtividade(c.bruto), "bruto=%q", c.bruto)
	}
}

func TestNormalizarQualificacao(t *testing.T) {
	assert.Equal(t, Qualificado, NormalizarQualificacao("Qualificado"))
	assert.Equal(t, Qualificado, NormalizarQualificacao("Qualified"))
	assert.Equal(t, NaoQualificado, NormalizarQualificacao("Não Qualificado"))
	assert.Equal(t, NaoQualificado, NormalizarQualificacao("Unqualified"))
	assert.Equal(t, NaoIdentificado, NormalizarQualificacao("Não Identificado"))
	assert.Equal(t, QualificacaoDesconhecida, NormalizarQualificacao("Desconhecido"))
	assert.Equal(t, QualificacaoDesconhecida, NormalizarQualificacao(""))
}

func TestSim(t *testing.T) {
	assert.True(t, Sim("Sim"))
	assert.True(t, Sim("Yes"))
	assert.True(t, Sim(" sim "))
	assert.False(t, Sim("Não"))
	assert.False(t, Sim("No"))
	assert.False(t, Sim(""))
}

func TestEvolucaoCorresponde(t *testing.T) {
	r1r2 := Evolucoes[0]
	assert.True(t, r1r2.Corresponde("De R1 para R2"))
	assert.True(t, r1r2.Corresponde("R1 > R2"))
	assert.False(t, r1r2.Corresponde("R2 > R3"))
	assert.False(t, r1r2.Corresponde("Nenhuma"))
}

func TestMeioPagamentoValido(t *testing.T) {
	assert.True(t, MeioPagamentoValido("PIX"))
	assert.True(t, MeioPagamentoValido("pix"))
	assert.True(t, MeioPagamentoValido("Boleto"))
	assert.False(t, MeioPagamentoValido("Cheque"))
}
