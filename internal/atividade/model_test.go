package atividade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptrF(v float64) *float64 { return &v }

func TestValorDaVenda(t *testing.T) {
	casos := []struct {
		nome string
		a    Atividade
		quer float64
	}{
		{"venda preenchida", Atividade{ValorVenda: ptrF(10000)}, 10000},
		{"ganho sem venda usa proposta", Atividade{Resultado: "Ganho", ValorProposta: ptrF(7000)}, 7000},
		{"ganho legado em inglês", Atividade{Resultado: "Won", ValorProposta: ptrF(7000)}, 7000},
		{"em aberto não usa proposta", Atividade{Resultado: "Em Aberto", ValorProposta: ptrF(7000)}, 0},
		{"perdido não usa proposta", Atividade{Resultado: "Perdida", ValorProposta: ptrF(7000)}, 0},
		{"venda zerada não conta", Atividade{ValorVenda: ptrF(0)}, 0},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.quer, c.a.ValorDaVenda())
			assert.Equal(t, c.quer > 0, c.a.EhVenda())
		})
	}
}

func TestDataReferenciaCaiNoCreatedAt(t *testing.T) {
	criada := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	propria := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	a := Atividade{CreatedAt: criada}
	assert.Equal(t, criada, a.DataReferencia())

	a.Data = &propria
	assert.Equal(t, propria, a.DataReferencia())
}

func TestDataDaVendaZeradaSemData(t *testing.T) {
	var a Atividade
	assert.True(t, a.DataDaVenda().IsZero())

	d := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	a.DataVenda = &d
	assert.Equal(t, d, a.DataDaVenda())
}
