package atividade

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Os valores numéricos chegam como texto dos formulários do front; os
// DTOs guardam o bruto e a conversão validada fica nos métodos.

type CriarAtividadeDTO struct {
	Data             string `json:"data"` // YYYY-MM-DD
	Lead             string `json:"lead"`
	BDR              string `json:"bdr"`
	Canal            string `json:"canal"`
	Tipo             string `json:"tipo"`
	Status           string `json:"status"`
	Evolucao         string `json:"evolucao"`
	Qualificacao     string `json:"qualificacao"`
	PropostaEnviada  string `json:"propostaEnviada"`
	ReuniaoResgatada string `json:"reuniaoResgatada"`
	ValorProposta    string `json:"valorProposta"`

	Setor              string `json:"setor"`
	FaturamentoEmpresa string `json:"faturamentoEmpresa"`
	Observacoes        string `json:"observacoes"`
}

func (d CriarAtividadeDTO) Validar() error {
	if strings.TrimSpace(d.Lead) == "" {
		return fmt.Errorf("lead é obrigatório")
	}
	if _, err := d.valorProposta(); err != nil {
		return err
	}
	if _, err := d.data(); err != nil {
		return err
	}
	return nil
}

func (d CriarAtividadeDTO) valorProposta() (*float64, error) {
	if strings.TrimSpace(d.ValorProposta) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(d.ValorProposta), 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("valor da proposta inválido")
	}
	return &v, nil
}

func (d CriarAtividadeDTO) data() (*time.Time, error) {
	if strings.TrimSpace(d.Data) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", d.Data)
	if err != nil {
		return nil, fmt.Errorf("data inválida (use YYYY-MM-DD)")
	}
	return &t, nil
}

// ParaModelo monta a atividade do lançamento; closer vem da sessão
// autenticada, nunca do corpo.
func (d CriarAtividadeDTO) ParaModelo(closerID, closerNome string) (*Atividade, error) {
	if err := d.Validar(); err != nil {
		return nil, err
	}
	valor, _ := d.valorProposta()
	data, _ := d.data()
	return &Atividade{
		Data:               data,
		Closer:             closerNome,
		CloserID:           closerID,
		Lead:               strings.TrimSpace(d.Lead),
		BDR:                d.BDR,
		Canal:              d.Canal,
		Tipo:               d.Tipo,
		Status:             d.Status,
		Evolucao:           d.Evolucao,
		Qualificacao:       d.Qualificacao,
		PropostaEnviada:    d.PropostaEnviada,
		ReuniaoResgatada:   d.ReuniaoResgatada,
		ValorProposta:      valor,
		Setor:              d.Setor,
		FaturamentoEmpresa: d.FaturamentoEmpresa,
		Observacoes:        d.Observacoes,
	}, nil
}

// AtualizarAtividadeDTO cobre a edição pelo histórico; os campos de venda
// têm endpoint próprio e ficam de fora.
type AtualizarAtividadeDTO struct {
	Data             string `json:"data"`
	Lead             string `json:"lead"`
	BDR              string `json:"bdr"`
	Canal            string `json:"canal"`
	Tipo             string `json:"tipo"`
	Status           string `json:"status"`
	Evolucao         string `json:"evolucao"`
	Qualificacao     string `json:"qualificacao"`
	PropostaEnviada  string `json:"propostaEnviada"`
	ReuniaoResgatada string `json:"reuniaoResgatada"`
	ValorProposta    string `json:"valorProposta"`
	Observacoes      string `json:"observacoes"`
}

// Aplicar sobrepõe os campos editáveis na atividade existente.
func (d AtualizarAtividadeDTO) Aplicar(a *Atividade) error {
	c := CriarAtividadeDTO{Data: d.Data, Lead: d.Lead, ValorProposta: d.ValorProposta}
	if err := c.Validar(); err != nil {
		return err
	}
	data, _ := c.data()
	valor, _ := c.valorProposta()

	a.Data = data
	a.Lead = strings.TrimSpace(d.Lead)
	a.BDR = d.BDR
	a.Canal = d.Canal
	a.Tipo = d.Tipo
	a.Status = d.Status
	a.Evolucao = d.Evolucao
	a.Qualificacao = d.Qualificacao
	a.PropostaEnviada = d.PropostaEnviada
	a.ReuniaoResgatada = d.ReuniaoResgatada
	a.ValorProposta = valor
	a.Observacoes = d.Observacoes
	return nil
}

// DesfechoDTO fecha uma negociação: ganho ou perda, com valor e data da
// venda quando ganha.
type DesfechoDTO struct {
	Resultado  string `json:"resultado"` // "Ganho" ou "Perdido"
	ValorVenda string `json:"valorVenda"`
	DataVenda  string `json:"dataVenda"` // YYYY-MM-DD; default hoje quando ganho
}
