package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/GrupoRugido/api-vendas/internal/atividade"
	"github.com/GrupoRugido/api-vendas/internal/consulta"
	"github.com/GrupoRugido/api-vendas/internal/filtro"
)

// BuscaAtividades carrega o snapshot de atividades para uma seleção.
type BuscaAtividades func(ctx context.Context, sel filtro.Selecao) ([]atividade.Atividade, error)

// Painel mantém o último snapshot de métricas visível. Cada troca de
// filtro dispara uma nova carga; a resposta de uma carga superada nunca
// sobrescreve o snapshot de uma mais recente (guarda de geração).
type Painel struct {
	buscar BuscaAtividades
	guarda consulta.Guarda

	mu    sync.RWMutex
	atual Metricas
}

// NovoPainel monta o painel sobre a função de busca (em produção, a
// listagem do repositório de atividades).
func NovoPainel(buscar BuscaAtividades) *Painel {
	return &Painel{buscar: buscar}
}

// Recarregar busca e agrega as métricas da seleção. O resultado é sempre
// devolvido ao chamador, mas só vira o snapshot visível se esta carga
// ainda for a mais recente quando terminar.
func (p *Painel) Recarregar(ctx context.Context, sel filtro.Selecao) (Metricas, error) {
	gen := p.guarda.Emitir()

	atividades, err := p.buscar(ctx, sel)
	if err != nil {
		return Metricas{}, err
	}
	m := Agregar(atividades, sel, time.Now())

	if p.guarda.Vigente(gen) {
		p.mu.Lock()
		p.atual = m
		p.mu.Unlock()
	}
	return m, nil
}

// Snapshot devolve o último snapshot aplicado.
func (p *Painel) Snapshot() Metricas {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.atual
}

// Fechar desmonta o painel: cargas em voo são descartadas ao terminar.
func (p *Painel) Fechar() {
	p.guarda.Fechar()
}
