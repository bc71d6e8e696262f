// Package consulta traz a guarda de gerações que descarta respostas de
// consultas superadas: troca de filtro dispara nova busca antes de a
// anterior terminar, e só o resultado da geração mais recente pode ser
// aplicado ao estado visível.
package consulta

import "sync"

// Guarda emite gerações monotônicas e sabe qual é a vigente. Depois de
// Fechar, nenhuma geração é vigente.
type Guarda struct {
	mu      sync.Mutex
	geracao uint64
	fechada bool
}

// Emitir registra uma nova consulta e devolve sua geração; a anterior
// passa a ser considerada superada.
func (g *Guarda) Emitir() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.geracao++
	return g.geracao
}

// Vigente informa se a geração ainda é a mais recente emitida. Resposta
// de geração superada deve ser descartada sem efeitos colaterais.
func (g *Guarda) Vigente(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.fechada && gen == g.geracao
}

// Fechar invalida todas as gerações (a visão foi desmontada).
func (g *Guarda) Fechar() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fechada = true
}
