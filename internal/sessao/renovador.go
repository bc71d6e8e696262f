// Package sessao mantém a sessão autenticada viva enquanto houver
// consumidores ativos: um único laço verifica o access token em
// intervalos fixos e renova quando a expiração se aproxima.
package sessao

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/GrupoRugido/api-vendas/internal/auth"
)

const (
	// Intervalo entre verificações do token.
	Intervalo = 90 * time.Second
	// Margem antes da expiração em que a renovação dispara.
	Margem = 120 * time.Second
)

// Renovar troca o token atual por um novo (tipicamente via refresh token).
type Renovar func(ctx context.Context) (string, error)

// Renovador é o keepalive com contagem de referências: o laço só roda
// enquanto houver pelo menos um Adquirir sem o Liberar correspondente.
// Vários consumidores compartilham o mesmo laço, nunca um por consumidor.
type Renovador struct {
	renovar   Renovar
	intervalo time.Duration
	margem    time.Duration
	agora     func() time.Time
	expiraEm  func(string) (time.Time, error)

	mu    sync.Mutex
	token string
	refs  int
	parar chan struct{}
}

func NovoRenovador(tokenInicial string, renovar Renovar) *Renovador {
	return &Renovador{
		renovar:   renovar,
		intervalo: Intervalo,
		margem:    Margem,
		agora:     time.Now,
		expiraEm:  auth.ExpiraEm,
		token:     tokenInicial,
	}
}

// Token devolve o access token vigente.
func (r *Renovador) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}

// Adquirir registra um consumidor; o primeiro liga o laço de verificação.
func (r *Renovador) Adquirir() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs++
	if r.refs == 1 {
		r.parar = make(chan struct{})
		go r.laco(r.parar)
	}
}

// Liberar desfaz um Adquirir; o último desliga o laço.
func (r *Renovador) Liberar() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs == 0 {
		return
	}
	r.refs--
	if r.refs == 0 {
		close(r.parar)
		r.parar = nil
	}
}

func (r *Renovador) laco(parar <-chan struct{}) {
	t := time.NewTicker(r.intervalo)
	defer t.Stop()
	for {
		select {
		case <-parar:
			return
		case <-t.C:
			r.verificar(context.Background())
		}
	}
}

// verificar renova o token quando ele expira dentro da margem. Falha de
// renovação é logada e tentada de novo no próximo tique.
func (r *Renovador) verificar(ctx context.Context) {
	r.mu.Lock()
	token := r.token
	r.mu.Unlock()
	if token == "" {
		return
	}

	exp, err := r.expiraEm(token)
	if err != nil {
		log.Printf("sessao: token ilegível: %v", err)
		return
	}
	if exp.Sub(r.agora()) >= r.margem {
		return
	}

	novo, err := r.renovar(ctx)
	if err != nil {
		log.Printf("sessao: falha ao renovar token: %v", err)
		return
	}
	r.mu.Lock()
	r.token = novo
	r.mu.Unlock()
}
