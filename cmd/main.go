package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GrupoRugido/api-vendas/internal/atividade"
	"github.com/GrupoRugido/api-vendas/internal/auth"
	"github.com/GrupoRugido/api-vendas/internal/comentario"
	"github.com/GrupoRugido/api-vendas/internal/dashboard"
	"github.com/GrupoRugido/api-vendas/internal/lead"
	"github.com/GrupoRugido/api-vendas/internal/pagamento"
	"github.com/GrupoRugido/api-vendas/internal/perfil"
	"github.com/GrupoRugido/api-vendas/internal/recebiveis"
	"github.com/GrupoRugido/api-vendas/internal/sessao"
	"github.com/GrupoRugido/api-vendas/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis do ambiente")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("Erro ao conectar no banco: %v", err)
	}

	if err := perfil.Migrate(database); err != nil {
		log.Fatalf("Erro na migração de perfis: %v", err)
	}
	if err := lead.Migrate(database); err != nil {
		log.Fatalf("Erro na migração de leads: %v", err)
	}
	if err := atividade.Migrate(database); err != nil {
		log.Fatalf("Erro na migração de atividades: %v", err)
	}
	if err := pagamento.Migrate(database); err != nil {
		log.Fatalf("Erro na migração de pagamentos: %v", err)
	}
	if err := comentario.Migrate(database); err != nil {
		log.Fatalf("Erro na migração de comentários: %v", err)
	}
	if err := auth.Migrate(database); err != nil {
		log.Fatalf("Erro na migração de refresh tokens: %v", err)
	}

	perfilHandler := perfil.NewHandler(database)
	atividadeHandler := atividade.NewHandler(database)
	dashboardHandler := dashboard.NewHandler(database)
	recebiveisHandler := recebiveis.NewHandler(database)
	comentarioHandler := comentario.NewHandler(database)

	r := mux.NewRouter()

	// público
	r.HandleFunc("/auth/login", perfilHandler.Login).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/auth/refresh", auth.RefreshHTTPHandler(database)).Methods(http.MethodPost, http.MethodOptions)

	// autenticado
	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/atividades", atividadeHandler.Criar).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/atividades", atividadeHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/atividades/{id}", atividadeHandler.Atualizar).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/atividades/{id}/resultado", atividadeHandler.RegistrarDesfecho).Methods(http.MethodPatch, http.MethodOptions)
	api.HandleFunc("/propostas", atividadeHandler.ListarPropostas).Methods(http.MethodGet)

	api.HandleFunc("/dashboard/metricas", dashboardHandler.Metricas).Methods(http.MethodGet)

	api.HandleFunc("/recebiveis", recebiveisHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/atividades/{id}/pagamentos", recebiveisHandler.AdicionarPagamento).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/pagamentos/{pid}", recebiveisHandler.RemoverPagamento).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/atividades/{id}/data-venda", recebiveisHandler.AtualizarDataVenda).Methods(http.MethodPatch, http.MethodOptions)
	api.HandleFunc("/atividades/{id}/venda", recebiveisHandler.RemoverVenda).Methods(http.MethodDelete, http.MethodOptions)

	api.HandleFunc("/atividades/{id}/comentarios", comentarioHandler.Criar).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/atividades/{id}/comentarios", comentarioHandler.ListarPorAtividade).Methods(http.MethodGet)
	api.HandleFunc("/comentarios/{id}", comentarioHandler.Remover).Methods(http.MethodDelete, http.MethodOptions)

	api.HandleFunc("/perfis", perfilHandler.Listar).Methods(http.MethodGet)
	api.Handle("/perfis", auth.RequireAdmin(http.HandlerFunc(perfilHandler.Criar))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/perfis/{id}", auth.RequireAdmin(http.HandlerFunc(perfilHandler.Alterar))).Methods(http.MethodPatch, http.MethodOptions)

	// sessão de serviço para as integrações de saída fica viva enquanto o
	// servidor rodar
	tokenServico, err := auth.GerarToken("servico-api-vendas", false)
	if err != nil {
		log.Fatalf("Erro ao emitir token de serviço: %v", err)
	}
	renovador := sessao.NovoRenovador(tokenServico, func(ctx context.Context) (string, error) {
		return auth.GerarToken("servico-api-vendas", false)
	})
	renovador.Adquirir()
	defer renovador.Liberar()
	defer dashboardHandler.Painel.Fechar()

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{os.Getenv("CORS_ORIGIN")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}
	srv := &http.Server{Addr: ":" + porta, Handler: handler}

	go func() {
		log.Printf("Servidor rodando na porta %s", porta)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Erro no servidor: %v", err)
		}
	}()

	parar := make(chan os.Signal, 1)
	signal.Notify(parar, os.Interrupt, syscall.SIGTERM)
	<-parar

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Erro no desligamento: %v", err)
	}
}
