package perfil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/GrupoRugido/api-vendas/internal/auth"
	"github.com/GrupoRugido/api-vendas/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler cobre login e o cadastro de perfis (closers e admins).
type Handler struct {
	DB   *gorm.DB
	Repo Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repo: NewRepository()}
}

type loginDTO struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type criarPerfilDTO struct {
	NomeCompleto string `json:"nomeCompleto"`
	Email        string `json:"email"`
	Senha        string `json:"senha"`
	IsAdmin      bool   `json:"isAdmin"`
}

type alterarPerfilDTO struct {
	IsAdmin *bool `json:"isAdmin"`
	Ativo   *bool `json:"ativo"`
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorEmail(h.DB, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil || !utils.CheckSenha(p.Senha, in.Senha) {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if !p.Ativo {
		http.Error(w, "Perfil desativado", http.StatusForbidden)
		return
	}

	access, err := auth.IssueTokensOnLogin(h.DB, w, p.ID, p.IsAdmin)
	if err != nil {
		http.Error(w, "Erro ao emitir tokens", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": access,
		"token_type":   "Bearer",
		"perfil":       p,
	})
}

// GET /perfis?ativos=true
// Alimenta o seletor de closer do painel.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	somenteAtivos := r.URL.Query().Get("ativos") == "true"
	perfis, err := h.Repo.Listar(h.DB, somenteAtivos)
	if err != nil {
		http.Error(w, "Erro ao buscar perfis", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(perfis)
}

// POST /perfis (admin)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var in criarPerfilDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.NomeCompleto) == "" || strings.TrimSpace(in.Email) == "" || in.Senha == "" {
		http.Error(w, "Nome, email e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(in.Senha)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	p := &Perfil{
		NomeCompleto: strings.TrimSpace(in.NomeCompleto),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Senha:        hash,
		IsAdmin:      in.IsAdmin,
		Ativo:        true,
	}
	if err := h.Repo.Salvar(h.DB, p); err != nil {
		http.Error(w, "Erro ao criar perfil (email já cadastrado?)", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// PATCH /perfis/{id} (admin)
// Liga/desliga admin e ativo; não mexe em senha nem email.
func (h *Handler) Alterar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var in alterarPerfilDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.BuscarPorID(h.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Perfil não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar perfil", http.StatusInternalServerError)
		return
	}

	if in.IsAdmin != nil {
		p.IsAdmin = *in.IsAdmin
	}
	if in.Ativo != nil {
		p.Ativo = *in.Ativo
	}
	if err := h.Repo.Salvar(h.DB, p); err != nil {
		http.Error(w, "Erro ao atualizar perfil", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}
