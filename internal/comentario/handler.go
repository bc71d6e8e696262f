package comentario

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/GrupoRugido/api-vendas/internal/auth"
	"github.com/GrupoRugido/api-vendas/internal/perfil"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB     *gorm.DB
	Repo   Repository
	Perfis perfil.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repo: NewRepository(), Perfis: perfil.NewRepository()}
}

type criarComentarioDTO struct {
	Texto string `json:"texto"`
}

// POST /atividades/{id}/comentarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	atividadeID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da atividade inválido", http.StatusBadRequest)
		return
	}

	usuarioID, ok := auth.UsuarioDoContexto(r.Context())
	if !ok {
		http.Error(w, "Não autenticado", http.StatusUnauthorized)
		return
	}

	var in criarComentarioDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Texto) == "" {
		http.Error(w, "O campo 'texto' é obrigatório", http.StatusBadRequest)
		return
	}

	autor := ""
	if p, err := h.Perfis.BuscarPorID(h.DB, usuarioID); err == nil {
		autor = p.NomeCompleto
	}

	c := Comentario{
		Texto:       strings.TrimSpace(in.Texto),
		AtividadeID: uint(atividadeID),
		AutorID:     usuarioID,
		Autor:       autor,
	}
	if err := h.Repo.Criar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao criar comentário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /atividades/{id}/comentarios
func (h *Handler) ListarPorAtividade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da atividade inválido", http.StatusBadRequest)
		return
	}

	comentarios, err := h.Repo.ListarPorAtividade(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Erro ao listar comentários", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(comentarios)
}

// DELETE /comentarios/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do comentário inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Remover(h.DB, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Comentário não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao remover comentário", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
