package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GrupoRugido/api-vendas/internal/atividade"
	"github.com/GrupoRugido/api-vendas/internal/filtro"
	"gorm.io/gorm"
)

// Handler serve as métricas agregadas do painel.
type Handler struct {
	DB     *gorm.DB
	Painel *Painel
}

// NewHandler liga o painel à listagem do repositório de atividades: os
// filtros de igualdade (closer, canal) vão na query; o período é
// aplicado em memória pela agregação.
func NewHandler(db *gorm.DB) *Handler {
	repo := atividade.NewRepository()
	buscar := func(ctx context.Context, sel filtro.Selecao) ([]atividade.Atividade, error) {
		f := atividade.Filtro{}
		if sel.FiltraCloser() {
			f.CloserID = sel.CloserID
		}
		if sel.FiltraCanal() {
			f.Canal = sel.Canal
		}
		return repo.Listar(db.WithContext(ctx), f)
	}
	return &Handler{DB: db, Painel: NovoPainel(buscar)}
}

// GET /dashboard/metricas
func (h *Handler) Metricas(w http.ResponseWriter, r *http.Request) {
	sel := filtro.DaQuery(r.URL.Query())

	m, err := h.Painel.Recarregar(r.Context(), sel)
	if err != nil {
		http.Error(w, "Erro ao carregar métricas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m)
}
