package atividade

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GrupoRugido/api-vendas/internal/auth"
	"github.com/GrupoRugido/api-vendas/internal/filtro"
	"github.com/GrupoRugido/api-vendas/internal/lead"
	"github.com/GrupoRugido/api-vendas/internal/notificacao"
	"github.com/GrupoRugido/api-vendas/internal/perfil"
	"github.com/GrupoRugido/api-vendas/internal/status"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler cobre o diário de prospecção, o histórico e as propostas.
type Handler struct {
	DB     *gorm.DB
	Repo   Repository
	Leads  lead.Repository
	Perfis perfil.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:     db,
		Repo:   NewRepository(),
		Leads:  lead.NewRepository(),
		Perfis: perfil.NewRepository(),
	}
}

// POST /atividades
// Lançamento do diário: o closer vem da sessão autenticada e o lead é
// criado na hora se for a primeira menção ao nome.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	usuarioID, ok := auth.UsuarioDoContexto(r.Context())
	if !ok {
		http.Error(w, "Não autenticado", http.StatusUnauthorized)
		return
	}

	var in CriarAtividadeDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	p, err := h.Perfis.BuscarPorID(h.DB, usuarioID)
	if err != nil {
		http.Error(w, "Perfil do closer não encontrado", http.StatusUnauthorized)
		return
	}

	a, err := in.ParaModelo(p.ID, p.NomeCompleto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Leads.BuscarOuCriar(h.DB, a.Lead, ""); err != nil {
		http.Error(w, "Erro ao registrar o lead", http.StatusInternalServerError)
		return
	}
	if err := h.Repo.Salvar(h.DB, a); err != nil {
		http.Error(w, "Erro ao salvar atividade", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// GET /atividades
// Histórico com filtros: closer e canal vão na query do banco; período,
// desfecho e busca por lead são recortados em memória depois da
// normalização dos textos legados.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := filtro.DaQuery(q)

	f := Filtro{}
	if sel.FiltraCloser() {
		f.CloserID = sel.CloserID
	}
	if sel.FiltraCanal() {
		f.Canal = sel.Canal
	}

	list, err := h.Repo.Listar(h.DB.WithContext(r.Context()), f)
	if err != nil {
		http.Error(w, "Erro ao buscar atividades", http.StatusInternalServerError)
		return
	}

	agora := time.Now()
	resultado := status.NormalizarResultado(q.Get("resultado"))
	filtraResultado := temFiltro(q.Get("resultado"))
	st := status.NormalizarStatusAtividade(q.Get("status"))
	filtraStatus := temFiltro(q.Get("status"))
	qual := status.NormalizarQualificacao(q.Get("qualificacao"))
	filtraQual := temFiltro(q.Get("qualificacao"))
	tipo := strings.TrimSpace(q.Get("tipo"))
	filtraTipo := temFiltro(tipo)
	busca := strings.ToLower(strings.TrimSpace(q.Get("busca")))

	filtradas := []Atividade{}
	for _, a := range list {
		if !sel.Periodo.Contem(a.DataReferencia(), agora) {
			continue
		}
		if filtraResultado && a.ResultadoNormalizado() != resultado {
			continue
		}
		if filtraStatus && status.NormalizarStatusAtividade(a.Status) != st {
			continue
		}
		if filtraQual && status.NormalizarQualificacao(a.Qualificacao) != qual {
			continue
		}
		if filtraTipo && !strings.EqualFold(a.Tipo, tipo) {
			continue
		}
		if busca != "" && !strings.Contains(strings.ToLower(a.Lead), busca) {
			continue
		}
		filtradas = append(filtradas, a)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(filtradas)
}

func temFiltro(v string) bool {
	return v != "" && v != filtro.Todos
}

// PUT /atividades/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var in AtualizarAtividadeDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	a, err := h.Repo.BuscarPorID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Atividade não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar atividade", http.StatusInternalServerError)
		return
	}

	if err := in.Aplicar(a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Repo.Atualizar(h.DB, a); err != nil {
		http.Error(w, "Erro ao atualizar atividade", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// GET /propostas
func (h *Handler) ListarPropostas(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListarPropostasAbertas(h.DB.WithContext(r.Context()))
	if err != nil {
		http.Error(w, "Erro ao buscar propostas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// PATCH /atividades/{id}/resultado
// Desfecho da negociação. No ganho sem valor de venda informado, o valor
// da proposta é assumido; sem data informada, a venda é datada de hoje.
func (h *Handler) RegistrarDesfecho(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var in DesfechoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	res := status.NormalizarResultado(in.Resultado)
	if res != status.ResultadoGanho && res != status.ResultadoPerdido {
		http.Error(w, "Resultado deve ser Ganho ou Perdido", http.StatusBadRequest)
		return
	}

	a, err := h.Repo.BuscarPorID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Atividade não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar atividade", http.StatusInternalServerError)
		return
	}

	// só negociação em aberto transita; desfazer um desfecho é papel da
	// remoção de venda, nunca de um novo PATCH por cima
	if a.ResultadoNormalizado() != status.ResultadoEmAberto {
		http.Error(w, "Negociação já tem desfecho registrado", http.StatusConflict)
		return
	}

	campos := map[string]interface{}{"resultado": res.String()}

	if res == status.ResultadoGanho {
		valor := 0.0
		if strings.TrimSpace(in.ValorVenda) != "" {
			valor, err = strconv.ParseFloat(strings.TrimSpace(in.ValorVenda), 64)
			if err != nil || valor <= 0 {
				http.Error(w, "Valor da venda deve ser um número positivo", http.StatusBadRequest)
				return
			}
		} else if a.ValorProposta != nil && *a.ValorProposta > 0 {
			valor = *a.ValorProposta
		} else {
			http.Error(w, "Venda ganha precisa de valor de venda ou de proposta", http.StatusBadRequest)
			return
		}

		dataVenda := time.Now()
		if strings.TrimSpace(in.DataVenda) != "" {
			dataVenda, err = time.Parse("2006-01-02", in.DataVenda)
			if err != nil {
				http.Error(w, "Data da venda inválida (use YYYY-MM-DD)", http.StatusBadRequest)
				return
			}
		}
		campos["valor_venda"] = valor
		campos["data_venda"] = dataVenda
	}

	if err := h.Repo.AtualizarCampos(h.DB, uint(id), campos); err != nil {
		http.Error(w, "Erro ao registrar desfecho", http.StatusInternalServerError)
		return
	}

	atualizada, err := h.Repo.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Erro ao recarregar atividade", http.StatusInternalServerError)
		return
	}

	if res == status.ResultadoGanho {
		go notificacao.EnviarAlertaVenda(atualizada.Closer, atualizada.Lead, atualizada.ValorDaVenda())
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atualizada)
}
