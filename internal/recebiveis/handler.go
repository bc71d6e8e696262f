package recebiveis

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/GrupoRugido/api-vendas/internal/atividade"
	"github.com/GrupoRugido/api-vendas/internal/filtro"
	"github.com/GrupoRugido/api-vendas/internal/pagamento"
	"github.com/GrupoRugido/api-vendas/internal/status"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler expõe a tela de recebíveis e as operações de pagamento.
type Handler struct {
	DB         *gorm.DB
	Atividades atividade.Repository
	Pagamentos *pagamento.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Atividades: atividade.NewRepository(),
		Pagamentos: pagamento.NewRepository(db),
	}
}

/* ============================== DTOs ============================== */

// O valor chega como texto do formulário; a validação de número positivo
// acontece antes de qualquer escrita.
type criarPagamentoDTO struct {
	ValorPago     string `json:"valorPago"`
	DataPagamento string `json:"dataPagamento"` // YYYY-MM-DD
	MeioPagamento string `json:"meioPagamento"`
}

type atualizarDataVendaDTO struct {
	DataVenda string `json:"dataVenda"` // YYYY-MM-DD
}

type listagemDTO struct {
	Vendas []Venda `json:"vendas"`
	Resumo Resumo  `json:"resumo"`
}

// filtroDaQuery monta o filtro da tela: closer, status, período da venda
// (periodo/de/ate) e período de pagamento (periodoPagamento/dePagamento/
// atePagamento).
func filtroDaQuery(q url.Values) Filtro {
	pgQuery := url.Values{}
	pgQuery.Set("periodo", q.Get("periodoPagamento"))
	pgQuery.Set("de", q.Get("dePagamento"))
	pgQuery.Set("ate", q.Get("atePagamento"))

	return Filtro{
		CloserID:         q.Get("closer"),
		Status:           q.Get("status"),
		PeriodoVenda:     filtro.PeriodoDaQuery(q),
		PeriodoPagamento: filtro.PeriodoDaQuery(pgQuery),
	}
}

/* ============================== Endpoints ============================== */

// GET /recebiveis
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f := filtroDaQuery(r.URL.Query())

	atividades, err := h.Atividades.Listar(h.DB, atividade.Filtro{})
	if err != nil {
		http.Error(w, "Erro ao buscar vendas", http.StatusInternalServerError)
		return
	}
	pagamentos, err := h.Pagamentos.ListarTodos()
	if err != nil {
		http.Error(w, "Erro ao buscar pagamentos", http.StatusInternalServerError)
		return
	}

	vendas, resumo := Conciliar(atividades, pagamentos, f, time.Now())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(listagemDTO{Vendas: vendas, Resumo: resumo})
}

// POST /atividades/{id}/pagamentos
func (h *Handler) AdicionarPagamento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}

	var in criarPagamentoDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	valor, err := strconv.ParseFloat(in.ValorPago, 64)
	if err != nil || valor <= 0 {
		http.Error(w, "Valor pago deve ser um número positivo", http.StatusBadRequest)
		return
	}
	if in.MeioPagamento != "" && !status.MeioPagamentoValido(in.MeioPagamento) {
		http.Error(w, "Meio de pagamento inválido", http.StatusBadRequest)
		return
	}
	data, err := time.Parse("2006-01-02", in.DataPagamento)
	if err != nil {
		http.Error(w, "Data de pagamento inválida (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	venda, err := h.Atividades.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Venda não encontrada", http.StatusNotFound)
		return
	}
	if !venda.EhVenda() {
		http.Error(w, "Atividade não é uma venda", http.StatusBadRequest)
		return
	}

	p := &pagamento.Pagamento{
		AtividadeID:   venda.ID,
		ValorPago:     valor,
		DataPagamento: data,
		MeioPagamento: in.MeioPagamento,
	}
	if err := h.Pagamentos.Criar(p); err != nil {
		http.Error(w, "Erro ao registrar pagamento", http.StatusInternalServerError)
		return
	}

	linha, err := h.linhaDaVenda(venda)
	if err != nil {
		http.Error(w, "Erro ao recalcular a venda", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(linha)
}

// DELETE /pagamentos/{pid}
// Devolve a linha da venda recalculada; editar pagamento é remover e
// lançar de novo.
func (h *Handler) RemoverPagamento(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(mux.Vars(r)["pid"])
	if err != nil {
		http.Error(w, "ID do pagamento inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Pagamentos.BuscarPorID(uint(pid))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Pagamento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar pagamento", http.StatusInternalServerError)
		return
	}

	if err := h.Pagamentos.DeletarPorID(p.ID); err != nil {
		http.Error(w, "Erro ao remover pagamento", http.StatusInternalServerError)
		return
	}

	// a venda pode já ter sido revertida; aí não há linha para devolver
	venda, err := h.Atividades.BuscarPorID(h.DB, p.AtividadeID)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	linha, err := h.linhaDaVenda(venda)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(linha)
}

// PATCH /atividades/{id}/data-venda
// Move a data usada no recorte de período; não mexe nos pagamentos.
func (h *Handler) AtualizarDataVenda(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}

	var in atualizarDataVendaDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	data, err := time.Parse("2006-01-02", in.DataVenda)
	if err != nil {
		http.Error(w, "Data inválida (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	if err := h.Atividades.AtualizarCampos(h.DB, uint(id), map[string]interface{}{"data_venda": data}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Venda não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao atualizar data da venda", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DELETE /atividades/{id}/venda
// Remoção "suave": a atividade volta a Em Aberto (valor, data e desfecho
// limpos), mas os pagamentos históricos ficam no banco para auditoria.
func (h *Handler) RemoverVenda(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da venda inválido", http.StatusBadRequest)
		return
	}

	campos := map[string]interface{}{
		"valor_venda": nil,
		"data_venda":  nil,
		"resultado":   nil,
	}
	if err := h.Atividades.AtualizarCampos(h.DB, uint(id), campos); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Venda não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao remover venda", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// linhaDaVenda recalcula a posição de uma única venda para devolver ao
// front depois de uma escrita.
func (h *Handler) linhaDaVenda(a *atividade.Atividade) (Venda, error) {
	pags, err := h.Pagamentos.ListarPorAtividade(a.ID)
	if err != nil {
		return Venda{}, err
	}
	vendas, _ := Conciliar([]atividade.Atividade{*a}, pags, Filtro{}, time.Now())
	if len(vendas) == 0 {
		return Venda{}, gorm.ErrRecordNotFound
	}
	return vendas[0], nil
}
