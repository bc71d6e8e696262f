package atividade

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GrupoRugido/api-vendas/internal/auth"
	"github.com/GrupoRugido/api-vendas/internal/lead"
	"github.com/GrupoRugido/api-vendas/internal/perfil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dbDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// banco em memória vive na conexão; o pool precisa ficar em uma só
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))
	require.NoError(t, lead.Migrate(db))
	require.NoError(t, perfil.Migrate(db))
	return db
}

func closerDeTeste(t *testing.T, db *gorm.DB, nome string) *perfil.Perfil {
	t.Helper()
	p := &perfil.Perfil{NomeCompleto: nome, Email: nome + "@gruporugido.com", Ativo: true}
	require.NoError(t, db.Create(p).Error)
	return p
}

func comUsuario(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), auth.CtxUsuarioID, userID)
	return r.WithContext(ctx)
}

func TestCriarAtividadeCriaLeadECloserDaSessao(t *testing.T) {
	db := dbDeTeste(t)
	h := NewHandler(db)
	ana := closerDeTeste(t, db, "Ana Souza")

	body, _ := json.Marshal(CriarAtividadeDTO{
		Data: "2025-06-01", Lead: "ACME Energia", Canal: "Inbound", Tipo: "R1",
		Status: "Reunião Realizada", PropostaEnviada: "Sim", ValorProposta: "5000",
	})
	req := comUsuario(httptest.NewRequest(http.MethodPost, "/atividades", bytes.NewReader(body)), ana.ID)
	rr := httptest.NewRecorder()
	h.Criar(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var criada Atividade
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &criada))
	assert.Equal(t, ana.ID, criada.CloserID)
	assert.Equal(t, "Ana Souza", criada.Closer)
	assert.Equal(t, "ACME Energia", criada.Lead)

	// o lead foi criado junto
	l, err := lead.NewRepository().BuscarPorNome(db, "ACME Energia")
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
}

func TestCriarAtividadeValidaEntrada(t *testing.T) {
	db := dbDeTeste(t)
	h := NewHandler(db)
	ana := closerDeTeste(t, db, "Ana Souza")

	casos := []struct {
		nome string
		dto  CriarAtividadeDTO
	}{
		{"sem lead", CriarAtividadeDTO{Canal: "Inbound"}},
		{"valor de proposta não numérico", CriarAtividadeDTO{Lead: "ACME", ValorProposta: "abc"}},
		{"data fora do formato", CriarAtividadeDTO{Lead: "ACME", Data: "01/06/2025"}},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			body, _ := json.Marshal(c.dto)
			req := comUsuario(httptest.NewRequest(http.MethodPost, "/atividades", bytes.NewReader(body)), ana.ID)
			rr := httptest.NewRecorder()
			h.Criar(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestCriarAtividadeSemSessao(t *testing.T) {
	db := dbDeTeste(t)
	h := NewHandler(db)

	body, _ := json.Marshal(CriarAtividadeDTO{Lead: "ACME"})
	req := httptest.NewRequest(http.MethodPost, "/atividades", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Criar(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestListarFiltraResultadoNormalizado(t *testing.T) {
	db := dbDeTeste(t)
	h := NewHandler(db)
	ana := closerDeTeste(t, db, "Ana Souza")

	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seed := []Atividade{
		{Data: &d, CloserID: ana.ID, Closer: ana.NomeCompleto, Lead: "ACME", Resultado: "Ganho"},
		{Data: &d, CloserID: ana.ID, Closer: ana.NomeCompleto, Lead: "Beta", Resultado: "Perdida"}, // grafia legada
		{Data: &d, CloserID: ana.ID, Closer: ana.NomeCompleto, Lead: "Gama", Resultado: "Won"},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/atividades?resultado=Ganho", nil)
	rr := httptest.NewRecorder()
	h.Listar(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []Atividade
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 2, "Ganho e Won caem na mesma classe")

	// a grafia legada de perda também é encontrada pelo filtro canônico
	req = httptest.NewRequest(http.MethodGet, "/atividades?resultado=Perdido", nil)
	rr = httptest.NewRecorder()
	h.Listar(rr, req)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Beta", list[0].Lead)
}

func TestListarBuscaPorLead(t *testing.T) {
	db := dbDeTeste(t)
	h := NewHandler(db)
	ana := closerDeTeste(t, db, "Ana Souza")

	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&Atividade{Data: &d, CloserID: ana.ID, Lead: "ACME Energia"}).Error)
	require.NoError(t, db.Create(&Atividade{Data: &d, CloserID: ana.ID, Lead: "Beta Corp"}).Error)

	req := httptest.NewRequest(http.MethodGet, "/atividades?busca=acme", nil)
	rr := httptest.NewRecorder()
	h.Listar(rr, req)

	var list []Atividade
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "ACME Energia", list[0].Lead)
}

func TestListarPropostasAbertas(t *testing.T) {
	db := dbDeTeste(t)
	h := NewHandler(db)
	ana := closerDeTeste(t, db, "Ana Souza")

	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	v := 5000.0
	aberta := Atividade{Data: &d, CloserID: ana.ID, Lead: "ACME", PropostaEnviada: "Sim", ValorProposta: &v, Resultado: "Em Aberto"}
	fechada := Atividade{Data: &d, CloserID: ana.ID, Lead: "Beta", PropostaEnviada: "Sim", ValorProposta: &v, Resultado: "Ganho"}
	semProposta := Atividade{Data: &d, CloserID: ana.ID, Lead: "Gama", PropostaEnviada: "Não"}
	for _, a := range []Atividade{aberta, fechada, semProposta} {
		a := a
		require.NoError(t, db.Create(&a).Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/propostas", nil)
	rr := httptest.NewRecorder()
	h.ListarPropostas(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []Atividade
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "ACME", list[0].Lead)
}

func TestRegistrarDesfechoGanhoAssumeValorDaProposta(t *testing.T) {
	db := dbDeTeste(t)
	h := NewHandler(db)
	ana := closerDeTeste(t, db, "Ana Souza")

	d := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	v := 8000.0
	a := Atividade{Data: &d, CloserID: ana.ID, Lead: "ACME", PropostaEnviada: "Sim", ValorProposta: &v}
	require.NoError(t, db.Create(&a).Error)

	body, _ := json.Marshal(DesfechoDTO{Resultado: "Ganho", DataVenda: "2025-06-05"})
	req := httptest.NewRequest(http.MethodPatch, "/atividades/1/resultado", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.RegistrarDesfecho(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var atualizada Atividade
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &atualizada))
	assert.Equal(t, "Ganho", atualizada.Resultado)
	require.NotNil(t, atualizada.ValorVenda)
	assert.Equal(t, 8000.0, *atualizada.ValorVenda)
	require.NotNil(t, atualizada.DataVenda)
	assert.Equal(t, 5, atualizada.DataVenda.Day())
}

func TestRegistrarDesfechoPerdidoNaoExigeValor(t *testing.T) {
	db := dbDeTeste(t)
	h := NewHandler(db)
	ana := closerDeTeste(t, db, "Ana Souza")

	a := Atividade{CloserID: ana.ID, Lead: "ACME"}
	require.NoError(t, db.Create(&a).Error)

	body, _ := json.Marshal(DesfechoDTO{Resultado: "Perdido"})
	req := httptest.NewRequest(http.MethodPatch, "/atividades/1/resultado", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.RegistrarDesfecho(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var atualizada Atividade
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &atualizada))
	assert.Equal(t, "Perdido", atualizada.Resultado)
	assert.Nil(t, atualizada.ValorVenda)
}

func TestRegistrarDesfechoSoTransitaEmAberto(t *testing.T) {
	db := dbDeTeste(t)
	h := NewHandler(db)
	ana := closerDeTeste(t, db, "Ana Souza")

	v := 10000.0
	ganha := Atividade{CloserID: ana.ID, Lead: "ACME", Resultado: "Ganho", ValorVenda: &v}
	require.NoError(t, db.Create(&ganha).Error)

	// marcar como perdida uma venda já ganha deixaria valor_venda numa
	// linha Perdido; o PATCH tem que recusar
	body, _ := json.Marshal(DesfechoDTO{Resultado: "Perdido"})
	req := httptest.NewRequest(http.MethodPatch, "/atividades/1/resultado", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.RegistrarDesfecho(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)

	var guardada Atividade
	require.NoError(t, db.First(&guardada, ganha.ID).Error)
	assert.Equal(t, "Ganho", guardada.Resultado)
	require.NotNil(t, guardada.ValorVenda)
	assert.Equal(t, 10000.0, *guardada.ValorVenda)

	// o mesmo vale para a grafia legada de perda
	perdida := Atividade{CloserID: ana.ID, Lead: "Beta", Resultado: "Perdida"}
	require.NoError(t, db.Create(&perdida).Error)

	body, _ = json.Marshal(DesfechoDTO{Resultado: "Ganho", ValorVenda: "500"})
	req = httptest.NewRequest(http.MethodPatch, "/atividades/2/resultado", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "2"})
	rr = httptest.NewRecorder()
	h.RegistrarDesfecho(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRegistrarDesfechoInvalido(t *testing.T) {
	db := dbDeTeste(t)
	h := NewHandler(db)
	ana := closerDeTeste(t, db, "Ana Souza")

	a := Atividade{CloserID: ana.ID, Lead: "ACME"}
	require.NoError(t, db.Create(&a).Error)

	body, _ := json.Marshal(DesfechoDTO{Resultado: "Em Aberto"})
	req := httptest.NewRequest(http.MethodPatch, "/atividades/1/resultado", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	h.RegistrarDesfecho(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// ganho sem valor de venda nem proposta é rejeitado
	body, _ = json.Marshal(DesfechoDTO{Resultado: "Ganho"})
	req = httptest.NewRequest(http.MethodPatch, "/atividades/1/resultado", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rr = httptest.NewRecorder()
	h.RegistrarDesfecho(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
