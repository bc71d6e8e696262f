// Package filtro define a seleção de filtros do painel (closer, canal,
// período) e o cálculo dos limites de data de cada período.
package filtro

import (
	"net/url"
	"strconv"
	"time"
)

// Todos é o valor sentinela usado pelos seletores do front.
const Todos = "todos"

// TipoPeriodo identifica como o intervalo de datas é calculado.
type TipoPeriodo int

const (
	PeriodoTodos TipoPeriodo = iota
	PeriodoUltimosDias
	PeriodoMesAtual
	PeriodoMesAnterior
	PeriodoIntervalo
)

// Periodo é um recorte de datas. Para PeriodoUltimosDias vale Dias; para
// PeriodoIntervalo valem Inicio e Fim (Fim inclusivo no dia).
type Periodo struct {
	Tipo   TipoPeriodo
	Dias   int
	Inicio time.Time
	Fim    time.Time
}

// Limites devolve [de, ate) do período relativo a agora. limitado=false
// significa período aberto (todo o histórico).
func (p Periodo) Limites(agora time.Time) (de, ate time.Time, limitado bool) {
	switch p.Tipo {
	case PeriodoUltimosDias:
		de = inicioDoDia(agora).AddDate(0, 0, -p.Dias)
		return de, agora.AddDate(0, 0, 1), true
	case PeriodoMesAtual:
		de = time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, agora.Location())
		return de, de.AddDate(0, 1, 0), true
	case PeriodoMesAnterior:
		ate = time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, agora.Location())
		return ate.AddDate(0, -1, 0), ate, true
	case PeriodoIntervalo:
		return inicioDoDia(p.Inicio), inicioDoDia(p.Fim).AddDate(0, 0, 1), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// Contem informa se t cai dentro do período. Data zerada nunca entra em
// período limitado: registro sem data fica fora de qualquer recorte.
func (p Periodo) Contem(t, agora time.Time) bool {
	de, ate, limitado := p.Limites(agora)
	if !limitado {
		return true
	}
	if t.IsZero() {
		return false
	}
	return !t.Before(de) && t.Before(ate)
}

func inicioDoDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Selecao é a combinação de filtros do painel; os critérios se somam (AND).
type Selecao struct {
	CloserID string // vazio ou "todos" = sem filtro
	Canal    string // idem
	Periodo  Periodo
}

// FiltraCloser diz se há filtro ativo de closer.
func (s Selecao) FiltraCloser() bool {
	return s.CloserID != "" && s.CloserID != Todos
}

// FiltraCanal diz se há filtro ativo de canal.
func (s Selecao) FiltraCanal() bool {
	return s.Canal != "" && s.Canal != Todos
}

// DaQuery monta a seleção a partir da query string do painel:
// closer=<uuid|todos>, canal=<nome|todos>, periodo=<7|30|90|mes-atual|
// mes-anterior|todos>, ou de=YYYY-MM-DD&ate=YYYY-MM-DD para intervalo.
func DaQuery(q url.Values) Selecao {
	sel := Selecao{
		CloserID: q.Get("closer"),
		Canal:    q.Get("canal"),
		Periodo:  PeriodoDaQuery(q),
	}
	return sel
}

// PeriodoDaQuery interpreta os parâmetros de período da query string.
func PeriodoDaQuery(q url.Values) Periodo {
	if de, ate := q.Get("de"), q.Get("ate"); de != "" && ate != "" {
		inicio, err1 := time.Parse("2006-01-02", de)
		fim, err2 := time.Parse("2006-01-02", ate)
		if err1 == nil && err2 == nil {
			return Periodo{Tipo: PeriodoIntervalo, Inicio: inicio, Fim: fim}
		}
	}
	switch p := q.Get("periodo"); p {
	case "", Todos:
		return Periodo{}
	case "mes-atual":
		return Periodo{Tipo: PeriodoMesAtual}
	case "mes-anterior":
		return Periodo{Tipo: PeriodoMesAnterior}
	default:
		if dias, err := strconv.Atoi(p); err == nil && dias > 0 {
			return Periodo{Tipo: PeriodoUltimosDias, Dias: dias}
		}
		return Periodo{}
	}
}
