package pagamento

import (
	"testing"
	"time"

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
	return db
}

func em(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestCriarListarEOrdenacao(t *testing.T) {
	repo := NewRepository(dbDeTeste(t))

	require.NoError(t, repo.Criar(&Pagamento{AtividadeID: 1, ValorPago: 4000, DataPagamento: em(5)}))
	require.NoError(t, repo.Criar(&Pagamento{AtividadeID: 1, ValorPago: 3000, DataPagamento: em(2)}))
	require.NoError(t, repo.Criar(&Pagamento{AtividadeID: 2, ValorPago: 1000, DataPagamento: em(3)}))

	porVenda, err := repo.ListarPorAtividade(1)
	require.NoError(t, err)
	require.Len(t, porVenda, 2)
	assert.Equal(t, 3000.0, porVenda[0].ValorPago, "do mais antigo para o mais novo")

	todos, err := repo.ListarTodos()
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, 4000.0, todos[0].ValorPago, "do mais novo para o mais antigo")
}

func TestSomarPorAtividade(t *testing.T) {
	repo := NewRepository(dbDeTeste(t))

	total, err := repo.SomarPorAtividade(1)
	require.NoError(t, err)
	assert.Zero(t, total, "sem pagamentos soma zero, não erro")

	require.NoError(t, repo.Criar(&Pagamento{AtividadeID: 1, ValorPago: 3000, DataPagamento: em(2)}))
	require.NoError(t, repo.Criar(&Pagamento{AtividadeID: 1, ValorPago: 4000, DataPagamento: em(5)}))

	total, err = repo.SomarPorAtividade(1)
	require.NoError(t, err)
	assert.Equal(t, 7000.0, total)
}

func TestBuscarPorID(t *testing.T) {
	repo := NewRepository(dbDeTeste(t))

	p := Pagamento{AtividadeID: 7, ValorPago: 3000, DataPagamento: em(2)}
	require.NoError(t, repo.Criar(&p))

	achado, err := repo.BuscarPorID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), achado.AtividadeID)
	assert.Equal(t, 3000.0, achado.ValorPago)

	_, err = repo.BuscarPorID(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeletarPorID(t *testing.T) {
	repo := NewRepository(dbDeTeste(t))

	p := Pagamento{AtividadeID: 1, ValorPago: 3000, DataPagamento: em(2)}
	require.NoError(t, repo.Criar(&p))

	require.NoError(t, repo.DeletarPorID(p.ID))
	assert.ErrorIs(t, repo.DeletarPorID(p.ID), gorm.ErrRecordNotFound)
}
