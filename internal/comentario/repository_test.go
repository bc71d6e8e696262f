package comentario

import (
	"testing"

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

func TestCriarListarRemover(t *testing.T) {
	db := dbDeTeste(t)
	repo := NewRepository()

	c1 := Comentario{Texto: "Ligar na quinta", AtividadeID: 1, AutorID: "u1", Autor: "Ana"}
	c2 := Comentario{Texto: "Proposta reenviada", AtividadeID: 1, AutorID: "u1", Autor: "Ana"}
	outra := Comentario{Texto: "Outra atividade", AtividadeID: 2, AutorID: "u2"}
	require.NoError(t, repo.Criar(db, &c1))
	require.NoError(t, repo.Criar(db, &c2))
	require.NoError(t, repo.Criar(db, &outra))

	list, err := repo.ListarPorAtividade(db, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ligar na quinta", list[0].Texto, "ordem cronológica")

	require.NoError(t, repo.Remover(db, c1.ID))
	list, _ = repo.ListarPorAtividade(db, 1)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, repo.Remover(db, 999), gorm.ErrRecordNotFound)
}
