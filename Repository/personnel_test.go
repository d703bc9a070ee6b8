package Repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Guardias/Models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// A pooled second connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Models.Migrate(db))
	return db
}

func samplePeople(n int) []Models.Person {
	people := make([]Models.Person, n)
	for i := range people {
		people[i] = Models.Person{
			Legajo:       fmt.Sprintf("54%02d", i),
			Cuil:         fmt.Sprintf("2035961283%d", i),
			Nombre:       fmt.Sprintf("Empleado %d", i),
			LeaderLegajo: "9001",
		}
	}
	return people
}

func TestUpsertCountsInsertThenUpdate(t *testing.T) {
	repo := NewPersonnelRepo(testDB(t))
	batch := samplePeople(5)

	inserted, updated, err := repo.Upsert(batch)
	require.NoError(t, err)
	assert.Equal(t, 5, inserted)
	assert.Equal(t, 0, updated)

	inserted, updated, err = repo.Upsert(batch)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, 5, updated)
}

func TestUpsertOverwritesWholesale(t *testing.T) {
	repo := NewPersonnelRepo(testDB(t))

	first := Models.Person{
		Legajo: "5478", Cuil: "20359612835", Nombre: "Juan Pérez",
		LeaderLegajo: "9001", Funcion: "Operador",
		Extra: []byte(`{"Gerencia":"Sur"}`),
	}
	_, _, err := repo.Upsert([]Models.Person{first})
	require.NoError(t, err)

	// Re-import with changed fields and no extras: everything is replaced,
	// not merged.
	second := first
	second.Nombre = "Juan P. Pérez"
	second.LeaderLegajo = "9002"
	second.Funcion = ""
	second.Extra = nil
	_, updated, err := repo.Upsert([]Models.Person{second})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	got, err := repo.GetByLegajo("5478")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Juan P. Pérez", got.Nombre)
	assert.Equal(t, "9002", got.LeaderLegajo)
	assert.Empty(t, got.Funcion)
	assert.Empty(t, []byte(got.Extra))
}

func TestGetByLegajoAbsent(t *testing.T) {
	repo := NewPersonnelRepo(testDB(t))
	got, err := repo.GetByLegajo("0000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListAllOrderedByNombre(t *testing.T) {
	repo := NewPersonnelRepo(testDB(t))
	_, _, err := repo.Upsert([]Models.Person{
		{Legajo: "3", Cuil: "1", Nombre: "Zárate", LeaderLegajo: "9001"},
		{Legajo: "1", Cuil: "2", Nombre: "Acosta", LeaderLegajo: "9001"},
		{Legajo: "2", Cuil: "3", Nombre: "Medina", LeaderLegajo: "9002"},
	})
	require.NoError(t, err)

	people, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "Acosta", people[0].Nombre)
	assert.Equal(t, "Medina", people[1].Nombre)
	assert.Equal(t, "Zárate", people[2].Nombre)
}

func TestDistinctLeaderLegajos(t *testing.T) {
	repo := NewPersonnelRepo(testDB(t))
	_, _, err := repo.Upsert([]Models.Person{
		{Legajo: "1", Cuil: "1", Nombre: "A", LeaderLegajo: "9002"},
		{Legajo: "2", Cuil: "2", Nombre: "B", LeaderLegajo: "9001"},
		{Legajo: "3", Cuil: "3", Nombre: "C", LeaderLegajo: "9001"},
		{Legajo: "4", Cuil: "4", Nombre: "D", LeaderLegajo: ""},
	})
	require.NoError(t, err)

	leaders, err := repo.DistinctLeaderLegajos()
	require.NoError(t, err)
	assert.Equal(t, []string{"9001", "9002"}, leaders)
}
