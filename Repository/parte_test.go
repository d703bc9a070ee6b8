package Repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Guardias/Models"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	repo := NewParteRepo(testDB(t))

	first, err := repo.GetOrCreate("5478", "202501")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, Models.EstadoBorrador, first.Estado)
	assert.Nil(t, first.SubmittedAt)
	assert.Nil(t, first.ApprovedAt)
	assert.Nil(t, first.ApprovedByLegajo)
	assert.Nil(t, first.RejectionComment)

	second, err := repo.GetOrCreate("5478", "202501")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, testCount(repo, &count))
	assert.Equal(t, int64(1), count)
}

func testCount(repo ParteRepo, count *int64) error {
	return repo.(*parteRepo).db.Model(&Models.Parte{}).Count(count).Error
}

func TestUpdateEstadoKeepsEarlierTimestamps(t *testing.T) {
	repo := NewParteRepo(testDB(t))
	_, err := repo.GetOrCreate("5478", "202501")
	require.NoError(t, err)

	submitted := "2025-01-31 10:00:00"
	require.NoError(t, repo.UpdateEstado("5478", "202501", Models.EstadoEnviado,
		EstadoUpdate{SubmittedAt: &submitted}))

	// Approval writes approved_at but leaves submitted_at alone and clears
	// the rejection comment.
	approved := "2025-02-01 09:00:00"
	leader := "9001"
	require.NoError(t, repo.UpdateEstado("5478", "202501", Models.EstadoAprobado,
		EstadoUpdate{ApprovedAt: &approved, ApprovedByLegajo: &leader}))

	parte, err := repo.Get("5478", "202501")
	require.NoError(t, err)
	require.NotNil(t, parte)
	assert.Equal(t, Models.EstadoAprobado, parte.Estado)
	require.NotNil(t, parte.SubmittedAt)
	assert.Equal(t, submitted, *parte.SubmittedAt)
	require.NotNil(t, parte.ApprovedAt)
	assert.Equal(t, approved, *parte.ApprovedAt)
	assert.Nil(t, parte.RejectionComment)
}

func TestPendingForLeader(t *testing.T) {
	db := testDB(t)
	people := NewPersonnelRepo(db)
	partes := NewParteRepo(db)

	_, _, err := people.Upsert([]Models.Person{
		{Legajo: "1", Cuil: "1", Nombre: "Acosta", LeaderLegajo: "9001"},
		{Legajo: "2", Cuil: "2", Nombre: "Zárate", LeaderLegajo: "9001"},
		{Legajo: "3", Cuil: "3", Nombre: "Medina", LeaderLegajo: "9002"},
	})
	require.NoError(t, err)

	early := "2025-01-30 08:00:00"
	late := "2025-01-31 08:00:00"
	for legajo, ts := range map[string]*string{"1": &early, "2": &late, "3": &late} {
		_, err := partes.GetOrCreate(legajo, "202501")
		require.NoError(t, err)
		require.NoError(t, partes.UpdateEstado(legajo, "202501", Models.EstadoEnviado,
			EstadoUpdate{SubmittedAt: ts}))
	}
	// A draft never shows up in the inbox.
	_, err = partes.GetOrCreate("1", "202502")
	require.NoError(t, err)

	pending, err := partes.PendingForLeader("9001")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "2", pending[0].Legajo, "newest submission first")
	assert.Equal(t, "1", pending[1].Legajo)
	assert.Equal(t, "Zárate", pending[0].Nombre)
	assert.Equal(t, "202501", pending[0].Periodo)
}
