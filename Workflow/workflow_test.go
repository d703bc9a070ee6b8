package Workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Guardias/Grid"
	"Guardias/Models"
	"Guardias/Repository"
)

func testService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Models.Migrate(db))

	_, _, err = Repository.NewPersonnelRepo(db).Upsert([]Models.Person{
		{Legajo: "5478", Cuil: "20359612835", Nombre: "Juan Pérez", LeaderLegajo: "9001"},
	})
	require.NoError(t, err)
	return NewService(db)
}

func marchGrid(edit func(*Grid.Grid)) Grid.Grid {
	grid := Grid.BuildEmpty(2025, 3)
	if edit != nil {
		edit(&grid)
	}
	return grid
}

func TestSubmitMovesToEnviado(t *testing.T) {
	svc := testService(t)

	parte, err := svc.GetOrCreate("5478", "202503")
	require.NoError(t, err)
	assert.Equal(t, Models.EstadoBorrador, parte.Estado)
	assert.Nil(t, parte.SubmittedAt)

	grid := marchGrid(func(g *Grid.Grid) {
		g.Rows[0].G = true
		g.Rows[1].HV = 2.5
	})
	require.NoError(t, svc.Submit("5478", "202503", grid))

	parte, err = svc.GetOrCreate("5478", "202503")
	require.NoError(t, err)
	assert.Equal(t, Models.EstadoEnviado, parte.Estado)
	require.NotNil(t, parte.SubmittedAt)
	assert.NotEmpty(t, *parte.SubmittedAt)

	loaded, err := svc.LoadGrid("5478", "202503")
	require.NoError(t, err)
	assert.True(t, loaded.Rows[0].G)
	assert.InDelta(t, 2.5, loaded.Rows[1].HV, 1e-9)
}

func TestSubmitTwiceIsStateConflict(t *testing.T) {
	svc := testService(t)
	grid := marchGrid(nil)
	require.NoError(t, svc.Submit("5478", "202503", grid))
	assert.ErrorIs(t, svc.Submit("5478", "202503", grid), ErrStateConflict)
	assert.ErrorIs(t, svc.SaveDraft("5478", "202503", grid), ErrStateConflict)
}

func TestDecideRejectRequiresComment(t *testing.T) {
	svc := testService(t)
	require.NoError(t, svc.Submit("5478", "202503", marchGrid(nil)))

	assert.ErrorIs(t, svc.Decide("5478", "202503", false, "9001", "   "), ErrEmptyComment)

	// The failed decision touched nothing.
	parte, err := svc.GetOrCreate("5478", "202503")
	require.NoError(t, err)
	assert.Equal(t, Models.EstadoEnviado, parte.Estado)
	assert.Nil(t, parte.RejectionComment)
}

func TestDecideRejectStoresComment(t *testing.T) {
	svc := testService(t)
	require.NoError(t, svc.Submit("5478", "202503", marchGrid(nil)))

	require.NoError(t, svc.Decide("5478", "202503", false, "9001", " missing receipts "))

	parte, err := svc.GetOrCreate("5478", "202503")
	require.NoError(t, err)
	assert.Equal(t, Models.EstadoRechazado, parte.Estado)
	require.NotNil(t, parte.RejectionComment)
	assert.Equal(t, "missing receipts", *parte.RejectionComment)
	require.NotNil(t, parte.ApprovedByLegajo)
	assert.Equal(t, "9001", *parte.ApprovedByLegajo)
}

func TestSaveDraftAfterRejectionClearsComment(t *testing.T) {
	svc := testService(t)
	require.NoError(t, svc.Submit("5478", "202503", marchGrid(nil)))
	require.NoError(t, svc.Decide("5478", "202503", false, "9001", "missing receipts"))

	require.NoError(t, svc.SaveDraft("5478", "202503", marchGrid(func(g *Grid.Grid) {
		g.Rows[9].F = true
	})))

	parte, err := svc.GetOrCreate("5478", "202503")
	require.NoError(t, err)
	assert.Equal(t, Models.EstadoBorrador, parte.Estado)
	assert.Nil(t, parte.RejectionComment)
}

func TestDecideApprove(t *testing.T) {
	svc := testService(t)
	require.NoError(t, svc.Submit("5478", "202503", marchGrid(nil)))

	require.NoError(t, svc.Decide("5478", "202503", true, "9001", ""))

	parte, err := svc.GetOrCreate("5478", "202503")
	require.NoError(t, err)
	assert.Equal(t, Models.EstadoAprobado, parte.Estado)
	require.NotNil(t, parte.ApprovedAt)
	require.NotNil(t, parte.ApprovedByLegajo)
	assert.Equal(t, "9001", *parte.ApprovedByLegajo)

	// APROBADO is terminal: no further decisions or edits.
	assert.ErrorIs(t, svc.Decide("5478", "202503", false, "9001", "late"), ErrStateConflict)
	assert.ErrorIs(t, svc.SaveDraft("5478", "202503", marchGrid(nil)), ErrStateConflict)
}

func TestDecideFromDraftIsStateConflict(t *testing.T) {
	svc := testService(t)
	_, err := svc.GetOrCreate("5478", "202503")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Decide("5478", "202503", true, "9001", ""), ErrStateConflict)
}

func TestSaveReplacesMonthWholesale(t *testing.T) {
	svc := testService(t)

	require.NoError(t, svc.SaveDraft("5478", "202503", marchGrid(func(g *Grid.Grid) {
		g.Rows[0].G = true
		g.Rows[0].Comentario = "primera carga"
		g.Rows[5].HE = 4
	})))
	require.NoError(t, svc.SaveDraft("5478", "202503", marchGrid(func(g *Grid.Grid) {
		g.Rows[10].HO = true
	})))

	grid, err := svc.LoadGrid("5478", "202503")
	require.NoError(t, err)
	assert.False(t, grid.Rows[0].G, "earlier save fully replaced")
	assert.Empty(t, grid.Rows[0].Comentario)
	assert.Zero(t, grid.Rows[5].HE)
	assert.True(t, grid.Rows[10].HO)
}

func TestGridPeriodMismatchRejected(t *testing.T) {
	svc := testService(t)
	err := svc.SaveDraft("5478", "202504", marchGrid(nil))
	assert.Error(t, err)
}
