package Controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Guardias/ExcelIO"
	"Guardias/Grid"
	"Guardias/Models"
	"Guardias/Workflow"
)

// ParteController serves the employee's own monthly parte: grid load, draft
// save, submission and Excel export.
type ParteController struct {
	DB *gorm.DB
	WF *Workflow.Service
}

func NewParteController(db *gorm.DB) *ParteController {
	return &ParteController{DB: db, WF: Workflow.NewService(db)}
}

// GetParte returns the parte for the period (creating it in BORRADOR on
// first access) along with the projected grid and its totals.
func (pc *ParteController) GetParte(ctx *fiber.Ctx) error {
	person := ctx.Locals("person").(*Models.Person)
	periodo := ctx.Params("periodo")
	if _, _, err := Grid.ParsePeriodo(periodo); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	parte, err := pc.WF.GetOrCreate(person.Legajo, periodo)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load parte"})
	}
	grid, err := pc.WF.LoadGrid(person.Legajo, periodo)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load items"})
	}

	return ctx.JSON(fiber.Map{
		"parte":    parte,
		"grid":     grid,
		"totals":   Grid.ComputeTotals(grid),
		"editable": Models.EstadoEditable(parte.Estado),
	})
}

func (pc *ParteController) parseGrid(ctx *fiber.Ctx) (Grid.Grid, error) {
	if _, _, err := Grid.ParsePeriodo(ctx.Params("periodo")); err != nil {
		return Grid.Grid{}, err
	}
	var grid Grid.Grid
	if err := ctx.BodyParser(&grid); err != nil {
		return Grid.Grid{}, err
	}
	return grid, nil
}

// SaveParte stores the posted grid as a draft.
func (pc *ParteController) SaveParte(ctx *fiber.Ctx) error {
	person := ctx.Locals("person").(*Models.Person)
	grid, err := pc.parseGrid(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := pc.WF.SaveDraft(person.Legajo, ctx.Params("periodo"), grid); err != nil {
		return parteError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Guardado."})
}

// SubmitParte stores the posted grid and sends the parte for approval.
func (pc *ParteController) SubmitParte(ctx *fiber.Ctx) error {
	person := ctx.Locals("person").(*Models.Person)
	grid, err := pc.parseGrid(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := pc.WF.Submit(person.Legajo, ctx.Params("periodo"), grid); err != nil {
		return parteError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Enviado a aprobación. Queda bloqueado."})
}

// ExportParte streams the month as an xlsx workbook.
func (pc *ParteController) ExportParte(ctx *fiber.Ctx) error {
	person := ctx.Locals("person").(*Models.Person)
	periodo := ctx.Params("periodo")
	grid, err := pc.WF.LoadGrid(person.Legajo, periodo)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := ExcelIO.ExportParte(person.Nombre, person.Legajo, periodo, grid, Grid.ComputeTotals(grid))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build workbook"})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="parte_%s_%s.xlsx"`, person.Legajo, periodo))
	return ctx.Send(data)
}

func parteError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, Workflow.ErrStateConflict):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "El estado del parte no permite esta operación."})
	case errors.Is(err, Workflow.ErrEmptyComment):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El comentario es obligatorio."})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
