package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Guardias/Grid"
	"Guardias/Models"
	"Guardias/Repository"
	"Guardias/Workflow"
)

// LeaderController serves the approval inbox: pending partes of the
// leader's people, read-only detail, approve/reject.
type LeaderController struct {
	DB *gorm.DB
	WF *Workflow.Service
}

func NewLeaderController(db *gorm.DB) *LeaderController {
	return &LeaderController{DB: db, WF: Workflow.NewService(db)}
}

func (lc *LeaderController) Pendientes(ctx *fiber.Ctx) error {
	person := ctx.Locals("person").(*Models.Person)
	pending, err := lc.WF.PendingForLeader(person.Legajo)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list pending partes"})
	}
	return ctx.JSON(pending)
}

// ownedEmployee re-checks that the target employee reports to the logged-in
// leader; historical re-parenting means the check runs on the current
// master, not on the parte.
func (lc *LeaderController) ownedEmployee(ctx *fiber.Ctx) (*Models.Person, error) {
	leader := ctx.Locals("person").(*Models.Person)
	employee, err := Repository.NewPersonnelRepo(lc.DB).GetByLegajo(ctx.Params("legajo"))
	if err != nil {
		return nil, ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up employee"})
	}
	if employee == nil || employee.LeaderLegajo != leader.Legajo {
		return nil, ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No tenés permisos para ver este parte."})
	}
	return employee, nil
}

// GetParteDetalle returns the employee's parte read-only: grid, totals and
// workflow state.
func (lc *LeaderController) GetParteDetalle(ctx *fiber.Ctx) error {
	employee, err := lc.ownedEmployee(ctx)
	if employee == nil {
		return err
	}

	periodo := ctx.Params("periodo")
	if _, _, err := Grid.ParsePeriodo(periodo); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	parte, err := Repository.NewParteRepo(lc.DB).Get(employee.Legajo, periodo)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load parte"})
	}
	if parte == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Parte not found"})
	}
	grid, err := lc.WF.LoadGrid(employee.Legajo, periodo)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load items"})
	}

	return ctx.JSON(fiber.Map{
		"empleado": fiber.Map{"legajo": employee.Legajo, "nombre": employee.Nombre},
		"parte":    parte,
		"grid":     grid,
		"totals":   Grid.ComputeTotals(grid),
	})
}

type DecideInput struct {
	Approve bool   `json:"approve"`
	Comment string `json:"comment"`
}

// Decide approves or rejects a submitted parte of one of the leader's
// people. Rejection without a comment is refused before touching the row.
func (lc *LeaderController) Decide(ctx *fiber.Ctx) error {
	leader := ctx.Locals("person").(*Models.Person)
	employee, err := lc.ownedEmployee(ctx)
	if employee == nil {
		return err
	}

	var input DecideInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err = lc.WF.Decide(employee.Legajo, ctx.Params("periodo"), input.Approve, leader.Legajo, input.Comment)
	if err != nil {
		return parteError(ctx, err)
	}
	if input.Approve {
		return ctx.JSON(fiber.Map{"message": "Aprobado."})
	}
	return ctx.JSON(fiber.Map{"message": "Rechazado."})
}
