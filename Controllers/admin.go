package Controllers

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Guardias/ExcelIO"
	"Guardias/Repository"
)

// AdminController handles the personnel master: workbook import and the
// directory listing.
type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// allowlistFromEnv returns the configured leader allowlist, or nil when
// LEADER_LEGAJOS is unset; with no allowlist only the non-empty check runs.
func allowlistFromEnv() []string {
	raw := os.Getenv("LEADER_LEGAJOS")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var leaders []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			leaders = append(leaders, p)
		}
	}
	return leaders
}

// ImportMaestro parses the uploaded master workbook, validates every leader
// reference and upserts the whole batch by legajo. Any leader violation
// blocks the import wholesale; nothing is written.
func (a *AdminController) ImportMaestro(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided. Please upload the master workbook."})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid file type. Please upload an Excel file."})
	}

	src, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open uploaded file."})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read uploaded file."})
	}

	people, warnings, err := ExcelIO.ImportMaestroGeneral(data)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	if violations := ExcelIO.ValidateLeaders(people, allowlistFromEnv()); len(violations) > 0 {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      "Hay registros con líder inválido. Corregí el maestro o LEADER_LEGAJOS.",
			"violations": violations,
		})
	}

	inserted, updated, err := Repository.NewPersonnelRepo(a.DB).Upsert(people)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upsert personnel"})
	}

	return ctx.JSON(fiber.Map{
		"rows":     len(people),
		"inserted": inserted,
		"updated":  updated,
		"warnings": warnings,
	})
}

// ListPersonal returns the whole directory ordered by name.
func (a *AdminController) ListPersonal(ctx *fiber.Ctx) error {
	people, err := Repository.NewPersonnelRepo(a.DB).ListAll()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list personnel"})
	}
	return ctx.JSON(people)
}
