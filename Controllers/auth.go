package Controllers

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"Guardias/Models"
	"Guardias/Repository"
	"Guardias/middleware"
)

var validate = validator.New()

// AuthController handles the legajo+CUIL login and session endpoints
type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type LoginInput struct {
	Legajo string `json:"legajo" validate:"required"`
	Cuil   string `json:"cuil" validate:"required"`
}

var nonDigits = regexp.MustCompile(`\D+`)

func normalizeDigits(s string) string {
	return nonDigits.ReplaceAllString(strings.TrimSpace(s), "")
}

// cuilMatches accepts the full CUIL or its last 4 (or fewer) digits.
func cuilMatches(stored, input string) bool {
	db := normalizeDigits(stored)
	in := normalizeDigits(input)
	if in == "" {
		return false
	}
	if len(in) <= 4 {
		return len(db) >= len(in) && strings.HasSuffix(db, in)
	}
	return db == in
}

// Login verifies legajo+CUIL against the master and issues the JWT session
// cookie. The resolved role (lider/empleado) is returned for the client.
func (ac *AuthController) Login(ctx *fiber.Ctx) error {
	var input LoginInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Ingresá legajo y CUIL."})
	}

	person, err := Repository.NewPersonnelRepo(ac.DB).GetByLegajo(input.Legajo)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up legajo"})
	}
	if person == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Legajo inexistente en el maestro."})
	}
	if !cuilMatches(person.Cuil, input.Cuil) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "CUIL no coincide."})
	}

	claims := &jwt.RegisteredClaims{
		Issuer:    person.Legajo,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.SecretKey())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not sign session token"})
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
	})

	return ctx.JSON(fiber.Map{
		"legajo":        person.Legajo,
		"nombre":        person.Nombre,
		"leader_legajo": person.LeaderLegajo,
		"role":          ac.roleFor(person),
	})
}

func (ac *AuthController) roleFor(person *Models.Person) string {
	leaders, err := middleware.ResolveLeaders(ac.DB)
	if err != nil {
		return "empleado"
	}
	for _, l := range leaders {
		if l == person.Legajo {
			return "lider"
		}
	}
	return "empleado"
}

func (ac *AuthController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return ctx.JSON(fiber.Map{"message": "Sesión cerrada."})
}

func (ac *AuthController) Me(ctx *fiber.Ctx) error {
	person := ctx.Locals("person").(*Models.Person)
	return ctx.JSON(fiber.Map{
		"legajo":        person.Legajo,
		"nombre":        person.Nombre,
		"leader_legajo": person.LeaderLegajo,
		"role":          ac.roleFor(person),
	})
}
