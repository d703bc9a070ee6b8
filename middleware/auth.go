package middleware

import (
	"crypto/subtle"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"Guardias/Models"
	"Guardias/Repository"
)

func SecretKey() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("secret")
}

// Verify checks the JWT session cookie and loads the logged-in person into
// c.Locals("person").
func Verify(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies("jwt")
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not Logged In.",
			})
		}

		token, err := jwt.ParseWithClaims(cookie, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			return SecretKey(), nil
		})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token claims",
			})
		}

		// The token issuer is the legajo; the person must still exist in
		// the master.
		person, err := Repository.NewPersonnelRepo(db).GetByLegajo(claims.Issuer)
		if err != nil || person == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User not found",
			})
		}

		c.Locals("person", person)
		return c.Next()
	}
}

// LeaderOnly gates leader endpoints: the logged-in legajo must belong to the
// configured leader set (LEADER_LEGAJOS, or the distinct leaders present in
// the directory when unset).
func LeaderOnly(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		person, ok := c.Locals("person").(*Models.Person)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not Logged In.",
			})
		}
		leaders, err := ResolveLeaders(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to resolve leader set",
			})
		}
		for _, l := range leaders {
			if l == person.Legajo {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Tu usuario no está marcado como líder.",
		})
	}
}

// AdminOnly gates the master-import endpoints behind the shared admin
// secret, sent as the X-Admin-Password header. ADMIN_PASSWORD_HASH (bcrypt)
// takes priority over the plain ADMIN_PASSWORD.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplied := c.Get("X-Admin-Password")
		if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
			if bcrypt.CompareHashAndPassword([]byte(hash), []byte(supplied)) == nil {
				return c.Next()
			}
		} else if expected := os.Getenv("ADMIN_PASSWORD"); expected != "" {
			if subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1 {
				return c.Next()
			}
		} else {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Falta configurar ADMIN_PASSWORD (ENV o secrets).",
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Contraseña incorrecta.",
		})
	}
}
