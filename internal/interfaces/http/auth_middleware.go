package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/users-api/pkg/jwt"
)

// LocalUserID clave en c.Locals del usuario identificado por el token.
const LocalUserID = "user_id"

// Identify lee un Bearer Token JWT opcional y, si es válido, guarda el usuario en c.Locals.
// No rechaza peticiones: sin token o con token inválido la petición sigue anónima.
func Identify(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c.Get(fiber.HeaderAuthorization)); token != "" {
			if claims, err := jwt.Parse(jwtSecret, token); err == nil {
				c.Locals(LocalUserID, claims.UserID)
			}
		}
		return c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetUserID devuelve el usuario identificado o "" si la petición es anónima.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
