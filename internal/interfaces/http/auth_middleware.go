package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agrochain-api/pkg/jwt"
)

// Locals keys para la identidad del token.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalRoleID = "role_id"
)

// OptionalAuth carga la identidad del Bearer Token en c.Locals si es válido.
// Sin cabecera o con un token inválido la petición sigue como anónima.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenString == "" {
			return c.Next()
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Next()
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalRoleID, claims.RoleID)
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del token ("" si la petición es anónima).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetRoleID devuelve el RoleID del token.
func GetRoleID(c *fiber.Ctx) string { return localString(c, LocalRoleID) }
