package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pyme-dashboard/internal/application/auth"
	"github.com/jhoicas/pyme-dashboard/internal/application/dto"
)

// Authorizer señal de acceso que consumen las rutas del dashboard.
type Authorizer interface {
	Open() bool
	Stage(token string) (string, error)
	Authorized(token string) bool
}

// LocalStage key de Fiber Locals con la etapa del token.
const LocalStage = "auth_stage"

// RequireAuthorized exige un Bearer Token de etapa "authorized".
// Con el gate abierto deja pasar cualquier petición.
func RequireAuthorized(a Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.Open() {
			c.Locals(LocalStage, auth.StageAuthorized)
			return c.Next()
		}
		tokenString, code, msg := bearerToken(c)
		if code != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		stage, err := a.Stage(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if stage == auth.StagePassword {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MFA_REQUIRED", Message: "falta verificar el código TOTP"})
		}
		if !a.Authorized(tokenString) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token sin acceso al dashboard"})
		}
		c.Locals(LocalStage, stage)
		return c.Next()
	}
}

// bearerToken extrae el token del header Authorization.
// Si falla devuelve el código y mensaje de error a responder.
func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// GetStage devuelve la etapa del token (después del middleware).
func GetStage(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalStage).(string)
	return s
}
