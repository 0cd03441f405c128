package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pyme-dashboard/internal/application/auth"
	"github.com/jhoicas/pyme-dashboard/internal/application/dto"
	"github.com/jhoicas/pyme-dashboard/pkg/logger"
)

// AuthHandler maneja el control de acceso: contraseña y código TOTP.
type AuthHandler struct {
	gate *auth.Gate
	log  *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(gate *auth.Gate, log *logger.Logger) *AuthHandler {
	return &AuthHandler{gate: gate, log: log}
}

// Login godoc
// @Summary      Iniciar sesión con la contraseña del negocio
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Password == "" && !h.gate.Open() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password es requerido"})
	}
	out, err := h.gate.Login(in)
	if err != nil {
		h.log.Warn().Str("ip", c.IP()).Msg("login fallido")
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// VerifyTOTP godoc
// @Summary      Verificar el código TOTP (segundo factor)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TOTPRequest  true  "code"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/auth/totp [post]
func (h *AuthHandler) VerifyTOTP(c *fiber.Ctx) error {
	token, code, msg := bearerToken(c)
	if code != "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
	var in dto.TOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
	}
	out, err := h.gate.VerifyTOTP(token, in)
	if err != nil {
		h.log.Warn().Str("ip", c.IP()).Msg("código TOTP rechazado")
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado del control de acceso
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.GateStatusDTO
// @Router       /api/auth/status [get]
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	token, _, _ := bearerToken(c)
	return c.JSON(h.gate.Status(token))
}
