package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pyme-dashboard/internal/application/auth"
	apphttp "github.com/jhoicas/pyme-dashboard/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pyme-dashboard/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testPassword  = "pan-caliente"
	testIssuer    = "pyme-dashboard-test"
	testExpMin    = 60
)

func newTestGate(t *testing.T, password, totpSecret string) *auth.Gate {
	t.Helper()
	g, err := auth.NewGate(auth.GateConfig{
		Password:   password,
		TOTPSecret: totpSecret,
		JWT:        auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	})
	require.NoError(t, err)
	return g
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - RequireAuthorized para exigir la etapa authorized
//   - Un handler dummy que devuelve 200 si pasa el middleware
func buildTestApp(a apphttp.Authorizer) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected", apphttp.RequireAuthorized(a), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":    true,
			"stage": apphttp.GetStage(c),
		})
	})
	return app
}

// tokenForStage genera un JWT con la etapa indicada.
func tokenForStage(t *testing.T, stage string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, "dashboard", stage, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAuthorized
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: token de etapa authorized → HTTP 200.
func TestRequireAuthorized_TokenAutorizadoAccede(t *testing.T) {
	app := buildTestApp(newTestGate(t, testPassword, ""))
	resp := doRequest(t, app, tokenForStage(t, auth.StageAuthorized))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, auth.StageAuthorized, body["stage"])
}

// Caso 2: gate abierto (sin contraseña) → pasa sin header.
func TestRequireAuthorized_GateAbiertoNoPideToken(t *testing.T) {
	app := buildTestApp(newTestGate(t, "", ""))
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 3: token de etapa password (falta TOTP) → HTTP 403 MFA_REQUIRED.
func TestRequireAuthorized_EtapaPasswordRetorna403(t *testing.T) {
	app := buildTestApp(newTestGate(t, testPassword, "JBSWY3DPEHPK3PXP"))
	resp := doRequest(t, app, tokenForStage(t, auth.StagePassword))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MFA_REQUIRED")
}

// Caso 4: sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireAuthorized_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(newTestGate(t, testPassword, ""))
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 5: token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireAuthorized_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(newTestGate(t, testPassword, ""))

	for _, header := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer "} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		resp.Body.Close()
	}
}

// Caso 6: token firmado con otro secreto → HTTP 401.
func TestRequireAuthorized_SecretIncorrecto_Retorna401(t *testing.T) {
	app := buildTestApp(newTestGate(t, testPassword, ""))
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", "dashboard", auth.StageAuthorized, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 7: token expirado → HTTP 401.
func TestRequireAuthorized_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp(newTestGate(t, testPassword, ""))
	tok, err := pkgjwt.Generate(testJWTSecret, "dashboard", auth.StageAuthorized, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
