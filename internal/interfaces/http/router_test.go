package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pyme-dashboard/internal/application/analytics"
	"github.com/jhoicas/pyme-dashboard/internal/application/auth"
	"github.com/jhoicas/pyme-dashboard/internal/application/dto"
	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
	"github.com/jhoicas/pyme-dashboard/internal/infrastructure/export"
	"github.com/jhoicas/pyme-dashboard/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/pyme-dashboard/internal/interfaces/http"
	"github.com/jhoicas/pyme-dashboard/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testDataset() *entity.Dataset {
	d := decimal.RequireFromString
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return &entity.Dataset{
		Products: []entity.Product{
			{ProductID: "1", Name: "Baguette", Category: "Pan", UnitPrice: d("2"), CostPrice: d("1"), InitialStock: d("10"), MinStock: d("3")},
			{ProductID: "2", Name: "Tarta", Category: "Pastelería", UnitPrice: d("15"), CostPrice: d("6"), InitialStock: d("1"), MinStock: d("2")},
		},
		Movements: []entity.InventoryMovement{{ProductID: "1", Date: day("2025-01-01"), Type: "in", Quantity: d("5")}},
		Sales: []entity.SaleLine{
			{SaleID: "S1", ProductID: "1", Date: day("2025-01-01"), Quantity: d("3"), PaymentMethod: "cash"},
			{SaleID: "S2", ProductID: "2", Date: day("2025-01-02"), Quantity: d("1"), PaymentMethod: "card"},
		},
		Expenses: []entity.Expense{{Date: day("2025-01-02"), Category: "Luz", Amount: d("4")}},
	}
}

func buildRouterApp(t *testing.T, gate *auth.Gate, demo bool) *fiber.App {
	t.Helper()
	uc := analytics.NewDashboardUseCase(
		analytics.NewDataContext(testDataset()),
		analytics.Options{BusinessName: "Panadería Sol", DemoMode: demo, Locale: "en", CurrencySymbol: "€"},
		export.NewCSVWriter(),
		pdf.NewMarotoPDFGenerator(analytics.NewMoneyFormatter("en", "€")),
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Gate: gate, Dashboard: uc, Log: logger.Nop()})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_LoginYResumen(t *testing.T) {
	app := buildRouterApp(t, newTestGate(t, testPassword, ""), false)

	resp := do(t, app, http.MethodGet, "/api/dashboard/summary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sess := decode[dto.SessionResponse](t, resp)
	require.NotEmpty(t, sess.Token)
	assert.Equal(t, auth.StageAuthorized, sess.Stage)

	resp = do(t, app, http.MethodGet, "/api/dashboard/summary?category=Pan", sess.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, "Panadería Sol", summary.BusinessName)
	assert.True(t, decimal.NewFromInt(6).Equal(summary.KPIs.Revenue))
	assert.Equal(t, 1, summary.KPIs.Orders)
	assert.Equal(t, "Pan", summary.Filter.Category)
	require.Len(t, summary.LowStock, 1)
	assert.Equal(t, "2", summary.LowStock[0].ProductID)
}

func TestRouter_StatusDelGate(t *testing.T) {
	app := buildRouterApp(t, newTestGate(t, testPassword, "JBSWY3DPEHPK3PXP"), false)

	resp := do(t, app, http.MethodGet, "/api/auth/status", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decode[dto.GateStatusDTO](t, resp)
	assert.False(t, status.Open)
	assert.True(t, status.TOTPRequired)
	assert.Empty(t, status.Stage)

	resp = do(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Password: testPassword})
	sess := decode[dto.SessionResponse](t, resp)
	assert.True(t, sess.MFARequired)

	resp = do(t, app, http.MethodGet, "/api/inventory/stock", sess.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, app, http.MethodPost, "/api/auth/totp", "", dto.TOTPRequest{Code: "123456"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_GateAbierto(t *testing.T) {
	app := buildRouterApp(t, newTestGate(t, "", ""), false)

	resp := do(t, app, http.MethodGet, "/api/dashboard/filters", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	opts := decode[dto.FilterOptionsDTO](t, resp)
	assert.Equal(t, []string{"all", "Pan", "Pastelería"}, opts.Categories)
	assert.Equal(t, []string{"all", "card", "cash"}, opts.PaymentMethods)

	resp = do(t, app, http.MethodGet, "/api/inventory/low-stock", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	low := decode[[]dto.StockDTO](t, resp)
	require.Len(t, low, 1)
	assert.True(t, low[0].IsLow)

	resp = do(t, app, http.MethodGet, "/api/dashboard/sales?payment_method=card", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.SalesListDTO](t, resp)
	assert.Equal(t, 1, list.Total)

	resp = do(t, app, http.MethodGet, "/api/dashboard/info", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	info := decode[dto.DatasetInfoDTO](t, resp)
	assert.Equal(t, 2, info.Sales)
}

func TestRouter_FechasInvalidasRetorna400(t *testing.T) {
	app := buildRouterApp(t, newTestGate(t, "", ""), false)

	resp := do(t, app, http.MethodGet, "/api/dashboard/summary?start_date=2025-02-01&end_date=2025-01-01", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ExportCSV(t *testing.T) {
	app := buildRouterApp(t, newTestGate(t, "", ""), false)

	resp := do(t, app, http.MethodGet, "/api/export/sales.csv", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), apphttp.SalesCSVFilename)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "sale_id,date,product_id")
	assert.Contains(t, string(body), "S2")
}

func TestRouter_ExportPDF(t *testing.T) {
	app := buildRouterApp(t, newTestGate(t, "", ""), false)

	resp := do(t, app, http.MethodGet, "/api/export/report.pdf", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestRouter_ModoDemoDeshabilitaExportaciones(t *testing.T) {
	app := buildRouterApp(t, newTestGate(t, "", ""), true)

	for _, path := range []string{"/api/export/sales.csv", "/api/export/report.pdf"} {
		resp := do(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "EXPORT_DISABLED", path)
		resp.Body.Close()
	}
}
