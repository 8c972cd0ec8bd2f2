package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
	"github.com/jhoicas/inventory-stock-api/internal/application/usecase"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
	apphttp "github.com/jhoicas/inventory-stock-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventory-stock-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "inventory-stock-api-test"
)

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, "u-"+role, role, testIssuer, 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

// itemDocs y categoryDocs: catálogo mínimo para que las rutas de escritura lleguen al handler.
type itemDocs struct{}

func (itemDocs) Create(context.Context, *entity.Item) error            { return nil }
func (itemDocs) GetByID(context.Context, string) (*entity.Item, error) { return nil, nil }
func (itemDocs) Delete(context.Context, string) error                  { return nil }
func (itemDocs) ListByCategory(context.Context, string, bool) (*entity.CategoryItems, error) {
	return nil, nil
}

type categoryDocs struct{}

func (categoryDocs) Create(context.Context, *entity.Category) error            { return nil }
func (categoryDocs) GetByID(context.Context, string) (*entity.Category, error) { return nil, nil }
func (categoryDocs) Delete(context.Context, string) error                      { return nil }

func newSecuredApp(t *testing.T) *fiber.App {
	t.Helper()
	log := zerolog.Nop()
	stock := &stockStore{records: map[string]entity.StockRecord{"X": {ItemID: "X", AvailableStock: 10}}}
	audits := &auditStore{records: map[string]entity.AuditRecord{
		"c1": {ID: "a1", CorrelationID: "c1", Status: entity.BatchStatusCompleted, ItemCount: 0, Results: []entity.ItemResult{}},
	}}
	coordinator := inventory.NewBatchCoordinator(inventory.NewItemUpdater(stock, time.Second, log), log)
	queue := &directQueue{consumer: inventory.NewQueueConsumer(coordinator, audits, log)}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		SyncUpdate:    inventory.NewSyncUpdateUseCase(coordinator, log),
		AsyncDispatch: inventory.NewAsyncDispatcher(queue, time.Second, log),
		AuditQuery:    inventory.NewAuditQueryUseCase(audits, nil, log),
		ItemUC:        usecase.NewItemUseCase(itemDocs{}, nil, log),
		CategoryUC:    usecase.NewCategoryUseCase(categoryDocs{}, log),
		JWTSecret:     testJWTSecret,
	})
	return app
}

func TestRouter_PermisosPorRol(t *testing.T) {
	const updateBody = `{"items":[{"_id":"X","stockDetails":{"soldOut":1,"damaged":0}}]}`
	const categoryBody = `{"_id":"cat-nueva","categoryName":"Nueva"}`

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		role   string
		want   int
	}{
		{"viewer no actualiza stock", http.MethodPost, "/api/inventory/update", updateBody, pkgjwt.RoleViewer, http.StatusForbidden},
		{"operator actualiza stock", http.MethodPost, "/api/inventory/update", updateBody, pkgjwt.RoleOperator, http.StatusOK},
		{"admin actualiza stock", http.MethodPost, "/api/inventory/update", updateBody, pkgjwt.RoleAdmin, http.StatusOK},
		{"viewer no encola", http.MethodPost, "/api/inventory/async-update", updateBody, pkgjwt.RoleViewer, http.StatusForbidden},
		{"operator encola", http.MethodPost, "/api/inventory/async-update", updateBody, pkgjwt.RoleOperator, http.StatusAccepted},
		{"viewer consulta estado", http.MethodGet, "/api/inventory/status/c1", "", pkgjwt.RoleViewer, http.StatusOK},
		{"operator consulta estado", http.MethodGet, "/api/inventory/status/c1", "", pkgjwt.RoleOperator, http.StatusOK},
		{"viewer lista categoría", http.MethodGet, "/api/categories/cat-x/items", "", pkgjwt.RoleViewer, http.StatusOK},
		{"operator no borra artículos", http.MethodDelete, "/api/items/X", "", pkgjwt.RoleOperator, http.StatusForbidden},
		{"viewer no borra artículos", http.MethodDelete, "/api/items/X", "", pkgjwt.RoleViewer, http.StatusForbidden},
		{"admin borra artículos", http.MethodDelete, "/api/items/X", "", pkgjwt.RoleAdmin, http.StatusOK},
		{"operator no crea categorías", http.MethodPost, "/api/categories", categoryBody, pkgjwt.RoleOperator, http.StatusForbidden},
		{"admin crea categorías", http.MethodPost, "/api/categories", categoryBody, pkgjwt.RoleAdmin, http.StatusCreated},
		{"admin borra categorías", http.MethodDelete, "/api/categories/cat-x", "", pkgjwt.RoleAdmin, http.StatusOK},
		{"rol desconocido", http.MethodGet, "/api/inventory/status/c1", "", "auditor", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newSecuredApp(t)
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", tokenForRole(t, tc.role))

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRouter_ErroresDeAutenticacion(t *testing.T) {
	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin esquema Bearer", "Token abc", "INVALID_TOKEN"},
		{"firma inválida", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"token sin rol", tokenForRole(t, ""), "MISSING_ROLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newSecuredApp(t)
			req := httptest.NewRequest(http.MethodGet, "/api/inventory/status/c1", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestRouter_SinSecretoNoExigeToken(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/api/inventory/status/c-none", "")
	assert.Equal(t, http.StatusNotFound, status, "sin JWT_SECRET la ruta llega al handler")
	assert.Equal(t, "NOT_FOUND", body["code"])
}
