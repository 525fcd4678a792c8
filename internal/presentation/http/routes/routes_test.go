package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-ledger/internal/application/service"
	"github.com/sangkips/pos-ledger/internal/config"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/sangkips/pos-ledger/internal/infrastructure/kvstore"
	"github.com/sangkips/pos-ledger/internal/infrastructure/operator"
	"github.com/sangkips/pos-ledger/internal/infrastructure/repository"
	"github.com/sangkips/pos-ledger/internal/presentation/http/handler"
	"github.com/sangkips/pos-ledger/internal/presentation/http/middleware"
	"github.com/sangkips/pos-ledger/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Meta    struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testServer struct {
	router *gin.Engine
	rec    *printer.Recorder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kvstore.WithPrefix("pos_", kvstore.NewMemoryStore())
	ingredientRepo := repository.NewIngredientRepository(store, nil)
	productRepo := repository.NewProductRepository(store, nil)
	orderRepo := repository.NewOrderRepository(store, nil)
	saleRepo := repository.NewSaleRepository(store, nil)
	idempotencyRepo := repository.NewIdempotencyRepository(store, nil)

	channel := operator.NewChannel(nil)
	rec := printer.NewRecorder()

	inventory := service.NewInventoryService(ingredientRepo, nil)
	catalog := service.NewCatalogService(productRepo, nil)
	orders := service.NewOrderService(orderRepo, productRepo, nil)
	sales := service.NewSaleService(orderRepo, productRepo, ingredientRepo, saleRepo, channel, true, nil)
	reports := service.NewReportService(saleRepo, productRepo, ingredientRepo, enum.CostBasisLive, nil)
	receipts := service.NewReceiptService(rec, saleRepo, entity.ReceiptHeader{StoreName: "Corner Cafe"}, 32, nil)

	router := Setup(&Handlers{
		Health:     handler.NewHealthHandler("pos-ledger", receipts),
		Ingredient: handler.NewIngredientHandler(inventory),
		Product:    handler.NewProductHandler(catalog),
		Order:      handler.NewOrderHandler(orders, sales),
		Sale:       handler.NewSaleHandler(sales, receipts),
		Report:     handler.NewReportHandler(reports),
		Operator:   handler.NewOperatorHandler(channel),
	}, &Deps{Cfg: &config.Config{}, IdempotencyRepo: idempotencyRepo})

	return &testServer{router: router, rec: rec}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) (int, envelope, http.Header) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env, w.Header()
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type idOnly struct {
	ID string `json:"id"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["printer_ready"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)

	code, env, _ := s.do(t, http.MethodPost, "/api/v1/ingredients", map[string]any{
		"name": "Coffee Beans", "unit": "g", "quantity": 1000, "reorder_level": 100,
	})
	require.Equal(t, http.StatusCreated, code, string(env.Errors))
	beans := decode[idOnly](t, env.Data)

	code, env, _ = s.do(t, http.MethodPost, "/api/v1/ingredients", map[string]any{
		"name": "Soy Milk", "unit": "ml", "quantity": 500, "reorder_level": 150,
	})
	require.Equal(t, http.StatusCreated, code)
	soy := decode[idOnly](t, env.Data)

	code, env, _ = s.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Latte", "sku": "LAT-001", "base_price": 4.5, "base_cost": 1.2,
		"recipe": []map[string]any{{"ingredient_id": beans.ID, "quantity_used": 18}},
		"modifier_groups": []map[string]any{{
			"name": "Milk",
			"options": []map[string]any{{
				"name": "Soy", "additional_price": 0.75, "additional_cost": 0.25,
				"ingredient_usages": []map[string]any{{"ingredient_id": soy.ID, "quantity_used": 200}},
			}},
		}},
	})
	require.Equal(t, http.StatusCreated, code, string(env.Errors))
	latte := decode[entity.Product](t, env.Data)

	code, env, _ = s.do(t, http.MethodPost, "/api/v1/order/items", map[string]any{
		"product_id": latte.ID.String(),
		"quantity":   2,
		"chosen_modifiers": []map[string]any{{
			"modifier_group_id": latte.ModifierGroups[0].ID.String(),
			"option_id":         latte.ModifierGroups[0].Options[0].ID.String(),
		}},
	})
	require.Equal(t, http.StatusOK, code, string(env.Errors))
	order := decode[map[string]any](t, env.Data)
	assert.Equal(t, 10.5, order["total"])
	assert.Equal(t, "building", order["state"])

	code, env, _ = s.do(t, http.MethodGet, "/api/v1/order/availability", nil)
	require.Equal(t, http.StatusOK, code)
	avail := decode[map[string]any](t, env.Data)
	assert.Equal(t, true, avail["can_finalize"])

	code, env, _ = s.do(t, http.MethodPost, "/api/v1/sales", map[string]any{"payment_method": "card"},
		middleware.IdempotencyKeyHeader, "till-1-0001")
	require.Equal(t, http.StatusCreated, code, string(env.Errors))
	result := decode[service.FinalizeResult](t, env.Data)
	assert.Equal(t, "card", result.Sale.PaymentMethod)

	code, replay, headers := s.do(t, http.MethodPost, "/api/v1/sales", map[string]any{"payment_method": "card"},
		middleware.IdempotencyKeyHeader, "till-1-0001")
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "true", headers.Get(middleware.IdempotencyReplayedHeader))
	assert.JSONEq(t, string(env.Data), string(replay.Data), "a retried checkout does not sell twice")

	code, env, _ = s.do(t, http.MethodGet, "/api/v1/ingredients/"+soy.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 100.0, decode[entity.Ingredient](t, env.Data).Quantity)

	code, env, _ = s.do(t, http.MethodGet, "/api/v1/sales", nil)
	require.Equal(t, http.StatusOK, code)
	page := decode[struct {
		Items      []entity.SaleTransaction `json:"items"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}](t, env.Data)
	assert.Equal(t, 1, page.Pagination.Total)

	code, _, _ = s.do(t, http.MethodPost, "/api/v1/sales/"+result.Sale.ID.String()+"/print", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, s.rec.Jobs(), 1)

	code, env, _ = s.do(t, http.MethodGet, "/api/v1/operator/warnings", nil)
	require.Equal(t, http.StatusOK, code)
	warnings := decode[[]operator.Notice](t, env.Data)
	require.Len(t, warnings, 1)
	assert.Equal(t, entity.WarningLowStock, warnings[0].Reason)

	code, env, _ = s.do(t, http.MethodGet, "/api/v1/reports/sales-summary", nil)
	require.Equal(t, http.StatusOK, code)
	summary := decode[map[string]any](t, env.Data)
	assert.Equal(t, 10.5, summary["total_revenue"])
	assert.Equal(t, 2.9, summary["total_cogs"])
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"empty order", http.MethodPost, "/api/v1/sales", map[string]any{"payment_method": "cash"}, http.StatusUnprocessableEntity},
		{"bad id", http.MethodGet, "/api/v1/ingredients/not-a-uuid", nil, http.StatusBadRequest},
		{"unknown ingredient", http.MethodGet, "/api/v1/ingredients/7f1c2b9e-3a0d-4c1e-9b6a-0f2d5e8c4a11", nil, http.StatusNotFound},
		{"missing required field", http.MethodPost, "/api/v1/ingredients", map[string]any{"unit": "g"}, http.StatusUnprocessableEntity},
		{"adjust without delta", http.MethodPost, "/api/v1/ingredients/7f1c2b9e-3a0d-4c1e-9b6a-0f2d5e8c4a11/adjust", map[string]any{}, http.StatusUnprocessableEntity},
		{"bad product id in order", http.MethodPost, "/api/v1/order/items", map[string]any{"product_id": "x", "quantity": 1}, http.StatusUnprocessableEntity},
		{"negative discount", http.MethodPut, "/api/v1/order/discount", map[string]any{"amount": -2}, http.StatusBadRequest},
		{"reversed dates", http.MethodGet, "/api/v1/reports/sales-summary?start_date=2025-05-02&end_date=2025-05-01", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env, _ := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, code)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
			assert.NotEmpty(t, env.Kind)
			assert.NotEmpty(t, env.Meta.RequestID)
		})
	}
}

func TestDuplicateIngredientConflict(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{"name": "Oat Milk", "unit": "ml", "quantity": 10}

	code, _, _ := s.do(t, http.MethodPost, "/api/v1/ingredients", body)
	require.Equal(t, http.StatusCreated, code)
	code, env, _ := s.do(t, http.MethodPost, "/api/v1/ingredients", body)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "duplicate_name", env.Kind)
	assert.Contains(t, env.Message, "Oat Milk")
}
