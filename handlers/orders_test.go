package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pho-paradise-api/models"
	"pho-paradise-api/notify"
	"pho-paradise-api/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderRouter(orders store.OrderStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOrderHandler(orders, notify.NewLogSender(slog.Default()), nil, slog.Default())
	r.GET("/api/orders", h.ListOrders)
	r.POST("/api/orders", h.CreateOrder)
	r.GET("/api/orders/:id", h.GetOrder)
	r.PUT("/api/orders/:id", h.UpdateStatus)
	r.POST("/api/orders/:id/override", h.OverrideStatus)
	return r
}

func putStatus(r *gin.Engine, id string, status string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"status": status})
	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+id, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderStoresPendingWithBreakdown(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	r := newOrderRouter(orders)

	body := []byte(`{
		"items": [{"name": "Phở Tái", "unit_price": 10.00, "quantity": 2, "addons": ["Fried Egg"]}],
		"total": 25.49,
		"customer_email": "mai@example.com"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.StatusPending, created.Status)
	assert.InDelta(t, 25.49, created.Total, 0.001)
	require.Len(t, created.Items, 1)
	assert.Equal(t, 2, created.Items[0].Quantity)
}

func TestCreateOrderRejectsInvalidCart(t *testing.T) {
	r := newOrderRouter(store.NewMemoryOrderStore())

	// zero quantity
	body := []byte(`{"items": [{"name": "Phở Tái", "unit_price": 10.00, "quantity": 0}], "total": 10.00}`)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// empty cart
	body = []byte(`{"items": [], "total": 3.99}`)
	req = httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	order := &models.Order{ID: "o1", Status: models.StatusPreparing, Total: 10}
	require.NoError(t, orders.Create(context.Background(), order))
	r := newOrderRouter(orders)

	w := putStatus(r, "o1", "preparing")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Status unchanged")

	stored, err := orders.FindByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, stored.Status)
}

func TestUpdateStatusFollowsForwardEdge(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	require.NoError(t, orders.Create(context.Background(), &models.Order{ID: "o2", Status: models.StatusPending, Total: 10}))
	r := newOrderRouter(orders)

	w := putStatus(r, "o2", "preparing")
	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := orders.FindByID(context.Background(), "o2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, stored.Status)
}

func TestUpdateStatusRejectsSkipsAndRegressions(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	require.NoError(t, orders.Create(context.Background(), &models.Order{ID: "o3", Status: models.StatusPending, Total: 10}))
	r := newOrderRouter(orders)

	w := putStatus(r, "o3", "delivered")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = putStatus(r, "o3", "bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored, err := orders.FindByID(context.Background(), "o3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestOverrideStatusBypassesTable(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	require.NoError(t, orders.Create(context.Background(), &models.Order{ID: "o4", Status: models.StatusDelivered, Total: 10}))
	r := newOrderRouter(orders)

	body, _ := json.Marshal(map[string]string{"status": "preparing", "reason": "kitchen mistake"})
	req := httptest.NewRequest(http.MethodPost, "/api/orders/o4/override", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := orders.FindByID(context.Background(), "o4")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, stored.Status)
}

func TestListOrdersSummary(t *testing.T) {
	orders := store.NewMemoryOrderStore()
	require.NoError(t, orders.Create(context.Background(), &models.Order{ID: "a", Status: models.StatusPending, Total: 1}))
	require.NoError(t, orders.Create(context.Background(), &models.Order{ID: "b", Status: models.StatusPending, Total: 2}))
	require.NoError(t, orders.Create(context.Background(), &models.Order{ID: "c", Status: models.StatusDelivered, Total: 3}))
	r := newOrderRouter(orders)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count        int            `json:"count"`
		OrderSummary map[string]int `json:"order_summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 2, resp.OrderSummary["pending"])
	assert.Equal(t, 1, resp.OrderSummary["delivered"])

	// filtered by status
	req = httptest.NewRequest(http.MethodGet, "/api/orders?status=delivered", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestGetOrderNotFound(t *testing.T) {
	r := newOrderRouter(store.NewMemoryOrderStore())
	req := httptest.NewRequest(http.MethodGet, "/api/orders/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
