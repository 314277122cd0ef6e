package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/Hala-ashour/Restaurant98/internal/application/catalog"
	customerapp "github.com/Hala-ashour/Restaurant98/internal/application/customer"
	orderapp "github.com/Hala-ashour/Restaurant98/internal/application/order"
	"github.com/Hala-ashour/Restaurant98/internal/domain/access"
	"github.com/Hala-ashour/Restaurant98/internal/domain/repository"
	"github.com/Hala-ashour/Restaurant98/internal/infrastructure/persistence/memory"
	"github.com/Hala-ashour/Restaurant98/internal/interfaces/http/handler"
	"github.com/Hala-ashour/Restaurant98/internal/interfaces/http/middleware"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

var secret = []byte("router-test-secret")

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	tokens map[access.Role]string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	log := logger.Nop{}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	RegisterRoutes(engine, Handlers{
		Catalog:  handler.NewCatalogHandler(catalogapp.NewService(store, nil, log), log),
		Customer: handler.NewCustomerHandler(customerapp.NewService(store, log), log),
		Order:    handler.NewOrderHandler(orderapp.NewService(store), log),
	}, secret, log)

	tokens := make(map[access.Role]string)
	for _, role := range []access.Role{access.RoleAdmin, access.RoleManager, access.RoleStaff} {
		tok, err := middleware.SignToken(secret, access.Principal{UserID: "user-" + string(role), Role: role}, nil)
		require.NoError(t, err)
		tokens[role] = tok
	}
	return &testAPI{t: t, engine: engine, tokens: tokens}
}

func (a *testAPI) do(role access.Role, method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+a.tokens[role])
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *testAPI) createProduct(name, price string) string {
	a.t.Helper()
	w := a.do(access.RoleAdmin, http.MethodPost, "/api/products", gin.H{
		"name": name, "description": "Test", "price": price, "is_available": true, "preparation_time": 5,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(a.t, w)["id"].(string)
}

func (a *testAPI) createOrder(customer string) string {
	a.t.Helper()
	w := a.do(access.RoleStaff, http.MethodPost, "/api/orders", gin.H{"customer": customer})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(a.t, w)["id"].(string)
}

func (a *testAPI) available(productID string) bool {
	a.t.Helper()
	w := a.do(access.RoleStaff, http.MethodGet, "/api/products/"+productID+"/check-availability", nil)
	require.Equal(a.t, http.StatusOK, w.Code)
	return decode(a.t, w)["is_available"].(bool)
}

func TestHealthz_NoAuth(t *testing.T) {
	api := newTestAPI(t)

	w := api.do("", http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPI_RequiresToken(t *testing.T) {
	api := newTestAPI(t)

	w := api.do("", http.MethodGet, "/api/products", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_CapabilityMatrix(t *testing.T) {
	api := newTestAPI(t)
	productID := api.createProduct("Coffee", "3.50")
	orderID := api.createOrder("Table 1")

	tests := []struct {
		name   string
		role   access.Role
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"staff cannot create category", access.RoleStaff, http.MethodPost, "/api/categories", gin.H{"name": "Drinks"}, http.StatusForbidden},
		{"manager creates category", access.RoleManager, http.MethodPost, "/api/categories", gin.H{"name": "Drinks"}, http.StatusCreated},
		{"staff cannot update product", access.RoleStaff, http.MethodPut, "/api/products/" + productID, gin.H{"name": "Tea"}, http.StatusForbidden},
		{"staff cannot create customer", access.RoleStaff, http.MethodPost, "/api/customers", gin.H{"phone": "123"}, http.StatusForbidden},
		{"staff reads products", access.RoleStaff, http.MethodGet, "/api/products", nil, http.StatusOK},
		{"staff cannot delete order", access.RoleStaff, http.MethodDelete, "/api/orders/" + orderID, nil, http.StatusForbidden},
		{"manager deletes order", access.RoleManager, http.MethodDelete, "/api/orders/" + orderID, nil, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.do(tt.role, tt.method, tt.path, tt.body).Code)
		})
	}
}

func TestAPI_ErrorMapping(t *testing.T) {
	api := newTestAPI(t)
	productID := api.createProduct("Nachos", "8.50")
	orderID := api.createOrder("Table 2")
	require.Equal(t, http.StatusCreated, api.do(access.RoleStaff, http.MethodPost, "/api/orders/"+orderID+"/items", gin.H{"product": productID}).Code)

	tests := []struct {
		name   string
		role   access.Role
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"unknown product", access.RoleStaff, http.MethodGet, "/api/products/missing", nil, http.StatusNotFound},
		{"negative price", access.RoleAdmin, http.MethodPost, "/api/products", gin.H{"name": "X", "price": "-1", "preparation_time": 1}, http.StatusBadRequest},
		{"zero quantity", access.RoleStaff, http.MethodPost, "/api/orders/" + orderID + "/items", gin.H{"product": productID, "quantity": 0}, http.StatusBadRequest},
		{"item for missing product", access.RoleStaff, http.MethodPost, "/api/orders/" + orderID + "/items", gin.H{"product": "missing"}, http.StatusNotFound},
		{"invalid status", access.RoleStaff, http.MethodPut, "/api/orders/" + orderID + "/status", gin.H{"status": "served"}, http.StatusBadRequest},
		{"referenced product delete", access.RoleAdmin, http.MethodDelete, "/api/products/" + productID, nil, http.StatusConflict},
		{"bad page", access.RoleStaff, http.MethodGet, "/api/products?page=zero", nil, http.StatusBadRequest},
		{"page past int range", access.RoleStaff, http.MethodGet, "/api/products?page=3689348814741910324", nil, http.StatusBadRequest},
		{"page overflowing int", access.RoleStaff, http.MethodGet, "/api/orders?page=99999999999999999999", nil, http.StatusBadRequest},
		{"bad price filter", access.RoleStaff, http.MethodGet, "/api/products?price_gt=cheap", nil, http.StatusBadRequest},
		{"malformed body", access.RoleStaff, http.MethodPost, "/api/orders", "not an object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(tt.role, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestAPI_OrderLifecycle(t *testing.T) {
	api := newTestAPI(t)
	productID := api.createProduct("Coffee", "3.50")
	orderID := api.createOrder("Table 3")

	w := api.do(access.RoleStaff, http.MethodPost, "/api/orders/"+orderID+"/items", gin.H{"product": productID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "7.00", decode(t, w)["line_total"])

	w = api.do(access.RoleStaff, http.MethodPost, "/api/orders/"+orderID+"/recompute-total", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7.00", decode(t, w)["total_amount"])
	assert.True(t, api.available(productID))

	w = api.do(access.RoleStaff, http.MethodPut, "/api/orders/"+orderID+"/status", gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", decode(t, w)["status"])
	assert.False(t, api.available(productID))

	w = api.do(access.RoleStaff, http.MethodPut, "/api/orders/"+orderID+"/status", gin.H{"status": "canceled"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, api.available(productID))

	w = api.do(access.RoleStaff, http.MethodGet, "/api/orders?status=canceled", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])
}

func TestAPI_UpdateOrderLeavesAvailabilityAlone(t *testing.T) {
	api := newTestAPI(t)
	productID := api.createProduct("Burger", "12.00")
	orderID := api.createOrder("Table 4")
	require.Equal(t, http.StatusCreated, api.do(access.RoleStaff, http.MethodPost, "/api/orders/"+orderID+"/items", gin.H{"product": productID}).Code)
	require.Equal(t, http.StatusOK, api.do(access.RoleStaff, http.MethodPut, "/api/orders/"+orderID+"/status", gin.H{"status": "completed"}).Code)

	w := api.do(access.RoleStaff, http.MethodPatch, "/api/orders/"+orderID, gin.H{"notes": "extra napkins"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "extra napkins", decode(t, w)["notes"])
	assert.False(t, api.available(productID))
}

func TestAPI_CustomerDefaultsToCaller(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(access.RoleManager, http.MethodPost, "/api/customers", gin.H{"phone": "1234567890", "address": "123 Test St"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "user-manager", decode(t, w)["user"])

	w = api.do(access.RoleManager, http.MethodPost, "/api/customers", gin.H{"phone": "999"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAPI_MenuAndPagination(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(access.RoleAdmin, http.MethodPost, "/api/categories", gin.H{"name": "Mains"})
	require.Equal(t, http.StatusCreated, w.Code)
	categoryID := decode(t, w)["id"].(string)

	for i := 0; i < 6; i++ {
		w = api.do(access.RoleAdmin, http.MethodPost, "/api/products", gin.H{
			"name": "Dish", "price": 10, "category": categoryID, "preparation_time": 10,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = api.do(access.RoleStaff, http.MethodGet, "/api/products?category="+categoryID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.EqualValues(t, 6, page["count"])
	assert.Equal(t, true, page["has_next"])
	assert.Len(t, page["results"], 5)
	assert.Equal(t, "10.00", page["results"].([]interface{})[0].(map[string]interface{})["price"])

	w = api.do(access.RoleStaff, http.MethodGet, "/api/products?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["results"], 1)

	w = api.do(access.RoleStaff, http.MethodGet, "/api/products?page="+strconv.Itoa(repository.MaxPage), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decode(t, w)["results"])

	w = api.do(access.RoleStaff, http.MethodGet, "/api/products/menu-by-category", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var menu []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	require.Len(t, menu, 1)
	assert.Equal(t, "Mains", menu[0]["category_name"])
	assert.Len(t, menu[0]["products"], 6)
}
