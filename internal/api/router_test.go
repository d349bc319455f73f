package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/cart"
	"github.com/Eloy96/impresiones-prueba/internal/collaborator"
	"github.com/Eloy96/impresiones-prueba/internal/config"
	"github.com/Eloy96/impresiones-prueba/internal/service"
)

// fakeCollaborator answers all three actions the storefront issues
func fakeCollaborator(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req["action"] {
		case "uploadFile":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":   "success",
				"fileId":   "drive-777",
				"fileName": req["fileName"],
			})
		case "getPrice":
			opts := req["options"].(map[string]interface{})
			quantity := opts["cantidad"].(float64)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":    "success",
				"pagePrice": 1.30,
				"total":     1.30 * quantity,
			})
		case "submitOrder":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "success",
				"folio":  "F-2026",
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
}

type testApp struct {
	router        *gin.Engine
	configuration *service.ConfigurationService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := fakeCollaborator(t)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Environment: "test",
		Collaborator: config.CollaboratorConfig{
			EndpointURL:   srv.URL,
			Timeout:       2 * time.Second,
			RetryAttempts: 3,
			RetryDelay:    time.Millisecond,
		},
		Upload: config.UploadConfig{MaxFileSize: 1 << 20},
		Cart:   config.CartConfig{FilePath: filepath.Join(t.TempDir(), "cart.json")},
	}

	client := collaborator.NewClient(cfg.Collaborator, nil)
	store, err := cart.NewStore(cart.NewFileStore(cfg.Cart.FilePath, nil), nil)
	require.NoError(t, err)

	cfgSvc := service.NewConfigurationService(
		collaborator.NewPricingClient(client),
		collaborator.NewUploadClient(client),
		cfg.Upload.MaxFileSize,
		nil,
	)
	checkout := service.NewCheckoutService(store, collaborator.NewOrderClient(client), nil)

	router := NewRouter(Deps{
		Config:        cfg,
		Logger:        zap.NewNop(),
		Catalog:       service.NewCatalogService(),
		Configuration: cfgSvc,
		Cart:          store,
		Checkout:      checkout,
		Navigation:    service.NewNavigationController(nil),
	})

	return &testApp{router: router, configuration: cfgSvc}
}

func (app *testApp) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	}
	return w, resp
}

func (app *testApp) settle(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, app.configuration.WaitIdle(ctx))
}

func TestFullOrderFlow(t *testing.T) {
	app := newTestApp(t)

	// Upload a document
	w, resp := app.do(t, http.MethodPost, "/v1/session/file", map[string]string{
		"fileName":   "tarea.pdf",
		"fileType":   "application/pdf",
		"fileBase64": base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "drive-777", resp["fileId"])

	// Configure
	w, _ = app.do(t, http.MethodPost, "/v1/session/options", map[string]string{"field": "cantidad", "value": "2"})
	require.Equal(t, http.StatusOK, w.Code)
	app.settle(t)

	w, resp = app.do(t, http.MethodGet, "/v1/session/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.60, resp["total"])
	assert.Equal(t, false, resp["priceStale"])

	// Add to cart
	w, resp = app.do(t, http.MethodPost, "/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), resp["count"])

	// Fill the checkout form
	w, resp = app.do(t, http.MethodPut, "/v1/checkout/form", map[string]interface{}{
		"nombre":        "Ana Torres",
		"email":         "ana@example.com",
		"telefono":      "555-123-4567",
		"sucursal":      "centro",
		"metodoEntrega": "sucursal",
		"termsAccepted": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["ready"])

	// Submit
	w, resp = app.do(t, http.MethodPost, "/v1/checkout/submit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "F-2026", resp["folio"])
	assert.Equal(t, "view-thanks", resp["view"])

	// Terminal success cleared the cart
	w, resp = app.do(t, http.MethodGet, "/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp["count"])
}

func TestEditFlowPreservesItemIdentity(t *testing.T) {
	app := newTestApp(t)

	// Upload and add one item
	w, _ := app.do(t, http.MethodPost, "/v1/session/file", map[string]string{
		"fileName":   "tarea.pdf",
		"fileBase64": base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
	})
	require.Equal(t, http.StatusOK, w.Code)
	app.settle(t)

	w, resp := app.do(t, http.MethodPost, "/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	item := resp["item"].(map[string]interface{})
	itemID := item["id"].(string)

	// Seed the session from the item
	w, _ = app.do(t, http.MethodPost, fmt.Sprintf("/v1/cart/%s/edit", itemID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Edit lands on the options step directly
	w, resp = app.do(t, http.MethodGet, "/v1/navigation", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "view-config", resp["view"])
	assert.Equal(t, float64(3), resp["step"])

	// Change quantity and commit the edit
	w, _ = app.do(t, http.MethodPost, "/v1/session/options", map[string]string{"field": "cantidad", "value": "4"})
	require.Equal(t, http.StatusOK, w.Code)
	app.settle(t)

	w, resp = app.do(t, http.MethodPost, "/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), resp["count"], "edit replaces in place, cart length unchanged")
	updated := resp["item"].(map[string]interface{})
	assert.Equal(t, itemID, updated["id"], "identifier survives the edit")
	assert.Equal(t, float64(4), updated["cantidad"])
	assert.Equal(t, "drive-777", updated["fileId"], "handle inherited without re-upload")
}

func TestRemovingLastItemLeavesCheckout(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(t, http.MethodPost, "/v1/session/file", map[string]string{
		"fileName":   "tarea.pdf",
		"fileBase64": base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
	})
	require.Equal(t, http.StatusOK, w.Code)
	app.settle(t)

	w, resp := app.do(t, http.MethodPost, "/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	itemID := resp["item"].(map[string]interface{})["id"].(string)

	w, _ = app.do(t, http.MethodGet, "/v1/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = app.do(t, http.MethodDelete, "/v1/cart/"+itemID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["emptied"])

	w, resp = app.do(t, http.MethodGet, "/v1/navigation", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "view-home", resp["view"])
}

func TestSubmitWithIncompleteFormConflicts(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(t, http.MethodPost, "/v1/session/file", map[string]string{
		"fileName":   "tarea.pdf",
		"fileBase64": base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
	})
	require.Equal(t, http.StatusOK, w.Code)
	app.settle(t)
	w, _ = app.do(t, http.MethodPost, "/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = app.do(t, http.MethodPost, "/v1/checkout/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Cart untouched by the failed attempt
	w, resp := app.do(t, http.MethodGet, "/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["count"])
}

func TestCatalogEndpoints(t *testing.T) {
	app := newTestApp(t)

	w, resp := app.do(t, http.MethodGet, "/v1/catalog/impresion_bn", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := resp["products"].([]interface{})
	assert.NotEmpty(t, products)

	w, resp = app.do(t, http.MethodGet, "/v1/products/prod-bn-carta", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Impresión B/N Carta", resp["title"])

	w, _ = app.do(t, http.MethodGet, "/v1/products/prod-nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
