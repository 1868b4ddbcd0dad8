package app_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/catalog-admin/internal/app"
	"github.com/odyssey-erp/catalog-admin/internal/catalog"
	"github.com/odyssey-erp/catalog-admin/internal/catalogapi"
	"github.com/odyssey-erp/catalog-admin/internal/observability"
	"github.com/odyssey-erp/catalog-admin/internal/products"
	"github.com/odyssey-erp/catalog-admin/internal/shared"
	"github.com/odyssey-erp/catalog-admin/internal/view"
	_ "github.com/odyssey-erp/catalog-admin/testing"
)

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

type stack struct {
	admin  *httptest.Server
	client *http.Client
}

func newStack(t *testing.T, seed ...catalog.Product) *stack {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	backend := httptest.NewServer(catalogapi.NewServer(catalogapi.NewMemoryRepository(seed...), logger, true).Routes())
	t.Cleanup(backend.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &app.Config{
		AppEnv:            "test",
		AppRequestTimeout: 5 * time.Second,
		CatalogAPIURL:     backend.URL + "/",
		SessionSecret:     "session",
		CSRFSecret:        "csrf",
	}
	metrics := observability.NewMetrics()
	api, err := catalog.New(cfg.CatalogAPIURL, catalog.WithObserver(metrics), catalog.WithLogger(logger))
	require.NoError(t, err)
	templates, err := view.NewEngine()
	require.NoError(t, err)
	display, err := products.NewDisplay("en", "$")
	require.NoError(t, err)
	csrf := shared.NewCSRFGuard(cfg.CSRFSecret)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Sessions:        shared.NewSessionStore(rdb, "catalog_admin_session", cfg.SessionSecret, time.Hour, false),
		CSRF:            csrf,
		ProductsHandler: products.NewHandler(logger, api, display, templates, csrf),
		Metrics:         metrics,
	})
	admin := httptest.NewServer(router)
	t.Cleanup(admin.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &stack{admin: admin, client: &http.Client{Jar: jar}}
}

func (s *stack) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := s.client.Get(s.admin.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (s *stack) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := s.client.PostForm(s.admin.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (s *stack) csrfToken(t *testing.T) string {
	t.Helper()
	_, body := s.get(t, "/products/new")
	match := csrfPattern.FindStringSubmatch(body)
	require.Len(t, match, 2, "csrf token not rendered")
	return match[1]
}

func TestHealthzAndStatic(t *testing.T) {
	s := newStack(t)

	resp, body := s.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	resp, _ = s.get(t, "/static/css/app.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))
}

func TestShellRendersLoadingTable(t *testing.T) {
	s := newStack(t)

	resp, body := s.get(t, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Loading...")
	assert.Contains(t, body, `data-table-src="/products/table"`)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestPostWithoutTokenIsForbidden(t *testing.T) {
	s := newStack(t)

	resp, _ := s.post(t, "/products", url.Values{"product_name": {"Mug"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateThenListProducts(t *testing.T) {
	s := newStack(t, catalog.Product{ID: 1, ProductName: "Lamp", Category: "Home", Price: 1234.5, Discount: 15})
	token := s.csrfToken(t)

	resp, body := s.post(t, "/products", url.Values{
		"csrf_token":   {token},
		"product_name": {"Mug"},
		"category":     {"Kitchen"},
		"price":        {"8.50"},
		"discount":     {"10"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/products/new", resp.Request.URL.Path)
	assert.Contains(t, body, "Product added successfully!")

	resp, body = s.get(t, "/products/table")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Lamp")
	assert.Contains(t, body, "$1,234.50")
	assert.Contains(t, body, "Mug")
	assert.Contains(t, body, "10%")
	assert.Contains(t, body, "Showing <strong>2</strong> products")

	_, metrics := s.get(t, "/metrics")
	assert.True(t, strings.Contains(metrics, `catalog_api_requests_total{op="create",outcome="ok"} 1`))
}

func TestServerRejectionKeepsValues(t *testing.T) {
	s := newStack(t, catalog.Product{ID: 1, ProductName: "Mug", Category: "Kitchen", Price: 3})
	token := s.csrfToken(t)

	resp, body := s.post(t, "/products", url.Values{
		"csrf_token":   {token},
		"product_name": {"Mug"},
		"category":     {"Kitchen"},
		"price":        {"3"},
		"discount":     {"0"},
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "already exists")
	assert.Contains(t, body, `value="Mug"`)
}
