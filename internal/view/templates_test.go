package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/catalog-admin/internal/shared"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderUnknownTemplateWritesNothing(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.Render(rec, http.StatusOK, "pages/missing.html", TemplateData{})
	assert.Error(t, err)
	assert.Empty(t, rec.Body.String())
}

func TestRenderLayoutShowsFlash(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.Render(rec, http.StatusOK, "pages/products_list.html", TemplateData{
		Title:       "Products",
		CurrentPath: "/",
		Flash:       &shared.FlashMessage{Kind: shared.FlashError, Message: "Delete is not supported yet"},
		Data:        struct{ State string }{State: "loading"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "flash-error")
	assert.Contains(t, body, "Delete is not supported yet")
	assert.Contains(t, body, "Loading...")
	assert.Contains(t, body, `class="sidebar`)
}

func TestTemplatesDefined(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	for _, name := range []string{
		"layouts/top",
		"layouts/bottom",
		"partials/sidebar",
		"partials/header",
		"partials/flash",
		"partials/products_table.html",
		"pages/products_list.html",
		"pages/product_form.html",
	} {
		assert.NotNil(t, engine.templates.Lookup(name), name)
	}
}
