package products

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/catalog-admin/internal/catalog"
	"github.com/odyssey-erp/catalog-admin/internal/shared"
	"github.com/odyssey-erp/catalog-admin/internal/view"
)

// API is the subset of the catalog client the handlers need.
type API interface {
	Lister
	Creator
}

var _ API = (*catalog.Client)(nil)

// Handler serves the product table and the product form.
type Handler struct {
	logger    *slog.Logger
	api       API
	display   *Display
	templates *view.Engine
	csrf      *shared.CSRFGuard
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, api API, display *Display, templates *view.Engine, csrf *shared.CSRFGuard) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		api:       api,
		display:   display,
		templates: templates,
		csrf:      csrf,
	}
}

// MountRoutes registers product routes under /products.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/table", h.Table)
	r.Get("/new", h.NewForm)
	r.Post("/", h.Create)
	r.Post("/{id}/edit", h.rowAction("Edit", (*Table).Edit))
	r.Post("/{id}/delete", h.rowAction("Delete", (*Table).Delete))
}

type formPage struct {
	Values     RawInput
	Errors     FieldErrors
	Submitting bool
	Succeeded  bool
	Failed     bool
	Message    string
}

func newFormPage(f *Form) formPage {
	return formPage{
		Values:     f.Values(),
		Errors:     f.Errors(),
		Submitting: f.Submitting(),
		Succeeded:  f.Status() == StatusSucceeded,
		Failed:     f.Status() == StatusFailed,
		Message:    f.Message(),
	}
}

// Index renders the shell with the table in its loading state; the browser
// then fetches the table fragment.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	table := NewTable(h.api, h.display, h.logger)
	h.render(w, r, http.StatusOK, "pages/products_list.html", "Products", table.View())
}

// Table loads the collection and renders the table fragment.
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	table := NewTable(h.api, h.display, h.logger)
	table.Load(r.Context())
	h.renderFragment(w, r, "partials/products_table.html", table.View())
}

// NewForm renders an empty form.
func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	form := NewForm(h.api, h.logger)
	h.render(w, r, http.StatusOK, "pages/product_form.html", "Add Product", newFormPage(form))
}

// Create submits the posted form.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	in := RawInput{
		ProductName: r.PostFormValue(FieldProductName),
		Category:    r.PostFormValue(FieldCategory),
		Price:       r.PostFormValue(FieldPrice),
		Discount:    r.PostFormValue(FieldDiscount),
	}

	form := NewForm(h.api, h.logger)
	switch form.Submit(r.Context(), in) {
	case StatusSucceeded:
		h.redirectWithFlash(w, r, "/products/new", shared.FlashSuccess, form.Message())
	case StatusFailed:
		h.render(w, r, http.StatusBadGateway, "pages/product_form.html", "Add Product", newFormPage(form))
	default:
		h.render(w, r, http.StatusUnprocessableEntity, "pages/product_form.html", "Add Product", newFormPage(form))
	}
}

func (h *Handler) rowAction(label string, action func(*Table, context.Context, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "Invalid product ID", http.StatusBadRequest)
			return
		}
		table := NewTable(h.api, h.display, h.logger)
		if err := action(table, r.Context(), id); err != nil {
			if errors.Is(err, ErrNotSupported) {
				h.redirectWithFlash(w, r, "/", shared.FlashError, label+" is not supported yet")
				return
			}
			h.logger.Error("product row action", slog.String("action", label), slog.Int64("id", id), slog.Any("error", err))
			h.redirectWithFlash(w, r, "/", shared.FlashError, label+" failed")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	sess := shared.SessionFromContext(r.Context())
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   h.csrf.Token(sess),
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, status, name, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err), slog.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderFragment renders a partial without consuming pending flashes.
func (h *Handler) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	viewData := view.TemplateData{
		CSRFToken: h.csrf.Token(shared.SessionFromContext(r.Context())),
		Data:      data,
	}
	if err := h.templates.Render(w, http.StatusOK, name, viewData); err != nil {
		h.logger.Error("render fragment", slog.Any("error", err), slog.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
