package products

import (
	"context"
	"errors"
	"log/slog"

	"github.com/odyssey-erp/catalog-admin/internal/catalog"
)

// MsgLoadFailed is shown whenever the collection could not be loaded.
const MsgLoadFailed = "Failed to load products."

// ErrNotSupported is returned by row actions that have no backend yet.
var ErrNotSupported = errors.New("operation not supported")

// Lister fetches the product collection.
type Lister interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

// ViewState selects which of the mutually exclusive table renderings applies.
type ViewState string

const (
	ViewLoading ViewState = "loading"
	ViewError   ViewState = "error"
	ViewRows    ViewState = "rows"
)

// Row is one rendered product.
type Row struct {
	ID       int64
	Name     string
	Category string
	Price    string
	Discount string
}

// TableView is what the template renders.
type TableView struct {
	State ViewState
	Error string
	Rows  []Row
}

// Table owns a fetched product collection. A new table is in the loading
// state until Load completes.
type Table struct {
	lister  Lister
	display *Display
	logger  *slog.Logger

	loading  bool
	err      string
	products []catalog.Product
}

// NewTable returns an empty table that has not loaded yet.
func NewTable(lister Lister, display *Display, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	return &Table{
		lister:   lister,
		display:  display,
		logger:   logger,
		loading:  true,
		products: []catalog.Product{},
	}
}

// Load fetches the collection and replaces the stored list. On failure the
// previous list is kept and a generic message is stored.
func (t *Table) Load(ctx context.Context) {
	t.loading = true
	t.err = ""
	defer func() { t.loading = false }()

	products, err := t.lister.List(ctx)
	if err != nil {
		attrs := []any{slog.Any("error", err)}
		if msg, ok := catalog.ServerMessage(err); ok {
			attrs = append(attrs, slog.String("server_message", msg))
		}
		if errors.Is(err, catalog.ErrUnrecognizedShape) {
			t.logger.Error("list products: unrecognized response", attrs...)
		} else {
			t.logger.Error("list products", attrs...)
		}
		t.err = MsgLoadFailed
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	t.products = products
}

// Loading reports whether a load is pending.
func (t *Table) Loading() bool { return t.loading }

// Err returns the user facing load error, empty when none.
func (t *Table) Err() string { return t.err }

// Products returns a copy of the stored collection.
func (t *Table) Products() []catalog.Product {
	out := make([]catalog.Product, len(t.products))
	copy(out, t.products)
	return out
}

// View resolves the exclusive rendering state.
func (t *Table) View() TableView {
	switch {
	case t.loading:
		return TableView{State: ViewLoading}
	case t.err != "":
		return TableView{State: ViewError, Error: t.err}
	}
	rows := make([]Row, 0, len(t.products))
	for _, p := range t.products {
		rows = append(rows, Row{
			ID:       p.ID,
			Name:     p.ProductName,
			Category: p.Category,
			Price:    t.display.Price(p.Price),
			Discount: t.display.Percent(p.Discount),
		})
	}
	return TableView{State: ViewRows, Rows: rows}
}

// Edit is the row level edit action.
func (t *Table) Edit(ctx context.Context, id int64) error {
	return ErrNotSupported
}

// Delete is the row level delete action.
func (t *Table) Delete(ctx context.Context, id int64) error {
	return ErrNotSupported
}
