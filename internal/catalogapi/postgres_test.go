package catalogapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/odyssey-erp/catalog-admin/internal/catalog"
	"github.com/odyssey-erp/catalog-admin/internal/platform/httpx"
)

func TestMapWriteError(t *testing.T) {
	draft := catalog.Draft{ProductName: "Gum", Category: "Snacks", Price: 0.001}

	rounded := mapWriteError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: checkViolation, ConstraintName: "catalog_products_price_check"}), draft)
	assert.ErrorIs(t, rounded, httpx.ErrValidation)
	rec := httptest.NewRecorder()
	httpx.RespondError(rec, rounded)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	dup := mapWriteError(&pgconn.PgError{Code: uniqueViolation}, draft)
	assert.ErrorIs(t, dup, httpx.ErrDuplicate)

	other := errors.New("connection reset")
	assert.Same(t, other, mapWriteError(other, draft))

	fk := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(fk), mapWriteError(fk, draft))
}
