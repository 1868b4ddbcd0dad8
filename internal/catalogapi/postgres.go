package catalogapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/catalog-admin/internal/catalog"
	"github.com/odyssey-erp/catalog-admin/internal/platform/httpx"
)

const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
)

const schema = `CREATE TABLE IF NOT EXISTS catalog_products (
	id BIGSERIAL PRIMARY KEY,
	product_name TEXT NOT NULL,
	category TEXT NOT NULL,
	price NUMERIC(12,2) NOT NULL CHECK (price > 0),
	discount NUMERIC(5,2) NOT NULL DEFAULT 0 CHECK (discount >= 0 AND discount <= 100),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS catalog_products_name_key ON catalog_products (LOWER(product_name));`

// PostgresRepository stores products in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository wraps a pgx pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the products table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

func (r *PostgresRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT id, product_name, category, price::float8, discount::float8 FROM catalog_products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []catalog.Product{}
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Category, &p.Price, &p.Discount); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, draft catalog.Draft) (catalog.Product, error) {
	query := `INSERT INTO catalog_products (product_name, category, price, discount)
		VALUES ($1, $2, $3, $4) RETURNING id`
	product := catalog.Product{
		ProductName: draft.ProductName,
		Category:    draft.Category,
		Price:       draft.Price,
		Discount:    draft.Discount,
	}
	err := r.db.QueryRow(ctx, query, draft.ProductName, draft.Category, draft.Price, draft.Discount).Scan(&product.ID)
	if err != nil {
		return catalog.Product{}, mapWriteError(err, draft)
	}
	return product, nil
}

// mapWriteError turns constraint violations into errors the server reports
// as client mistakes.
func mapWriteError(err error, draft catalog.Draft) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return duplicateName(draft.ProductName)
	case checkViolation:
		return fmt.Errorf("product %q does not fit the stored price or discount range: %w", draft.ProductName, httpx.ErrValidation)
	}
	return err
}
