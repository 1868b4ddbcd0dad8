package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/odyssey-erp/catalog-admin/internal/catalog"
	"github.com/odyssey-erp/catalog-admin/internal/products"
)

var defaultDrafts = []catalog.Draft{
	{ProductName: "Desk Lamp", Category: "Home", Price: 39.9, Discount: 10},
	{ProductName: "Notebook A5", Category: "Office", Price: 4.5, Discount: 0},
	{ProductName: "Espresso Cup", Category: "Kitchen", Price: 7.25, Discount: 5},
	{ProductName: "Wireless Mouse", Category: "Electronics", Price: 24.99, Discount: 15},
	{ProductName: "Standing Desk", Category: "Office", Price: 1234.5, Discount: 20},
}

// Seeds the catalog API with sample products through the same client the admin UI uses.
// Usage: seed [drafts.json]
func main() {
	baseURL := getenv("CATALOG_API_URL", "http://localhost:8081/")
	client, err := catalog.New(baseURL, catalog.WithTimeout(10*time.Second))
	if err != nil {
		log.Fatalf("catalog client: %v", err)
	}

	drafts := defaultDrafts
	if len(os.Args) > 1 {
		drafts, err = loadDrafts(os.Args[1])
		if err != nil {
			log.Fatalf("load drafts: %v", err)
		}
	}

	ctx := context.Background()
	fmt.Println("→ Seeding products...")
	for _, draft := range drafts {
		if errs := products.ValidateDraft(draft); len(errs) > 0 {
			fmt.Printf("  skip %q: %v\n", draft.ProductName, errs)
			continue
		}
		status, err := client.Create(ctx, draft)
		var apiErr *catalog.APIError
		switch {
		case errors.As(err, &apiErr):
			fmt.Printf("  %q rejected (%d): %s\n", draft.ProductName, apiErr.StatusCode, apiErr.Message)
		case err != nil:
			log.Fatalf("create %q: %v", draft.ProductName, err)
		default:
			fmt.Printf("  %q created (%d)\n", draft.ProductName, status)
		}
	}
	fmt.Println("✓ Seed complete")
}

func loadDrafts(path string) ([]catalog.Draft, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var drafts []catalog.Draft
	if err := json.Unmarshal(raw, &drafts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return drafts, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
