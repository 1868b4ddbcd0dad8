// Package catalog talks to the product catalog REST API.
package catalog

// Product is a catalog entry as returned by the API.
type Product struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
}

// Draft is a product payload without the server-assigned ID.
type Draft struct {
	ProductName string  `json:"product_name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=100"`
}
