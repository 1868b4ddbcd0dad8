package products

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odyssey-erp/catalog-admin/internal/catalog"
)

func validInput() RawInput {
	return RawInput{ProductName: "Widget", Category: "Tools", Price: "9.99", Discount: "10"}
}

func TestValidateAcceptsValidInput(t *testing.T) {
	draft, errs := Validate(validInput())
	assert.Empty(t, errs)
	assert.Equal(t, catalog.Draft{ProductName: "Widget", Category: "Tools", Price: 9.99, Discount: 10}, draft)
}

func TestValidateBoundaryDiscounts(t *testing.T) {
	for _, discount := range []string{"0", "100", "0.5", " 42 "} {
		in := validInput()
		in.Discount = discount
		_, errs := Validate(in)
		assert.Empty(t, errs, discount)
	}
}

func TestValidateFieldMessages(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*RawInput)
		field string
		msg   string
	}{
		{"empty name", func(in *RawInput) { in.ProductName = "" }, FieldProductName, "Product name is required"},
		{"empty category", func(in *RawInput) { in.Category = "" }, FieldCategory, "Category is required"},
		{"missing price", func(in *RawInput) { in.Price = "" }, FieldPrice, "Price must be a number"},
		{"text price", func(in *RawInput) { in.Price = "abc" }, FieldPrice, "Price must be a number"},
		{"nan price", func(in *RawInput) { in.Price = "NaN" }, FieldPrice, "Price must be a number"},
		{"inf price", func(in *RawInput) { in.Price = "Inf" }, FieldPrice, "Price must be a number"},
		{"zero price", func(in *RawInput) { in.Price = "0" }, FieldPrice, "Price must be a positive number"},
		{"negative price", func(in *RawInput) { in.Price = "-1.5" }, FieldPrice, "Price must be a positive number"},
		{"missing discount", func(in *RawInput) { in.Discount = "" }, FieldDiscount, "Discount must be a number"},
		{"text discount", func(in *RawInput) { in.Discount = "ten" }, FieldDiscount, "Discount must be a number"},
		{"negative discount", func(in *RawInput) { in.Discount = "-1" }, FieldDiscount, "Discount cannot be negative"},
		{"discount over 100", func(in *RawInput) { in.Discount = "100.01" }, FieldDiscount, "Discount cannot exceed 100%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.edit(&in)
			draft, errs := Validate(in)
			assert.Equal(t, catalog.Draft{}, draft)
			assert.Equal(t, FieldErrors{tc.field: tc.msg}, errs)
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	_, errs := Validate(RawInput{Price: "x", Discount: "101"})
	assert.Equal(t, FieldErrors{
		FieldProductName: "Product name is required",
		FieldCategory:    "Category is required",
		FieldPrice:       "Price must be a number",
		FieldDiscount:    "Discount cannot exceed 100%",
	}, errs)
}

func TestValidateDraft(t *testing.T) {
	assert.Empty(t, ValidateDraft(catalog.Draft{ProductName: "a", Category: "b", Price: 1, Discount: 0}))
	assert.Equal(t, FieldErrors{
		FieldProductName: "Product name is required",
		FieldPrice:       "Price must be a positive number",
		FieldDiscount:    "Discount cannot be negative",
	}, ValidateDraft(catalog.Draft{Category: "b", Price: 0, Discount: -5}))
}
