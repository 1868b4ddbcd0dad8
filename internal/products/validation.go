package products

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/catalog-admin/internal/catalog"
)

// Field names as submitted by the form and sent to the API.
const (
	FieldProductName = "product_name"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldDiscount    = "discount"
)

// RawInput is the candidate product exactly as the browser submitted it.
type RawInput struct {
	ProductName string
	Category    string
	Price       string
	Discount    string
}

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

// Has reports whether field failed validation.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages keyed by field then failing tag.
var messages = map[string]map[string]string{
	FieldProductName: {"required": "Product name is required"},
	FieldCategory:    {"required": "Category is required"},
	FieldPrice: {
		"type": "Price must be a number",
		"gt":   "Price must be a positive number",
	},
	FieldDiscount: {
		"type": "Discount must be a number",
		"gte":  "Discount cannot be negative",
		"lte":  "Discount cannot exceed 100%",
	},
}

// Validate checks a raw candidate. It returns the typed draft when every
// field passes, or the per-field messages otherwise.
func Validate(in RawInput) (catalog.Draft, FieldErrors) {
	errs := FieldErrors{}
	draft := catalog.Draft{
		ProductName: in.ProductName,
		Category:    in.Category,
	}

	price, ok := parseNumber(in.Price)
	if !ok {
		errs[FieldPrice] = messages[FieldPrice]["type"]
	}
	draft.Price = price

	discount, ok := parseNumber(in.Discount)
	if !ok {
		errs[FieldDiscount] = messages[FieldDiscount]["type"]
	}
	draft.Discount = discount

	for field, msg := range ValidateDraft(draft) {
		if !errs.Has(field) {
			errs[field] = msg
		}
	}
	if len(errs) > 0 {
		return catalog.Draft{}, errs
	}
	return draft, nil
}

// ValidateDraft applies the range and presence rules to an already typed draft.
func ValidateDraft(d catalog.Draft) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(d)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["general"] = err.Error()
		return errs
	}
	for _, fieldErr := range verrs {
		field := fieldErr.Field()
		if errs.Has(field) {
			continue
		}
		if msg, ok := messages[field][fieldErr.Tag()]; ok {
			errs[field] = msg
			continue
		}
		errs[field] = fieldErr.Error()
	}
	return errs
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
