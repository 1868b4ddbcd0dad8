package products

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display formats numbers for table cells.
type Display struct {
	tag    language.Tag
	symbol string
}

// NewDisplay builds a Display for a BCP 47 locale and a currency symbol.
func NewDisplay(locale, symbol string) (*Display, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("products: display locale %q: %w", locale, err)
	}
	return &Display{tag: tag, symbol: symbol}, nil
}

// Price renders an amount with two decimals and locale grouping.
func (d *Display) Price(v float64) string {
	return d.symbol + message.NewPrinter(d.tag).Sprintf("%.2f", v)
}

// Percent renders a discount such as "10%" or "12.5%" with the locale's
// decimal separator.
func (d *Display) Percent(v float64) string {
	return message.NewPrinter(d.tag).Sprintf("%v%%", v)
}
