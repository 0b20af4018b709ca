package catalog

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var rupeePrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatPrice renders an amount the way the dashboard shows rupees: Indian
// digit grouping, no fraction digits.
func FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}
	return rupeePrinter.Sprint(number.Decimal(math.Round(price), number.MaxFractionDigits(0)))
}
