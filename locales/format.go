package locales

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bullion/internal/model"
)

// FormatPrice prints the amount with the digits of its currency, ex: "2,350.75 USD".
func FormatPrice(tag language.Tag, record model.CommodityRecord) string {
	digits := 2
	code := record.Currency

	if unit, err := currency.ParseISO(record.Currency); err == nil {
		digits, _ = currency.Standard.Rounding(unit)
		code = unit.String()
	}

	return message.NewPrinter(tag).Sprintf(fmt.Sprintf("%%.%df", digits), record.Price) + " " + code
}

// FormatChange prints a signed percentage, ex: "-0.42%".
func FormatChange(tag language.Tag, change float64) string {
	sign := ""
	if change > 0 {
		sign = "+"
	}
	return sign + message.NewPrinter(tag).Sprintf("%.2f", change) + "%"
}
