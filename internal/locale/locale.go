// Package locale resolves the runtime locale and the currency it implies.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// DefaultCurrency is used whenever a locale does not map to a currency.
const DefaultCurrency = "USD"

// envKeys are checked in POSIX precedence order.
var envKeys = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// FromEnv returns the locale of the process environment as a BCP 47 tag,
// or fallback when none of the variables holds a parsable locale.
// The environment is read on every call.
func FromEnv(fallback string) string {
	for _, key := range envKeys {
		if tag, ok := Normalize(os.Getenv(key)); ok {
			return tag
		}
	}

	return fallback
}

// Normalize converts POSIX forms such as "de_DE.UTF-8" or "sr_RS@latin" to "de-DE".
func Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}

	if raw == "" || raw == "C" || raw == "POSIX" {
		return "", false
	}

	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return "", false
	}

	return tag.String(), true
}

// CurrencyFor returns the ISO currency code of the locale's region.
// A locale without an explicit region uses the most likely one ("de" → DE).
func CurrencyFor(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultCurrency
	}

	region, confidence := tag.Region()
	if confidence == language.No {
		return DefaultCurrency
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return DefaultCurrency
	}

	return unit.String()
}
