package gemini

import "fmt"

const pricePrompt = `Based on the user locale "%[1]s", determine their local currency; the region of this locale suggests %[2]s. ` +
	`Then, provide the current market prices for Gold and Silver in that local currency. ` +
	`For example, for 'de-DE', use EUR. For 'ja-JP', use JPY. ` +
	`If you cannot determine the currency, default to USD. ` +
	`The response must be a JSON array with exactly one object for Gold and one for Silver, each containing: ` +
	`price, currency code, unit ('per troy ounce'), metal name ('Gold' or 'Silver'), and the percentage change for the day.`

// BuildPrompt returns the instruction sent for the given locale and its expected currency.
func BuildPrompt(locale, currency string) string {
	return fmt.Sprintf(pricePrompt, locale, currency)
}

// NewPriceRequest builds a schema constrained request for the locale.
func NewPriceRequest(locale, currency string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents: []Content{{
			Role:  "user",
			Parts: []Part{{Text: BuildPrompt(locale, currency)}},
		}},
		GenerationConfig: GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   PriceSchema,
		},
	}
}
