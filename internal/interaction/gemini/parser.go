package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"bullion/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// rawPrice mirrors one generated object. Pointers tell a missing field from a zero value.
type rawPrice struct {
	Metal    *string  `json:"metal" validate:"required,oneof=Gold Silver"`
	Price    *float64 `json:"price" validate:"required,gt=0"`
	Currency *string  `json:"currency" validate:"required,min=1"`
	Unit     *string  `json:"unit" validate:"required,min=1"`
	Change   *float64 `json:"change" validate:"required"`
}

// ParsePrices validates the generated JSON text and returns one record per metal, Gold first.
// Any malformed or incomplete entry rejects the whole response.
func ParsePrices(text string) ([]model.CommodityRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	var raw []rawPrice
	decoder := json.NewDecoder(bytes.NewBufferString(text))
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode prices: %w", err)
	}

	if decoder.More() {
		return nil, fmt.Errorf("trailing data after prices")
	}

	records := make([]model.CommodityRecord, 0, len(raw))
	seen := make(map[model.Metal]struct{}, len(model.Metals))

	for i := range raw {
		if err := validate.Struct(&raw[i]); err != nil {
			return nil, fmt.Errorf("validate price %d: %w", i, err)
		}

		record := model.CommodityRecord{
			Metal:    model.Metal(*raw[i].Metal),
			Price:    *raw[i].Price,
			Currency: strings.ToUpper(strings.TrimSpace(*raw[i].Currency)),
			Unit:     strings.TrimSpace(*raw[i].Unit),
			Change:   *raw[i].Change,
		}

		if record.Currency == "" {
			return nil, fmt.Errorf("validate price %d: blank currency", i)
		}

		if _, ok := seen[record.Metal]; ok {
			return nil, fmt.Errorf("duplicate metal %s", record.Metal)
		}
		seen[record.Metal] = struct{}{}

		records = append(records, record)
	}

	for _, metal := range model.Metals {
		if _, ok := seen[metal]; !ok {
			return nil, fmt.Errorf("missing metal %s", metal)
		}
	}

	model.SortRecords(records)

	return records, nil
}
