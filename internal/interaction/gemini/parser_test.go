package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bullion/internal/interaction/gemini"
	"bullion/internal/model"
)

func Test_ParsePrices(t *testing.T) {
	t.Run("should order gold first regardless of the response order", func(t *testing.T) {
		text := `[
			{"metal": "Silver", "price": 29.42, "currency": "usd", "unit": "per troy ounce", "change": -1.1},
			{"metal": "Gold", "price": 2350.75, "currency": "USD", "unit": "per troy ounce", "change": 0}
		]`

		records, err := gemini.ParsePrices(text)
		require.NoError(t, err)

		expected := []model.CommodityRecord{
			{Metal: model.MetalGold, Price: 2350.75, Currency: "USD", Unit: "per troy ounce", Change: 0},
			{Metal: model.MetalSilver, Price: 29.42, Currency: "USD", Unit: "per troy ounce", Change: -1.1},
		}
		require.Equal(t, expected, records)
	})

	invalid := map[string]string{
		"empty text":        ``,
		"not json":          `Gold is 2350 USD`,
		"object not array":  `{"metal": "Gold", "price": 1, "currency": "USD", "unit": "oz", "change": 1}`,
		"missing change":    `[{"metal": "Gold", "price": 1, "currency": "USD", "unit": "oz"}, {"metal": "Silver", "price": 1, "currency": "USD", "unit": "oz", "change": 1}]`,
		"price as string":   `[{"metal": "Gold", "price": "1", "currency": "USD", "unit": "oz", "change": 1}, {"metal": "Silver", "price": 1, "currency": "USD", "unit": "oz", "change": 1}]`,
		"zero price":        `[{"metal": "Gold", "price": 0, "currency": "USD", "unit": "oz", "change": 1}, {"metal": "Silver", "price": 1, "currency": "USD", "unit": "oz", "change": 1}]`,
		"negative price":    `[{"metal": "Gold", "price": -5, "currency": "USD", "unit": "oz", "change": 1}, {"metal": "Silver", "price": 1, "currency": "USD", "unit": "oz", "change": 1}]`,
		"empty currency":    `[{"metal": "Gold", "price": 1, "currency": "", "unit": "oz", "change": 1}, {"metal": "Silver", "price": 1, "currency": "USD", "unit": "oz", "change": 1}]`,
		"blank currency":    `[{"metal": "Gold", "price": 1, "currency": "  ", "unit": "oz", "change": 1}, {"metal": "Silver", "price": 1, "currency": "USD", "unit": "oz", "change": 1}]`,
		"unknown metal":     `[{"metal": "Platinum", "price": 1, "currency": "USD", "unit": "oz", "change": 1}, {"metal": "Silver", "price": 1, "currency": "USD", "unit": "oz", "change": 1}]`,
		"duplicate metal":   `[{"metal": "Gold", "price": 1, "currency": "USD", "unit": "oz", "change": 1}, {"metal": "Gold", "price": 2, "currency": "USD", "unit": "oz", "change": 1}]`,
		"missing silver":    `[{"metal": "Gold", "price": 1, "currency": "USD", "unit": "oz", "change": 1}]`,
		"empty array":       `[]`,
		"trailing garbage":  `[{"metal": "Gold", "price": 1, "currency": "USD", "unit": "oz", "change": 1}, {"metal": "Silver", "price": 1, "currency": "USD", "unit": "oz", "change": 1}] []`,
		"null entry":        `[null, {"metal": "Silver", "price": 1, "currency": "USD", "unit": "oz", "change": 1}]`,
	}

	for name, text := range invalid {
		t.Run("should reject "+name, func(t *testing.T) {
			records, err := gemini.ParsePrices(text)
			require.Error(t, err)
			require.Nil(t, records)
		})
	}
}
