package suite

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"bullion/internal/interaction/gemini"
	"bullion/internal/model"
)

// Records returns a valid Gold and Silver pair priced in currency.
func Records(currency string) []model.CommodityRecord {
	return []model.CommodityRecord{
		{Metal: model.MetalGold, Price: 2350.75, Currency: currency, Unit: "per troy ounce", Change: 0.85},
		{Metal: model.MetalSilver, Price: 29.42, Currency: currency, Unit: "per troy ounce", Change: -1.1},
	}
}

// WriteGeminiText answers a generateContent call with text as the only candidate part.
func WriteGeminiText(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()

	resp := gemini.GenerateContentResponse{
		Candidates: []gemini.Candidate{{
			Content:      gemini.Content{Role: "model", Parts: []gemini.Part{{Text: text}}},
			FinishReason: "STOP",
		}},
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

// WriteGeminiRecords answers a generateContent call with records encoded as the generated text.
func WriteGeminiRecords(t *testing.T, w http.ResponseWriter, records []model.CommodityRecord) {
	t.Helper()

	text, err := json.Marshal(records)
	require.NoError(t, err)

	WriteGeminiText(t, w, string(text))
}

// WriteGeminiError answers with a provider error body.
func WriteGeminiError(t *testing.T, w http.ResponseWriter, code int, status, message string) {
	t.Helper()

	var resp gemini.ErrorResponse
	resp.Error.Code = code
	resp.Error.Status = status
	resp.Error.Message = message

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}
