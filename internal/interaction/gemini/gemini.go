package gemini

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"resty.dev/v3"

	"bullion/internal/locale"
	"bullion/internal/model"
)

const generateContentPath = "/v1beta/models/{model}:generateContent"

type Interaction struct {
	logger *slog.Logger
	client *resty.Client
	model  string
}

// NewInteraction creates a new instance of Interaction with the generative language API.
// The given client bounds every call with its own timeout.
func NewInteraction(logger *slog.Logger, client *http.Client, baseURL, apiKey, modelName string) *Interaction {
	restyClient := resty.NewWithClient(client).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey)

	return &Interaction{
		logger: logger.With("component", "gemini"),
		client: restyClient,
		model:  modelName,
	}
}

// GetPrices asks the model for gold and silver prices in the currency of the locale.
// It makes exactly one request and never retries.
func (that *Interaction) GetPrices(ctx context.Context, userLocale string) ([]model.CommodityRecord, error) {
	currency := locale.CurrencyFor(userLocale)
	log := that.logger.With("method", "GetPrices", "locale", userLocale, "currency", currency)

	var result GenerateContentResponse
	var apiErr ErrorResponse

	resp, err := that.client.R().
		SetContext(ctx).
		SetPathParam("model", that.model).
		SetBody(NewPriceRequest(userLocale, currency)).
		SetResult(&result).
		SetError(&apiErr).
		Post(generateContentPath)
	// A non-2xx status is classified by its code even when the error body did not decode.
	if resp != nil && resp.StatusCode() > 0 && !resp.IsSuccess() {
		fetchErr := classifyResponse(resp.StatusCode(), apiErr.Error.Status, apiErr.Error.Message)
		log.Warn("provider returned an error", "status_code", fetchErr.StatusCode, "status", fetchErr.Status, "decode_error", err)
		return nil, fetchErr
	}

	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, newTimeoutError(err)
		case resp != nil && resp.IsSuccess():
			return nil, newValidationError("decode response", err)
		default:
			return nil, newNetworkError(err)
		}
	}

	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return nil, newValidationError("prompt blocked: "+result.PromptFeedback.BlockReason, nil)
	}

	prices, err := ParsePrices(result.Text())
	if err != nil {
		return nil, newValidationError("parse prices", err)
	}

	log.Debug("prices received", "count", len(prices))
	return prices, nil
}
