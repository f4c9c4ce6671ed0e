package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bullion/internal/interaction/gemini"
	"bullion/internal/model"
	"bullion/internal/repository/prices"
	"bullion/internal/usecases"
	usecasesMock "bullion/mocks/usecases"
	"bullion/testing/suite"
)

func fixedLocale(locale string) usecases.LocaleFunc {
	return func() string { return locale }
}

func Test_UpdatePricesUsecase(t *testing.T) {
	records := suite.Records("USD")

	t.Run("should save prices of a successful fetch", func(t *testing.T) {
		ctx, st := suite.New(t)
		repository := prices.NewRepository()
		interaction := usecasesMock.NewMockInteraction(t)
		updatedAt := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

		interaction.EXPECT().GetPrices(mock.Anything, "en-US").Return(records, nil).Once()

		uc := usecases.NewUpdatePricesUsecase(st.Logger, repository, interaction, fixedLocale("en-US"), usecases.WithClock(func() time.Time { return updatedAt }))
		uc.UpdatePrices(ctx)

		state := repository.GetState()
		require.Equal(t, records, state.Records)
		require.Equal(t, updatedAt, state.LastUpdated)
		require.Empty(t, state.Error)
		require.False(t, state.IsLoading)
	})

	t.Run("should keep stale prices when the next fetch fails", func(t *testing.T) {
		ctx, st := suite.New(t)
		repository := prices.NewRepository()
		interaction := usecasesMock.NewMockInteraction(t)

		interaction.EXPECT().GetPrices(mock.Anything, "en-US").Return(records, nil).Once()
		interaction.EXPECT().GetPrices(mock.Anything, "en-US").Return(nil, errors.New("connection reset")).Once()

		uc := usecases.NewUpdatePricesUsecase(st.Logger, repository, interaction, fixedLocale("en-US"))
		uc.UpdatePrices(ctx)
		lastUpdated := repository.GetState().LastUpdated

		uc.UpdatePrices(ctx)

		state := repository.GetState()
		require.Equal(t, records, state.Records)
		require.Equal(t, lastUpdated, state.LastUpdated)
		require.Equal(t, model.FetchFailedMessage, state.Error)
		require.Equal(t, model.ErrorKindGeneric, state.ErrorKind)
		require.False(t, state.IsLoading)
	})

	t.Run("should report an error without prices on a failed cold start", func(t *testing.T) {
		ctx, st := suite.New(t)
		repository := prices.NewRepository()
		interaction := usecasesMock.NewMockInteraction(t)

		interaction.EXPECT().GetPrices(mock.Anything, "ja-JP").Return(nil, &gemini.FetchError{Type: gemini.ErrorTypeRateLimit, StatusCode: 429}).Once()

		uc := usecases.NewUpdatePricesUsecase(st.Logger, repository, interaction, fixedLocale("ja-JP"))
		uc.UpdatePrices(ctx)

		state := repository.GetState()
		require.Empty(t, state.Records)
		require.True(t, state.LastUpdated.IsZero())
		require.Equal(t, model.QuotaExceededMessage, state.Error)
		require.True(t, state.ShowError())
	})

	t.Run("should only advance last updated when data does not change", func(t *testing.T) {
		ctx, st := suite.New(t)
		repository := prices.NewRepository()
		interaction := usecasesMock.NewMockInteraction(t)

		interaction.EXPECT().GetPrices(mock.Anything, "en-US").Return(records, nil).Twice()

		clock := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
		uc := usecases.NewUpdatePricesUsecase(st.Logger, repository, interaction, fixedLocale("en-US"), usecases.WithClock(func() time.Time {
			clock = clock.Add(5 * time.Second)
			return clock
		}))

		uc.UpdatePrices(ctx)
		first := repository.GetState()

		uc.UpdatePrices(ctx)
		second := repository.GetState()

		require.Equal(t, first.Records, second.Records)
		require.True(t, second.LastUpdated.After(first.LastUpdated))
	})

	t.Run("should clear loading and set the error when the source panics", func(t *testing.T) {
		ctx, st := suite.New(t)
		repository := prices.NewRepository()
		interaction := usecasesMock.NewMockInteraction(t)

		interaction.EXPECT().GetPrices(mock.Anything, "en-US").RunAndReturn(func(context.Context, string) ([]model.CommodityRecord, error) {
			panic("boom")
		}).Once()

		uc := usecases.NewUpdatePricesUsecase(st.Logger, repository, interaction, fixedLocale("en-US"))
		require.NotPanics(t, func() { uc.UpdatePrices(ctx) })

		state := repository.GetState()
		require.False(t, state.IsLoading)
		require.Equal(t, model.FetchFailedMessage, state.Error)
	})

	t.Run("should read the locale on every cycle", func(t *testing.T) {
		ctx, st := suite.New(t)
		repository := prices.NewRepository()
		interaction := usecasesMock.NewMockInteraction(t)

		locales := []string{"en-US", "de-DE"}
		interaction.EXPECT().GetPrices(mock.Anything, "en-US").Return(records, nil).Once()
		interaction.EXPECT().GetPrices(mock.Anything, "de-DE").Return(suite.Records("EUR"), nil).Once()

		uc := usecases.NewUpdatePricesUsecase(st.Logger, repository, interaction, func() string {
			locale := locales[0]
			locales = locales[1:]
			return locale
		})

		uc.UpdatePrices(ctx)
		uc.UpdatePrices(ctx)

		state := repository.GetState()
		require.Equal(t, "de-DE", state.Locale)
		require.Equal(t, "EUR", state.Records[0].Currency)
	})
}

func Test_ClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected model.ErrorKind
	}{
		{name: "rate limit fetch error", err: &gemini.FetchError{Type: gemini.ErrorTypeRateLimit}, expected: model.ErrorKindQuota},
		{name: "wrapped rate limit", err: fmtWrap(&gemini.FetchError{Type: gemini.ErrorTypeRateLimit}), expected: model.ErrorKindQuota},
		{name: "429 marker", err: errors.New("got status 429 from upstream"), expected: model.ErrorKindQuota},
		{name: "resource exhausted marker", err: errors.New("RESOURCE_EXHAUSTED: quota"), expected: model.ErrorKindQuota},
		{name: "server error", err: &gemini.FetchError{Type: gemini.ErrorTypeServer, StatusCode: 503}, expected: model.ErrorKindGeneric},
		{name: "validation error", err: &gemini.FetchError{Type: gemini.ErrorTypeValidation, Message: "parse prices"}, expected: model.ErrorKindGeneric},
		{name: "plain error", err: errors.New("dial tcp: connection refused"), expected: model.ErrorKindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, usecases.ClassifyError(tt.err))
		})
	}
}

func fmtWrap(err error) error {
	return errors.Join(errors.New("update prices"), err)
}
