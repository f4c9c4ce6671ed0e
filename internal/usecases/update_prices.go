package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bullion/internal/interaction/gemini"
	"bullion/internal/model"
)

type Repository interface {
	StartFetch(locale string)
	SavePrices(records []model.CommodityRecord, updatedAt time.Time)
	SaveError(kind model.ErrorKind)
	FinishFetch()
}

type Interaction interface {
	GetPrices(ctx context.Context, userLocale string) ([]model.CommodityRecord, error)
}

// LocaleFunc returns the locale hint for the next fetch.
type LocaleFunc func() string

type Option func(uc *UpdatePricesUsecase)

// WithClock replaces time.Now for the last-updated timestamp.
func WithClock(now func() time.Time) Option {
	return func(uc *UpdatePricesUsecase) {
		uc.now = now
	}
}

type UpdatePricesUsecase struct {
	logger      *slog.Logger
	repository  Repository
	interaction Interaction
	locale      LocaleFunc
	now         func() time.Time
}

func NewUpdatePricesUsecase(logger *slog.Logger, repository Repository, interaction Interaction, locale LocaleFunc, opts ...Option) *UpdatePricesUsecase {
	uc := &UpdatePricesUsecase{
		logger:      logger.With("component", "update_prices"),
		repository:  repository,
		interaction: interaction,
		locale:      locale,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// UpdatePrices runs one fetch cycle. Failures end up in the repository, never in the caller.
func (that *UpdatePricesUsecase) UpdatePrices(ctx context.Context) {
	userLocale := that.locale()
	log := that.logger.With("method", "UpdatePrices", "cycle_id", uuid.NewString(), "locale", userLocale)

	that.repository.StartFetch(userLocale)
	defer that.repository.FinishFetch()

	defer func() {
		if r := recover(); r != nil {
			log.Error("fetch cycle panicked", "error", fmt.Sprint(r))
			that.repository.SaveError(model.ErrorKindGeneric)
		}
	}()

	start := time.Now()
	records, err := that.interaction.GetPrices(ctx, userLocale)
	if err != nil {
		kind := ClassifyError(err)
		log.Error("failed to get prices", "error", err, "kind", kind, "duration", time.Since(start))
		that.repository.SaveError(kind)
		return
	}

	that.repository.SavePrices(records, that.now())
	log.Info("prices updated", "count", len(records), "duration", time.Since(start))
}

// ClassifyError maps a fetch failure to the kind shown to the user.
func ClassifyError(err error) model.ErrorKind {
	if gemini.IsQuotaExceeded(err) {
		return model.ErrorKindQuota
	}
	return model.ErrorKindGeneric
}
