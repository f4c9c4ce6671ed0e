package cmd

import (
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"bullion/internal/interaction/gemini"
	"bullion/internal/interaction/telegram"
	"bullion/internal/interaction/web"
	"bullion/internal/locale"
	"bullion/internal/model"
	"bullion/internal/poller"
	"bullion/internal/repository/prices"
	"bullion/internal/usecases"
	"bullion/locales"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Poll prices and serve the dashboard and the telegram bot",
	Run: func(cmd *cobra.Command, _ []string) {
		log := logger.With("package", "cmd")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		bundle, err := locales.GetBundle()
		cobra.CheckErr(err)

		// Initialize repository
		pricesRepository := prices.NewRepository()
		unsubscribe := pricesRepository.Subscribe(logTransitions(log))
		defer unsubscribe()

		// Initialize HTTP clients
		geminiClient := &http.Client{Timeout: cnf.Gemini.Timeout}
		telegramClient := &http.Client{Timeout: time.Minute}

		// Initialize interactions
		geminiInteractor := gemini.NewInteraction(logger, geminiClient, cnf.Gemini.BaseURL, cnf.Gemini.APIKey, cnf.Gemini.Model)

		// Initialize usecases
		localeFunc := func() string { return locale.FromEnv(cnf.Poller.DefaultLocale) }
		updatePricesUC := usecases.NewUpdatePricesUsecase(logger, pricesRepository, geminiInteractor, localeFunc)

		pricePoller := poller.New(logger, updatePricesUC, cnf.Poller.Interval)
		defer pricePoller.Stop()

		limiter := rate.NewLimiter(rate.Limit(cnf.Web.RefreshRate), cnf.Web.RefreshBurst)
		webInteractor := web.NewInteraction(logger, bundle, pricesRepository, pricePoller, limiter, time.Local)

		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			return pricePoller.Start(gctx)
		})

		g.Go(func() error {
			return webInteractor.Start(gctx, cnf.Web.Address)
		})

		if cnf.Telegram.Enabled() {
			telegramInteractor, err := telegram.NewInteraction(logger, cnf.Telegram.Token, telegramClient, bundle, pricesRepository, pricePoller, limiter, time.Local)
			cobra.CheckErr(err)

			g.Go(func() error {
				telegramInteractor.Start(gctx)
				return nil
			})
		} else {
			log.Info("telegram token is not set, bot is disabled")
		}

		if err = g.Wait(); err != nil {
			log.Error("service stopped with error", "error", err)
			return
		}

		log.Info("service stopped")
	},
}

// logTransitions logs when the displayed state changes between live, failing and loading.
func logTransitions(log *slog.Logger) func(state model.PollerState) {
	var (
		wasLive bool
		lastErr model.ErrorKind
	)

	return func(state model.PollerState) {
		if state.IsLoading {
			return
		}

		switch {
		case state.IsLive() && !wasLive:
			log.Info("prices are live", "records", len(state.Records), "locale", state.Locale)
		case state.ErrorKind != model.ErrorKindNone && state.ErrorKind != lastErr:
			log.Warn("prices fetch failing", "error_kind", state.ErrorKind, "stale", state.HasRecords(), "failures", state.Failures)
		}

		wasLive = state.IsLive()
		lastErr = state.ErrorKind
	}
}
