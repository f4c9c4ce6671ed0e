package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"bullion/internal/model"
)

//go:embed templates/*.html
var templates embed.FS

const shutdownTimeout = 5 * time.Second

type PricesRepository interface {
	GetState() model.PollerState
	Subscribe(listener func(state model.PollerState)) func()
}

type Refresher interface {
	RefreshNow(ctx context.Context)
}

type Interaction struct {
	logger     *slog.Logger
	App        *fiber.App
	bundle     *i18n.Bundle
	matcher    language.Matcher
	repository PricesRepository
	refresher  Refresher
	limiter    *rate.Limiter
	page       *template.Template
	loc        *time.Location

	done      chan struct{}
	closeOnce sync.Once
}

// NewInteraction creates the dashboard. The limiter throttles manual refreshes.
func NewInteraction(logger *slog.Logger, bundle *i18n.Bundle, repository PricesRepository, refresher Refresher, limiter *rate.Limiter, loc *time.Location) *Interaction {
	cnt := &Interaction{
		logger:     logger.With("component", "web"),
		bundle:     bundle,
		matcher:    language.NewMatcher(bundle.LanguageTags()),
		repository: repository,
		refresher:  refresher,
		limiter:    limiter,
		page:       template.Must(template.ParseFS(templates, "templates/index.html")),
		loc:        loc,
		done:       make(chan struct{}),
	}

	cnt.App = fiber.New(fiber.Config{
		AppName:               "bullion",
		DisableStartupMessage: true,
		ErrorHandler:          cnt.handleError,
	})

	cnt.setupMiddleware(cnt.App)
	cnt.InitRoute(cnt.App)

	return cnt
}

func (that *Interaction) InitRoute(app *fiber.App) {
	app.Get("/", that.handlerIndex)
	app.Post("/refresh", that.handlerRefreshForm)

	api := app.Group("/api")
	api.Get("/prices", that.handlerPrices)
	api.Post("/refresh", that.handlerRefresh)
	api.Get("/events", that.handlerEvents)
}

// Start serves the dashboard until ctx is done.
func (that *Interaction) Start(ctx context.Context, address string) error {
	log := that.logger.With("method", "Start", "address", address)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting web dashboard")
		errCh <- that.App.Listen(address)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", address, err)
		}
		return nil
	case <-ctx.Done():
	}

	that.closeStreams()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := that.App.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown web dashboard: %w", err)
	}

	log.Info("web dashboard stopped")
	return nil
}

// closeStreams ends every open event stream.
func (that *Interaction) closeStreams() {
	that.closeOnce.Do(func() { close(that.done) })
}

func (that *Interaction) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	if code >= fiber.StatusInternalServerError {
		that.logger.Error("request failed", "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
