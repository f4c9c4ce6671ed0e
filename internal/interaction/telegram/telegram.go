package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	telegramBot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/time/rate"

	"bullion/internal/config"
	"bullion/internal/model"
	"bullion/locales"
)

type PricesRepository interface {
	GetState() model.PollerState
}

type Refresher interface {
	RefreshNow(ctx context.Context)
}

type Interaction struct {
	logger           *slog.Logger
	TgBot            *telegramBot.Bot
	bundle           *i18n.Bundle
	pricesRepository PricesRepository
	refresher        Refresher
	limiter          *rate.Limiter
	loc              *time.Location
}

// NewInteraction creates the bot. The limiter throttles /refresh and may be shared with other consumers.
func NewInteraction(logger *slog.Logger, token string, client telegramBot.HttpClient, bundle *i18n.Bundle, pricesRepository PricesRepository, refresher Refresher, limiter *rate.Limiter, loc *time.Location) (*Interaction, error) {
	cnt := &Interaction{
		logger:           logger.With("component", "telegram"),
		bundle:           bundle,
		pricesRepository: pricesRepository,
		refresher:        refresher,
		limiter:          limiter,
		loc:              loc,
	}

	opts := []telegramBot.Option{
		telegramBot.WithHTTPClient(time.Minute, client),
		telegramBot.WithSkipGetMe(),
		telegramBot.WithDefaultHandler(cnt.handler),
	}

	b, err := telegramBot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/start", telegramBot.MatchTypeExact, cnt.handlerStart)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/help", telegramBot.MatchTypeExact, cnt.handlerHelp)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/price", telegramBot.MatchTypeExact, cnt.handlerPrice)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/refresh", telegramBot.MatchTypeExact, cnt.handlerRefresh)

	cnt.TgBot = b
	return cnt, nil
}

// Start polls telegram for updates until ctx is done.
func (that *Interaction) Start(ctx context.Context) {
	that.logger.Info("starting telegram bot")
	that.TgBot.Start(ctx)
}

func (that *Interaction) handler(_ context.Context, _ *telegramBot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	that.logger.Debug("ignoring message", "method", "handler", "chat_id", update.Message.Chat.ID, "text", update.Message.Text)
}

// languageCode returns the user's language or the default one.
func languageCode(update *models.Update) string {
	if update.Message.From == nil || update.Message.From.LanguageCode == "" {
		return config.DefaultLanguageCode
	}
	return update.Message.From.LanguageCode
}

// renderLocaledMessage renders a localized message.
func (that *Interaction) renderLocaledMessage(languageCode string, messageID string, args ...string) (string, error) {
	text, err := locales.Render(that.bundle, messageID, []string{languageCode}, args...)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", messageID, err)
	}
	return text, nil
}

// sendLocaledMessage sends a localized message to the user.
func (that *Interaction) sendLocaledMessage(ctx context.Context, bot *telegramBot.Bot, update *models.Update, messageID string, args ...string) (*models.Message, error) {
	text, err := that.renderLocaledMessage(languageCode(update), messageID, args...)
	if err != nil {
		return nil, fmt.Errorf("render localed message: %w", err)
	}

	msg, err := bot.SendMessage(ctx, &telegramBot.SendMessageParams{ChatID: update.Message.Chat.ID, Text: text})
	if err != nil {
		return nil, fmt.Errorf("send message to telegram user: %w", err)
	}

	return msg, nil
}
