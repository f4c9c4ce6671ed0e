package telegram

import (
	"context"
	"html"

	telegramBot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (that *Interaction) handlerStart(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerStart", "chat_id", update.Message.Chat.ID, "language", languageCode(update))

	if _, err := that.sendLocaledMessage(ctx, bot, update, "startWelcomeMessage"); err != nil {
		log.Error("failed to send message", "error", err)
		return
	}
}

func (that *Interaction) handlerHelp(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerHelp", "chat_id", update.Message.Chat.ID)

	if _, err := that.sendLocaledMessage(ctx, bot, update, "helpMessage"); err != nil {
		log.Error("error sending message", "error", err)
		return
	}
}

func (that *Interaction) handlerPrice(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	that.sendPrices(ctx, bot, update, "handlerPrice", false)
}

// handlerRefresh fetches new prices unless the limiter is exhausted, then sends the current state.
func (that *Interaction) handlerRefresh(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	if !that.limiter.Allow() {
		that.logger.Debug("manual refresh throttled", "method", "handlerRefresh", "chat_id", update.Message.Chat.ID)
		that.sendPrices(ctx, bot, update, "handlerRefresh", true)
		return
	}

	that.refresher.RefreshNow(ctx)
	that.sendPrices(ctx, bot, update, "handlerRefresh", false)
}

func (that *Interaction) sendPrices(ctx context.Context, bot *telegramBot.Bot, update *models.Update, method string, throttled bool) {
	log := that.logger.With("method", method, "chat_id", update.Message.Chat.ID)

	lang := languageCode(update)
	text, err := that.PricesToString(lang, that.pricesRepository.GetState())
	if err != nil {
		log.Error("failed to render prices", "error", err)
		return
	}

	if throttled {
		note, err := that.renderLocaledMessage(lang, "refreshThrottledNote")
		if err != nil {
			log.Error("failed to render throttle note", "error", err)
			return
		}
		text += "\n<i>" + html.EscapeString(note) + "</i>"
	}

	params := &telegramBot.SendMessageParams{ChatID: update.Message.Chat.ID, Text: text, ParseMode: models.ParseModeHTML}
	if _, err = bot.SendMessage(ctx, params); err != nil {
		log.Error("error sending message", "error", err)
		return
	}
}
