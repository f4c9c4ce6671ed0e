package web

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"bullion/internal/model"
)

const keepAliveInterval = 15 * time.Second

var errTooManyRefreshes = fiber.NewError(fiber.StatusTooManyRequests, "too many refresh requests")

func (that *Interaction) handlerIndex(c *fiber.Ctx) error {
	view := that.buildPage(that.repository.GetState(), c.Get(fiber.HeaderAcceptLanguage))

	var buf bytes.Buffer
	if err := that.page.Execute(&buf, view); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (that *Interaction) handlerPrices(c *fiber.Ctx) error {
	return c.JSON(newStateResponse(that.repository.GetState()))
}

func (that *Interaction) handlerRefresh(c *fiber.Ctx) error {
	if !that.limiter.Allow() {
		return errTooManyRefreshes
	}

	that.refresher.RefreshNow(c.UserContext())
	return c.JSON(newStateResponse(that.repository.GetState()))
}

func (that *Interaction) handlerRefreshForm(c *fiber.Ctx) error {
	if that.limiter.Allow() {
		that.refresher.RefreshNow(c.UserContext())
	} else {
		that.logger.Debug("manual refresh throttled", "path", c.Path())
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// handlerEvents streams every state change as a server-sent event.
// Slow clients only receive the newest snapshot.
func (that *Interaction) handlerEvents(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	updates := make(chan model.PollerState, 1)
	publish := publishLatest(updates)

	publish(that.repository.GetState())
	unsubscribe := that.repository.Subscribe(publish)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-that.done:
				return
			case state := <-updates:
				if err := writeEvent(w, state); err != nil {
					that.logger.Debug("event stream closed", "error", err)
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

// publishLatest returns a non-blocking sender that replaces an unread state with the newer one.
func publishLatest(updates chan model.PollerState) func(state model.PollerState) {
	return func(state model.PollerState) {
		for {
			select {
			case updates <- state:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	}
}

func writeEvent(w *bufio.Writer, state model.PollerState) error {
	data, err := json.Marshal(newStateResponse(state))
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if _, err = fmt.Fprintf(w, "event: state\ndata: %s\n\n", data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	if err = w.Flush(); err != nil {
		return fmt.Errorf("flush event: %w", err)
	}

	return nil
}

type stateResponse struct {
	Records     []model.CommodityRecord `json:"records"`
	IsLoading   bool                    `json:"is_loading"`
	Error       string                  `json:"error,omitempty"`
	ErrorKind   model.ErrorKind         `json:"error_kind,omitempty"`
	LastUpdated *time.Time              `json:"last_updated,omitempty"`
	Locale      string                  `json:"locale,omitempty"`
	Live        bool                    `json:"live"`
}

func newStateResponse(state model.PollerState) stateResponse {
	response := stateResponse{
		Records:   state.Records,
		IsLoading: state.IsLoading,
		Error:     state.Error,
		ErrorKind: state.ErrorKind,
		Locale:    state.Locale,
		Live:      state.IsLive(),
	}

	if response.Records == nil {
		response.Records = []model.CommodityRecord{}
	}

	if !state.LastUpdated.IsZero() {
		lastUpdated := state.LastUpdated
		response.LastUpdated = &lastUpdated
	}

	return response
}
