package web

import (
	"golang.org/x/text/language"

	"bullion/internal/model"
	"bullion/locales"
)

type cardView struct {
	Metal     string
	Name      string
	Price     string
	Unit      string
	Change    string
	Direction string
}

type pageView struct {
	Lang         string
	Title        string
	Subtitle     string
	RefreshLabel string
	RetryLabel   string
	ErrorTitle   string
	LoadingLabel string
	Status       string
	LastUpdated  string
	PoweredBy    string
	Error        string
	ShowSpinner  bool
	ShowError    bool
	IsLive       bool
	IsRefreshing bool
	Cards        []cardView
}

// language picks the best supported language for an Accept-Language header.
func (that *Interaction) language(acceptLanguage string) language.Tag {
	tag, _ := language.MatchStrings(that.matcher, acceptLanguage)
	base, _ := tag.Base()
	return language.Make(base.String())
}

func (that *Interaction) buildPage(state model.PollerState, acceptLanguage string) pageView {
	tag := that.language(acceptLanguage)
	langs := []string{tag.String()}
	localize := func(messageID string, args ...string) string {
		text, err := locales.Render(that.bundle, messageID, langs, args...)
		if err != nil {
			that.logger.Warn("failed to localize message", "message_id", messageID, "error", err)
			return messageID
		}
		return text
	}

	view := pageView{
		Lang:         tag.String(),
		Title:        localize("dashboardTitle"),
		Subtitle:     localize("dashboardSubtitle"),
		RefreshLabel: localize("refreshButton"),
		RetryLabel:   localize("retryButton"),
		ErrorTitle:   localize("errorTitle"),
		LoadingLabel: localize("loadingMessage"),
		PoweredBy:    localize("poweredBy"),
		ShowSpinner:  state.ShowSpinner(),
		ShowError:    state.ShowError(),
		IsLive:       state.IsLive(),
		IsRefreshing: state.IsLoading && state.HasRecords(),
	}

	if state.ErrorKind != model.ErrorKindNone {
		view.Error = localize(locales.ErrorMessageID(state.ErrorKind))
	}

	if view.IsLive {
		view.Status = localize("liveStatus")
	} else {
		view.Status = localize("connectingStatus")
	}

	if !state.LastUpdated.IsZero() {
		view.LastUpdated = localize("lastUpdated", "Time", state.LastUpdated.In(that.loc).Format("15:04:05"))
	}

	for _, record := range state.Records {
		view.Cards = append(view.Cards, cardView{
			Metal:     string(record.Metal),
			Name:      localize(locales.MetalMessageID(record.Metal)),
			Price:     locales.FormatPrice(tag, record),
			Unit:      record.Unit,
			Change:    locales.FormatChange(tag, record.Change),
			Direction: string(record.Direction()),
		})
	}

	return view
}
