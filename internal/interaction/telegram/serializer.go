package telegram

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/language"

	"bullion/internal/model"
	"bullion/locales"
)

// PricesToString returns the message with the state's prices to send to the user.
// Without records it returns the error or asks the user to wait.
func (that *Interaction) PricesToString(languageCode string, state model.PollerState) (string, error) {
	var errorText string
	if state.ErrorKind != model.ErrorKindNone {
		text, err := that.renderLocaledMessage(languageCode, locales.ErrorMessageID(state.ErrorKind))
		if err != nil {
			return "", err
		}
		errorText = html.EscapeString(text)
	}

	if !state.HasRecords() {
		if errorText != "" {
			return errorText, nil
		}

		text, err := that.renderLocaledMessage(languageCode, "noPricesMessage")
		if err != nil {
			return "", err
		}
		return html.EscapeString(text), nil
	}

	tag, err := language.Parse(languageCode)
	if err != nil {
		tag = language.English
	}

	title, err := that.renderLocaledMessage(languageCode, "pricesTitle", "Time", state.LastUpdated.In(that.loc).Format("2006-01-02 15:04"))
	if err != nil {
		return "", err
	}
	headerMetal, _ := that.renderLocaledMessage(languageCode, "columnMetal")
	headerPrice, _ := that.renderLocaledMessage(languageCode, "columnPrice")
	headerChange, _ := that.renderLocaledMessage(languageCode, "columnChange")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%s</b>\n<pre>\n", html.EscapeString(title)))
	sb.WriteString(fmt.Sprintf("%-8s %-16s %s\n", headerMetal, headerPrice, headerChange))

	for _, record := range state.Records {
		name, _ := that.renderLocaledMessage(languageCode, locales.MetalMessageID(record.Metal))
		sb.WriteString(fmt.Sprintf("%-8s %-16s %s\n", name, locales.FormatPrice(tag, record), locales.FormatChange(tag, record.Change)))
	}

	sb.WriteString("</pre>")

	if errorText != "" {
		note, _ := that.renderLocaledMessage(languageCode, "stalePricesNote")
		sb.WriteString(fmt.Sprintf("\n<i>%s</i> %s", html.EscapeString(note), errorText))
	}

	return sb.String(), nil
}
