package locales

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"bullion/internal/model"
)

//go:embed active.*.json
var files embed.FS

var messageFiles = []string{"active.en.json", "active.ru.json", "active.de.json"}

func GetBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, name := range messageFiles {
		if _, err := bundle.LoadMessageFileFS(files, name); err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
	}

	return bundle, nil
}

var ErrWrongNumberOfArguments = fmt.Errorf("wrong number of arguments")

// Render localizes a message for the languages, args are template key/value pairs.
// Languages may be codes ("ru") or Accept-Language values.
func Render(bundle *i18n.Bundle, messageID string, langs []string, args ...string) (string, error) {
	if len(args)%2 != 0 {
		return "", ErrWrongNumberOfArguments
	}

	templateData := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		templateData[args[i]] = args[i+1]
	}

	text, err := i18n.NewLocalizer(bundle, langs...).Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: templateData})
	if err != nil {
		return "", fmt.Errorf("localize message: %w", err)
	}

	return text, nil
}

// ErrorMessageID returns the message describing an error kind.
func ErrorMessageID(kind model.ErrorKind) string {
	if kind == model.ErrorKindQuota {
		return "quotaExceededMessage"
	}
	return "fetchFailedMessage"
}

// MetalMessageID returns the message naming a metal.
func MetalMessageID(metal model.Metal) string {
	return "metal" + string(metal)
}
