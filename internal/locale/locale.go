package locale

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var files embed.FS

// KeyDowntimeNotice is the message shown to users while failover is active.
const KeyDowntimeNotice = "downtime_notice"

// Locales resolves message keys against the embedded catalogs. Unrecognized
// or absent sender locales fall back to English.
type Locales struct {
	bundle *i18n.Bundle
}

func New() (*Locales, error) {
	const op = "locale.New"

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := files.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(files, "locales/"+e.Name()); err != nil {
			return nil, fmt.Errorf("%s failed to load %s: %w", op, e.Name(), err)
		}
	}

	return &Locales{bundle: bundle}, nil
}

// Resolve looks up key for the given language tag, substituting data into
// the message template.
func (l *Locales) Resolve(lang, key string, data map[string]interface{}) (string, error) {
	const op = "locale.Resolve"

	msg, err := i18n.NewLocalizer(l.bundle, lang).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return msg, nil
}
