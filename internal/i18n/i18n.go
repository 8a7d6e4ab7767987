// Package i18n holds the admin-notice-example text domain.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const TextDomain = "admin-notice-example"

// LangParam selects a language explicitly, overriding Accept-Language.
const LangParam = "lang"

// Source strings. English is the source locale, so en-US needs no catalog entries.
const (
	MsgPluginName      = "Admin Notice Example"
	MsgNoticeLabel     = "Admin Notice Example:"
	MsgSettingsHeading = "Admin Notice Example Settings"
	MsgGeneralInfo     = "This plugin showcases various admin notices."
	MsgSettingsLink    = "Settings page"
	MsgDismissible     = "This is a dismissible success notice."
	MsgDismiss         = "Dismiss"
	MsgDismissed       = "The success notice was dismissed."
	MsgResetAndDisplay = "Reset and display again."
)

var translations = map[language.Tag]map[string]string{
	language.German: {
		MsgPluginName:      "Beispiel für Admin-Hinweise",
		MsgNoticeLabel:     "Beispiel für Admin-Hinweise:",
		MsgSettingsHeading: "Einstellungen: Beispiel für Admin-Hinweise",
		MsgGeneralInfo:     "Dieses Plugin zeigt verschiedene Admin-Hinweise.",
		MsgSettingsLink:    "Einstellungsseite",
		MsgDismissible:     "Dies ist ein ausblendbarer Erfolgshinweis.",
		MsgDismiss:         "Ausblenden",
		MsgDismissed:       "Der Erfolgshinweis wurde ausgeblendet.",
		MsgResetAndDisplay: "Zurücksetzen und erneut anzeigen.",
	},
}

// Bundle resolves languages and hands out printers bound to the text domain catalog.
type Bundle struct {
	cat     *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
}

func NewBundle() *Bundle {
	b := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	tags := []language.Tag{language.AmericanEnglish}
	for tag, msgs := range translations {
		for key, msg := range msgs {
			// SetString only fails for malformed tags; these are constants.
			_ = b.SetString(tag, key, msg)
		}
		tags = append(tags, tag)
	}
	return &Bundle{
		cat:     b,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}
}

// Supported lists the available languages, source language first.
func (b *Bundle) Supported() []language.Tag {
	return append([]language.Tag(nil), b.tags...)
}

// Resolve picks a language from an explicit lang value, then an
// Accept-Language header, falling back to en-US.
func (b *Bundle) Resolve(lang, acceptLanguage string) language.Tag {
	if lang = strings.TrimSpace(lang); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			return b.match(tag)
		}
	}
	if accept := strings.TrimSpace(acceptLanguage); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return b.match(tags...)
		}
	}
	return language.AmericanEnglish
}

func (b *Bundle) match(tags ...language.Tag) language.Tag {
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return language.AmericanEnglish
	}
	return b.tags[idx]
}

func (b *Bundle) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(b.cat))
}
