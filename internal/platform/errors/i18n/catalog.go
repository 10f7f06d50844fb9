// Package i18n renders user-facing text for error codes. Raw engine
// diagnostics stay untranslated; only the surrounding explanation is
// localized.
package i18n

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from the errors
// package to avoid a cycle).
type Code = string

// BaseLocale is the fallback when no supported locale matches.
const BaseLocale = "en-US"

// Catalog maps error codes to message templates for one locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var catalogs = map[string]*Catalog{
	"en-US": NewCatalog("en-US", enUS),
	"pt-BR": NewCatalog("pt-BR", ptBR),
}

var matcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
})

// Match resolves an Accept-Language header value to the closest
// supported catalog.
func Match(acceptLanguage string) *Catalog {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return catalogs[BaseLocale]
	}

	_, index, _ := matcher.Match(tags...)
	switch index {
	case 1:
		return catalogs["pt-BR"]
	default:
		return catalogs[BaseLocale]
	}
}

// GetCatalog returns the catalog for the given locale, falling back to
// en-US when the locale is not supported.
func GetCatalog(locale string) *Catalog {
	if c, ok := catalogs[strings.TrimSpace(locale)]; ok {
		return c
	}
	return catalogs[BaseLocale]
}

// NewCatalog creates a catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{locale: locale, messages: cloned}
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template for code with the given
// metadata. Unknown codes fall back to the code itself so nothing is
// ever silently dropped.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
