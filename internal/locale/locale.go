// File path: internal/locale/locale.go
package locale

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// Locale selects both the dashboard labels and the language the model is asked
// to answer in.
type Locale string

const (
	English Locale = "en-US"
	Chinese Locale = "zh-CN"

	Default = English

	// CookieName is the key the selected locale is persisted under.
	CookieName = "app_language"
)

var (
	supported = []Locale{English, Chinese}
	matcher   = language.NewMatcher([]language.Tag{language.AmericanEnglish, language.SimplifiedChinese})
)

// Supported lists the locales in display order.
func Supported() []Locale {
	return append([]Locale(nil), supported...)
}

// Parse accepts exactly one of the supported locale identifiers.
func Parse(value string) (Locale, bool) {
	switch Locale(strings.TrimSpace(value)) {
	case English:
		return English, true
	case Chinese:
		return Chinese, true
	}
	return "", false
}

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	_, ok := Parse(string(l))
	return ok
}

// Or returns l when valid and fallback otherwise.
func (l Locale) Or(fallback Locale) Locale {
	if l.Valid() {
		return l
	}
	return fallback
}

func (l Locale) String() string {
	return string(l)
}

// Short is the compact switcher label.
func (l Locale) Short() string {
	if l == Chinese {
		return "中文"
	}
	return "EN"
}

// Negotiate maps an Accept-Language header onto a supported locale. Headers
// that match nothing yield fallback.
func Negotiate(acceptLanguage string, fallback Locale) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return fallback
	}
	return supported[idx]
}

type ctxKey struct{}

// NewContext stores the locale resolved for a request.
func NewContext(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the locale stored by NewContext, or Default.
func FromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(ctxKey{}).(Locale); ok && l.Valid() {
		return l
	}
	return Default
}
