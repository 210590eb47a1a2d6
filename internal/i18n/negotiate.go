package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// newMatcher builds a matcher over codes. The first code is the matcher's
// fallback.
func newMatcher(codes []string) language.Matcher {
	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		tags = append(tags, language.Make(code))
	}
	return language.NewMatcher(tags)
}

// Negotiate picks the language for a request. An explicit choice wins
// when a table exists for its base language; otherwise the Accept-Language
// header is matched against the loaded tables by quality. The default
// language is returned when nothing matches.
func (c *Catalog) Negotiate(explicit, acceptLanguage string) string {
	if tag, err := language.Parse(strings.TrimSpace(explicit)); err == nil {
		base, _ := tag.Base()
		if lang := base.String(); c.Has(lang) {
			return lang
		}
	}

	// Tags and the q parameter are case-insensitive.
	desired, _, err := language.ParseAcceptLanguage(strings.ToLower(acceptLanguage))
	if err != nil || len(desired) == 0 {
		return c.defaultLang
	}
	_, i, conf := c.matcher.Match(desired...)
	if conf < language.High {
		return c.defaultLang
	}
	return c.codes[i]
}
