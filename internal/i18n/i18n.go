// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package i18n resolves bilingual (Bulgarian/English) catalog fields and
negotiates the active display language.

Bulgarian is the primary language of the catalog: every bilingual field has a
required Bulgarian value and an optional English one.

Resolution Rule:

  - English is returned only when English is active and the value is non-empty.
  - Otherwise the Bulgarian value wins when non-empty.
  - Otherwise whatever non-empty value exists, or "".

The same rule applies uniformly to names, titles, descriptions, biographies
and captions. Nothing is cached.
*/
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// # Languages

// Lang is a supported display language code.
type Lang string

const (
	// Bulgarian is the primary catalog language and the default.
	Bulgarian Lang = "bg"

	// English is the optional secondary language.
	English Lang = "en"
)

// Default is used when no preference can be matched.
const Default = Bulgarian

// supported is ordered so that index 0 is the matcher's fallback.
var supported = []Lang{Bulgarian, English}

var matcher = language.NewMatcher([]language.Tag{
	language.Bulgarian,
	language.English,
})

// IsValid reports whether l is one of the supported languages.
func (l Lang) IsValid() bool {
	return l == Bulgarian || l == English
}

// String implements [fmt.Stringer].
func (l Lang) String() string {
	return string(l)
}

// # Resolution

// Resolve picks the display string for a bilingual field.
func Resolve(bg string, en *string, lang Lang) string {
	english := ""
	if en != nil {
		english = strings.TrimSpace(*en)
	}
	bulgarian := strings.TrimSpace(bg)

	if lang == English && english != "" {
		return *en
	}
	if bulgarian != "" {
		return bg
	}
	if english != "" {
		return *en
	}
	return ""
}

// ResolveOptional is [Resolve] for fields where the Bulgarian value is optional
// as well (image and file captions).
func ResolveOptional(bg, en *string, lang Lang) string {
	bulgarian := ""
	if bg != nil {
		bulgarian = *bg
	}
	return Resolve(bulgarian, en, lang)
}

// # Negotiation

// Parse maps an arbitrary BCP-47 code (e.g. "en-GB", "bg-BG") onto a
// supported [Lang]. Unknown or malformed codes yield [Default].
func Parse(code string) Lang {
	code = strings.TrimSpace(code)
	if code == "" {
		return Default
	}

	tag, err := language.Parse(code)
	if err != nil {
		return Default
	}

	return match(tag)
}

// Negotiate picks a supported [Lang] from an Accept-Language header value.
func Negotiate(acceptLanguage string) Lang {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	return match(tags...)
}

func match(tags ...language.Tag) Lang {
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(supported) {
		return Default
	}
	return supported[index]
}
