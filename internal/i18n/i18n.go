// Package i18n provides the static translation catalog and language
// helpers for the three supported locales: English, Arabic, and Korean.
package i18n

import (
	"fmt"
	"strings"
)

// Language is an ISO 639-1 language code.
type Language string

const (
	// English is the default language.
	English Language = "en"
	// Arabic covers Gulf and general Modern Standard Arabic users.
	Arabic Language = "ar"
	// Korean is the clinic-side language.
	Korean Language = "ko"
)

// Supported lists every language the assistant can reply in.
var Supported = []Language{English, Arabic, Korean}

// DefaultLanguage is used when detection finds nothing conclusive.
const DefaultLanguage = English

// Normalize maps a raw Telegram language_code ("ar-SA", "ko", "en-GB")
// onto a supported Language, falling back to English.
func Normalize(code string) Language {
	code = strings.ToLower(strings.TrimSpace(code))
	switch {
	case strings.HasPrefix(code, "ar"):
		return Arabic
	case strings.HasPrefix(code, "ko"):
		return Korean
	default:
		return English
	}
}

// Detect guesses the language of a message body by script. Arabic block
// wins over Hangul when both appear, since mixed messages from Arabic
// speakers commonly quote Korean clinic names.
func Detect(text string) Language {
	var arabic, hangul int
	for _, r := range text {
		switch {
		case r >= 0x0600 && r <= 0x06FF:
			arabic++
		case (r >= 0xAC00 && r <= 0xD7AF) || (r >= 0x1100 && r <= 0x11FF):
			hangul++
		}
	}
	switch {
	case arabic > 0 && arabic >= hangul:
		return Arabic
	case hangul > 0:
		return Korean
	default:
		return English
	}
}

// IsRTL reports whether text in the language runs right to left.
func IsRTL(lang Language) bool {
	return lang == Arabic
}

// Direction returns "rtl" or "ltr" for the language.
func Direction(lang Language) string {
	if IsRTL(lang) {
		return "rtl"
	}
	return "ltr"
}

// LanguageName returns the language's name in that language.
func LanguageName(lang Language) string {
	switch lang {
	case Arabic:
		return "العربية"
	case Korean:
		return "한국어"
	default:
		return "English"
	}
}

var easternArabicDigits = [10]rune{'٠', '١', '٢', '٣', '٤', '٥', '٦', '٧', '٨', '٩'}

// FormatNumber renders an integer for the language. Arabic gets
// Eastern Arabic numerals; English and Korean keep Western digits.
func FormatNumber(n int, lang Language) string {
	s := fmt.Sprintf("%d", n)
	if lang != Arabic {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(easternArabicDigits[r-'0'])
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var currencySymbols = map[string]string{
	"USD": "$",
	"KRW": "₩",
	"SAR": "ر.س",
	"AED": "د.إ",
}

// FormatCurrency renders an amount with the currency symbol placed
// according to the language's convention. Arabic puts the symbol after
// the number; English and Korean put it before.
func FormatCurrency(amount int, currency string, lang Language) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	if lang == Arabic {
		return fmt.Sprintf("%s %s", FormatNumber(amount, lang), symbol)
	}
	return fmt.Sprintf("%s%s", symbol, FormatNumber(amount, lang))
}

// T looks up a catalog entry for the language, falling back to English
// and then to the key itself. Placeholders use fmt verbs.
func T(key string, lang Language, args ...any) string {
	text := lookup(key, lang)
	if text == "" {
		text = lookup(key, English)
	}
	if text == "" {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

func lookup(key string, lang Language) string {
	if entries, ok := catalog[lang]; ok {
		return entries[key]
	}
	return ""
}
