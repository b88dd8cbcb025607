// Package i18n holds the user-facing validation messages in every
// display language the application supports.
//
// Messages are registered on a go-playground universal translator, the same
// translator family the validator library uses, so placeholders follow its
// "{0}", "{1}" convention.
package i18n

import (
	"fmt"
	"strconv"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
)

const (
	LocaleRussian = "ru"
	LocaleEnglish = "en"

	// DefaultLocale is used when no display language is configured.
	DefaultLocale = LocaleRussian
)

const (
	keyTitlePattern = "title_pattern"
	keyEmailFormat  = "email_format"
	keyMaxLength    = "max_length"
)

var catalog = map[string]map[string]string{
	LocaleRussian: {
		keyTitlePattern: "Заголовок должен состоять только из букв и пробелов",
		keyEmailFormat:  "Email должен быть строкой и иметь правильный формат",
		keyMaxLength:    "Поле {0} не должно превышать {1} символов.",
	},
	LocaleEnglish: {
		keyTitlePattern: "Title must contain only letters and spaces",
		keyEmailFormat:  "Email must be a string in a valid format",
		keyMaxLength:    "Field {0} must not exceed {1} characters.",
	},
}

// SupportedLocales lists the display languages NewMessages accepts.
func SupportedLocales() []string {
	return []string{LocaleRussian, LocaleEnglish}
}

// Messages renders validation messages in one display language.
// It is read-only after construction and safe for concurrent use.
type Messages struct {
	locale string
	trans  ut.Translator
}

// NewMessages builds the message set for locale. An empty locale selects
// DefaultLocale; an unsupported one is an error.
func NewMessages(locale string) (*Messages, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	texts, ok := catalog[locale]
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}

	uni := ut.New(en.New(), en.New(), ru.New())

	trans, found := uni.GetTranslator(locale)
	if !found {
		return nil, fmt.Errorf("no translator registered for locale %q", locale)
	}

	for key, text := range texts {
		if err := trans.Add(key, text, false); err != nil {
			return nil, fmt.Errorf("failed to register message %s for locale %s: %w", key, locale, err)
		}
	}

	return &Messages{locale: locale, trans: trans}, nil
}

// Locale returns the display language of m.
func (m *Messages) Locale() string {
	return m.locale
}

func (m *Messages) TitlePattern() string {
	return m.text(keyTitlePattern)
}

func (m *Messages) EmailFormat() string {
	return m.text(keyEmailFormat)
}

// MaxLength reports that field is longer than max characters.
func (m *Messages) MaxLength(field string, max int) string {
	return m.text(keyMaxLength, field, strconv.Itoa(max))
}

func (m *Messages) text(key string, params ...string) string {
	s, err := m.trans.T(key, params...)
	if err != nil {
		return key
	}
	return s
}
