package emit

import (
	"fmt"

	"github.com/sirkon/streamtrace/internal/dsl"
)

// Language describes supported target languages of the instrumentation code.
type Language int

const (
	LanguageInvalid Language = iota
	LanguageJava
	LanguageKotlin
)

var languageValueMap = map[Language]string{
	LanguageJava:   "java",
	LanguageKotlin: "kotlin",
}

func (l Language) String() string {
	v, ok := languageValueMap[l]
	if !ok {
		return fmt.Sprintf("invalid(%d)", l)
	}

	return v
}

// MarshalText to keep the language in configs as text.
func (l Language) MarshalText() ([]byte, error) {
	v, ok := languageValueMap[l]
	if !ok {
		return nil, fmt.Errorf("unknown language %d", l)
	}

	return []byte(v), nil
}

// UnmarshalText for setting values with configs, CLI, etc.
func (l *Language) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range languageValueMap {
		if v == text {
			*l = k
			return nil
		}
	}

	return fmt.Errorf("unknown language %q", text)
}

// New returns a renderer for the given language.
func New(lang Language) (dsl.Renderer, error) {
	switch lang {
	case LanguageJava:
		return javaRenderer{}, nil
	case LanguageKotlin:
		return kotlinRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported language %s", lang)
	}
}
