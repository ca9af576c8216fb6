package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/formguard/pkg/logger"
)

// DefaultLanguage is used when neither the context nor the options name one.
const DefaultLanguage = "en"

// TranslationAdapter loads translations from a concrete source.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// Translator resolves dotted keys against per-language nested maps.
// It is safe for concurrent use.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	fallbackToLang bool
	missingLogMode bool
	logger         *slog.Logger
	mu             sync.RWMutex
	adapter        TranslationAdapter
}

// NewTranslator loads translations from adapter and returns a ready Translator.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:    DefaultLanguage,
		fallbackToKey:  true,
		fallbackToLang: true,
		logger:         logger.Discard(),
		adapter:        adapter,
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.validateTranslations(ctx, translations); err != nil {
		return nil, err
	}

	t.translations = translations
	t.logger.DebugContext(ctx, "translations loaded",
		logger.Component("i18n"),
		slog.Any("languages", t.supportedLanguages()),
	)
	return t, nil
}

// Reload re-reads translations from the adapter and swaps them in atomically.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	if err := t.validateTranslations(ctx, translations); err != nil {
		return err
	}

	t.mu.Lock()
	t.translations = translations
	t.mu.Unlock()
	return nil
}

func (t *Translator) validateTranslations(ctx context.Context, trans map[string]map[string]any) error {
	if len(trans) == 0 {
		t.logger.WarnContext(ctx, "no translations provided", logger.Component("i18n"))
		return nil
	}
	for lang, translations := range trans {
		if lang == "" {
			return ErrEmptyLanguageCode
		}
		if translations == nil {
			return fmt.Errorf("%w: %s", ErrNilLanguageMap, lang)
		}
	}
	return nil
}

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// SupportedLanguages returns the sorted list of loaded language codes.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

func (t *Translator) supports(lang string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.translations[lang]
	return ok
}

// DefaultLanguage returns the configured default language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// getTranslation walks a nested map using a dot-separated key.
func getTranslation(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m

	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		next, ok := normalizeMap(val)
		if !ok {
			return nil, false
		}
		current = next
	}

	return nil, false
}

// lookup finds a string template for key in lang, then in the default language.
func (t *Translator) lookup(lang, key string) (string, bool) {
	if s, ok := t.lookupIn(lang, key); ok {
		return s, true
	}
	if t.fallbackToLang && lang != t.defaultLang {
		return t.lookupIn(t.defaultLang, key)
	}
	return "", false
}

func (t *Translator) lookupIn(lang, key string) (string, bool) {
	langMap, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	val, ok := getTranslation(langMap, key)
	if !ok {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case int, int64, float64, bool:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

// HasTranslation reports whether lang itself defines key.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.lookupIn(lang, key)
	return ok
}

func (t *Translator) missing(lang, key string, attrs ...any) {
	if !t.missingLogMode {
		return
	}
	args := append([]any{logger.Component("i18n"), slog.String("lang", lang), slog.String("key", key)}, attrs...)
	t.logger.Warn("translation not found", args...)
}

// buildParams turns key, value, key, value pairs into a map.
// A trailing odd argument is ignored.
func buildParams(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Interpolate replaces %{name} placeholders with values from params.
// Unknown placeholders are left untouched.
func Interpolate(tmpl string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// T translates key for lang with key/value interpolation arguments.
//
//	// "welcome": "Hello, %{name}!"
//	translator.T("en", "welcome", "name", "John") // "Hello, John!"
//
// A missing key falls back to the default language and then to the key itself
// (or an empty string when WithFallbackToKey(false) is set).
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tmpl, ok := t.lookup(lang, key)
	if !ok {
		t.missing(lang, key)
		if t.fallbackToKey {
			return Interpolate(key, buildParams(args))
		}
		return ""
	}
	return Interpolate(tmpl, buildParams(args))
}

// Td translates key for lang and uses defaultValue when no translation exists.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tmpl, ok := t.lookup(lang, key)
	if !ok {
		t.missing(lang, key)
		tmpl = defaultValue
	}
	return Interpolate(tmpl, buildParams(args))
}

// N translates a plural key. It tries key.zero (for n == 0), key.one
// (for n == 1), key.other and finally key itself. The count parameter is
// injected unless the caller passes one.
func (t *Translator) N(lang, key string, n int, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	params := buildParams(args)
	if _, ok := params["count"]; !ok {
		params["count"] = strconv.Itoa(n)
	}

	var candidates []string
	switch n {
	case 0:
		candidates = []string{key + ".zero", key + ".other"}
	case 1:
		candidates = []string{key + ".one"}
	default:
		candidates = []string{key + ".other"}
	}
	candidates = append(candidates, key)

	for _, k := range candidates {
		if tmpl, ok := t.lookup(lang, k); ok {
			return Interpolate(tmpl, params)
		}
	}

	t.missing(lang, key, slog.Int("n", n))
	if t.fallbackToKey {
		return Interpolate(key, params)
	}
	return ""
}

// Tc translates key using the locale stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Nc translates a plural key using the locale stored in ctx.
func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(GetLocale(ctx), key, n, args...)
}

// Translate resolves key in the context locale with an arbitrary parameter bag.
// Values are formatted with fmt.Sprint; nil values are skipped.
func (t *Translator) Translate(ctx context.Context, key string, params map[string]any) string {
	lang := GetLocale(ctx)
	str := make(map[string]string, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		str[k] = fmt.Sprint(v)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	tmpl, ok := t.lookup(lang, key)
	if !ok {
		t.missing(lang, key)
		if !t.fallbackToKey {
			return ""
		}
		tmpl = key
	}
	return Interpolate(tmpl, str)
}

// ExportJSON returns all translations for lang encoded as JSON.
func (t *Translator) ExportJSON(lang string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	translations, ok := t.translations[lang]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrLanguageNotSupported, lang)
	}

	bytes, err := json.Marshal(translations)
	if err != nil {
		return "", errors.Join(ErrFailedToMarshalJSON, err)
	}
	return string(bytes), nil
}
