package i18n

import "net/http"

// Middleware stores the request language in the request context. The
// language is one of the translator's supported languages; a nil extractor
// uses DefaultLangExtractor restricted to them, and a request without a
// usable preference gets the translator's default language.
func (t *Translator) Middleware(extr LangExtractor) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor(WithSupportedLanguages(t.SupportedLanguages()...))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" || !t.supports(lang) {
				lang = t.DefaultLanguage()
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
