// Package i18n loads nested translation catalogs and resolves dotted keys
// with %{name} interpolation.
//
// Catalogs come from a TranslationAdapter: MapAdapter for in-memory data,
// FileAdapter for a single YAML or JSON file, and FSAdapter for every
// catalog file in a directory of any fs.FS (embed.FS included). The top
// level of a catalog is the language code:
//
//	en:
//	  validation:
//	    required: "This field is required"
//	    minLength: "Must be at least %{min} characters"
//
// # Usage
//
//	translator, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"),
//	    i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	translator.T("de", "validation.required")
//	translator.Translate(i18n.SetLocale(ctx, "de"), "validation.minLength", map[string]any{"min": 3})
//
// A key missing in the requested language is looked up in the default
// language, then the key itself is returned.
//
// # HTTP
//
// Translator.Middleware stores the request language in the context, limited
// to the loaded languages. DefaultLangExtractor checks a cookie, a query
// parameter and the Language and Accept-Language headers, in that order. Tc,
// Nc and Translate read the language back with GetLocale.
package i18n
