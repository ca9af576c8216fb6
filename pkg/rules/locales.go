package rules

import "embed"

// Locales holds the default message catalog under "locales/", one YAML file
// per language. Load it with i18n.NewFSAdapter(rules.Locales, "locales").
//
//go:embed locales/*.yaml
var Locales embed.FS
