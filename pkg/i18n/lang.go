package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength caps the header length that is parsed.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage picks the best supported language for an
// Accept-Language header. Quality values are honoured and a regional
// preference (de-AT) matches its base language (de). Returns defaultLang
// when nothing matches.
func ParseAcceptLanguage(header string, supportedLangs []string, defaultLang string) string {
	if header == "" || len(supportedLangs) == 0 {
		return defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	preferred, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(preferred) == 0 {
		return defaultLang
	}

	tags := make([]language.Tag, 0, len(supportedLangs))
	codes := make([]string, 0, len(supportedLangs))
	for _, code := range supportedLangs {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, strings.ToLower(code))
	}
	if len(tags) == 0 {
		return defaultLang
	}

	_, index, confidence := language.NewMatcher(tags).Match(preferred...)
	if confidence == language.No {
		return defaultLang
	}
	return codes[index]
}

// firstAcceptedLanguage returns the highest priority tag of the header, lowercased.
func firstAcceptedLanguage(header string) string {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return strings.ToLower(tags[0].String())
}
