package i18n

import "errors"

var (
	ErrNilAdapter           = errors.New("i18n: translation adapter is nil")
	ErrEmptyLanguageCode    = errors.New("i18n: empty language code in translations")
	ErrNilLanguageMap       = errors.New("i18n: nil translations map for language")
	ErrLanguageNotSupported = errors.New("i18n: language not supported")
	ErrFailedToMarshalJSON  = errors.New("i18n: failed to marshal translations to JSON")

	ErrParsingCancelled  = errors.New("i18n: parsing cancelled")
	ErrFailedToParseJSON = errors.New("i18n: failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML content")
	ErrInvalidStructure  = errors.New("i18n: invalid translation structure")

	ErrLoadingCancelled = errors.New("i18n: loading translations cancelled")
	ErrFailedToReadFile = errors.New("i18n: failed to read translation file")
	ErrFailedToReadDir  = errors.New("i18n: failed to read translation directory")
	ErrUnsupportedFile  = errors.New("i18n: no parser for translation file")
)
