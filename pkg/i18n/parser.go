package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser turns the content of a translation file into
// language -> nested key map form.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
	SupportsFileExtension(ext string) bool
}

// formatParser decodes one serialization format into the language tree.
type formatParser struct {
	extensions []string
	unmarshal  func([]byte, any) error
	decodeErr  error
}

// NewYAMLParser returns a parser for .yaml and .yml files.
func NewYAMLParser() Parser {
	return &formatParser{
		extensions: []string{"yaml", "yml"},
		unmarshal:  yaml.Unmarshal,
		decodeErr:  ErrFailedToParseYAML,
	}
}

// NewJSONParser returns a parser for .json files.
func NewJSONParser() Parser {
	return &formatParser{
		extensions: []string{"json"},
		unmarshal:  json.Unmarshal,
		decodeErr:  ErrFailedToParseJSON,
	}
}

func (p *formatParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := p.unmarshal(content, &data); err != nil {
		return nil, errors.Join(p.decodeErr, err)
	}
	return splitLanguages(data)
}

func (p *formatParser) SupportsFileExtension(ext string) bool {
	return slices.Contains(p.extensions, strings.ToLower(strings.TrimPrefix(ext, ".")))
}

// ParserForFile returns the parser matching the file extension, or nil.
func ParserForFile(filename string) Parser {
	ext := path.Ext(filename)
	for _, p := range []Parser{NewYAMLParser(), NewJSONParser()} {
		if p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// splitLanguages checks that every top-level entry is a map and converts it.
func splitLanguages(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		m, ok := normalizeMap(val)
		if !ok {
			return nil, &structureError{lang: lang, got: val}
		}
		result[lang] = m
	}
	return result, nil
}

// normalizeMap accepts both map[string]any and map[any]any.
func normalizeMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	default:
		return nil, false
	}
}

type structureError struct {
	lang string
	got  any
}

func (e *structureError) Error() string {
	return fmt.Sprintf("%s: language %q maps to %T, want a map", ErrInvalidStructure, e.lang, e.got)
}

func (e *structureError) Unwrap() error {
	return ErrInvalidStructure
}
