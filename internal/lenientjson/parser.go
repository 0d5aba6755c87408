// Package lenientjson decodes hand-edited JSON uploads.
//
// Chat logs and retrieval dumps are often exported with // and /* */
// comments or trailing commas. Clean removes those with regular expressions
// before the standard decoder runs. This is a best-effort cleanup, not a
// tokenizer: comment markers or ",}" sequences inside string values can be
// altered, and the ':' guard on line comments only protects URL-like
// "scheme://" text.
package lenientjson

import (
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	// A "//" directly after ':' is kept so that "https://..." survives.
	lineComment   = regexp.MustCompile(`(^|[^:])//.*`)
	blockComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// ParseError is returned when input cannot be decoded even after cleaning.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Clean strips line comments, block comments and trailing commas, in that order.
func Clean(text string) string {
	text = lineComment.ReplaceAllString(text, "$1")
	text = blockComment.ReplaceAllString(text, "")
	text = trailingComma.ReplaceAllString(text, "$1")
	return text
}

// Unmarshal cleans data and decodes it into v. Every failure is a *ParseError.
func Unmarshal(data []byte, v any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ParseError{Message: fmt.Sprintf("Failed to parse JSON: %v", r)}
		}
	}()

	if !utf8.Valid(data) {
		return &ParseError{Message: "File Read Error: input is not valid UTF-8"}
	}

	if err := json.Unmarshal([]byte(Clean(string(data))), v); err != nil {
		return &ParseError{
			Message: fmt.Sprintf("Failed to parse JSON even after cleaning. Details: %v", err),
			Err:     err,
		}
	}
	return nil
}
