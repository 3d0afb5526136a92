// Package payload handles agent-call payload text: the raw bracket-delimited
// content of an agent statement. Payloads arrive either as brace-JSON or as
// the bracket display form (key/value pairs without the outer braces), and
// may contain unescaped backslashes from pasted file paths.
package payload

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coregx/coregex"
)

// quotedString matches a payload that is exactly one quoted string.
var quotedString = coregex.MustCompile(`^("[^"]*"|'[^']*')$`)

// bareBackslash matches a single backslash for escaping before the
// tolerant JSON decode retry.
var bareBackslash = coregex.MustCompile(`\\`)

// DecodeError reports a payload that could not be decoded as JSON in any
// accepted form.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid agent payload %q: %v", e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Normalize prepares raw bracket content for storage on the tree. A payload
// that is exactly one quoted string with no key/value colons loses its outer
// quotes; quotes that belong to JSON-like payloads are left alone.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if quotedString.MatchString(raw) && !strings.Contains(raw, ":") {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// Decode parses raw payload text into a JSON value. Three forms are
// accepted, tried in order:
//
//  1. the text as-is (brace-JSON or a bare JSON scalar)
//  2. the text wrapped in braces (bracket display form)
//  3. the brace-wrapped text with backslashes escaped (tolerates
//     unescaped Windows paths)
//  4. colon-free text with no JSON structure, as a plain string (the
//     inverse of Normalize's quote stripping)
//
// If none decodes, Decode returns a *DecodeError wrapping the error from
// the first attempt.
func Decode(raw string) (any, error) {
	var v any
	firstErr := json.Unmarshal([]byte(raw), &v)
	if firstErr == nil {
		return v, nil
	}
	if json.Unmarshal([]byte("{"+raw+"}"), &v) == nil {
		return v, nil
	}
	escaped := bareBackslash.ReplaceAllString(raw, `\\`)
	if json.Unmarshal([]byte("{"+escaped+"}"), &v) == nil {
		return v, nil
	}
	if !strings.ContainsAny(raw, `:{}[]"`) {
		return raw, nil
	}
	return nil, &DecodeError{Raw: raw, Err: firstErr}
}

// Canonical decodes raw and re-encodes it as compact JSON with object keys
// sorted, so equal payloads always serialize to identical bytes.
func Canonical(raw string) (string, error) {
	v, err := Decode(raw)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
