package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const fence = "```"

// StripFences removes a markdown code fence wrapped around a reply.
// The opening marker may carry a language tag ("```json"). Text outside
// the first fenced block is dropped. Unfenced text is only trimmed, and
// so is text that already parses as JSON.
func StripFences(text string) string {
	s := strings.TrimSpace(text)

	start := strings.Index(s, fence)
	if start < 0 || json.Valid([]byte(s)) {
		return s
	}
	body := s[start+len(fence):]

	// The marker line holds an optional tag, then possibly the payload
	// itself, as in ```json {"a":1}. A single-line block like ```{"a":1}```
	// has no tag.
	line, rest, multiline := strings.Cut(body, "\n")
	line = strings.TrimSpace(line)
	tag, inline := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		tag, inline = line[:i], strings.TrimSpace(line[i:])
	}
	if isFenceTag(tag) {
		body = inline
		if multiline {
			body += "\n" + rest
		}
	}

	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

func isFenceTag(tag string) bool {
	for _, r := range tag {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}

// DecodeJSON strips fences from text, parses exactly one JSON value,
// validates it against schema (when non-nil) and decodes it into v.
// Every failure is a *MalformedPayloadError carrying the diagnostic.
func DecodeJSON(text string, schema *Schema, v any) error {
	body := StripFences(text)
	fail := func(err error) error {
		return &MalformedPayloadError{Content: text, Err: err}
	}

	if body == "" {
		return fail(errors.New("empty reply"))
	}

	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(body))
	if err != nil {
		return fail(fmt.Errorf("invalid JSON: %w", err))
	}

	if err := validateValue(schema, parsed); err != nil {
		return fail(err)
	}

	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return fail(fmt.Errorf("invalid JSON: %w", err))
	}
	if _, err := dec.Token(); err != io.EOF {
		return fail(errors.New("invalid JSON: trailing data after value"))
	}
	return nil
}
