// Package manifest builds the asset manifest: the JSON document listing every
// path that matches a glob pattern under a single "urls" key.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Manifest is the generated document. It has exactly one field.
type Manifest struct {
	URLs []string `json:"urls"`
}

// New returns a manifest over urls. A nil slice becomes an empty list so the
// document always encodes as {"urls": []} rather than null.
func New(urls []string) *Manifest {
	if urls == nil {
		urls = []string{}
	}
	return &Manifest{URLs: urls}
}

// Format selects the byte layout of an encoded manifest.
type Format string

const (
	// FormatCompact is a single line with ", " and ": " separators and
	// non-ASCII characters escaped, e.g. {"urls": ["a", "b"]}.
	FormatCompact Format = "compact"
	// FormatIndent is two-space indented JSON followed by a newline.
	FormatIndent Format = "indent"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []Format{FormatCompact, FormatIndent}

// ParseFormat converts a config or flag value to a Format. The empty string
// selects FormatCompact.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCompact:
		return FormatCompact, nil
	case FormatIndent:
		return FormatIndent, nil
	}
	return "", fmt.Errorf("invalid output format: %q (valid: %v)", s, ValidFormats)
}

// Encode serializes m in the given format.
func Encode(m *Manifest, format Format) ([]byte, error) {
	if m == nil {
		m = New(nil)
	}
	switch format {
	case "", FormatCompact:
		return encodeCompact(m)
	case FormatIndent:
		return encodeIndent(m)
	}
	return nil, fmt.Errorf("invalid output format: %q", format)
}

func encodeCompact(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"urls": [`)
	for i, u := range m.URLs {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := checkUTF8(u); err != nil {
			return nil, err
		}
		s, err := marshalString(u)
		if err != nil {
			return nil, err
		}
		writeASCII(&buf, s)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

func encodeIndent(m *Manifest) ([]byte, error) {
	for _, u := range m.URLs {
		if err := checkUTF8(u); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(New(m.URLs)); err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// checkUTF8 rejects paths that encoding/json would rewrite with U+FFFD.
// Such a manifest would list a file that does not exist.
func checkUTF8(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidUTF8, s)
	}
	return nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to marshal path %q: %w", s, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// writeASCII copies an encoded JSON string, replacing DEL and every non-ASCII
// rune with its \uXXXX escape (a surrogate pair above the BMP).
func writeASCII(buf *bytes.Buffer, s []byte) {
	for len(s) > 0 {
		r, size := utf8.DecodeRune(s)
		switch {
		case r < utf8.RuneSelf && r != 0x7f:
			buf.WriteByte(s[0])
		case r > 0xFFFF:
			r -= 0x10000
			fmt.Fprintf(buf, `\u%04x\u%04x`, 0xD800+(r>>10), 0xDC00+(r&0x3FF))
		default:
			fmt.Fprintf(buf, `\u%04x`, r)
		}
		s = s[size:]
	}
}

// Decode parses an encoded manifest. Documents with top-level fields other
// than "urls", or without it, are rejected.
func Decode(data []byte) (*Manifest, error) {
	var wire struct {
		URLs *[]string `json:"urls"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if dec.More() {
		return nil, errors.New("failed to parse manifest: trailing data after document")
	}
	if wire.URLs == nil {
		return nil, errors.New("failed to parse manifest: missing \"urls\" field")
	}
	return New(*wire.URLs), nil
}
