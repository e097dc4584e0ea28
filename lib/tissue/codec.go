// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissue

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FormatError reports a malformed tissuebox file. Line and Column are
// 1-based when the error has a source position (syntax errors from the
// TOML decoder) and zero when the error is semantic, in which case the
// message names the offending title.
type FormatError struct {
	Message string
	Line    int
	Column  int
}

func (err *FormatError) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", err.Line, err.Column, err.Message)
	}
	return err.Message
}

// Parse reads a tissuebox file: a TOML table-of-tables whose top-level
// keys are tissue titles. Inside each table, "tags" (array of strings)
// and "desc" (string) are recognized; every other key is preserved in
// Extra. Any structural problem aborts the whole parse with a
// *FormatError; a partially constructed box is never returned, since
// partial data would drop entries on the next write-back.
//
// Duplicate titles are duplicate TOML table definitions, which the
// decoder itself rejects with a positioned error.
func Parse(data []byte) (*Box, error) {
	var document map[string]any
	if err := toml.Unmarshal(data, &document); err != nil {
		return nil, decodeFormatError(err)
	}

	titles := make([]string, 0, len(document))
	for title := range document {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	box := NewBox()
	for _, title := range titles {
		table, ok := document[title].(map[string]any)
		if !ok {
			return nil, &FormatError{Message: fmt.Sprintf("top-level entry %q is not a table", title)}
		}
		entry, err := tissueFromTable(title, table)
		if err != nil {
			return nil, err
		}
		if err := box.Insert(entry); err != nil {
			// The decoder already rejected duplicate tables, so the
			// only insert failure reachable here is a blank title.
			return nil, &FormatError{Message: fmt.Sprintf("tissue title %q is blank", title)}
		}
	}
	return box, nil
}

// decodeFormatError converts a go-toml decode error into a
// FormatError, carrying the source position when the decoder has one.
func decodeFormatError(err error) *FormatError {
	var decodeError *toml.DecodeError
	if errors.As(err, &decodeError) {
		line, column := decodeError.Position()
		return &FormatError{Message: decodeError.Error(), Line: line, Column: column}
	}
	return &FormatError{Message: err.Error()}
}

// tissueFromTable builds a tissue from one top-level table.
func tissueFromTable(title string, table map[string]any) (Tissue, error) {
	t := Tissue{Title: title}

	if raw, ok := table["tags"]; ok {
		tags, ok := stringSlice(raw)
		if !ok {
			return Tissue{}, &FormatError{Message: fmt.Sprintf("tissue %q: tags must be an array of strings", title)}
		}
		for _, tag := range tags {
			t.Tag(tag)
		}
	}

	if raw, ok := table["desc"]; ok {
		text, ok := raw.(string)
		if !ok {
			return Tissue{}, &FormatError{Message: fmt.Sprintf("tissue %q: desc must be a string", title)}
		}
		t.Desc = &text
	}

	for key, raw := range table {
		if key == "tags" || key == "desc" {
			continue
		}
		value, err := valueFromTOML(raw)
		if err != nil {
			return Tissue{}, &FormatError{Message: fmt.Sprintf("tissue %q: field %q: %v", title, key, err)}
		}
		if t.Extra == nil {
			t.Extra = make(map[string]Value)
		}
		t.Extra[key] = value
	}

	return t, nil
}

// stringSlice converts a decoded TOML array into []string. Reports
// false when raw is not an array or any element is not a string.
func stringSlice(raw any) ([]string, bool) {
	elements, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	result := make([]string, len(elements))
	for i, element := range elements {
		text, ok := element.(string)
		if !ok {
			return nil, false
		}
		result[i] = text
	}
	return result, true
}

// valueFromTOML converts a decoded TOML value into its tagged Value
// form. The type set mirrors what go-toml produces when decoding into
// an untyped map.
func valueFromTOML(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		return String(v), nil
	case int64:
		return Integer(v), nil
	case float64:
		return Float(v), nil
	case bool:
		return Boolean(v), nil
	case time.Time:
		return Datetime(v.Format(time.RFC3339Nano)), nil
	case toml.LocalDateTime:
		return Datetime(v.String()), nil
	case toml.LocalDate:
		return Datetime(v.String()), nil
	case toml.LocalTime:
		return Datetime(v.String()), nil
	case []any:
		array := make(Array, len(v))
		for i, element := range v {
			value, err := valueFromTOML(element)
			if err != nil {
				return nil, err
			}
			array[i] = value
		}
		return array, nil
	case map[string]any:
		table := make(Table, len(v))
		for key, element := range v {
			value, err := valueFromTOML(element)
			if err != nil {
				return nil, err
			}
			table[key] = value
		}
		return table, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
}

// Serialize emits the canonical text form of a box: one top-level
// table per tissue with a quoted title key, in lexicographic title
// order, with a blank line between tables. Within each table, tags
// come first (omitted when empty), then desc (omitted when absent; a
// present-but-empty description is still emitted, since absence and
// emptiness are distinct), then Extra fields sorted by key. The
// output is byte-stable for a given box.
func Serialize(box *Box) []byte {
	var buffer bytes.Buffer
	for i, title := range box.Titles() {
		if i > 0 {
			buffer.WriteByte('\n')
		}
		writeTissue(&buffer, box.entries[title])
	}
	return buffer.Bytes()
}

// writeTissue emits one tissue as a TOML table. The title key is
// always quoted; titles routinely contain spaces, and a uniformly
// quoted header keeps the file shape regular.
func writeTissue(buffer *bytes.Buffer, t Tissue) {
	buffer.WriteByte('[')
	buffer.WriteString(quoteString(t.Title))
	buffer.WriteString("]\n")

	if len(t.Tags) > 0 {
		elements := make(Array, len(t.Tags))
		for i, tag := range t.Tags {
			elements[i] = String(tag)
		}
		buffer.WriteString("tags = ")
		writeValue(buffer, elements)
		buffer.WriteByte('\n')
	}

	if t.Desc != nil {
		buffer.WriteString("desc = ")
		buffer.WriteString(quoteString(*t.Desc))
		buffer.WriteByte('\n')
	}

	keys := make([]string, 0, len(t.Extra))
	for key := range t.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		buffer.WriteString(formatKey(key))
		buffer.WriteString(" = ")
		writeValue(buffer, t.Extra[key])
		buffer.WriteByte('\n')
	}
}

// writeValue emits a value in TOML syntax. Arrays and tables are
// written inline so that every Extra field stays a single "key =
// value" line under its tissue's table.
func writeValue(buffer *bytes.Buffer, v Value) {
	switch v := v.(type) {
	case String:
		buffer.WriteString(quoteString(string(v)))
	case Integer:
		buffer.WriteString(strconv.FormatInt(int64(v), 10))
	case Float:
		buffer.WriteString(formatFloat(float64(v)))
	case Boolean:
		buffer.WriteString(strconv.FormatBool(bool(v)))
	case Datetime:
		buffer.WriteString(string(v))
	case Array:
		buffer.WriteByte('[')
		for i, element := range v {
			if i > 0 {
				buffer.WriteString(", ")
			}
			writeValue(buffer, element)
		}
		buffer.WriteByte(']')
	case Table:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		if len(keys) == 0 {
			buffer.WriteString("{}")
			return
		}
		buffer.WriteString("{ ")
		for i, key := range keys {
			if i > 0 {
				buffer.WriteString(", ")
			}
			buffer.WriteString(formatKey(key))
			buffer.WriteString(" = ")
			writeValue(buffer, v[key])
		}
		buffer.WriteString(" }")
	}
}

// formatFloat renders a float so that it re-parses as a TOML float:
// always with a decimal point or exponent, and the keyword forms for
// the non-finite values.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return text
}

// formatKey emits a key bare when TOML allows it and quoted
// otherwise. Bare keys match the shape of hand-edited files; titles
// are quoted unconditionally by writeTissue.
func formatKey(key string) string {
	if isBareKey(key) {
		return key
	}
	return quoteString(key)
}

// isBareKey reports whether key consists only of the characters TOML
// permits in an unquoted key.
func isBareKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

// quoteString renders a TOML basic string with the required escapes.
func quoteString(s string) string {
	var builder strings.Builder
	builder.Grow(len(s) + 2)
	builder.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			builder.WriteString(`\"`)
		case '\\':
			builder.WriteString(`\\`)
		case '\b':
			builder.WriteString(`\b`)
		case '\t':
			builder.WriteString(`\t`)
		case '\n':
			builder.WriteString(`\n`)
		case '\f':
			builder.WriteString(`\f`)
		case '\r':
			builder.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&builder, `\u%04X`, r)
			} else {
				builder.WriteRune(r)
			}
		}
	}
	builder.WriteByte('"')
	return builder.String()
}
