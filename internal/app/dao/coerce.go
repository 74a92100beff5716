package dao

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/staffhub/internal/app/system/htmlsanitize"
)

// Largest integer a JSON number carries without loss.
const maxSafeInt = 1<<53 - 1

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func jsonString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// numberText returns the textual number carried by a JSON number or a
// numeric-looking JSON string.
func numberText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	if s, ok := jsonString(raw); ok {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	if c := raw[0]; c == '-' || (c >= '0' && c <= '9') {
		return string(raw), true
	}
	return "", false
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// coerceText trims and strips markup; "" becomes nil. Bare JSON numbers are
// kept as their literal text (phone numbers sent unquoted).
func coerceText(raw json.RawMessage) *string {
	if s, ok := jsonString(raw); ok {
		return nonEmpty(strings.TrimSpace(htmlsanitize.PlainText(strings.TrimSpace(s))))
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return nonEmpty(string(raw))
	}
	return nil
}

// coerceRichText is coerceText for fields that may carry light formatting.
func coerceRichText(raw json.RawMessage) *string {
	s, ok := jsonString(raw)
	if !ok {
		return nil
	}
	return nonEmpty(strings.TrimSpace(htmlsanitize.Sanitize(strings.TrimSpace(s))))
}

func coerceFloat(raw json.RawMessage) *float64 {
	s, ok := numberText(raw)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func coerceInt(raw json.RawMessage) *int64 {
	s, ok := numberText(raw)
	if !ok {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxSafeInt {
		return nil
	}
	n := int64(f)
	return &n
}

// coerceDate accepts ISO strings or epoch milliseconds.
func coerceDate(raw json.RawMessage) *time.Time {
	if s, ok := jsonString(raw); ok {
		t, ok := ParseISO(s)
		if !ok {
			return nil
		}
		return &t
	}
	ms := coerceInt(raw)
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

func coerceBool(raw json.RawMessage) *bool {
	raw = bytes.TrimSpace(raw)
	var b bool
	switch {
	case bytes.Equal(raw, []byte("true")):
		b = true
	case bytes.Equal(raw, []byte("false")):
		b = false
	default:
		s, ok := jsonString(raw)
		if !ok {
			return nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil
		}
		b = parsed
	}
	return &b
}

// value unwraps a typed pointer into a $set value (nil stays nil).
func value[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
