package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const logTimestampLayout = "2006-01-02 15:04:05"

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(logTimestampLayout)
}

// attrString renders v without quoting, for header fields.
func attrString(v slog.Value) string {
	v = v.Resolve()
	if v.Kind() == slog.KindAny {
		return anyString(v.Any())
	}
	return v.String()
}

// formatValue renders v for a detail line, quoting strings that would be
// ambiguous. Track ID lists print as "0,2,1" and argument lists as a
// space-joined command line.
func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return quoteIfNeeded(v.String())
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindTime:
		return formatTimestamp(v.Time())
	case slog.KindAny:
		switch val := v.Any().(type) {
		case []int:
			return joinInts(val)
		case []string:
			return strings.Join(val, " ")
		case error:
			return val.Error()
		default:
			return quoteIfNeeded(anyString(val))
		}
	default:
		return v.String()
	}
}

func anyString(value any) string {
	if err, ok := value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(value)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r < ' ' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
