package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// TextFormatter writes one human readable line per entry:
//
//	2024-12-17T08:00:00.000Z INFO  [http] listening addr=:8080
type TextFormatter struct {
	// TimeFormat defaults to RFC 3339 with milliseconds.
	TimeFormat string
	// ShowCaller appends file:line.
	ShowCaller bool
}

const defaultTimeFormat = "2006-01-02T15:04:05.000Z07:00"

func (f *TextFormatter) Format(e *Entry) ([]byte, error) {
	tf := f.TimeFormat
	if tf == "" {
		tf = defaultTimeFormat
	}

	var b bytes.Buffer
	b.WriteString(e.Timestamp.UTC().Format(tf))
	b.WriteByte(' ')
	fmt.Fprintf(&b, "%-5s", e.Level.String())
	if c, ok := e.Fields[ComponentKey]; ok {
		fmt.Fprintf(&b, " [%v]", c)
	}
	b.WriteByte(' ')
	b.WriteString(e.Message)

	for _, k := range sortedKeys(e.Fields) {
		if k == ComponentKey {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(textValue(e.Fields[k]))
	}
	if f.ShowCaller && e.Caller != "" {
		b.WriteString(" caller=")
		b.WriteString(e.Caller)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func textValue(v any) string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case time.Duration:
		s = t.String()
	case error:
		s = t.Error()
	default:
		s = fmt.Sprint(v)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// JSONFormatter writes one JSON object per line with ts, level, msg and the
// entry fields at the top level.
type JSONFormatter struct {
	ShowCaller bool
}

func (f *JSONFormatter) Format(e *Entry) ([]byte, error) {
	m := make(map[string]any, len(e.Fields)+4)
	for k, v := range e.Fields {
		switch t := v.(type) {
		case error:
			m[k] = t.Error()
		case time.Duration:
			m[k] = t.String()
		default:
			m[k] = v
		}
	}
	m["ts"] = e.Timestamp.UTC().Format(defaultTimeFormat)
	m["level"] = e.Level.String()
	m["msg"] = e.Message
	if f.ShowCaller && e.Caller != "" {
		m["caller"] = e.Caller
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("log: encode entry: %w", err)
	}
	return append(out, '\n'), nil
}

func sortedKeys(f Fields) []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
