package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rzbill/seqid/pkg/id"
)

const (
	codeBadRequest        = "bad_request"
	codeInvalidCharacter  = "invalid_character"
	codeEmptyInput        = "empty_input"
	codeMalformedReadable = "malformed_readable"
	codeValueOverflow     = "value_overflow"
	codeTimestampRange    = "timestamp_range"
	codeUnknownScheme     = "unknown_scheme"
	codeInternal          = "internal"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResp{Error: message, Code: code})
}

// writeErr maps id sentinels to a status and code.
func writeErr(w http.ResponseWriter, err error) {
	status, code := http.StatusBadRequest, codeBadRequest
	switch {
	case errors.Is(err, id.ErrUnknownScheme):
		status, code = http.StatusNotFound, codeUnknownScheme
	case errors.Is(err, id.ErrInvalidCharacter):
		code = codeInvalidCharacter
	case errors.Is(err, id.ErrEmptyInput):
		code = codeEmptyInput
	case errors.Is(err, id.ErrMalformedReadable):
		code = codeMalformedReadable
	case errors.Is(err, id.ErrValueOverflow):
		code = codeValueOverflow
	case errors.Is(err, id.ErrTimestampRange):
		code = codeTimestampRange
	default:
		status, code = http.StatusInternalServerError, codeInternal
	}
	writeError(w, status, err.Error(), code)
}

// parseCount parses a positive count, defaulting to 1 when empty.
func parseCount(s string, limit int) (int, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > limit {
		return 0, fmt.Errorf("count must be between 1 and %d", limit)
	}
	return n, nil
}

// parseTZ parses an optional zone offset in minutes east of UTC.
func parseTZ(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("tz must be minutes east of UTC")
	}
	return n, nil
}
