package transports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rzbill/seqid/pkg/id"
)

// HTTPTransport talks to the server's JSON gateway.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport uses http.DefaultClient when client is nil.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap maps known codes back to id sentinels.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case "unknown_scheme":
		return id.ErrUnknownScheme
	case "invalid_character":
		return id.ErrInvalidCharacter
	case "empty_input":
		return id.ErrEmptyInput
	case "value_overflow":
		return id.ErrValueOverflow
	case "malformed_readable":
		return id.ErrMalformedReadable
	case "timestamp_range":
		return id.ErrTimestampRange
	}
	return nil
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Status: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		if json.Unmarshal(body, apiErr) != nil {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (t *HTTPTransport) Generate(ctx context.Context, scheme string, count int) ([]string, error) {
	if scheme == "" {
		s, err := t.Schemes(ctx)
		if err != nil {
			return nil, err
		}
		scheme = s.Default
	}
	var out struct {
		IDs []string `json:"ids"`
	}
	path := "/v1/ids/" + url.PathEscape(scheme) + "/generate?count=" + strconv.Itoa(count)
	if err := t.do(ctx, http.MethodPost, path, &out); err != nil {
		return nil, err
	}
	return out.IDs, nil
}

func (t *HTTPTransport) Describe(ctx context.Context, scheme, s string, tz *int) (id.Description, error) {
	if scheme == "" {
		all, err := t.Schemes(ctx)
		if err != nil {
			return id.Description{}, err
		}
		scheme = all.Default
	}
	var d id.Description
	path := "/v1/ids/" + url.PathEscape(scheme) + "/describe/" + url.PathEscape(s)
	if tz != nil {
		path += "?tz=" + strconv.Itoa(*tz)
	}
	if err := t.do(ctx, http.MethodGet, path, &d); err != nil {
		return id.Description{}, err
	}
	return d, nil
}

func (t *HTTPTransport) Schemes(ctx context.Context) (Schemes, error) {
	var out Schemes
	err := t.do(ctx, http.MethodGet, "/v1/schemes", &out)
	return out, err
}
