package cardstack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shvshnn-coder/venue-pilot/internal/infra/httpclient"
)

type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: status=%d", e.Op, e.StatusCode)
	}
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// HTTPDispatcher posts committed decisions to the API.
type HTTPDispatcher struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPDispatcher(baseURL, accessToken string, timeout time.Duration) (*HTTPDispatcher, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, &RequestError{Op: "parse api url", Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &RequestError{Op: "validate api url", Err: errors.New("api url must be absolute")}
	}

	return &HTTPDispatcher{
		baseURL:    trimmed,
		token:      strings.TrimSpace(accessToken),
		httpClient: httpclient.New(timeout),
	}, nil
}

func (d *HTTPDispatcher) Dispatch(ctx context.Context, req DecisionRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return &RequestError{Op: "marshal decision", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/v1/decisions", bytes.NewReader(body))
	if err != nil {
		return &RequestError{Op: "create http request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if d.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return &RequestError{Op: "post decision", Err: err}
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	switch {
	case resp.StatusCode == http.StatusConflict:
		return ErrAlreadyDecided
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		message := strings.TrimSpace(string(payload))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &RequestError{Op: "post decision", StatusCode: resp.StatusCode, Err: errors.New(message)}
	}
	return nil
}
