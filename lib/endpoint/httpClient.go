package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const maxResponseSize = 10 << 20

// HTTPOptions configures the client shared by the HTTP based endpoint types.
type HTTPOptions struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// RemoteError is returned when the remote service answers with a 4xx or 5xx status.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote service responded with status %d", e.StatusCode)
}

// leveledLogger lets retryablehttp log through zap.
type leveledLogger struct {
	logger *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}

func newHTTPClient(options HTTPOptions, logger *zap.SugaredLogger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = options.RetryMax
	if options.RetryWaitMin > 0 {
		client.RetryWaitMin = options.RetryWaitMin
	}
	if options.RetryWaitMax > 0 {
		client.RetryWaitMax = options.RetryWaitMax
	}
	if options.Timeout > 0 {
		client.HTTPClient.Timeout = options.Timeout
	}
	// hand the last response back instead of a generic "giving up" error
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = leveledLogger{logger: logger}
	return client
}

func parseServiceURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid service url %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid service url %q: scheme must be http or https", raw)
	}
	return parsed, nil
}

// applyHeaders copies the "headers" entry of the service settings onto req.
func applyHeaders(req *retryablehttp.Request, settings map[string]any) {
	headers, ok := settings["headers"].(map[string]any)
	if !ok {
		return
	}
	for key, value := range headers {
		req.Header.Set(key, fmt.Sprint(value))
	}
}

func decodeResponse(resp *http.Response) (any, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "json") || json.Valid(trimmed) {
		var decoded any
		if err := json.Unmarshal(trimmed, &decoded); err != nil {
			return nil, fmt.Errorf("error decoding response: %w", err)
		}
		return decoded, nil
	}
	return string(body), nil
}
