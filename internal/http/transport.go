package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
	"github.com/fivetwenty-io/replyify-client/pkg/replyify"
)

// RetryableTransport is the default Transport, backed by go-retryablehttp.
// Retries are disabled unless Config.RetryMax is positive.
type RetryableTransport struct {
	client *retryablehttp.Client
}

// NewRetryableTransport builds a transport from config.
func NewRetryableTransport(config *replyify.Config, logger replyify.Logger) *RetryableTransport {
	if config == nil {
		config = replyify.NewConfig()
	}

	if logger == nil {
		logger = replyify.NoopLogger{}
	}

	client := retryablehttp.NewClient()
	client.RetryMax = config.RetryMax
	client.RetryWaitMin = config.RetryWaitMin
	client.RetryWaitMax = config.RetryWaitMax
	client.Logger = &loggerAdapter{logger: logger}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if client.RetryWaitMin == 0 {
		client.RetryWaitMin = constants.DefaultRetryWaitMin
	}

	if client.RetryWaitMax == 0 {
		client.RetryWaitMax = constants.DefaultRetryWaitMax
	}

	client.HTTPClient.Timeout = config.HTTPTimeout
	if client.HTTPClient.Timeout == 0 {
		client.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	}

	if config.SkipTLSVerify {
		if transport, ok := client.HTTPClient.Transport.(*http.Transport); ok {
			transport.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: true, // #nosec G402 -- opt-in via REPLYIFY_API_VERIFY_SSL_CERTS=false
			}
		}
	}

	return &RetryableTransport{client: client}
}

// Name identifies the transport in the client user agent header.
func (t *RetryableTransport) Name() string {
	return "retryablehttp"
}

// Do performs the exchange and reads the whole response body.
func (t *RetryableTransport) Do(
	ctx context.Context,
	method, url string,
	headers http.Header,
	body []byte,
) (*replyify.TransportResponse, error) {
	var rawBody interface{}
	if len(body) > 0 {
		rawBody = bytes.NewReader(body)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, strings.ToUpper(method), url, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &replyify.TransportResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}, nil
}

// loggerAdapter adapts replyify.Logger to retryablehttp.LeveledLogger.
type loggerAdapter struct {
	logger replyify.Logger
}

func (l *loggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *loggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *loggerAdapter) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *loggerAdapter) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsFromKeysAndValues(keysAndValues))
}

func fieldsFromKeysAndValues(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
