// Package http implements the request pipeline: it turns one API call into
// an authenticated HTTP exchange and classifies the response.
package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
	"github.com/fivetwenty-io/replyify-client/internal/form"
	"github.com/fivetwenty-io/replyify-client/pkg/replyify"
)

const missingCredentialMessage = "No access token provided. (HINT: set your access token with " +
	"replyify.Config.AccessToken or the REPLYIFY_ACCESS_TOKEN environment variable)."

// Client is the request pipeline.
type Client struct {
	config       *replyify.Config
	transport    replyify.Transport
	logger       replyify.Logger
	debug        bool
	interceptors *replyify.InterceptorChain

	mu               sync.Mutex
	defaultFor       *replyify.Config
	defaultTransport replyify.Transport
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger, overriding Config.Logger.
func WithLogger(logger replyify.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug logs response bodies regardless of Config.Debug.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithTransport sets the transport, overriding Config.Transport.
func WithTransport(transport replyify.Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithInterceptors sets the interceptor chain, overriding Config.Interceptors.
func WithInterceptors(chain *replyify.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a pipeline. A nil config makes the client read
// replyify.DefaultConfig at the start of every request.
func NewClient(config *replyify.Config, opts ...Option) *Client {
	client := &Client{config: config}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Request performs one API call and returns the decoded JSON body and the
// credential used. A 204 response returns nil.
func (c *Client) Request(
	ctx context.Context,
	method, path string,
	params replyify.Params,
	opts ...replyify.RequestOption,
) (any, string, error) {
	resp, credential, err := c.RequestRaw(ctx, method, path, params, opts...)
	if err != nil {
		return nil, credential, err
	}

	value, err := interpretResponse(resp)

	return value, credential, err
}

// RequestRaw performs one API call without interpreting the response.
func (c *Client) RequestRaw(
	ctx context.Context,
	method, path string,
	params replyify.Params,
	opts ...replyify.RequestOption,
) (*replyify.TransportResponse, string, error) {
	options := replyify.ApplyRequestOptions(opts...)
	config := c.currentConfig()
	logger := c.currentLogger(config)

	credential := options.Credential
	if credential == "" {
		credential = config.AccessToken
	}

	if credential == "" {
		return nil, "", replyify.NewError(replyify.AuthenticationError, missingCredentialMessage)
	}

	method = strings.ToLower(method)
	absURL := c.absoluteURL(config, options, path)
	headers := make(http.Header)

	var body []byte

	switch method {
	case "get", "delete":
		encoded, err := form.EncodeParams(params)
		if err != nil {
			return nil, credential, encodingError(err)
		}

		if encoded != "" {
			absURL, err = buildAPIURL(absURL, encoded)
			if err != nil {
				return nil, credential, encodingError(err)
			}
		}
	case "post", "put", "patch":
		if options.Headers.Get(constants.HeaderContentType) == constants.ContentTypeMultipart {
			multipart, err := form.BuildMultipart(params)
			if err != nil {
				return nil, credential, encodingError(err)
			}

			body = multipart.Body
			options.Headers.Set(constants.HeaderContentType, multipart.ContentType())
		} else {
			encoded, err := form.EncodeParams(params)
			if err != nil {
				return nil, credential, encodingError(err)
			}

			body = []byte(encoded)
			headers.Set(constants.HeaderContentType, constants.ContentTypeFormURL)
		}
	default:
		return nil, credential, replyify.NewError(replyify.ConnectionError, fmt.Sprintf(
			"Unrecognized HTTP method %q. This may indicate a bug in the Replyify bindings.", method))
	}

	transport := c.currentTransport(config, logger)

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = constants.UserAgentPrefix + constants.Version
	}

	headers.Set(constants.HeaderClientUserAgent, clientUserAgent(transport.Name()))
	headers.Set(constants.HeaderUserAgent, userAgent)
	headers.Set(constants.HeaderAuthorization, constants.AuthorizationBearerType+credential)

	if config.APIVersion != "" {
		headers.Set(constants.HeaderAPIVersion, config.APIVersion)
	}

	if options.IdempotencyKey != "" {
		headers.Set(constants.HeaderIdempotencyKey, options.IdempotencyKey)
	}

	for key, values := range options.Headers {
		headers[key] = values
	}

	req := &replyify.Request{
		Method:   strings.ToUpper(method),
		URL:      absURL,
		Headers:  headers,
		Body:     body,
		Metadata: make(map[string]interface{}),
	}

	interceptors := c.currentInterceptors(config)

	if err := interceptors.ExecuteRequestInterceptors(ctx, req); err != nil {
		return nil, credential, connectionError(err)
	}

	resp, err := transport.Do(ctx, method, req.URL, req.Headers, req.Body)

	intercepted := &replyify.Response{Error: err}
	if resp != nil {
		intercepted.StatusCode = resp.StatusCode
		intercepted.Headers = resp.Headers
		intercepted.Body = resp.Body
	}

	if ierr := interceptors.ExecuteResponseInterceptors(ctx, req, intercepted); ierr != nil && err == nil {
		err = ierr
	}

	if err != nil {
		logger.Error("API request failed", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
			"error":  err.Error(),
		})

		return nil, credential, connectionError(err)
	}

	logger.Info(fmt.Sprintf("%s %s %d", req.Method, req.URL, resp.StatusCode), map[string]interface{}{
		"method":      req.Method,
		"url":         req.URL,
		"status_code": resp.StatusCode,
	})

	if c.debug || config.Debug {
		logger.Debug("API response body", map[string]interface{}{
			"url":         req.URL,
			"status_code": resp.StatusCode,
			"body":        string(resp.Body),
		})
	}

	return resp, credential, nil
}

func (c *Client) currentConfig() *replyify.Config {
	if c.config != nil {
		return c.config
	}

	return replyify.DefaultConfig()
}

func (c *Client) currentLogger(config *replyify.Config) replyify.Logger {
	switch {
	case c.logger != nil:
		return c.logger
	case config.Logger != nil:
		return config.Logger
	default:
		return replyify.NoopLogger{}
	}
}

func (c *Client) currentInterceptors(config *replyify.Config) *replyify.InterceptorChain {
	if c.interceptors != nil {
		return c.interceptors
	}

	return config.Interceptors
}

// currentTransport returns the configured transport, building the default
// one once per config.
func (c *Client) currentTransport(config *replyify.Config, logger replyify.Logger) replyify.Transport {
	if c.transport != nil {
		return c.transport
	}

	if config.Transport != nil {
		return config.Transport
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.defaultTransport == nil || c.defaultFor != config {
		c.defaultTransport = NewRetryableTransport(config, logger)
		c.defaultFor = config
	}

	return c.defaultTransport
}

func (c *Client) absoluteURL(config *replyify.Config, options *replyify.RequestOptions, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	base := options.APIBase
	if base == "" {
		base = config.APIBase
	}

	return strings.TrimSuffix(base, "/") + path
}

// buildAPIURL appends query to the query already present on rawURL.
func buildAPIURL(rawURL, query string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", rawURL, err)
	}

	if parsed.RawQuery != "" {
		query = parsed.RawQuery + "&" + query
	}

	parsed.RawQuery = query

	return parsed.String(), nil
}

func clientUserAgent(httplib string) string {
	ua := map[string]string{
		"bindings_version": constants.Version,
		"lang":             constants.Lang,
		"lang_version":     runtime.Version(),
		"platform":         runtime.GOOS + "/" + runtime.GOARCH,
		"publisher":        constants.Publisher,
		"httplib":          httplib,
	}

	encoded, err := json.Marshal(ua)
	if err != nil {
		return "{}"
	}

	return string(encoded)
}

// interpretResponse decodes a response body and classifies error statuses.
func interpretResponse(resp *replyify.TransportResponse) (any, error) {
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var decoded any

	body := string(resp.Body)
	if !utf8.Valid(resp.Body) || json.Unmarshal(resp.Body, &decoded) != nil {
		preview := body
		if runes := []rune(preview); len(runes) > constants.ResponsePreviewLength {
			preview = string(runes[:constants.ResponsePreviewLength])
		}

		return nil, replyify.NewError(replyify.APIError, fmt.Sprintf(
			"Invalid response body from API: %s (HTTP response code was %d)", preview, resp.StatusCode,
		)).WithResponse(resp.StatusCode, body, nil, resp.Headers)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, handleAPIError(body, resp.StatusCode, decoded, resp.Headers)
	}

	return decoded, nil
}

// handleAPIError builds the typed error for a non-2xx response.
func handleAPIError(body string, status int, decoded any, headers http.Header) *replyify.Error {
	values, ok := decoded.(map[string]any)

	var (
		message   string
		errorList any
	)

	switch {
	case ok && !isEmpty(values["errors"]):
		message = "Error in supplied form data"
		errorList = values["errors"]
	case ok && hasKey(values, "error"):
		message = fmt.Sprint(values["error"])
		if values["error"] == nil {
			message = ""
		}
	default:
		return replyify.NewError(replyify.APIError, fmt.Sprintf(
			"Invalid response object from API: %q (HTTP response code was %d)", body, status,
		)).WithResponse(status, body, decoded, headers)
	}

	err := replyify.NewError(replyify.ErrorForStatus(status), message).WithResponse(status, body, decoded, headers)
	if err.Category == replyify.InvalidRequestError {
		err.ErrorList = errorList
	}

	return err
}

func encodingError(err error) *replyify.Error {
	typed := replyify.NewError(replyify.InvalidRequestError, fmt.Sprintf("encoding request parameters: %v", err))
	typed.Cause = err

	return typed
}

func connectionError(err error) *replyify.Error {
	typed := replyify.NewError(replyify.ConnectionError, fmt.Sprintf(
		"Unexpected error communicating with Replyify: %v", err))
	typed.Cause = err

	return typed
}

func hasKey(values map[string]any, key string) bool {
	_, ok := values[key]

	return ok
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case []any:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	case string:
		return typed == ""
	case bool:
		return !typed
	case float64:
		return typed == 0
	default:
		return false
	}
}
