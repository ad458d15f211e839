package replyify

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
)

// Params holds request parameters. Values may be scalars, nested maps,
// slices, time.Time, objects (sent by guid) or files.
type Params map[string]any

// RequestOptions are the per-call settings collected from RequestOption values.
type RequestOptions struct {
	Credential     string
	IdempotencyKey string
	APIBase        string
	Headers        http.Header
}

// RequestOption configures a single API call.
type RequestOption func(*RequestOptions)

// ApplyRequestOptions folds opts into a RequestOptions value.
func ApplyRequestOptions(opts ...RequestOption) *RequestOptions {
	options := &RequestOptions{Headers: make(http.Header)}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	return options
}

// WithCredential overrides the bearer credential for the call.
func WithCredential(credential string) RequestOption {
	return func(o *RequestOptions) {
		o.Credential = credential
	}
}

// WithIdempotencyKey sends key as the Idempotency-Key header.
func WithIdempotencyKey(key string) RequestOption {
	return func(o *RequestOptions) {
		o.IdempotencyKey = key
	}
}

// WithHeader sets a header on the call. Supplied headers override the
// headers the client computes.
func WithHeader(name, value string) RequestOption {
	return func(o *RequestOptions) {
		o.Headers.Set(name, value)
	}
}

// WithMultipart sends the parameters as a multipart/form-data body.
func WithMultipart() RequestOption {
	return WithHeader(constants.HeaderContentType, constants.ContentTypeMultipart)
}

// WithAPIBase sends the call to base instead of the configured API base.
func WithAPIBase(base string) RequestOption {
	return func(o *RequestOptions) {
		o.APIBase = base
	}
}

// NewIdempotencyKey returns a random key suitable for WithIdempotencyKey.
func NewIdempotencyKey() string {
	return uuid.NewString()
}

// File is a file parameter sent as a multipart file part.
type File struct {
	// FileName is the file name reported to the server.
	FileName string
	// Reader supplies the file content.
	Reader io.Reader
}

// NewFile creates a File parameter.
func NewFile(name string, reader io.Reader) *File {
	return &File{FileName: name, Reader: reader}
}

// Name returns the file name.
func (f *File) Name() string {
	return f.FileName
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	if f.Reader == nil {
		return 0, constants.ErrNilFileReader
	}

	return f.Reader.Read(p)
}

// TransportResponse is the raw result of a transport call.
type TransportResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Transport performs a single HTTP exchange. Implementations must read the
// whole response body before returning.
type Transport interface {
	// Name identifies the transport in the client user agent header.
	Name() string
	Do(ctx context.Context, method, url string, headers http.Header, body []byte) (*TransportResponse, error)
}
