package replyify

import (
	"sync"
	"time"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
)

// Logger interface for client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a replyify.Client.
//
// # Credentials
//
// AccessToken is the default bearer credential. A credential passed to a
// single call with WithCredential, or carried by the object being operated
// on, takes precedence. A request with no credential at all fails with an
// AuthenticationError before anything is sent.
//
// # Timeouts, retries, and TLS
//
// Per-request deadlines should be controlled via the context passed to client
// methods. HTTPTimeout bounds a single round trip of the default transport.
// The client never retries on its own; RetryMax enables retries in the
// default transport and is left at zero unless the caller opts in.
type Config struct {
	// APIBase is the base URL for API calls.
	APIBase string
	// UploadAPIBase is the base URL for file uploads. Use it per call with
	// WithAPIBase.
	UploadAPIBase string
	// AccessToken is the default bearer credential.
	AccessToken string
	// APIVersion, when set, is sent as the Replyify-Version header.
	APIVersion string
	// SkipTLSVerify disables certificate verification in the default transport.
	SkipTLSVerify bool

	// HTTPTimeout bounds a single round trip of the default transport.
	HTTPTimeout time.Duration
	// RetryMax is the number of retries the default transport attempts.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables logging of response bodies.
	Debug bool
	// Logger receives request logs. Nil disables logging.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Transport performs the HTTP exchange. Nil selects the default transport.
	Transport Transport
	// Interceptors run around every transport call.
	Interceptors *InterceptorChain
}

// NewConfig returns a Config populated with the library defaults.
func NewConfig() *Config {
	return &Config{
		APIBase:       constants.DefaultAPIBase,
		UploadAPIBase: constants.DefaultUploadAPIBase,
		HTTPTimeout:   constants.DefaultHTTPTimeout,
		RetryWaitMin:  constants.DefaultRetryWaitMin,
		RetryWaitMax:  constants.DefaultRetryWaitMax,
	}
}

var (
	defaultConfigMu sync.RWMutex
	defaultConfig   = NewConfig()
)

// DefaultConfig returns the process-wide default configuration.
//
// Clients built without an explicit Config read it at the start of every
// request, so changes made between calls apply to the next call. Mutating
// it while requests are in flight is a race the caller must avoid.
func DefaultConfig() *Config {
	defaultConfigMu.RLock()
	defer defaultConfigMu.RUnlock()

	return defaultConfig
}

// SetDefaultConfig replaces the process-wide default configuration.
func SetDefaultConfig(config *Config) {
	if config == nil {
		config = NewConfig()
	}

	defaultConfigMu.Lock()
	defer defaultConfigMu.Unlock()

	defaultConfig = config
}
