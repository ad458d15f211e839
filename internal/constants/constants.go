package constants

import "time"

// Library identity.
const (
	// Version is the version of the Go bindings reported to the API.
	Version = "1.2.0"

	// Publisher is reported in the client user agent payload.
	Publisher = "replyify"

	// Lang is reported in the client user agent payload.
	Lang = "go"
)

// Service endpoints.
const (
	// DefaultAPIBase is the default base URL for the Replyify API.
	DefaultAPIBase = "https://api.replyify.com"

	// DefaultUploadAPIBase is the default base URL for file uploads.
	DefaultUploadAPIBase = "https://uploads.replyify.com"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single API round trip.
	DefaultHTTPTimeout = 80 * time.Second

	// DefaultRetryWaitMin is the minimum wait between opt-in retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between opt-in retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Request and response headers.
const (
	HeaderAuthorization     = "Authorization"
	HeaderContentType       = "Content-Type"
	HeaderUserAgent         = "User-Agent"
	HeaderClientUserAgent   = "X-Replyify-Client-User-Agent"
	HeaderAPIVersion        = "Replyify-Version"
	HeaderIdempotencyKey    = "Idempotency-Key"
	HeaderRequestID         = "Request-Id"
	ContentTypeFormURL      = "application/x-www-form-urlencoded"
	ContentTypeMultipart    = "multipart/form-data"
	UserAgentPrefix         = "Replyify/v1 GoBindings/"
	AuthorizationBearerType = "Bearer "
)

// Encoding limits.
const (
	// MultipartChunkSize is the size of each chunk copied from a file into a multipart body.
	MultipartChunkSize = 1028

	// ResponsePreviewLength is the number of characters of an unparseable body quoted in errors.
	ResponsePreviewLength = 500
)

// Resource model constants.
const (
	// DefaultIdentityKey is the field holding a resource's identity.
	DefaultIdentityKey = "guid"

	// TypeDiscriminatorKey is the field naming a resource's type.
	TypeDiscriminatorKey = "object"

	// ListDiscriminator is the discriminator value of collection responses.
	ListDiscriminator = "list"

	// PaginationCursorParam is the query parameter used to advance through pages.
	PaginationCursorParam = "starting_after"

	// AdditionalOwnersKey is the list field serialized element by element.
	AdditionalOwnersKey = "additional_owners"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)
