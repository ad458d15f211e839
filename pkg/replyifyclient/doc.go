// Package replyifyclient provides the primary entry point for constructing a
// Replyify API client that implements the replyify.Client interface.
//
// It layers configuration, HTTP transport, and logging on top of the
// resource interfaces and types defined in the replyify package. Most
// applications should import replyifyclient to build a client, then use the
// returned replyify.Client to access resource-specific clients, for example
// Campaigns(), Contacts(), TimelineJobs(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/replyify-client/pkg/replyify"
//	  "github.com/fivetwenty-io/replyify-client/pkg/replyifyclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // With an access token you already have:
//	  cli, err := replyifyclient.NewWithToken("sk_live_...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or from ~/.replyify/config.yml and REPLYIFY_* environment variables:
//	  cli, err = replyifyclient.NewFromEnv("")
//	  if err != nil { log.Fatal(err) }
//
//	  tags, err := cli.Tags().List(ctx, replyify.Params{"limit": 10})
//	  if err != nil { log.Fatal(err) }
//	  _ = tags
//	}
//
// # Environment
//
// NewFromEnv reads REPLYIFY_ACCESS_TOKEN, REPLYIFY_API_BASE,
// REPLYIFY_API_UPLOAD_BASE, REPLYIFY_API_VERSION,
// REPLYIFY_API_VERIFY_SSL_CERTS, REPLYIFY_HTTP_TIMEOUT, REPLYIFY_RETRY_MAX,
// REPLYIFY_DEBUG and REPLYIFY_USER_AGENT. Environment values override the
// config file.
//
// # Process-wide default
//
// NewDefault returns a client without its own configuration. Every request
// reads replyify.DefaultConfig, so replyify.SetDefaultConfig takes effect
// on the next call.
package replyifyclient
