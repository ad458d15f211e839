// Package replyify provides types, interfaces, and helpers for working with
// the Replyify REST API.
//
// # Overview
//
// The replyify package defines the dynamic resource Object, the resource
// kinds and their Registry, the error taxonomy, and the interfaces of the
// per-resource clients (e.g., CRUDClient, TimelineJobClient). A concrete
// implementation is provided by the replyifyclient package, which wires
// configuration, transport, and logging. Most consumers should import
// replyifyclient to construct a client and then use the resource client
// interfaces exposed here.
//
// Getting a client
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
//	  cli, err := replyifyclient.NewWithToken("sk_test_123")
//	  if err != nil { log.Fatal(err) }
//
//	  campaign, err := cli.Campaigns().Create(ctx, replyify.Params{"name": "Q1"})
//	  if err != nil { log.Fatal(err) }
//	  _ = campaign
//	}
//
// # Objects and saving
//
// Resources are returned as *Object values holding the decoded fields. Set
// records a field as unsaved and Save sends only the unsaved fields:
//
//	contact, _ := cli.Contacts().Retrieve(ctx, "c_123", nil)
//	_ = contact.Set("notes", "met at conference")
//	_, err := cli.Contacts().Save(ctx, contact)
//
// Empty strings are rejected by Set; assign nil to clear a field. Saving an
// object with no unsaved fields makes no request. Decode copies an object
// into a struct using its json tags.
//
// # Pagination
//
// List returns a single page. AutoPagingIter walks every page, using the
// guid of the last item seen as the starting_after cursor:
//
//	it, err := cli.Contacts().AutoPagingIter(ctx, replyify.Params{"limit": 100})
//	if err != nil { /* handle error */ }
//	for it.HasNext() {
//	  contact, err := it.Next()
//	  if err != nil { break }
//	  _ = contact
//	}
//
// # Errors
//
// Every API failure is an *Error carrying a category, the HTTP status, the
// raw and decoded body, and the request id. Use errors.Is with the category
// sentinels (ErrInvalidRequest, ErrRateLimit, ...) or helpers such as
// IsNotFound and IsAuthentication to branch on them.
//
// # Interceptors and metrics
//
// Config.Interceptors runs request and response hooks around every
// transport call. RateLimitInterceptor throttles outgoing requests and
// MetricsCollector exports request counts and latencies to Prometheus.
package replyify
