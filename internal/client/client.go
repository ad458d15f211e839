// Package client implements the replyify.Client interface on top of the
// request pipeline.
package client

import (
	"github.com/fivetwenty-io/replyify-client/internal/http"
	"github.com/fivetwenty-io/replyify-client/pkg/replyify"
)

// Client implements the replyify.Client interface.
type Client struct {
	httpClient *http.Client
	registry   *replyify.Registry
	logger     replyify.Logger

	// Resource clients
	accounts         *ResourceClient
	campaigns        *ResourceClient
	campaignContacts *ResourceClient
	contacts         *ResourceClient
	contactFields    *ResourceClient
	notes            *ResourceClient
	replies          *ResourceClient
	signatures       *ResourceClient
	tags             *ResourceClient
	templates        *ResourceClient
	timelines        *ResourceClient
	timelineItems    *ResourceClient
	timelineJobs     *ResourceClient
	uploads          *ResourceClient
}

// New creates a client. A nil config makes every request read
// replyify.DefaultConfig. A nil registry selects replyify.DefaultRegistry.
func New(config *replyify.Config, registry *replyify.Registry, opts ...http.Option) *Client {
	if registry == nil {
		registry = replyify.DefaultRegistry()
	}

	var logger replyify.Logger = replyify.NoopLogger{}
	if config != nil && config.Logger != nil {
		logger = config.Logger
	}

	client := &Client{
		httpClient: http.NewClient(config, opts...),
		registry:   registry,
		logger:     logger,
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.accounts = c.newResourceClient(replyify.AccountKind)
	c.campaigns = c.newResourceClient(replyify.CampaignKind)
	c.campaignContacts = c.newResourceClient(replyify.CampaignContactKind)
	c.contacts = c.newResourceClient(replyify.ContactKind)
	c.contactFields = c.newResourceClient(replyify.ContactFieldKind)
	c.notes = c.newResourceClient(replyify.NoteKind)
	c.replies = c.newResourceClient(replyify.ReplyKind)
	c.signatures = c.newResourceClient(replyify.SignatureKind)
	c.tags = c.newResourceClient(replyify.TagKind)
	c.templates = c.newResourceClient(replyify.TemplateKind)
	c.timelines = c.newResourceClient(replyify.TimelineKind)
	c.timelineItems = c.newResourceClient(replyify.TimelineItemKind)
	c.timelineJobs = c.newResourceClient(replyify.TimelineJobKind)
	c.uploads = c.newResourceClient(replyify.UploadKind)
}

func (c *Client) newResourceClient(kind *replyify.Kind) *ResourceClient {
	return NewResourceClient(c.httpClient, c.registry, kind, c.logger)
}

// Accounts implements replyify.Client.Accounts.
func (c *Client) Accounts() replyify.AccountClient {
	return c.accounts
}

// Campaigns implements replyify.Client.Campaigns.
func (c *Client) Campaigns() replyify.CRUDClient {
	return c.campaigns
}

// CampaignContacts implements replyify.Client.CampaignContacts.
func (c *Client) CampaignContacts() replyify.CRUDClient {
	return c.campaignContacts
}

// Contacts implements replyify.Client.Contacts.
func (c *Client) Contacts() replyify.CRUDClient {
	return c.contacts
}

// ContactFields implements replyify.Client.ContactFields.
func (c *Client) ContactFields() replyify.CRUDClient {
	return c.contactFields
}

// Notes implements replyify.Client.Notes.
func (c *Client) Notes() replyify.CRUDClient {
	return c.notes
}

// Replies implements replyify.Client.Replies.
func (c *Client) Replies() replyify.ReplyClient {
	return c.replies
}

// Signatures implements replyify.Client.Signatures.
func (c *Client) Signatures() replyify.CRUDClient {
	return c.signatures
}

// Tags implements replyify.Client.Tags.
func (c *Client) Tags() replyify.CRUDClient {
	return c.tags
}

// Templates implements replyify.Client.Templates.
func (c *Client) Templates() replyify.CRUDClient {
	return c.templates
}

// Timelines implements replyify.Client.Timelines.
func (c *Client) Timelines() replyify.TimelineClient {
	return c.timelines
}

// TimelineItems implements replyify.Client.TimelineItems.
func (c *Client) TimelineItems() replyify.CRUDClient {
	return c.timelineItems
}

// TimelineJobs implements replyify.Client.TimelineJobs.
func (c *Client) TimelineJobs() replyify.TimelineJobClient {
	return c.timelineJobs
}

// Uploads implements replyify.Client.Uploads.
func (c *Client) Uploads() replyify.UploadClient {
	return c.uploads
}

// Resource implements replyify.Client.Resource.
func (c *Client) Resource(kind *replyify.Kind) replyify.ResourceClient {
	return c.newResourceClient(kind)
}

// Requester implements replyify.Client.Requester.
func (c *Client) Requester() replyify.Requester {
	return c.httpClient
}

// Registry implements replyify.Client.Registry.
func (c *Client) Registry() *replyify.Registry {
	return c.registry
}
