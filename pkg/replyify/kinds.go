package replyify

import "sync"

// Resource kinds served by the Replyify API.
var (
	AccountKind = &Kind{
		Name:         "account",
		Capabilities: CanCreate | CanRetrieve | CanUpdate,
		GUIDOptional: true,
	}
	CampaignKind        = &Kind{Name: "campaign", Capabilities: CanCRUD}
	CampaignContactKind = &Kind{Name: "campaigncontact", Path: "/campaign-contact/v1", Capabilities: CanCRUD}
	ContactKind         = &Kind{Name: "contact", Capabilities: CanCRUD}
	ContactFieldKind    = &Kind{Name: "contactfield", Path: "/contact-field/v1", Capabilities: CanCRUD}
	NoteKind            = &Kind{Name: "note", Capabilities: CanCRUD}
	ReplyKind           = &Kind{Name: "reply", Capabilities: CanList | CanRetrieve | CanUpdate}
	SignatureKind       = &Kind{Name: "signature", Capabilities: CanCRUD}
	TagKind             = &Kind{Name: "tag", Capabilities: CanCRUD}
	TemplateKind        = &Kind{Name: "template", Capabilities: CanCRUD}
	TimelineKind        = &Kind{Name: "timeline", Capabilities: CanList | CanCreate | CanRetrieve}
	TimelineItemKind    = &Kind{Name: "timelineitem", Path: "/timeline-item/v1", Capabilities: CanCRUD}
	TimelineJobKind     = &Kind{
		Name:         "timelinejob",
		Path:         "/timeline-job/v1",
		Capabilities: CanList | CanCreate | CanRetrieve | CanUpdate,
	}
	UploadKind = &Kind{Name: "upload", Capabilities: CanList | CanCreate | CanRetrieve}
)

// Kinds returns every built-in resource kind.
func Kinds() []*Kind {
	return []*Kind{
		AccountKind,
		CampaignKind,
		CampaignContactKind,
		ContactKind,
		ContactFieldKind,
		NoteKind,
		ReplyKind,
		SignatureKind,
		TagKind,
		TemplateKind,
		TimelineKind,
		TimelineItemKind,
		TimelineJobKind,
		UploadKind,
	}
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the registry of the built-in kinds.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry("")
		defaultRegistry.Register(Kinds()...)
	})

	return defaultRegistry
}
