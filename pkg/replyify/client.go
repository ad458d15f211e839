package replyify

import "context"

// Requester performs one API call and returns the decoded JSON response
// together with the credential that was used. A 204 response yields nil.
type Requester interface {
	Request(ctx context.Context, method, path string, params Params, opts ...RequestOption) (any, string, error)
}

// Lister lists resources of a kind.
type Lister interface {
	List(ctx context.Context, params Params, opts ...RequestOption) (*List, error)
	AutoPagingIter(ctx context.Context, params Params, opts ...RequestOption) (*ListIterator, error)
}

// Creator creates resources of a kind.
type Creator interface {
	Create(ctx context.Context, params Params, opts ...RequestOption) (*Object, error)
}

// Retriever fetches resources of a kind.
type Retriever interface {
	Retrieve(ctx context.Context, guid string, params Params, opts ...RequestOption) (*Object, error)
	Refresh(ctx context.Context, obj *Object, opts ...RequestOption) error
}

// Modifier updates a resource by guid without loading it first.
type Modifier interface {
	Modify(ctx context.Context, guid string, params Params, opts ...RequestOption) (*Object, error)
}

// Saver sends the unsaved changes of a loaded object.
type Saver interface {
	Save(ctx context.Context, obj *Object, opts ...RequestOption) (*Object, error)
}

// Updater combines Modifier and Saver.
type Updater interface {
	Modifier
	Saver
}

// Deleter deletes a loaded object.
type Deleter interface {
	Delete(ctx context.Context, obj *Object, params Params, opts ...RequestOption) (*Object, error)
}

// AccountClient defines operations for the account resource.
type AccountClient interface {
	Creator
	Retriever
	Updater
}

// CRUDClient defines operations for resources supporting every verb.
type CRUDClient interface {
	Lister
	Creator
	Retriever
	Updater
	Deleter
}

// ReplyClient defines operations for replies.
type ReplyClient interface {
	Lister
	Retriever
	Updater
}

// TimelineClient defines operations for timelines.
type TimelineClient interface {
	Lister
	Creator
	Retriever
}

// TimelineJobClient defines operations for timeline jobs.
type TimelineJobClient interface {
	Lister
	Creator
	Retriever
	Updater
}

// UploadClient defines operations for uploads. Pass files with NewFile and
// WithMultipart.
type UploadClient interface {
	Lister
	Creator
	Retriever
}

// ResourceClient exposes every verb for an arbitrary kind. Verbs the kind
// does not support return ErrUnsupportedOperation.
type ResourceClient interface {
	CRUDClient
	Kind() *Kind
}

// Client is the main interface for interacting with the Replyify API.
type Client interface {
	Accounts() AccountClient
	Campaigns() CRUDClient
	CampaignContacts() CRUDClient
	Contacts() CRUDClient
	ContactFields() CRUDClient
	Notes() CRUDClient
	Replies() ReplyClient
	Signatures() CRUDClient
	Tags() CRUDClient
	Templates() CRUDClient
	Timelines() TimelineClient
	TimelineItems() CRUDClient
	TimelineJobs() TimelineJobClient
	Uploads() UploadClient

	// Resource returns a client for kind.
	Resource(kind *Kind) ResourceClient
	// Requester returns the underlying request pipeline.
	Requester() Requester
	// Registry returns the registry used to decode responses.
	Registry() *Registry
}
