package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/replyify-client/pkg/replyify"
)

// ResourceClient implements the verbs of one resource kind. Verbs the kind
// does not support return replyify.ErrUnsupportedOperation without a call.
// Errors from the API are returned as *replyify.Error without extra context
// so their message keeps the request id prefix.
type ResourceClient struct {
	requester replyify.Requester
	registry  *replyify.Registry
	kind      *replyify.Kind
	logger    replyify.Logger
}

// NewResourceClient creates a client for kind.
func NewResourceClient(
	requester replyify.Requester,
	registry *replyify.Registry,
	kind *replyify.Kind,
	logger replyify.Logger,
) *ResourceClient {
	if registry == nil {
		registry = replyify.DefaultRegistry()
	}

	if logger == nil {
		logger = replyify.NoopLogger{}
	}

	return &ResourceClient{
		requester: requester,
		registry:  registry,
		kind:      kind,
		logger:    logger,
	}
}

// Kind implements replyify.ResourceClient.Kind.
func (c *ResourceClient) Kind() *replyify.Kind {
	return c.kind
}

// List implements replyify.Lister.List.
func (c *ResourceClient) List(
	ctx context.Context,
	params replyify.Params,
	opts ...replyify.RequestOption,
) (*replyify.List, error) {
	if err := c.require(replyify.CanList, "list"); err != nil {
		return nil, err
	}

	path := c.kind.ClassURL()

	raw, credential, err := c.requester.Request(ctx, http.MethodGet, path, params, opts...)
	if err != nil {
		return nil, err
	}

	list, err := replyify.NewList(c.requester, c.registry, path, raw, credential, params, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list: %w", c.kind.Name, err)
	}

	return list, nil
}

// AutoPagingIter implements replyify.Lister.AutoPagingIter.
func (c *ResourceClient) AutoPagingIter(
	ctx context.Context,
	params replyify.Params,
	opts ...replyify.RequestOption,
) (*replyify.ListIterator, error) {
	list, err := c.List(ctx, params, opts...)
	if err != nil {
		return nil, err
	}

	return list.AutoPagingIter(ctx), nil
}

// Create implements replyify.Creator.Create.
func (c *ResourceClient) Create(
	ctx context.Context,
	params replyify.Params,
	opts ...replyify.RequestOption,
) (*replyify.Object, error) {
	if err := c.require(replyify.CanCreate, "create"); err != nil {
		return nil, err
	}

	raw, credential, err := c.requester.Request(ctx, http.MethodPost, c.kind.ClassURL(), params, opts...)
	if err != nil {
		return nil, err
	}

	return c.object(raw, credential)
}

// Retrieve implements replyify.Retriever.Retrieve. params are sent as query
// parameters.
func (c *ResourceClient) Retrieve(
	ctx context.Context,
	guid string,
	params replyify.Params,
	opts ...replyify.RequestOption,
) (*replyify.Object, error) {
	if err := c.require(replyify.CanRetrieve, "retrieve"); err != nil {
		return nil, err
	}

	options := replyify.ApplyRequestOptions(opts...)
	obj := c.registry.New(c.kind, guid, options.Credential)

	if err := c.refresh(ctx, obj, params, opts...); err != nil {
		return nil, err
	}

	return obj, nil
}

// Refresh implements replyify.Retriever.Refresh.
func (c *ResourceClient) Refresh(ctx context.Context, obj *replyify.Object, opts ...replyify.RequestOption) error {
	if err := c.require(replyify.CanRetrieve, "retrieve"); err != nil {
		return err
	}

	return c.refresh(ctx, obj, nil, opts...)
}

// Modify implements replyify.Modifier.Modify.
func (c *ResourceClient) Modify(
	ctx context.Context,
	guid string,
	params replyify.Params,
	opts ...replyify.RequestOption,
) (*replyify.Object, error) {
	if err := c.require(replyify.CanUpdate, "modify"); err != nil {
		return nil, err
	}

	raw, credential, err := c.requester.Request(ctx, http.MethodPatch, c.kind.BuildInstanceURL(guid), params, opts...)
	if err != nil {
		return nil, err
	}

	return c.object(raw, credential)
}

// Save implements replyify.Saver.Save. An object without unsaved changes is
// returned as is, without a call.
func (c *ResourceClient) Save(
	ctx context.Context,
	obj *replyify.Object,
	opts ...replyify.RequestOption,
) (*replyify.Object, error) {
	if err := c.require(replyify.CanUpdate, "save"); err != nil {
		return nil, err
	}

	params := obj.Serialize(nil)
	if len(params) == 0 {
		c.logger.Debug("Trying to save already saved object", map[string]interface{}{
			"kind": c.kind.Name,
			"guid": obj.GUID(),
		})

		return obj, nil
	}

	path, err := c.kind.InstanceURL(obj)
	if err != nil {
		return nil, err
	}

	raw, credential, err := c.requester.Request(ctx, http.MethodPost, path, params, c.instanceOptions(obj, opts)...)
	if err != nil {
		return nil, err
	}

	if err := c.refreshFrom(obj, raw, credential); err != nil {
		return nil, err
	}

	return obj, nil
}

// Delete implements replyify.Deleter.Delete.
func (c *ResourceClient) Delete(
	ctx context.Context,
	obj *replyify.Object,
	params replyify.Params,
	opts ...replyify.RequestOption,
) (*replyify.Object, error) {
	if err := c.require(replyify.CanDelete, "delete"); err != nil {
		return nil, err
	}

	path, err := c.kind.InstanceURL(obj)
	if err != nil {
		return nil, err
	}

	raw, credential, err := c.requester.Request(ctx, http.MethodDelete, path, params, c.instanceOptions(obj, opts)...)
	if err != nil {
		return nil, err
	}

	if err := c.refreshFrom(obj, raw, credential); err != nil {
		return nil, err
	}

	return obj, nil
}

func (c *ResourceClient) refresh(
	ctx context.Context,
	obj *replyify.Object,
	params replyify.Params,
	opts ...replyify.RequestOption,
) error {
	path, err := c.kind.InstanceURL(obj)
	if err != nil {
		return err
	}

	raw, credential, err := c.requester.Request(ctx, http.MethodGet, path, params, c.instanceOptions(obj, opts)...)
	if err != nil {
		return err
	}

	return c.refreshFrom(obj, raw, credential)
}

// refreshFrom fully refreshes obj from a response. An empty response
// refreshes from an empty map.
func (c *ResourceClient) refreshFrom(obj *replyify.Object, raw any, credential string) error {
	if raw == nil {
		obj.RefreshFrom(map[string]any{}, credential, false)

		return nil
	}

	values, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: expected %s object, got %T", replyify.ErrUnexpectedResponse, c.kind.Name, raw)
	}

	obj.RefreshFrom(values, credential, false)

	return nil
}

func (c *ResourceClient) object(raw any, credential string) (*replyify.Object, error) {
	obj, ok := c.registry.Convert(raw, credential).(*replyify.Object)
	if !ok {
		return nil, fmt.Errorf("%w: expected %s object, got %T", replyify.ErrUnexpectedResponse, c.kind.Name, raw)
	}

	return obj, nil
}

// instanceOptions makes calls on an object use its credential unless one is
// given explicitly.
func (c *ResourceClient) instanceOptions(obj *replyify.Object, opts []replyify.RequestOption) []replyify.RequestOption {
	if obj.Credential() == "" {
		return opts
	}

	return append([]replyify.RequestOption{replyify.WithCredential(obj.Credential())}, opts...)
}

func (c *ResourceClient) require(capability replyify.Capability, verb string) error {
	if c.kind.Can(capability) {
		return nil
	}

	return fmt.Errorf("%w: %s does not support %s", replyify.ErrUnsupportedOperation, c.kind.Name, verb)
}
