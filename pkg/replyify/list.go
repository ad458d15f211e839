package replyify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
)

// List is one page of a collection response.
type List struct {
	Data    []*Object
	URL     string
	HasMore bool
	// Object holds every field of the response, including the page fields.
	Object *Object

	params     Params
	requester  Requester
	registry   *Registry
	credential string
	opts       []RequestOption
}

// NewList wraps a decoded collection response. requestURL is used for
// later calls when the response carries no url field. params and opts are
// reused when fetching further pages.
func NewList(
	requester Requester,
	registry *Registry,
	requestURL string,
	raw any,
	credential string,
	params Params,
	opts ...RequestOption,
) (*List, error) {
	values, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a collection, got %T", ErrUnexpectedResponse, raw)
	}

	if kind, ok := values[constants.TypeDiscriminatorKey].(string); ok && kind != constants.ListDiscriminator {
		return nil, fmt.Errorf("%w: expected a collection, got %q", ErrUnexpectedResponse, kind)
	}

	if registry == nil {
		registry = DefaultRegistry()
	}

	obj := registry.ConstructFrom(values, credential)

	list := &List{
		URL:        obj.GetString("url"),
		HasMore:    obj.GetBool("has_more"),
		Object:     obj,
		params:     params,
		requester:  requester,
		registry:   registry,
		credential: credential,
		opts:       opts,
	}

	if list.URL == "" {
		list.URL = requestURL
	}

	items, _ := obj.GetList("data")
	for _, item := range items {
		if itemObj, ok := item.(*Object); ok {
			list.Data = append(list.Data, itemObj)
		}
	}

	return list, nil
}

// Len returns the number of items on the page.
func (l *List) Len() int {
	return len(l.Data)
}

// Params returns the query parameters the page was listed with.
func (l *List) Params() Params {
	return l.params
}

// List lists the collection again with params.
func (l *List) List(ctx context.Context, params Params) (*List, error) {
	raw, credential, err := l.request(ctx, http.MethodGet, l.URL, params)
	if err != nil {
		return nil, err
	}

	return NewList(l.requester, l.registry, l.URL, raw, credential, params, l.opts...)
}

// Create creates a resource in the collection.
func (l *List) Create(ctx context.Context, params Params, opts ...RequestOption) (*Object, error) {
	raw, credential, err := l.request(ctx, http.MethodPost, l.URL, params, opts...)
	if err != nil {
		return nil, err
	}

	return l.object(raw, credential)
}

// Retrieve fetches the resource with guid from the collection.
func (l *List) Retrieve(ctx context.Context, guid string, params Params) (*Object, error) {
	raw, credential, err := l.request(ctx, http.MethodGet, l.URL+"/"+url.QueryEscape(guid), params)
	if err != nil {
		return nil, err
	}

	return l.object(raw, credential)
}

// AutoPagingIter returns an iterator over this page and every following page.
func (l *List) AutoPagingIter(ctx context.Context) *ListIterator {
	params := make(Params, len(l.params)+1)
	for key, value := range l.params {
		params[key] = value
	}

	return &ListIterator{ctx: ctx, page: l, params: params}
}

func (l *List) request(
	ctx context.Context,
	method, path string,
	params Params,
	opts ...RequestOption,
) (any, string, error) {
	if l.requester == nil {
		return nil, "", fmt.Errorf("%w: list has no requester", ErrUnsupportedOperation)
	}

	all := make([]RequestOption, 0, len(l.opts)+len(opts)+1)
	all = append(all, l.opts...)

	if l.credential != "" {
		all = append(all, WithCredential(l.credential))
	}

	all = append(all, opts...)

	return l.requester.Request(ctx, method, path, params, all...)
}

func (l *List) object(raw any, credential string) (*Object, error) {
	obj, ok := l.registry.Convert(raw, credential).(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object, got %T", ErrUnexpectedResponse, raw)
	}

	return obj, nil
}

// ListIterator walks a collection page by page, using the guid of the last
// item of a page as the starting_after cursor for the next one. It is not
// restartable.
type ListIterator struct {
	ctx      context.Context
	page     *List
	index    int
	params   Params
	lastGUID string
	done     bool
	err      error
}

// HasNext reports whether Next will return an item or a page error.
func (it *ListIterator) HasNext() bool {
	for {
		if it.err != nil {
			return true
		}

		if it.index < len(it.page.Data) {
			return true
		}

		if it.done || !it.page.HasMore || it.lastGUID == "" {
			it.done = true

			return false
		}

		it.params[constants.PaginationCursorParam] = it.lastGUID

		page, err := it.page.List(it.ctx, it.params)
		if err != nil {
			it.err = err

			return true
		}

		it.page = page
		it.index = 0
		it.lastGUID = ""
	}
}

// Next returns the next item, or ErrNoMoreItems once the collection is
// exhausted.
func (it *ListIterator) Next() (*Object, error) {
	if !it.HasNext() {
		return nil, ErrNoMoreItems
	}

	if it.err != nil {
		err := it.err
		it.err = nil
		it.done = true
		it.page = &List{}

		return nil, err
	}

	item := it.page.Data[it.index]
	it.index++
	it.lastGUID = item.GUID()

	return item, nil
}

// All drains the iterator.
func (it *ListIterator) All() ([]*Object, error) {
	var items []*Object

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}
