package replyify

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cast"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
)

// Capability is a set of verbs a resource kind supports.
type Capability uint8

// Resource verbs.
const (
	CanList Capability = 1 << iota
	CanCreate
	CanRetrieve
	// CanUpdate covers both Modify and Save.
	CanUpdate
	CanDelete

	CanCRUD = CanList | CanCreate | CanRetrieve | CanUpdate | CanDelete
)

var capabilityNames = []struct {
	capability Capability
	name       string
}{
	{CanList, "list"},
	{CanCreate, "create"},
	{CanRetrieve, "retrieve"},
	{CanUpdate, "update"},
	{CanDelete, "delete"},
}

// String lists the verbs in the set.
func (c Capability) String() string {
	var names []string

	for _, entry := range capabilityNames {
		if c&entry.capability != 0 {
			names = append(names, entry.name)
		}
	}

	return strings.Join(names, ",")
}

// Kind describes a resource type known to the registry.
type Kind struct {
	// Name is the value of the object discriminator field.
	Name string
	// Path overrides the default collection path "/<name>/v1".
	Path string
	// Capabilities lists the verbs the kind supports.
	Capabilities Capability
	// Singleton kinds use the collection path for every call.
	Singleton bool
	// GUIDOptional kinds fall back to the collection path when no guid is known.
	GUIDOptional bool
}

// Can reports whether the kind supports every verb in c.
func (k *Kind) Can(c Capability) bool {
	return k.Capabilities&c == c
}

// ClassURL returns the collection path of the kind.
func (k *Kind) ClassURL() string {
	if k.Path != "" {
		return k.Path
	}

	return "/" + url.QueryEscape(strings.ToLower(k.Name)) + "/v1"
}

// BuildInstanceURL returns the path of the resource with guid, or the
// collection path when guid is empty.
func (k *Kind) BuildInstanceURL(guid string) string {
	if k.Singleton || guid == "" {
		return k.ClassURL()
	}

	return k.ClassURL() + "/" + url.QueryEscape(guid)
}

// InstanceURL returns the path of obj. A missing guid is an
// InvalidRequestError unless the kind does not require one.
func (k *Kind) InstanceURL(obj *Object) (string, error) {
	guid := obj.GUID()
	if guid == "" && !k.Singleton && !k.GUIDOptional {
		err := NewError(InvalidRequestError, fmt.Sprintf(
			"Could not determine which URL to request: %s instance has invalid GUID: %q", k.Name, guid))
		err.ErrorList = obj.IdentityKey()

		return "", err
	}

	return k.BuildInstanceURL(guid), nil
}

// Registry maps object discriminators to resource kinds.
type Registry struct {
	mu          sync.RWMutex
	kinds       map[string]*Kind
	identityKey string
}

// NewRegistry creates an empty registry using identityKey as the identity
// field. An empty identityKey selects "guid".
func NewRegistry(identityKey string) *Registry {
	if identityKey == "" {
		identityKey = constants.DefaultIdentityKey
	}

	return &Registry{
		kinds:       make(map[string]*Kind),
		identityKey: identityKey,
	}
}

// IdentityKey returns the identity field name.
func (r *Registry) IdentityKey() string {
	return r.identityKey
}

// Register adds kinds, replacing any kind with the same name.
func (r *Registry) Register(kinds ...*Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, kind := range kinds {
		r.kinds[kind.Name] = kind
	}
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (*Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kind, ok := r.kinds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, name)
	}

	return kind, nil
}

// Kinds returns the registered kinds.
func (r *Registry) Kinds() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]*Kind, 0, len(r.kinds))
	for _, name := range sortedKinds(r.kinds) {
		kinds = append(kinds, r.kinds[name])
	}

	return kinds
}

// New creates an empty object of kind, optionally with a known guid. A nil
// kind creates a generic object.
func (r *Registry) New(kind *Kind, guid, credential string) *Object {
	return newObject(kind, r, r.identityKey, guid, credential)
}

// ConstructFrom builds an object from values, dispatching on the object
// discriminator. Unknown or missing discriminators yield a generic object.
func (r *Registry) ConstructFrom(values map[string]any, credential string) *Object {
	var kind *Kind

	if name, ok := values[constants.TypeDiscriminatorKey].(string); ok {
		r.mu.RLock()
		kind = r.kinds[name]
		r.mu.RUnlock()
	}

	var guid string
	if raw, ok := values[r.identityKey]; ok && raw != nil {
		guid = cast.ToString(raw)
	}

	obj := r.New(kind, guid, credential)
	obj.RefreshFrom(values, credential, false)

	return obj
}

// Convert turns a decoded JSON value into objects. Maps become objects,
// lists are converted element by element, and anything else is returned
// unchanged.
func (r *Registry) Convert(raw any, credential string) any {
	switch typed := raw.(type) {
	case []any:
		converted := make([]any, len(typed))
		for i, item := range typed {
			converted[i] = r.Convert(item, credential)
		}

		return converted
	case map[string]any:
		return r.ConstructFrom(typed, credential)
	default:
		return raw
	}
}

func sortedKinds(kinds map[string]*Kind) []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
