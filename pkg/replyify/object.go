package replyify

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
)

// Object is a dynamic API resource. It keeps the field values returned by
// the server together with the bookkeeping needed to send only the fields
// that changed.
//
// Objects are not safe for concurrent mutation.
type Object struct {
	kind     *Kind
	registry *Registry
	idKey    string

	values map[string]any
	keys   []string

	credential string
	unsaved    map[string]struct{}
	transient  map[string]struct{}
	previous   map[string]any
}

// NewObject creates a generic object, optionally with a known guid.
func NewObject(guid, credential string) *Object {
	return newObject(nil, nil, constants.DefaultIdentityKey, guid, credential)
}

func newObject(kind *Kind, registry *Registry, idKey, guid, credential string) *Object {
	obj := &Object{
		kind:       kind,
		registry:   registry,
		idKey:      idKey,
		values:     make(map[string]any),
		credential: credential,
		unsaved:    make(map[string]struct{}),
		transient:  make(map[string]struct{}),
	}

	if guid != "" {
		obj.put(idKey, guid)
	}

	return obj
}

// Kind returns the registered kind of the object, or nil for a generic object.
func (o *Object) Kind() *Kind {
	return o.kind
}

// GUID returns the identity of the object, or "" if it has none.
func (o *Object) GUID() string {
	value, ok := o.values[o.idKey]
	if !ok || value == nil {
		return ""
	}

	return cast.ToString(value)
}

// IdentityKey returns the name of the field holding the object's identity.
func (o *Object) IdentityKey() string {
	return o.idKey
}

// Credential returns the credential the object was loaded with.
func (o *Object) Credential() string {
	return o.credential
}

// SetCredential replaces the credential used for calls made on the object.
func (o *Object) SetCredential(credential string) {
	o.credential = credential
}

// Get returns the value of key. Reading a field dropped by the last full
// refresh returns an error wrapping ErrTransientField.
func (o *Object) Get(key string) (any, error) {
	if value, ok := o.values[key]; ok {
		return value, nil
	}

	if _, ok := o.transient[key]; ok {
		return nil, transientFieldError(key, o.Keys())
	}

	return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, key)
}

// Lookup returns the value of key and whether it is present.
func (o *Object) Lookup(key string) (any, bool) {
	value, ok := o.values[key]

	return value, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]

	return ok
}

// Set assigns value to key and records the key as unsaved. Empty strings
// are rejected; assign nil to clear a field.
func (o *Object) Set(key string, value any) error {
	if s, ok := value.(string); ok && s == "" {
		return fmt.Errorf("setting %q: %w", key, ErrEmptyString)
	}

	o.put(key, value)
	o.unsaved[key] = struct{}{}

	return nil
}

// Update sets every entry of values, stopping at the first rejected value.
func (o *Object) Update(values map[string]any) error {
	for _, key := range sortedKeys(values) {
		if err := o.Set(key, values[key]); err != nil {
			return err
		}
	}

	return nil
}

// Del removes key.
func (o *Object) Del(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}

	delete(o.values, key)
	delete(o.unsaved, key)

	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)

			break
		}
	}
}

// Keys returns the field names in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.keys)
}

// Unsaved returns the sorted names of fields set since the last refresh.
func (o *Object) Unsaved() []string {
	return setKeys(o.unsaved)
}

// Transient returns the sorted names of fields dropped by the last full refresh.
func (o *Object) Transient() []string {
	return setKeys(o.transient)
}

// Previous returns the values of the last refresh.
func (o *Object) Previous() map[string]any {
	return o.previous
}

// RefreshFrom loads values returned by the server. A partial refresh only
// clears the unsaved state of the keys it carries. A full refresh replaces
// every field and remembers removed keys as transient. A non-empty
// credential replaces the object's credential.
func (o *Object) RefreshFrom(values map[string]any, credential string, partial bool) {
	if credential != "" {
		o.credential = credential
	}

	if partial {
		for key := range values {
			delete(o.unsaved, key)
		}
	} else {
		for _, key := range o.keys {
			if _, ok := values[key]; !ok {
				o.transient[key] = struct{}{}
			}
		}

		o.unsaved = make(map[string]struct{})
		o.values = make(map[string]any, len(values))
		o.keys = nil
	}

	for key := range values {
		delete(o.transient, key)
	}

	registry := o.registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	for _, key := range sortedKeys(values) {
		o.put(key, registry.Convert(values[key], o.credential))
	}

	o.previous = values
}

// GetString returns key as a string, or "" if absent.
func (o *Object) GetString(key string) string {
	return cast.ToString(o.values[key])
}

// GetBool returns key as a bool, or false if absent.
func (o *Object) GetBool(key string) bool {
	return cast.ToBool(o.values[key])
}

// GetInt64 returns key as an int64, or 0 if absent.
func (o *Object) GetInt64(key string) int64 {
	return cast.ToInt64(o.values[key])
}

// GetFloat64 returns key as a float64, or 0 if absent.
func (o *Object) GetFloat64(key string) float64 {
	return cast.ToFloat64(o.values[key])
}

// GetObject returns key as a nested object.
func (o *Object) GetObject(key string) (*Object, bool) {
	obj, ok := o.values[key].(*Object)

	return obj, ok
}

// GetList returns key as a list.
func (o *Object) GetList(key string) ([]any, bool) {
	list, ok := o.values[key].([]any)

	return list, ok
}

// ToMap returns the field values as plain maps and slices.
func (o *Object) ToMap() map[string]any {
	result := make(map[string]any, len(o.values))
	for key, value := range o.values {
		result[key] = plain(value)
	}

	return result
}

// Decode copies the field values into target, a pointer to a struct or map.
// Struct fields are matched by their json tags.
func (o *Object) Decode(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           target,
		DecodeHook:       mapstructure.StringToTimeHookFunc("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}

	if err := decoder.Decode(o.ToMap()); err != nil {
		return fmt.Errorf("decoding object: %w", err)
	}

	return nil
}

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.ToMap())
}

// MarshalYAML implements yaml.Marshaler, keeping field order.
func (o *Object) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, key := range o.keys {
		var value yaml.Node
		if err := value.Encode(o.values[key]); err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", key, err)
		}

		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, &value)
	}

	return node, nil
}

// String renders the object as indented JSON with sorted keys, prefixed by
// its kind and guid.
func (o *Object) String() string {
	var buf bytes.Buffer

	body, err := json.MarshalIndent(o.ToMap(), "", strings.Repeat(" ", constants.JSONIndentSize))
	if err != nil {
		body = []byte(fmt.Sprintf("%v", o.ToMap()))
	}

	buf.WriteString("<")

	if o.kind != nil {
		buf.WriteString(o.kind.Name)
	} else {
		buf.WriteString("object")
	}

	if guid := o.GUID(); guid != "" {
		buf.WriteString(" guid=")
		buf.WriteString(guid)
	}

	buf.WriteString("> JSON: ")
	buf.Write(body)

	return buf.String()
}

func (o *Object) put(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = value
}

func plain(value any) any {
	switch typed := value.(type) {
	case *Object:
		return typed.ToMap()
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = plain(item)
		}

		return out
	default:
		return value
	}
}

func setKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
