// Package form flattens request parameters into the bracketed key/value
// pairs the Replyify API expects, either as an urlencoded string or as a
// multipart/form-data body.
package form

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
)

// Pair is one encoded wire key and its value.
type Pair struct {
	Key   string
	Value string
}

// identifier is implemented by resources that can be referenced by guid.
type identifier interface {
	GUID() string
}

// mapper is implemented by resources that can be flattened like a map.
type mapper interface {
	ToMap() map[string]any
}

// Encode flattens params into an ordered sequence of pairs.
//
// Keys of a map are visited in sorted order. Elements of a list keep
// their order and every element produces its own pair.
func Encode(params map[string]any) ([]Pair, error) {
	pairs := make([]Pair, 0, len(params))

	for _, key := range sortedKeys(params) {
		encoded, err := encodeValue(key, params[key])
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, encoded...)
	}

	return pairs, nil
}

// EncodeToString renders pairs as application/x-www-form-urlencoded text.
// Unlike url.Values.Encode it keeps pair order and repeated keys.
func EncodeToString(pairs []Pair) string {
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, url.QueryEscape(pair.Key)+"="+url.QueryEscape(pair.Value))
	}

	return strings.Join(parts, "&")
}

// EncodeParams is shorthand for Encode followed by EncodeToString.
func EncodeParams(params map[string]any) (string, error) {
	pairs, err := Encode(params)
	if err != nil {
		return "", err
	}

	return EncodeToString(pairs), nil
}

func encodeValue(key string, value any) ([]Pair, error) {
	if isNil(value) {
		return nil, nil
	}

	switch typed := value.(type) {
	case identifier:
		if guid := typed.GUID(); guid != "" {
			return []Pair{{Key: key, Value: guid}}, nil
		}

		if m, ok := value.(mapper); ok {
			return Encode(nestedKeys(key, m.ToMap(), "%s[%s]"))
		}
	case time.Time:
		return []Pair{{Key: key, Value: strconv.FormatInt(typed.Unix(), 10)}}, nil
	case []byte:
		return []Pair{{Key: key, Value: string(typed)}}, nil
	case string:
		return []Pair{{Key: key, Value: typed}}, nil
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Pointer:
		return encodeValue(key, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return encodeList(key, rv)
	case reflect.Map:
		if m, ok := asStringMap(value); ok {
			return Encode(nestedKeys(key, m, "%s[%s]"))
		}
	}

	text, err := toText(key, value)
	if err != nil {
		return nil, err
	}

	return []Pair{{Key: key, Value: text}}, nil
}

func encodeList(key string, rv reflect.Value) ([]Pair, error) {
	pairs := make([]Pair, 0, rv.Len())

	for i := range rv.Len() {
		elem := rv.Index(i).Interface()
		if isNil(elem) {
			continue
		}

		if m, ok := asStringMap(elem); ok {
			encoded, err := Encode(nestedKeys(key, m, "%s[][%s]"))
			if err != nil {
				return nil, err
			}

			pairs = append(pairs, encoded...)

			continue
		}

		if t, ok := elem.(time.Time); ok {
			pairs = append(pairs, Pair{Key: key + "[]", Value: strconv.FormatInt(t.Unix(), 10)})

			continue
		}

		text, err := toText(key, elem)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, Pair{Key: key + "[]", Value: text})
	}

	return pairs, nil
}

func nestedKeys(key string, data map[string]any, format string) map[string]any {
	nested := make(map[string]any, len(data))
	for subkey, subvalue := range data {
		nested[fmt.Sprintf(format, key, subkey)] = subvalue
	}

	return nested
}

func asStringMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case mapper:
		return typed.ToMap(), true
	case map[string]any:
		return typed, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	result := make(map[string]any, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		result[iter.Key().String()] = iter.Value().Interface()
	}

	return result, true
}

func toText(key string, value any) (string, error) {
	text, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s (%T)", constants.ErrUnsupportedParamValue, key, value)
	}

	return text, nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func sortedKeys(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
