package replyify

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/replyify-client/internal/constants"
)

// Serialize returns the fields to send when saving the object, diffed
// against previous. A nil or empty previous selects the values of the last
// refresh.
//
// Only fields set since the last refresh are included. A cleared field is
// sent as an empty string, and keys missing from a map field are sent as
// empty strings so the server deletes them. Nested generic objects are
// diffed recursively; nested resources of a registered kind are never
// embedded.
func (o *Object) Serialize(previous map[string]any) Params {
	if len(previous) == 0 {
		previous = o.previous
	}

	params := Params{}

	for _, key := range o.keys {
		value := o.values[key]

		if key == o.idKey || strings.HasPrefix(key, "_") {
			continue
		}

		if nested, ok := value.(*Object); ok {
			if nested.kind != nil {
				continue
			}

			prev, _ := previous[key].(map[string]any)
			if diff := nested.Serialize(prev); len(diff) > 0 {
				params[key] = diff
			}

			continue
		}

		if _, ok := o.unsaved[key]; ok {
			params[key] = computeDiff(value, previous[key])

			continue
		}

		if key == constants.AdditionalOwnersKey && value != nil {
			if list, changed := serializeList(value, previous[key]); changed {
				params[key] = list
			}
		}
	}

	return params
}

// computeDiff applies the field diff rule to a single value.
func computeDiff(current, previous any) any {
	if m, ok := stringMap(current); ok {
		prev, _ := stringMap(previous)

		diff := make(map[string]any, len(m)+len(prev))
		for key, value := range m {
			diff[key] = value
		}

		for key := range prev {
			if _, ok := diff[key]; !ok {
				diff[key] = ""
			}
		}

		return diff
	}

	if current == nil {
		return ""
	}

	return current
}

// serializeList diffs a list element by element, keyed by index. changed
// is false when the list matches previous and no element has unsaved fields.
func serializeList(current, previous any) (params map[string]any, changed bool) {
	items, _ := current.([]any)
	prev, _ := previous.([]any)

	params = make(map[string]any, len(items))
	changed = len(items) != len(prev)

	for i, item := range items {
		var prevItem any
		if i < len(prev) {
			prevItem = prev[i]
		}

		key := strconv.Itoa(i)

		if nested, ok := item.(*Object); ok {
			prevMap, _ := prevItem.(map[string]any)
			diff := nested.Serialize(prevMap)
			changed = changed || len(diff) > 0
			params[key] = diff

			continue
		}

		changed = changed || !reflect.DeepEqual(item, prevItem)
		params[key] = computeDiff(item, prevItem)
	}

	return params, changed
}

// stringMap returns value as a map[string]any if it is a map with string
// keys, such as Params or map[string]string.
func stringMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case Params:
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
