package replyify_test

import (
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/replyify-client/pkg/replyify"
)

func construct(values map[string]any) *replyify.Object {
	return replyify.DefaultRegistry().ConstructFrom(values, "tok")
}

func TestObject_SetRejectsEmptyString(t *testing.T) {
	t.Parallel()

	obj := replyify.NewObject("", "")

	err := obj.Set("name", "")
	require.ErrorIs(t, err, replyify.ErrEmptyString)
	assert.False(t, obj.Has("name"))

	require.NoError(t, obj.Set("name", nil))
	assert.Equal(t, []string{"name"}, obj.Unsaved())
}

func TestObject_GetMissingAndTransient(t *testing.T) {
	t.Parallel()

	obj := construct(map[string]any{"name": "A", "tag": "x"})
	obj.RefreshFrom(map[string]any{"name": "A"}, "", false)

	_, err := obj.Get("tag")
	require.ErrorIs(t, err, replyify.ErrTransientField)
	assert.Contains(t, err.Error(), "available fields: name")

	_, err = obj.Get("other")
	require.ErrorIs(t, err, replyify.ErrFieldNotFound)
	require.NotErrorIs(t, err, replyify.ErrTransientField)

	obj.RefreshFrom(map[string]any{"name": "A", "tag": "y"}, "", false)
	assert.Empty(t, obj.Transient())
}

func TestObject_RefreshFrom(t *testing.T) {
	t.Parallel()

	t.Run("full refresh clears unsaved and keeps credential", func(t *testing.T) {
		t.Parallel()

		obj := construct(map[string]any{"guid": "g1", "name": "A"})
		require.NoError(t, obj.Set("name", "B"))

		obj.RefreshFrom(map[string]any{"guid": "g1", "name": "C"}, "", false)
		assert.Empty(t, obj.Unsaved())
		assert.Equal(t, "C", obj.GetString("name"))
		assert.Equal(t, "tok", obj.Credential())
	})

	t.Run("partial refresh only clears refreshed keys", func(t *testing.T) {
		t.Parallel()

		obj := construct(map[string]any{"guid": "g1", "name": "A", "notes": "x"})
		require.NoError(t, obj.Set("name", "B"))
		require.NoError(t, obj.Set("notes", "y"))

		obj.RefreshFrom(map[string]any{"name": "B"}, "new", true)
		assert.Equal(t, []string{"notes"}, obj.Unsaved())
		assert.Equal(t, "y", obj.GetString("notes"))
		assert.Equal(t, "new", obj.Credential())
	})

	t.Run("nested values are converted", func(t *testing.T) {
		t.Parallel()

		obj := construct(map[string]any{
			"object":  "campaign",
			"guid":    "c1",
			"owner":   map[string]any{"object": "contact", "guid": "p1"},
			"meta":    map[string]any{"a": 1.0},
			"members": []any{map[string]any{"object": "unknown", "guid": "m1"}, "plain"},
		})

		owner, ok := obj.GetObject("owner")
		require.True(t, ok)
		assert.Equal(t, replyify.ContactKind, owner.Kind())
		assert.Equal(t, "tok", owner.Credential())

		meta, ok := obj.GetObject("meta")
		require.True(t, ok)
		assert.Nil(t, meta.Kind())

		members, ok := obj.GetList("members")
		require.True(t, ok)
		require.Len(t, members, 2)

		member, ok := members[0].(*replyify.Object)
		require.True(t, ok)
		assert.Nil(t, member.Kind())
		assert.Equal(t, "plain", members[1])
	})
}

func TestObject_Serialize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   map[string]any
		mutate   func(t *testing.T, obj *replyify.Object)
		previous map[string]any
		expected replyify.Params
	}{
		{
			name:     "untouched object has an empty diff",
			values:   map[string]any{"object": "contact", "guid": "c1", "name": "A", "meta": map[string]any{"k": "v"}},
			mutate:   func(*testing.T, *replyify.Object) {},
			expected: replyify.Params{},
		},
		{
			name:   "only changed fields",
			values: map[string]any{"name": "A", "notes": "x"},
			mutate: func(t *testing.T, obj *replyify.Object) {
				t.Helper()
				require.NoError(t, obj.Set("name", "B"))
			},
			expected: replyify.Params{"name": "B"},
		},
		{
			name:   "cleared field becomes empty string",
			values: map[string]any{"name": "A"},
			mutate: func(t *testing.T, obj *replyify.Object) {
				t.Helper()
				require.NoError(t, obj.Set("name", nil))
			},
			expected: replyify.Params{"name": ""},
		},
		{
			name:   "map field marks removed keys",
			values: map[string]any{"settings": "placeholder"},
			mutate: func(t *testing.T, obj *replyify.Object) {
				t.Helper()
				require.NoError(t, obj.Set("settings", map[string]any{"b": 2}))
			},
			previous: map[string]any{"settings": map[string]any{"a": 1, "b": 1}},
			expected: replyify.Params{"settings": map[string]any{"a": "", "b": 2}},
		},
		{
			name:   "params map field marks removed keys",
			values: map[string]any{"guid": "c1", "meta": map[string]any{"a": "0", "b": "x"}},
			mutate: func(t *testing.T, obj *replyify.Object) {
				t.Helper()
				require.NoError(t, obj.Set("meta", replyify.Params{"a": "1"}))
			},
			expected: replyify.Params{"meta": map[string]any{"a": "1", "b": ""}},
		},
		{
			name:   "string map field marks removed keys",
			values: map[string]any{"guid": "c1", "meta": map[string]any{"a": "0", "b": "x"}},
			mutate: func(t *testing.T, obj *replyify.Object) {
				t.Helper()
				require.NoError(t, obj.Set("meta", map[string]string{"a": "1"}))
			},
			expected: replyify.Params{"meta": map[string]any{"a": "1", "b": ""}},
		},
		{
			name:     "unchanged additional owners are omitted",
			values:   map[string]any{"guid": "c1", "additional_owners": []any{"u1", map[string]any{"first": "x"}}},
			mutate:   func(*testing.T, *replyify.Object) {},
			expected: replyify.Params{},
		},
		{
			name:   "identity and private keys are skipped",
			values: map[string]any{"guid": "g"},
			mutate: func(t *testing.T, obj *replyify.Object) {
				t.Helper()
				require.NoError(t, obj.Set("guid", "h"))
				require.NoError(t, obj.Set("_internal", "x"))
			},
			expected: replyify.Params{},
		},
		{
			name:   "nested generic object is diffed",
			values: map[string]any{"meta": map[string]any{"a": "1", "b": "2"}},
			mutate: func(t *testing.T, obj *replyify.Object) {
				t.Helper()
				meta, ok := obj.GetObject("meta")
				require.True(t, ok)
				require.NoError(t, meta.Set("a", "3"))
			},
			expected: replyify.Params{"meta": replyify.Params{"a": "3"}},
		},
		{
			name:   "nested resource is never embedded",
			values: map[string]any{"owner": map[string]any{"object": "contact", "guid": "p1", "name": "A"}},
			mutate: func(t *testing.T, obj *replyify.Object) {
				t.Helper()
				owner, ok := obj.GetObject("owner")
				require.True(t, ok)
				require.NoError(t, owner.Set("name", "B"))
			},
			expected: replyify.Params{},
		},
		{
			name:   "additional owners are diffed by index",
			values: map[string]any{"additional_owners": []any{"a", map[string]any{"first": "x"}}},
			mutate: func(t *testing.T, obj *replyify.Object) {
				t.Helper()
				owners, ok := obj.GetList("additional_owners")
				require.True(t, ok)
				second, ok := owners[1].(*replyify.Object)
				require.True(t, ok)
				require.NoError(t, second.Set("first", "y"))
			},
			expected: replyify.Params{"additional_owners": map[string]any{
				"0": "a",
				"1": replyify.Params{"first": "y"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			obj := construct(tt.values)
			tt.mutate(t, obj)

			if diff := cmp.Diff(tt.expected, obj.Serialize(tt.previous)); diff != "" {
				t.Errorf("Serialize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestObject_UpdateAndDel(t *testing.T) {
	t.Parallel()

	obj := replyify.NewObject("g1", "")
	require.NoError(t, obj.Update(map[string]any{"b": 1, "a": 2}))
	assert.Equal(t, []string{"guid", "a", "b"}, obj.Keys())

	require.ErrorIs(t, obj.Update(map[string]any{"c": ""}), replyify.ErrEmptyString)

	obj.Del("a")
	assert.Equal(t, []string{"guid", "b"}, obj.Keys())
	assert.Equal(t, []string{"b"}, obj.Unsaved())
}

func TestObject_Encodings(t *testing.T) {
	t.Parallel()

	obj := construct(map[string]any{
		"object":     "contact",
		"guid":       "c1",
		"name":       "Ada",
		"score":      4.0,
		"active":     true,
		"created_at": "2024-05-01T10:00:00Z",
		"meta":       map[string]any{"source": "import"},
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(obj)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "Ada", decoded["name"])
		assert.Equal(t, map[string]any{"source": "import"}, decoded["meta"])
	})

	t.Run("yaml keeps field order", func(t *testing.T) {
		t.Parallel()

		data, err := yaml.Marshal(obj)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "active: true\ncreated_at:"))
		assert.Contains(t, string(data), "meta:\n    source: import")
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		rendered := obj.String()
		assert.True(t, strings.HasPrefix(rendered, "<contact guid=c1> JSON: {"))
		assert.Contains(t, rendered, "\n  \"name\": \"Ada\"")
	})

	t.Run("decode", func(t *testing.T) {
		t.Parallel()

		var contact struct {
			GUID      string            `json:"guid"`
			Name      string            `json:"name"`
			Score     int               `json:"score"`
			Active    bool              `json:"active"`
			CreatedAt time.Time         `json:"created_at"`
			Meta      map[string]string `json:"meta"`
		}

		require.NoError(t, obj.Decode(&contact))
		assert.Equal(t, "c1", contact.GUID)
		assert.Equal(t, "Ada", contact.Name)
		assert.Equal(t, 4, contact.Score)
		assert.True(t, contact.Active)
		assert.Equal(t, 2024, contact.CreatedAt.Year())
		assert.Equal(t, "import", contact.Meta["source"])
	})

	t.Run("typed accessors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, int64(4), obj.GetInt64("score"))
		assert.InDelta(t, 4.0, obj.GetFloat64("score"), 0)
		assert.True(t, obj.GetBool("active"))
		assert.Empty(t, obj.GetString("missing"))
	})
}
