package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/replyify-client/pkg/replyify"
)

func TestResourceClient_Create(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	api.on(http.MethodPost, "/campaign/v1", `{"object":"campaign","guid":"abc123","name":"Q1"}`)

	client := NewTestClient(server.URL)

	campaign, err := client.Campaigns().Create(context.Background(), replyify.Params{"name": "Q1"})
	require.NoError(t, err)

	assert.Equal(t, "abc123", campaign.GUID())
	assert.Equal(t, "Q1", campaign.GetString("name"))
	assert.Equal(t, replyify.CampaignKind, campaign.Kind())
	assert.Empty(t, campaign.Unsaved())
	assert.Equal(t, "test-token", campaign.Credential())

	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Q1", calls[0].Form.Get("name"))
}

func TestResourceClient_RetrieveAndSave(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	api.on(http.MethodGet, "/contact/v1/c1", `{"object":"contact","guid":"c1","name":"A","notes":"x"}`)
	api.on(http.MethodPost, "/contact/v1/c1", `{"object":"contact","guid":"c1","name":"B","notes":"x"}`)

	client := NewTestClient(server.URL)
	ctx := context.Background()

	contact, err := client.Contacts().Retrieve(ctx, "c1", nil)
	require.NoError(t, err)
	assert.Equal(t, "A", contact.GetString("name"))

	require.NoError(t, contact.Set("name", "B"))

	_, err = client.Contacts().Save(ctx, contact)
	require.NoError(t, err)
	assert.Equal(t, "B", contact.GetString("name"))
	assert.Empty(t, contact.Unsaved())

	_, err = client.Contacts().Save(ctx, contact)
	require.NoError(t, err)

	calls := api.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPost, calls[1].Method)
	assert.Equal(t, "B", calls[1].Form.Get("name"))
	assert.False(t, calls[1].Form.Has("notes"))
}

func TestResourceClient_SaveWithoutChangesMakesNoCall(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	client := NewTestClient(server.URL)

	obj := replyify.DefaultRegistry().ConstructFrom(map[string]any{
		"object": "tag", "guid": "t1", "name": "vip", "additional_owners": []any{"u1", "u2"},
	}, "test-token")

	_, err := client.Tags().Save(context.Background(), obj)
	require.NoError(t, err)
	assert.Empty(t, api.calls())
}

func TestResourceClient_Modify(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	api.on(http.MethodPatch, "/timeline-job/v1/j1", `{"object":"timelinejob","guid":"j1","status":"paused"}`)

	client := NewTestClient(server.URL)

	job, err := client.TimelineJobs().Modify(context.Background(), "j1", replyify.Params{"status": "paused"})
	require.NoError(t, err)
	assert.Equal(t, "paused", job.GetString("status"))
	assert.Equal(t, replyify.TimelineJobKind, job.Kind())

	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "paused", calls[0].Form.Get("status"))
}

func TestResourceClient_Delete(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	api.on(http.MethodDelete, "/note/v1/n1", `{"guid":"n1","deleted":true}`)

	client := NewTestClient(server.URL)

	note := replyify.DefaultRegistry().ConstructFrom(map[string]any{
		"object": "note", "guid": "n1", "body": "hello",
	}, "")

	deleted, err := client.Notes().Delete(context.Background(), note, nil)
	require.NoError(t, err)
	assert.Same(t, note, deleted)
	assert.True(t, note.GetBool("deleted"))
	assert.Equal(t, []string{"body", "object"}, note.Transient())

	_, err = note.Get("body")
	require.ErrorIs(t, err, replyify.ErrTransientField)
}

func TestResourceClient_DeleteNoContent(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	api.on(http.MethodDelete, "/tag/v1/t1", "")

	client := NewTestClient(server.URL)

	tag := replyify.DefaultRegistry().ConstructFrom(map[string]any{"object": "tag", "guid": "t1"}, "")

	_, err := client.Tags().Delete(context.Background(), tag, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tag.Len())
}

func TestResourceClient_AccountWithoutGUID(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	api.on(http.MethodGet, "/account/v1", `{"object":"account","guid":"me","email":"a@b.c"}`)

	client := NewTestClient(server.URL)

	account, err := client.Accounts().Retrieve(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "me", account.GUID())
	assert.Equal(t, "a@b.c", account.GetString("email"))
}

func TestResourceClient_InvalidGUID(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	client := NewTestClient(server.URL)

	_, err := client.Campaigns().Retrieve(context.Background(), "", nil)
	require.Error(t, err)
	assert.True(t, replyify.IsInvalidRequest(err))
	assert.Contains(t, err.Error(), "Could not determine which URL to request")
	assert.Empty(t, api.calls())
}

func TestResourceClient_UnsupportedOperation(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	client := NewTestClient(server.URL)
	ctx := context.Background()

	uploads := client.Resource(replyify.UploadKind)

	_, err := uploads.Delete(ctx, replyify.NewObject("u1", ""), nil)
	require.ErrorIs(t, err, replyify.ErrUnsupportedOperation)

	_, err = uploads.Modify(ctx, "u1", replyify.Params{"name": "x"})
	require.ErrorIs(t, err, replyify.ErrUnsupportedOperation)

	_, err = client.Resource(replyify.ReplyKind).Create(ctx, nil)
	require.ErrorIs(t, err, replyify.ErrUnsupportedOperation)

	_, err = client.Resource(replyify.AccountKind).List(ctx, nil)
	require.ErrorIs(t, err, replyify.ErrUnsupportedOperation)

	assert.Empty(t, api.calls())
}

func TestResourceClient_NotFound(t *testing.T) {
	t.Parallel()

	_, server := newFakeAPI(t)
	client := NewTestClient(server.URL)

	_, err := client.Templates().Retrieve(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.True(t, replyify.IsNotFound(err))

	var typed *replyify.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "not found", typed.Message)
}

func TestResourceClient_AutoPagingIter(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	api.on(http.MethodGet, "/contact/v1", `{"object":"list","url":"/contact/v1","has_more":true,"data":[
		{"object":"contact","guid":"1"},{"object":"contact","guid":"2"}]}`)
	api.on(http.MethodGet, "/contact/v1", `{"object":"list","url":"/contact/v1","has_more":false,"data":[]}`)

	client := NewTestClient(server.URL)

	iter, err := client.Contacts().AutoPagingIter(context.Background(), replyify.Params{"limit": 2})
	require.NoError(t, err)

	items, err := iter.All()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].GUID())
	assert.Equal(t, "2", items[1].GUID())

	calls := api.calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Query.Get("starting_after"))
	assert.Equal(t, "2", calls[1].Query.Get("starting_after"))
	assert.Equal(t, "2", calls[1].Query.Get("limit"))

	_, err = iter.Next()
	require.ErrorIs(t, err, replyify.ErrNoMoreItems)
}

func TestResourceClient_ListCreateAndRetrieve(t *testing.T) {
	t.Parallel()

	api, server := newFakeAPI(t)
	api.on(http.MethodGet, "/tag/v1", `{"object":"list","url":"/tag/v1","has_more":false,"data":[]}`)
	api.on(http.MethodPost, "/tag/v1", `{"object":"tag","guid":"t9","name":"new"}`)
	api.on(http.MethodGet, "/tag/v1/t9", `{"object":"tag","guid":"t9","name":"new"}`)

	client := NewTestClient(server.URL)
	ctx := context.Background()

	list, err := client.Tags().List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Len())
	assert.False(t, list.HasMore)

	created, err := list.Create(ctx, replyify.Params{"name": "new"})
	require.NoError(t, err)
	assert.Equal(t, "t9", created.GUID())

	retrieved, err := list.Retrieve(ctx, "t9", nil)
	require.NoError(t, err)
	assert.Equal(t, "new", retrieved.GetString("name"))
}

func TestResourceClient_ErrorKeepsRequestIDPrefix(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Request-Id", "req_42")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))
	t.Cleanup(server.Close)

	client := NewTestClient(server.URL)

	_, err := client.Contacts().Retrieve(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.True(t, replyify.IsNotFound(err))
	assert.Equal(t, "Request req_42: not found", err.Error())
}
