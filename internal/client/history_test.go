package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMessages_FilterTravelsAsSingleDataParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/42/messages", r.URL.Path)

		query := r.URL.Query()
		require.Len(t, query["data"], 1, "the whole filter travels under one key")

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(query.Get("data")), &got))
		assert.Equal(t, float64(10), got["from"])
		assert.Equal(t, float64(20), got["to"])
		assert.Equal(t, "position.speed", got["fields"])

		fmt.Fprint(w, `{"result":[]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	filter := &Filter{From: 10, To: 20, Fields: []string{"position.speed"}}
	_, err := c.GetMessages(context.Background(), filter)
	require.NoError(t, err)
}

func TestGetMessages_NoFilterSendsNoParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		fmt.Fprint(w, `{"result":[]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	_, err := c.GetMessages(context.Background(), nil)
	require.NoError(t, err)
}

// Single-device ordering is the gateway's guarantee; the client must
// preserve wire order and never reorder.
func TestGetMessages_PreservesWireOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":[
			{"timestamp":10,"position.speed":50},
			{"timestamp":15,"position.speed":51},
			{"timestamp":20,"position.speed":52}]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	messages, err := c.GetMessages(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	got := make([]float64, 0, len(messages))
	for _, m := range messages {
		got = append(got, m.Timestamp())
	}
	assert.Equal(t, []float64{10, 15, 20}, got)
}

func TestGetLogs_DecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/42/logs", r.URL.Path)
		fmt.Fprint(w, `{"result":[{"timestamp":1609578000,"event_code":2,"source":"connection","address":"10.0.0.1:40212"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	logs, err := c.GetLogs(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 2, logs[0].EventCode)
	assert.Equal(t, "connection", logs[0].Source)
}

func TestGetPackets_UsesPacketsEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/42/packets", r.URL.Path)
		fmt.Fprint(w, `{"result":[{"timestamp":5,"data":"AQID"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 42)
	packets, err := c.GetPackets(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, "AQID", packets[0]["data"])
}
