package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/meikuraledutech/graphnav"
	"github.com/meikuraledutech/graphnav/logging"
	"github.com/meikuraledutech/graphnav/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newApp serves a graph with two roots, a diamond under "alpha" and a
// separate two node cycle:
//
//	alpha(1) -> beta(2) -> delta one(4)
//	alpha(1) -> gamma(3) -> delta one(4)
//	epsilon(5) <-> zeta(6)
//	omega(7)
func newApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.New()
	_, err := store.CreateGraph(context.Background(), &graphnav.Graph{
		Nodes: []graphnav.Node{
			{Ref: "a", Name: "alpha"},
			{Ref: "b", Name: "beta"},
			{Ref: "c", Name: "gamma"},
			{Ref: "d", Name: "delta one"},
			{Ref: "e", Name: "epsilon"},
			{Ref: "z", Name: "zeta"},
			{Ref: "o", Name: "omega"},
		},
		Edges: []graphnav.Edge{
			{SourceRef: "a", TargetRef: "b"},
			{SourceRef: "a", TargetRef: "c"},
			{SourceRef: "b", TargetRef: "d"},
			{SourceRef: "c", TargetRef: "d"},
			{SourceRef: "e", TargetRef: "z"},
			{SourceRef: "z", TargetRef: "e"},
		},
	})
	require.NoError(t, err)
	return New(Options{Store: store, Logger: logging.Discard()})
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

type connected struct {
	SourceNodeID     int64   `json:"source_node_id"`
	ConnectedNodeIDs []int64 `json:"connected_node_ids"`
	TotalCount       int     `json:"total_count"`
	ExecutionTimeMS  float64 `json:"execution_time_ms"`
}

func TestHealth(t *testing.T) {
	resp, body := get(t, newApp(t), "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy","service":"graph-navigator"}`, string(body))
}

func TestRequestID(t *testing.T) {
	app := newApp(t)

	resp, _ := get(t, app, "/health")
	assert.Len(t, resp.Header.Get(headerRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(headerRequestID, "caller-id")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "caller-id", resp.Header.Get(headerRequestID))
}

func TestListNodes(t *testing.T) {
	resp, body := get(t, newApp(t), "/nodes")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var nodes []graphnav.Node
	require.NoError(t, json.Unmarshal(body, &nodes))
	require.Len(t, nodes, 7)
	assert.Equal(t, graphnav.Node{ID: 1, Name: "alpha"}, nodes[0])
	assert.Equal(t, graphnav.Node{ID: 7, Name: "omega"}, nodes[6])
}

func TestListNodes_EmptyStore(t *testing.T) {
	app := New(Options{Store: memory.New(), Logger: logging.Discard()})
	resp, body := get(t, app, "/nodes")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", string(body))
}

func TestGetNode(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		target string
		status int
		body   string
	}{
		{"/nodes/3", http.StatusOK, `{"id":3,"name":"gamma"}`},
		{"/nodes/99", http.StatusNotFound, `{"error":"node with id 99 not found"}`},
		{"/nodes/abc", http.StatusUnprocessableEntity, `{"error":"invalid node id \"abc\""}`},
		{"/nodes/by-name/beta", http.StatusOK, `{"id":2,"name":"beta"}`},
		{"/nodes/by-name/delta%20one", http.StatusOK, `{"id":4,"name":"delta one"}`},
		{"/nodes/by-name/nobody", http.StatusNotFound, `{"error":"node with name \"nobody\" not found"}`},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp, body := get(t, app, tt.target)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.body, string(body))
		})
	}
}

func TestConnected(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		target string
		origin int64
		want   []int64
	}{
		{"/nodes/1/connected-cte", 1, []int64{2, 3, 4}},
		{"/nodes/1/connected-dfs", 1, []int64{2, 3, 4}},
		{"/nodes/by-name/alpha/connected-cte", 1, []int64{2, 3, 4}},
		{"/nodes/by-name/alpha/connected-dfs", 1, []int64{2, 3, 4}},
		{"/nodes/5/connected-cte", 5, []int64{6}},
		{"/nodes/by-name/zeta/connected-dfs", 6, []int64{5}},
		{"/nodes/4/connected-cte", 4, []int64{}},
		{"/nodes/7/connected-dfs", 7, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp, body := get(t, app, tt.target)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			var got connected
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.origin, got.SourceNodeID)
			assert.Equal(t, tt.want, got.ConnectedNodeIDs)
			assert.Equal(t, len(tt.want), got.TotalCount)
			assert.GreaterOrEqual(t, got.ExecutionTimeMS, 0.0)
		})
	}
}

func TestConnected_EmptyListIsNotNull(t *testing.T) {
	_, body := get(t, newApp(t), "/nodes/7/connected-cte")
	assert.Contains(t, string(body), `"connected_node_ids":[]`)
}

func TestConnected_UnknownOrigin(t *testing.T) {
	app := newApp(t)
	for _, target := range []string{
		"/nodes/42/connected-cte",
		"/nodes/42/connected-dfs",
		"/nodes/by-name/missing/connected-cte",
		"/nodes/by-name/missing/connected-dfs",
	} {
		resp, _ := get(t, app, target)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)
	}
}

func TestRenderGraph(t *testing.T) {
	resp, body := get(t, newApp(t), "/nodes/graph")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, fiber.MIMETextPlainCharsetUTF8, resp.Header.Get(fiber.HeaderContentType))

	out := string(body)
	assert.Contains(t, out, "1\n  ├─ 2\n  │  └─ 4\n  └─ 3\n     └─ 4 [SEEN]\n")
	assert.Contains(t, out, "Unrooted nodes: 5, 6\n")
	assert.Contains(t, out, "Isolated nodes: 7\n")
	assert.Contains(t, out, "Total nodes: 7 | Total edges: 6\n")
}

func TestMetrics(t *testing.T) {
	app := newApp(t)
	get(t, app, "/nodes/1/connected-cte")

	resp, body := get(t, app, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "graphnav_reachability_duration_seconds")
}

func TestRateLimit(t *testing.T) {
	app := New(Options{Store: memory.New(), Logger: logging.Discard(), RateLimit: 0.001, Burst: 2})

	for range 2 {
		resp, _ := get(t, app, "/nodes")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, body := get(t, app, "/nodes")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, string(body))

	// Health checks are never limited.
	resp, _ = get(t, app, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// failingStore reports every read as a store outage.
type failingStore struct{ graphnav.Reader }

var errDown = errors.New("connection refused")

func (failingStore) ListNodes(context.Context) ([]graphnav.Node, error) {
	return nil, errors.Join(graphnav.ErrStoreUnavailable, errDown)
}

func (failingStore) GetNode(context.Context, int64) (*graphnav.Node, error) {
	return nil, errors.Join(graphnav.ErrStoreUnavailable, errDown)
}

func TestStoreUnavailable(t *testing.T) {
	app := New(Options{Store: failingStore{}, Logger: logging.Discard()})

	for _, target := range []string{"/nodes", "/nodes/1", "/nodes/1/connected-cte"} {
		resp, body := get(t, app, target)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, target)
		assert.JSONEq(t, `{"error":"store unavailable"}`, string(body), target)
	}
}
