package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/picker"
	"github.com/aretw0/picker/pkg/machine"
	"github.com/aretw0/picker/pkg/metrics"
	"github.com/aretw0/picker/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestMachinesCatalog(t *testing.T) {
	h := NewHandler(session.NewManager())

	w := do(t, h, "GET", "/machines", "")
	require.Equal(t, http.StatusOK, w.Code)
	var catalog []machine.Description
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Len(t, catalog, len(machine.Kinds()))

	w = do(t, h, "GET", "/machines/click-rect", "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail MachineDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, []string{"idle", "first-corner", "second-corner"}, detail.States)
	assert.NotEmpty(t, detail.Edges)

	w = do(t, h, "GET", "/machines/drag-line/graph?current=active", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stateDiagram-v2")
	assert.Contains(t, w.Body.String(), "class active current")

	w = do(t, h, "GET", "/machines/lasso", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatelessTransition(t *testing.T) {
	h := NewHandler(session.NewManager())

	w := do(t, h, "POST", "/transition",
		`{"machine":"polygon","state":1,"event":{"kind":"press","button":"right","pos":{"x":3,"y":4}}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TransitionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "[end]", resp.Commands.String())
	assert.Equal(t, machine.Idle, resp.State)
	assert.Equal(t, "idle", resp.StateName)

	w = do(t, h, "POST", "/transition", `{"machine":"polygon","event":{"kind":"press"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/transition", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	h := NewHandler(session.NewManager())

	w := do(t, h, "POST", "/sessions", `{"id":"s1","machine":"drag-point"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, h, "POST", "/sessions", `{"id":"s1","machine":"drag-point"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, "POST", "/sessions/s1/events", `[
		{"kind":"press","button":"left","pos":{"x":1,"y":1}},
		{"kind":"move","pos":{"x":2,"y":5}},
		{"kind":"release","button":"left","pos":{"x":2,"y":5}}
	]`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var results []session.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "[begin append]", results[0].Commands.String())
	require.NotNil(t, results[2].Selection)
	assert.Equal(t, 2.0, results[2].Selection.Points[0].X)
	assert.Equal(t, 5.0, results[2].Selection.Points[0].Y)

	w = do(t, h, "POST", "/sessions/s1/events", `{"kind":"press","button":"left","pos":{"x":0,"y":0}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "POST", "/sessions/s1/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info session.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "idle", info.State)

	w = do(t, h, "GET", "/sessions", "")
	assert.JSONEq(t, `["s1"]`, w.Body.String())

	w = do(t, h, "DELETE", "/sessions/s1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/sessions/s1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "POST", "/sessions/s1/events", `{"kind":"move"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedSessionBatches(t *testing.T) {
	h := NewHandler(session.NewManager())
	do(t, h, "POST", "/sessions", `{"id":"b","machine":"drag-rect"}`)

	batch := `[
		{"kind":"press","button":"left","pos":{"x":0,"y":0}},
		{"kind":"release","button":"left","pos":{"x":4,"y":4}}
	]`

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := do(t, h, "POST", "/sessions/b/events", batch)
			if !assert.Equal(t, http.StatusOK, w.Code) {
				return
			}
			var results []session.Result
			if assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &results)) && assert.Len(t, results, 2) {
				assert.Equal(t, "[begin append append]", results[0].Commands.String())
				assert.Equal(t, "[end]", results[1].Commands.String())
			}
		}()
	}
	wg.Wait()

	// An invalid event anywhere rejects the whole batch before delivery.
	w := do(t, h, "POST", "/sessions/b/events", `[
		{"kind":"press","button":"left","pos":{"x":0,"y":0}},
		{"kind":"press"}
	]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "GET", "/sessions/b", "")
	var info session.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "idle", info.State)
	assert.Zero(t, info.Points)
}

func TestCreateSessionGeneratesID(t *testing.T) {
	h := NewHandler(session.NewManager())

	w := do(t, h, "POST", "/sessions", `{"machine":"tracker"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var info session.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Len(t, info.ID, 36)
	assert.Equal(t, machine.KindTracker, info.Machine)
}

func TestMetricsEndpoint(t *testing.T) {
	collector := metrics.NewCollector()
	reg := prometheus.NewRegistry()
	require.NoError(t, collector.Register(reg))

	mgr := session.NewManager(session.WithPickerOptions(picker.WithLifecycleHooks(collector.Hooks())))
	h := NewHandler(mgr, WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	do(t, h, "POST", "/sessions", `{"id":"m","machine":"click-point"}`)
	do(t, h, "POST", "/sessions/m/events", `{"kind":"key-press","key":"enter","pos":{"x":1,"y":1}}`)

	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `picker_selections_total{machine="click-point",type="point"} 1`)
}

func TestSubscribeSession(t *testing.T) {
	h := NewHandler(session.NewManager())
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions", "application/json", strings.NewReader(`{"id":"sse","machine":"click-point"}`))
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, "GET", srv.URL+"/sessions/sse/stream", nil)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()

	lines := bufio.NewScanner(stream.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	resp, err = http.Post(srv.URL+"/sessions/sse/events", "application/json",
		strings.NewReader(`{"kind":"press","button":"left","pos":{"x":7,"y":7}}`))
	require.NoError(t, err)
	resp.Body.Close()

	var data string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "data: {") {
			data = strings.TrimPrefix(lines.Text(), "data: ")
			break
		}
	}
	var res session.Result
	require.NoError(t, json.Unmarshal([]byte(data), &res))
	assert.Equal(t, "[begin append end]", res.Commands.String())
	require.NotNil(t, res.Selection)
}

func TestStreamManager_CloseIsIdempotent(t *testing.T) {
	sm := NewStreamManager()
	ch, unsubscribe := sm.Subscribe("x")

	sm.Broadcast("x", "hello")
	assert.Equal(t, "hello", <-ch)

	sm.Close("x")
	_, open := <-ch
	assert.False(t, open)
	assert.NotPanics(t, unsubscribe)
}
