package topology

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{"data": {"topolist": [
	{"id": 1, "dev_id": "cloud", "x": "1500", "y": "500", "links": []},
	{"id": 2, "dev_id": "sw-1", "ip": "10.0.0.1", "x": 2000, "y": 1000, "links": [{"type": "cloud"}]},
	{"id": 3, "dev_id": 42, "ip": "10.0.0.2", "x": "", "y": null, "links": [{"dev_id": "sw-1"}, {"dev_id": "gone"}]}
]}}`

func TestParseEnvelopes(t *testing.T) {
	top, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, top.Records, 3)
	assert.Equal(t, Ident("42"), top.Records[2].DevID)
	assert.Equal(t, Coord(1500), top.Records[0].X)
	assert.Equal(t, Coord(0), top.Records[2].X)

	top, err = Parse([]byte(`{"topolist": [{"dev_id": "a"}]}`))
	require.NoError(t, err)
	assert.Len(t, top.Records, 1)

	top, err = Parse([]byte(`  [{"dev_id": "a"}, {"dev_id": "b"}]`))
	require.NoError(t, err)
	assert.Len(t, top.Records, 2)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrEmptyTopology)

	_, err = Parse([]byte(`{"data": {"topolist": []}}`))
	assert.ErrorIs(t, err, ErrEmptyTopology)

	_, err = Parse([]byte(`[{"dev_id": "a"}, {"dev_id": "a"}]`))
	assert.ErrorIs(t, err, ErrDuplicateNode)

	_, err = Parse([]byte(`[{"dev_id": "a", "x": "west"}]`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"topolist": [`))
	assert.Error(t, err)

	// records without a dev_id never collide
	_, err = Parse([]byte(`[{"ip": "1.1.1.1"}, {"ip": "2.2.2.2"}]`))
	assert.NoError(t, err)
}

func TestArrangePlacesNodesAndLabels(t *testing.T) {
	top, err := Parse([]byte(sample))
	require.NoError(t, err)

	l := Arrange(top, WithRandom(func() float64 { return 0.5 }))
	require.Len(t, l.Nodes, 3)

	assert.Equal(t, mgl32.Vec3{0, 50, 100}, l.Nodes[0].Position)
	assert.Equal(t, mgl32.Vec3{-10, 40, 90}, l.Nodes[0].LabelPosition)
	assert.Equal(t, "cloud", l.Nodes[0].Label)

	assert.Equal(t, mgl32.Vec3{100, 50, 200}, l.Nodes[1].Position)
	assert.Equal(t, "10.0.0.1", l.Nodes[1].Label)

	assert.Equal(t, mgl32.Vec3{-300, 50, 0}, l.Nodes[2].Position)
}

func TestArrangeResolvesLinks(t *testing.T) {
	top, err := Parse([]byte(sample))
	require.NoError(t, err)

	l := Arrange(top, WithRandom(func() float64 { return 0 }))
	assert.Equal(t, []Edge{{From: 0, To: 1}, {From: 1, To: 2}}, l.Edges)
	assert.Equal(t, 1, l.Unresolved)

	s := Summarize(l)
	assert.Equal(t, 3, s.Nodes)
	assert.Equal(t, 2, s.Edges)
	assert.Equal(t, 1, s.Unresolved)
	assert.Equal(t, 1, s.Clouds)
	assert.Equal(t, mgl32.Vec3{-300, 0, 0}, s.Min)
	assert.Equal(t, mgl32.Vec3{100, 0, 200}, s.Max)
}

func TestCloudLinkIgnoresDevID(t *testing.T) {
	top, err := Parse([]byte(`[
		{"dev_id": "cloud"},
		{"dev_id": "edge", "links": [{"type": "cloud", "dev_id": "edge"}]}
	]`))
	require.NoError(t, err)
	l := Arrange(top)
	assert.Equal(t, []Edge{{From: 0, To: 1}}, l.Edges)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	top, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, top.Records, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// waitUpdate reads updates until match accepts one or the deadline passes.
func waitUpdate(t *testing.T, w Watcher, match func(Update) bool) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case u := <-w.Updates():
			if match(u) {
				return
			}
		case <-deadline:
			t.Fatal("no matching reload")
		}
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"dev_id": "a"}]`), 0o644))

	w, err := Watch(path, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`[{"dev_id": "a"}, {"dev_id": "b"}]`), 0o644))
	waitUpdate(t, w, func(u Update) bool {
		return u.Err == nil && len(u.Topology.Records) == 2
	})

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	waitUpdate(t, w, func(u Update) bool {
		return errors.Is(u.Err, ErrEmptyTopology) && u.Topology == nil
	})
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topo.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"dev_id": "a"}]`), 0o644))

	w, err := Watch(path, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0o644))
	select {
	case u := <-w.Updates():
		t.Fatalf("unexpected reload %+v", u)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topo.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"dev_id": "a"}]`), 0o644))

	w, err := Watch(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Updates()
	assert.False(t, ok)
}

func feedServer(t *testing.T, messages ...string) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, m := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
				return
			}
		}
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.ReadMessage()
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestStreamDeliversSnapshots(t *testing.T) {
	url := feedServer(t, `[{"dev_id": "a"}]`, `not json`, sample)

	var got []Update
	err := Stream(context.Background(), url, func(u Update) { got = append(got, u) })
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Len(t, got[0].Topology.Records, 1)
	assert.Error(t, got[1].Err)
	assert.Nil(t, got[1].Topology)
	assert.Len(t, got[2].Topology.Records, 3)
}

func TestStreamCancel(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.ReadMessage()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)
	err := Stream(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), func(Update) {})
	assert.NoError(t, err)
}

func TestStreamDialError(t *testing.T) {
	err := Stream(context.Background(), "ws://127.0.0.1:1/feed", func(Update) {})
	assert.Error(t, err)
}
