package panel

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/pick"
)

type fixture struct {
	srv     *Server
	metrics *Metrics
	http    *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	m := NewMetrics()
	s := NewServer("127.0.0.1:0", m)
	go s.hub.Run(ctx)
	hs := httptest.NewServer(s.handler(ctx))
	t.Cleanup(func() {
		cancel()
		hs.Close()
	})
	return &fixture{srv: s, metrics: m, http: hs}
}

func (f *fixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func (f *fixture) published(recordType string) float64 {
	return testutil.ToFloat64(f.metrics.records.WithLabelValues(recordType))
}

func (f *fixture) waitClients(t *testing.T, n float64) {
	t.Helper()
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(f.metrics.clients) == n
	}, 2*time.Second, 10*time.Millisecond)
}

func readRecord(t *testing.T, conn *websocket.Conn) Record {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	typ, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, typ)
	var r Record
	require.NoError(t, json.Unmarshal(data, &r))
	return r
}

func TestRecordEncoding(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "select",
			rec:  SelectRecord(pick.SelectRecord{Name: "Earth", Description: "Home", Link: "https://example.org/earth"}),
			want: `{"type":"select","name":"Earth","description":"Home","link":"https://example.org/earth"}`,
		},
		{
			name: "hover keeps zero coordinates",
			rec:  HoverRecord(pick.HoverRecord{Name: "Moon", X: 0, Y: 7}),
			want: `{"type":"hover","name":"Moon","x":0,"y":7}`,
		},
		{
			name: "hide info",
			rec:  HideRecord(TargetInfo),
			want: `{"type":"hide","target":"info"}`,
		},
		{
			name: "hide label",
			rec:  HideRecord(TargetLabel),
			want: `{"type":"hide","target":"label"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, string(tt.rec.encode()))
		})
	}
}

func TestPublishDoesNotBlock(t *testing.T) {
	h := NewHub(nil)
	for i := 0; i < broadcastQueue; i++ {
		require.True(t, h.Publish(HideRecord(TargetLabel)))
	}
	assert.False(t, h.Publish(HideRecord(TargetLabel)), "full queue drops")
}

func TestFeedDeliversSelect(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	f.waitClients(t, 1)

	f.srv.ShowInfo(pick.SelectRecord{Name: "Mars", Description: "Red", Link: "https://example.org/mars"})

	r := readRecord(t, conn)
	assert.Equal(t, TypeSelect, r.Type)
	assert.Equal(t, "Mars", r.Name)
	assert.Equal(t, "Red", r.Description)
	assert.Equal(t, "https://example.org/mars", r.Link)
	assert.Equal(t, float64(1), f.published(TypeSelect))
}

func TestFeedReplaysLastSelection(t *testing.T) {
	f := newFixture(t)

	f.srv.ShowInfo(pick.SelectRecord{Name: "Venus"})
	require.Eventually(t, func() bool { return f.published(TypeSelect) == 1 }, 2*time.Second, 10*time.Millisecond)

	conn := f.dial(t)
	r := readRecord(t, conn)
	assert.Equal(t, TypeSelect, r.Type)
	assert.Equal(t, "Venus", r.Name)
}

func TestFeedHideClearsReplay(t *testing.T) {
	f := newFixture(t)

	f.srv.ShowInfo(pick.SelectRecord{Name: "Venus"})
	f.srv.HideInfo()
	require.Eventually(t, func() bool { return f.published(TypeHide) == 1 }, 2*time.Second, 10*time.Millisecond)

	conn := f.dial(t)
	f.waitClients(t, 1)
	f.srv.ShowLabel(pick.HoverRecord{Name: "Moon", X: 3, Y: 4})
	f.srv.HideLabel()

	r := readRecord(t, conn)
	assert.Equal(t, TypeHover, r.Type, "no select replayed after hide")
	r = readRecord(t, conn)
	assert.Equal(t, TypeHide, r.Type)
	assert.Equal(t, TargetLabel, r.Target)
}

type collector struct {
	mu   sync.Mutex
	recs []Record
}

func (c *collector) publish(r Record) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recs = append(c.recs, r)
	return true
}

func (c *collector) records() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Record(nil), c.recs...)
}

func (c *collector) count(typ string) int {
	n := 0
	for _, r := range c.records() {
		if r.Type == typ {
			n++
		}
	}
	return n
}

func TestHoverIsRateLimited(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 20; i++ {
		f.srv.ShowLabel(pick.HoverRecord{Name: "Sun", X: i, Y: i})
	}
	require.Eventually(t, func() bool { return f.published(TypeHover) == hoverBurst+1 }, 2*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return f.published(TypeHover) > hoverBurst+1 }, 300*time.Millisecond, 20*time.Millisecond)
}

func TestHoverSendsLatestAfterBurst(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	f.waitClients(t, 1)

	for i := 0; i < 5; i++ {
		f.srv.ShowLabel(pick.HoverRecord{Name: "Mars", X: i, Y: 1})
	}
	f.srv.ShowLabel(pick.HoverRecord{Name: "Venus", X: 9, Y: 2})

	for i := 0; i < hoverBurst; i++ {
		r := readRecord(t, conn)
		assert.Equal(t, "Mars", r.Name)
	}
	r := readRecord(t, conn)
	assert.Equal(t, TypeHover, r.Type)
	assert.Equal(t, "Venus", r.Name)
	require.NotNil(t, r.X)
	assert.Equal(t, 9, *r.X)
}

func TestHoverGate(t *testing.T) {
	tests := []struct {
		name      string
		run       func(g *hoverGate)
		wantHover int
		wantHide  int
		lastName  string
	}{
		{
			name: "hide without label is dropped",
			run: func(g *hoverGate) {
				g.hide()
				g.hide()
			},
		},
		{
			name: "repeated hides collapse",
			run: func(g *hoverGate) {
				g.show(HoverRecord(pick.HoverRecord{Name: "Moon"}))
				g.hide()
				g.hide()
				g.hide()
			},
			wantHover: 1,
			wantHide:  1,
		},
		{
			name: "hide discards a held record",
			run: func(g *hoverGate) {
				for i := 0; i < hoverBurst+2; i++ {
					g.show(HoverRecord(pick.HoverRecord{Name: "Earth"}))
				}
				g.hide()
			},
			wantHover: hoverBurst,
			wantHide:  1,
		},
		{
			name: "burst flushes the newest",
			run: func(g *hoverGate) {
				for i := 0; i < hoverBurst+3; i++ {
					g.show(HoverRecord(pick.HoverRecord{Name: "Mars"}))
				}
				g.show(HoverRecord(pick.HoverRecord{Name: "Venus"}))
			},
			wantHover: hoverBurst + 1,
			lastName:  "Venus",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &collector{}
			g := newHoverGate(c.publish)
			t.Cleanup(g.stop)
			tt.run(g)

			require.Eventually(t, func() bool { return c.count(TypeHover) == tt.wantHover }, 2*time.Second, 10*time.Millisecond)
			time.Sleep(250 * time.Millisecond)
			assert.Equal(t, tt.wantHover, c.count(TypeHover))
			assert.Equal(t, tt.wantHide, c.count(TypeHide))
			if tt.lastName != "" {
				recs := c.records()
				assert.Equal(t, tt.lastName, recs[len(recs)-1].Name)
			}
		})
	}
}

func TestClientGaugeTracksDisconnect(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	f.waitClients(t, 1)

	conn.Close()
	f.waitClients(t, 0)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.metrics.RecordTick()
	f.metrics.ObservePick("select", true)
	f.metrics.ObservePick("hover", false)
	f.metrics.ObserveFrame(3 * time.Millisecond)

	resp, err := http.Get(f.http.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "orrery_ticks_total 1")
	assert.Contains(t, text, `orrery_picks_total{kind="select",result="hit"} 1`)
	assert.Contains(t, text, `orrery_picks_total{kind="hover",result="miss"} 1`)
	assert.Contains(t, text, "orrery_frame_render_seconds_count 1")
	assert.Contains(t, text, "orrery_feed_clients 0")
}

func TestServerStartAndClose(t *testing.T) {
	s := NewServer("127.0.0.1:0", NewMetrics())
	require.NoError(t, s.Start(context.Background()))
	assert.NotEqual(t, "127.0.0.1:0", s.Addr())

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Close(ctx))
}
