package messaging

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	connected    atomic.Int32
	disconnected atomic.Int32
}

func (o *countingObserver) ClientConnected()    { o.connected.Add(1) }
func (o *countingObserver) ClientDisconnected() { o.disconnected.Add(1) }

func startHub(t *testing.T, render Renderer, observer ConnectionObserver) (*PreviewHub, string, context.CancelFunc) {
	t.Helper()

	hub := NewPreviewHub(render, observer, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(r.Context(), conn, strings.TrimPrefix(r.URL.Path, "/"))
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http"), cancel
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestPreviewHubSendsInitialRenderAndRefreshes(t *testing.T) {
	var version atomic.Int32
	version.Store(1)
	render := func(_ context.Context, id string) (string, error) {
		return fmt.Sprintf("<aside>%s v%d</aside>", id, version.Load()), nil
	}

	observer := &countingObserver{}
	hub, url, _ := startHub(t, render, observer)

	conn, _, err := websocket.DefaultDialer.Dial(url+"/sidebar-1", nil)
	require.NoError(t, err)
	defer conn.Close()

	first := readMessage(t, conn)
	assert.Equal(t, MessageRender, first.Type)
	assert.Equal(t, "sidebar-1", first.SidebarID)
	assert.Equal(t, "<aside>sidebar-1 v1</aside>", first.HTML)
	assert.Equal(t, 1, hub.ClientCount())

	version.Store(2)
	hub.Refresh()

	second := readMessage(t, conn)
	assert.Equal(t, "<aside>sidebar-1 v2</aside>", second.HTML)
	assert.Equal(t, int32(1), observer.connected.Load())
}

func TestPreviewHubErrorFrame(t *testing.T) {
	render := func(_ context.Context, id string) (string, error) {
		return "", errors.New("sidebar not found: " + id)
	}
	_, url, _ := startHub(t, render, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url+"/missing", nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := readMessage(t, conn)
	assert.Equal(t, MessageError, msg.Type)
	assert.Equal(t, "sidebar not found: missing", msg.Error)
	assert.Empty(t, msg.HTML)
}

func TestPreviewHubClientDisconnect(t *testing.T) {
	render := func(context.Context, string) (string, error) { return "ok", nil }
	observer := &countingObserver{}
	hub, url, _ := startHub(t, render, observer)

	conn, _, err := websocket.DefaultDialer.Dial(url+"/sidebar-1", nil)
	require.NoError(t, err)
	readMessage(t, conn)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return observer.disconnected.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestPreviewHubShutdownClosesClients(t *testing.T) {
	render := func(context.Context, string) (string, error) { return "ok", nil }
	hub, url, cancel := startHub(t, render, nil)

	conn, _, err := websocket.DefaultDialer.Dial(url+"/sidebar-1", nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, hub.ClientCount())

	// Calls after shutdown must not block.
	hub.Register(&Client{SidebarID: "late", Send: make(chan []byte)})
	hub.Refresh()
}
