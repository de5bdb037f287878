package wsstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/livellm/livellm/container/headless"
	"github.com/livellm/livellm/pkg/livellm/parser"
	"github.com/livellm/livellm/pkg/livellm/protocol"
	"github.com/livellm/livellm/pkg/livellm/registry"
	"github.com/livellm/livellm/pkg/livellm/stream"
)

var upgrader = websocket.Upgrader{}

func TestRunDispatchesFramesUntilDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"token","token":"hi"}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"done"}`))
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	reg := registry.New(nil)
	registry.RegisterBuiltIns(reg)
	c := headless.New()
	md := parser.New(reg, nil, 0)
	r := stream.New(c, reg, md, nil, stream.SyncScheduler{})
	d := protocol.NewDispatcher(r)

	a := &Adapter{Conn: conn, Dispatcher: d}
	err = a.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, stream.StateDone, r.State())
	require.Contains(t, c.Text(), "hi")
}
