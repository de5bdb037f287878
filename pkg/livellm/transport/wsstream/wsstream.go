// Package wsstream adapts a WebSocket connection into the wire
// protocol's message-oriented-socket dispatch rules: each frame received
// is one JSON wire message.
package wsstream

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/livellm/livellm/pkg/livellm/protocol"
)

// Adapter reads text frames from Conn and feeds each into Dispatcher.
type Adapter struct {
	Conn       *websocket.Conn
	Dispatcher *protocol.Dispatcher
}

// Run reads until the stream reaches a terminal frame, ctx is cancelled,
// or the connection errors. A context cancellation or read error aborts
// the underlying stream renderer rather than ending it cleanly.
func (a *Adapter) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			a.Dispatcher.Renderer.Abort()
			return ctx.Err()
		default:
		}

		_, data, err := a.Conn.ReadMessage()
		if err != nil {
			a.Dispatcher.Renderer.Abort()
			return err
		}

		if a.Dispatcher.Dispatch(string(data)) {
			return nil
		}
	}
}
