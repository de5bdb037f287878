package protocol

import (
	"log/slog"

	"github.com/livellm/livellm/pkg/livellm/stream"
)

// Dispatcher feeds parsed wire frames into a stream.Renderer, applying
// the dispatch rules from the wire-protocol contract: token -> push,
// metadata -> callback, error -> callback (and end if non-recoverable),
// done -> end.
type Dispatcher struct {
	Renderer   *stream.Renderer
	OnMetadata func(Metadata)
	OnError    func(ErrorInfo)

	log *slog.Logger
}

// NewDispatcher builds a Dispatcher driving r.
func NewDispatcher(r *stream.Renderer) *Dispatcher {
	return &Dispatcher{Renderer: r, log: slog.Default()}
}

// Dispatch parses and handles one transport message. It returns true
// once the frame has brought the stream to its terminal state (a done
// frame or a non-recoverable error), after which the caller's read loop
// should stop.
func (d *Dispatcher) Dispatch(raw string) bool {
	ev, recognized, err := Parse(raw)
	if err != nil {
		d.log.Warn("protocol: malformed frame", "error", err)
		return false
	}
	if !recognized {
		return false
	}

	switch ev.Type {
	case EventToken:
		d.Renderer.Push(ev.Token)
		return false

	case EventMetadata:
		if d.OnMetadata != nil {
			d.OnMetadata(ev.Metadata)
		}
		return false

	case EventError:
		if d.OnError != nil {
			d.OnError(ev.Error)
		}
		if !ev.Error.Recoverable {
			d.Renderer.End()
			return true
		}
		return false

	case EventDone:
		d.Renderer.End()
		return true
	}
	return false
}
