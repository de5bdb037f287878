// Package protocol parses and dispatches the streaming wire format: a
// sequence of JSON-encoded frames, one per transport message, discriminated
// by a "type" field, plus two legacy forms kept for backward compatibility.
package protocol

import (
	"encoding/json"
	"strings"
)

// EventType discriminates a wire frame.
type EventType string

const (
	EventToken    EventType = "token"
	EventMetadata EventType = "metadata"
	EventError    EventType = "error"
	EventDone     EventType = "done"
)

// Metadata carries out-of-band generation information.
type Metadata struct {
	Model     string
	Provider  string
	Usage     map[string]interface{}
	LatencyMS *float64
}

// ErrorInfo describes a transport- or provider-reported error frame.
type ErrorInfo struct {
	Code        string
	Message     string
	Recoverable bool
}

// Done carries the terminal frame's optional full-text echo.
type Done struct {
	FullText string
}

// Event is one parsed wire frame.
type Event struct {
	Type     EventType
	Token    string
	Metadata Metadata
	Error    ErrorInfo
	Done     Done
}

// doneSentinel is the legacy terminal marker some providers emit instead
// of a well-formed { "type":"done" } frame.
const doneSentinel = "[DONE]"

type wireFrame struct {
	Type        string                 `json:"type"`
	Token       string                 `json:"token"`
	Model       string                 `json:"model"`
	Provider    string                 `json:"provider"`
	Usage       map[string]interface{} `json:"usage"`
	LatencyMS   *float64               `json:"latency_ms"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	Recoverable bool                   `json:"recoverable"`
	FullText    string                 `json:"fullText"`
}

// Parse decodes one wire frame. recognized is false when the frame
// parsed as valid JSON but carried an unrecognised (or absent,
// non-legacy) type — such frames are ignored per the wire-protocol
// contract, not treated as errors. A JSON syntax error is returned as
// err.
func Parse(raw string) (ev Event, recognized bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == doneSentinel {
		return Event{Type: EventDone}, true, nil
	}

	var w wireFrame
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return Event{}, false, err
	}

	t := w.Type
	if t == "" && w.Token != "" {
		// Legacy frame: a bare {"token":"..."} with no discriminant.
		t = string(EventToken)
	}

	switch EventType(t) {
	case EventToken:
		return Event{Type: EventToken, Token: w.Token}, true, nil
	case EventMetadata:
		return Event{Type: EventMetadata, Metadata: Metadata{
			Model: w.Model, Provider: w.Provider, Usage: w.Usage, LatencyMS: w.LatencyMS,
		}}, true, nil
	case EventError:
		return Event{Type: EventError, Error: ErrorInfo{
			Code: w.Code, Message: w.Message, Recoverable: w.Recoverable,
		}}, true, nil
	case EventDone:
		return Event{Type: EventDone, Done: Done{FullText: w.FullText}}, true, nil
	default:
		return Event{}, false, nil
	}
}
