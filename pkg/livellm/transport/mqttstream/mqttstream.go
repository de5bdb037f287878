// Package mqttstream adapts an MQTT topic subscription into the wire
// protocol's message-oriented-socket dispatch rules: every message on
// the topic is one JSON wire frame.
package mqttstream

import (
	"context"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/livellm/livellm/pkg/livellm/protocol"
)

// Adapter subscribes Client to Topic and feeds every message it
// publishes into Dispatcher, stopping once a frame brings the stream to
// its terminal state.
type Adapter struct {
	Client     mqtt.Client
	Topic      string
	QoS        byte
	Dispatcher *protocol.Dispatcher

	done     chan struct{}
	closeOne sync.Once
}

// New builds an Adapter at QoS 1, the usual choice for a single-producer
// token stream where an occasional duplicate delivery is harmless but a
// dropped one isn't.
func New(client mqtt.Client, topic string, dispatcher *protocol.Dispatcher) *Adapter {
	return &Adapter{
		Client:     client,
		Topic:      topic,
		QoS:        1,
		Dispatcher: dispatcher,
		done:       make(chan struct{}),
	}
}

// Run subscribes and blocks until the stream reaches a terminal frame or
// ctx is cancelled, whichever happens first. It always unsubscribes
// before returning.
func (a *Adapter) Run(ctx context.Context) error {
	token := a.Client.Subscribe(a.Topic, a.QoS, a.handle)
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	defer a.Client.Unsubscribe(a.Topic)

	select {
	case <-ctx.Done():
		a.Dispatcher.Renderer.Abort()
		return ctx.Err()
	case <-a.done:
		return nil
	}
}

func (a *Adapter) handle(_ mqtt.Client, msg mqtt.Message) {
	if a.Dispatcher.Dispatch(string(msg.Payload())) {
		a.closeOne.Do(func() { close(a.done) })
	}
}
