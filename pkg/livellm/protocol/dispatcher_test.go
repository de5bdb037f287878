package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livellm/livellm/container/headless"
	"github.com/livellm/livellm/pkg/livellm/parser"
	"github.com/livellm/livellm/pkg/livellm/registry"
	"github.com/livellm/livellm/pkg/livellm/stream"
)

func newTestDispatcher() (*Dispatcher, *headless.Container) {
	reg := registry.New(nil)
	registry.RegisterBuiltIns(reg)
	c := headless.New()
	md := parser.New(reg, nil, 0)
	r := stream.New(c, reg, md, nil, stream.SyncScheduler{})
	return NewDispatcher(r), c
}

func TestDispatchTokenPushesIntoRenderer(t *testing.T) {
	d, c := newTestDispatcher()
	terminal := d.Dispatch(`{"type":"token","token":"hi"}`)
	assert.False(t, terminal)
	assert.Contains(t, c.Text(), "hi")
}

func TestDispatchDoneEndsStream(t *testing.T) {
	d, _ := newTestDispatcher()
	terminal := d.Dispatch(`{"type":"done"}`)
	assert.True(t, terminal)
	assert.Equal(t, stream.StateDone, d.Renderer.State())
}

func TestDispatchRecoverableErrorDoesNotEnd(t *testing.T) {
	d, _ := newTestDispatcher()

	var got ErrorInfo
	d.OnError = func(e ErrorInfo) { got = e }

	terminal := d.Dispatch(`{"type":"error","code":"E1","message":"retry","recoverable":true}`)
	assert.False(t, terminal)
	assert.NotEqual(t, stream.StateDone, d.Renderer.State())
	assert.Equal(t, "E1", got.Code)
}

func TestDispatchNonRecoverableErrorEndsStream(t *testing.T) {
	d, _ := newTestDispatcher()
	terminal := d.Dispatch(`{"type":"error","code":"E2","message":"fatal","recoverable":false}`)
	assert.True(t, terminal)
	assert.Equal(t, stream.StateDone, d.Renderer.State())
}

func TestDispatchMetadataInvokesCallback(t *testing.T) {
	d, _ := newTestDispatcher()
	var got Metadata
	d.OnMetadata = func(m Metadata) { got = m }

	terminal := d.Dispatch(`{"type":"metadata","model":"gpt-test"}`)
	assert.False(t, terminal)
	assert.Equal(t, "gpt-test", got.Model)
}

func TestDispatchLegacyDoneSentinelEndsStream(t *testing.T) {
	d, _ := newTestDispatcher()
	terminal := d.Dispatch("[DONE]")
	require.True(t, terminal)
}
