package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnEmitOrder(t *testing.T) {
	b := New(nil)
	var order []int
	b.On("x", func(args ...interface{}) { order = append(order, 1) })
	b.On("x", func(args ...interface{}) { order = append(order, 2) })
	b.Emit("x")
	assert.Equal(t, []int{1, 2}, order)
}

func TestOnceFiresOnlyOnce(t *testing.T) {
	b := New(nil)
	count := 0
	b.Once("x", func(args ...interface{}) { count++ })
	b.Emit("x")
	b.Emit("x")
	assert.Equal(t, 1, count)
}

func TestOffRemovesHandler(t *testing.T) {
	b := New(nil)
	count := 0
	h := func(args ...interface{}) { count++ }
	b.On("x", h)
	b.Off("x", h)
	b.Emit("x")
	assert.Equal(t, 0, count)
}

func TestEmitSnapshotIsolatesMutation(t *testing.T) {
	b := New(nil)
	var secondRan bool
	var first Handler
	first = func(args ...interface{}) {
		b.Off("x", first)
		b.On("x", func(args ...interface{}) {})
	}
	b.On("x", first)
	b.On("x", func(args ...interface{}) { secondRan = true })
	b.Emit("x")
	assert.True(t, secondRan, "handlers registered at emit time must still run even if a sibling unregisters during delivery")
}

func TestHandlerPanicDoesNotStopLaterHandlers(t *testing.T) {
	b := New(nil)
	var ranAfterPanic bool
	b.On("x", func(args ...interface{}) { panic("boom") })
	b.On("x", func(args ...interface{}) { ranAfterPanic = true })
	assert.NotPanics(t, func() { b.Emit("x") })
	assert.True(t, ranAfterPanic)
}

func TestRemoveAll(t *testing.T) {
	b := New(nil)
	count := 0
	b.On("x", func(args ...interface{}) { count++ })
	b.On("y", func(args ...interface{}) { count++ })
	b.RemoveAll("")
	b.Emit("x")
	b.Emit("y")
	assert.Equal(t, 0, count)
}
