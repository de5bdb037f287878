package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livellm/livellm/pkg/livellm/schema"
)

func TestRegisterHasGetRemove(t *testing.T) {
	r := New(nil)
	r.Register("widget", ComponentDescriptor{
		Schema: schema.Schema{"x": {Type: schema.TypeString}},
	})
	assert.True(t, r.Has("widget"))

	d, ok := r.Get("widget")
	require.True(t, ok)
	assert.Equal(t, "livellm-widget", d.TagName)

	r.Remove("widget")
	assert.False(t, r.Has("widget"))
}

func TestLoadComponentResolvesLazyEntryOnce(t *testing.T) {
	r := New(nil)
	r.Register("remote-widget", ComponentDescriptor{
		Schema: schema.Schema{},
		Lazy:   &LazyLoader{URL: "https://example.com/remote-widget.js"},
	})

	var events []string
	r.Bus().On("registry:component:loading", func(_ ...interface{}) { events = append(events, "loading") })
	r.Bus().On("registry:component:loaded", func(_ ...interface{}) { events = append(events, "loaded") })

	require.NoError(t, r.LoadComponent("remote-widget"))
	assert.Equal(t, []string{"loading", "loaded"}, events)

	// Loading again is a no-op: no further events fire.
	require.NoError(t, r.LoadComponent("remote-widget"))
	assert.Equal(t, []string{"loading", "loaded"}, events)
}

func TestLoadComponentUnregisteredErrors(t *testing.T) {
	r := New(nil)
	assert.Error(t, r.LoadComponent("missing"))
}

func TestLoadComponentNonLazyIsNoop(t *testing.T) {
	r := New(nil)
	r.Register("eager-widget", ComponentDescriptor{Schema: schema.Schema{}})
	assert.NoError(t, r.LoadComponent("eager-widget"))
}

func TestFilteredKeepsOnlyAllowedNames(t *testing.T) {
	r := New(nil)
	r.Register("alpha", ComponentDescriptor{Schema: schema.Schema{}})
	r.Register("beta", ComponentDescriptor{Schema: schema.Schema{}})
	r.Register("gamma", ComponentDescriptor{Schema: schema.Schema{}})

	f := Filtered(r, []string{"alpha", "gamma", "does-not-exist"})
	assert.True(t, f.Has("alpha"))
	assert.True(t, f.Has("gamma"))
	assert.False(t, f.Has("beta"))
	assert.False(t, f.Has("does-not-exist"))
	assert.Equal(t, []string{"alpha", "gamma"}, f.List())
}

func TestValidateUnregisteredYieldsComponentError(t *testing.T) {
	r := New(nil)
	res := r.Validate("missing", nil)
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "_component", res.Errors[0].Prop)
}

func TestApplyDefaultsUnregisteredPassthrough(t *testing.T) {
	r := New(nil)
	props := map[string]interface{}{"a": 1}
	assert.Equal(t, props, r.ApplyDefaults("missing", props))
}

func TestGetPlaceholderFallback(t *testing.T) {
	r := New(nil)
	p := r.GetPlaceholder("missing")
	assert.Equal(t, globalFallbackPlaceholder, p)
}

func TestRegisterEmitsEvent(t *testing.T) {
	r := New(nil)
	var got string
	r.Bus().On("registry:registered", func(args ...interface{}) {
		got = args[0].(string)
	})
	r.Register("widget", ComponentDescriptor{})
	assert.Equal(t, "widget", got)
}

func TestBuiltInsRegistered(t *testing.T) {
	r := New(nil)
	RegisterBuiltIns(r)
	for _, name := range []string{"alert", "table-plus", "choice", "confirm", "map", "code-runner", "link-preview", "accordion", "chart-line", "chart-bar", "chart-pie"} {
		assert.True(t, r.Has(name), name)
	}
}

func TestAlertRenderAndValidate(t *testing.T) {
	r := New(nil)
	RegisterBuiltIns(r)
	props := r.ApplyDefaults("alert", map[string]interface{}{"text": "hello"})
	res := r.Validate("alert", props)
	assert.True(t, res.Valid)

	d, _ := r.Get("alert")
	out := d.Render(props)
	assert.Contains(t, out, "hello")
}

func TestDefaultSingletonHasBuiltIns(t *testing.T) {
	assert.True(t, Default().Has("alert"))
}
