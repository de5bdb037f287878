package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidType(t *testing.T) {
	assert.True(t, ValidType("alert"))
	assert.True(t, ValidType("table-plus"))
	assert.True(t, ValidType("_private"))
	assert.False(t, ValidType("1bad"))
	assert.False(t, ValidType("bad type"))
	assert.False(t, ValidType("bad!"))
}

func TestTagName(t *testing.T) {
	assert.Equal(t, "livellm-alert", TagName("alert"))
}

func TestNewIDUnique(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}

type alertProps struct {
	Type string `mapstructure:"type"`
	Text string `mapstructure:"text"`
}

func TestDecodeInto(t *testing.T) {
	var dst alertProps
	err := DecodeInto(map[string]interface{}{"type": "info", "text": "hi"}, &dst)
	require.NoError(t, err)
	assert.Equal(t, "info", dst.Type)
	assert.Equal(t, "hi", dst.Text)
}
