package fault

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNamer(code Code) string {
	switch code {
	case codeRadio:
		return "ERR_RADIO"
	default:
		return "UNKNOWN"
	}
}

func TestRenderer_FreshContext(t *testing.T) {
	sink := &memSink{}
	c := NewChecker(sink)
	r := NewRenderer(c.Store(), testNamer)

	var buf strings.Builder
	require.NoError(t, r.Render(&buf))

	assert.Equal(t, "no fault recorded\n", buf.String())
	assert.Empty(t, sink.writes, "rendering performs no write")
}

func TestRenderer_FailedContext(t *testing.T) {
	c := NewChecker(&memSink{})
	require.Error(t, c.Check(0, codeRadio))

	var buf strings.Builder
	require.NoError(t, NewRenderer(c.Store(), testNamer).Render(&buf))
	out := buf.String()

	assert.Contains(t, out, "Code      : 3 (0x03) ERR_RADIO")
	assert.Contains(t, out, "Inner     : 0x00000000")
	assert.Contains(t, out, "Location  : render_test.go:")
	assert.Contains(t, out, "Persisted : yes")
}

func TestRenderer_DoesNotMutate(t *testing.T) {
	c := NewChecker(&memSink{})
	require.Error(t, c.Check(0, codeSensor))
	before := c.Context()

	var buf strings.Builder
	require.NoError(t, NewRenderer(c.Store(), nil).Render(&buf))

	assert.Equal(t, before, c.Context())
	assert.Contains(t, buf.String(), "Code      : 2 (0x02)\n", "nil namer renders numerically")
}

func TestRenderer_UnpersistedRecord(t *testing.T) {
	c := NewChecker(&memSink{rejects: 1})
	require.Error(t, c.Check(0, codePower))

	var buf strings.Builder
	require.NoError(t, NewRenderer(c.Store(), nil).Render(&buf))
	assert.Contains(t, buf.String(), "Persisted : no")
}
