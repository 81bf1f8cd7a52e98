package fault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_Idempotent(t *testing.T) {
	sink := &memSink{}
	c := NewChecker(sink)

	require.Error(t, c.Check(0, codeRadio))
	require.NoError(t, c.Gateway().Log())
	require.NoError(t, c.Gateway().Log())

	assert.Len(t, sink.writes, 1, "two gateway calls, one durable write")
	assert.True(t, c.Context().Logged)
}

func TestGateway_SuccessRecordIsNoOp(t *testing.T) {
	sink := &memSink{}
	c := NewChecker(sink)

	require.NoError(t, c.Gateway().Log())
	assert.Empty(t, sink.writes, "the success state is never a loggable fault")
	assert.False(t, c.Context().Logged)
}

func TestGateway_WriteFailureAllowsRetry(t *testing.T) {
	sink := &memSink{rejects: 1}
	c := NewChecker(sink)

	// Check itself tolerates the logging failure; the record stays
	// unpersisted.
	err := c.Check(0, codePower)
	require.Error(t, err)
	assert.False(t, c.Context().Logged)
	assert.Empty(t, sink.writes)

	// A later gateway call retries and succeeds.
	require.NoError(t, c.Gateway().Log())
	assert.True(t, c.Context().Logged)
	assert.Len(t, sink.writes, 1)
}

func TestGateway_RoundTripAcrossFailures(t *testing.T) {
	sink := &memSink{}
	c := NewChecker(sink)

	require.Error(t, c.Check(0, codePower))
	require.True(t, c.Context().Logged)

	// A new distinct failure resets the flag atomically with the record.
	require.Error(t, c.Check(0, codeSensor))
	ctx := c.Context()
	assert.Equal(t, codeSensor, ctx.Code)
	assert.True(t, ctx.Logged, "the check logged the new record itself")
	assert.Len(t, sink.writes, 2)
	assert.Equal(t, codePower, sink.writes[0].Code)
	assert.Equal(t, codeSensor, sink.writes[1].Code)
}

func TestGateway_NilSink(t *testing.T) {
	c := NewChecker(nil)

	require.Error(t, c.Check(0, codeRadio))
	assert.False(t, c.Context().Logged)
	assert.Error(t, c.Gateway().Log())
}
