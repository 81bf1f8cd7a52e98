package fault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjector_ConsumeOnce(t *testing.T) {
	c := NewChecker(&memSink{})
	c.Injector().Arm(codeRadio)

	radio, calls := scripted(1, 1)

	// First invocation: the guarded call succeeds but injection forces
	// the failure and consumes the flag.
	err := c.Run(radio, codeRadio)
	require.Error(t, err)
	assert.Equal(t, codeRadio, c.Context().Code)
	assert.Equal(t, uint32(1), c.Context().Inner, "real result recorded as inner")
	assert.Equal(t, Success, c.Injector().Armed())

	// Second invocation: no auto-fail.
	require.NoError(t, c.Run(radio, codeRadio))
	assert.Equal(t, 2, *calls)
}

func TestInjector_NonMatchingCodeUntouched(t *testing.T) {
	c := NewChecker(&memSink{})
	c.Injector().Arm(codeRadio)

	require.NoError(t, c.Check(1, codePower))
	assert.Equal(t, codeRadio, c.Injector().Armed(), "flag survives non-matching checks")
}

func TestInjector_MatchOnRealFailure(t *testing.T) {
	c := NewChecker(&memSink{})
	c.Injector().Arm(codeSensor)

	// Real failure and matching injection at once: the check fires and
	// the flag is still consumed.
	require.Error(t, c.Check(0, codeSensor))
	assert.Equal(t, uint32(0), c.Context().Inner)
	assert.Equal(t, Success, c.Injector().Armed())
}

func TestInjector_Disarm(t *testing.T) {
	inj := NewInjector()
	inj.Arm(codePower)
	inj.Disarm()
	assert.Equal(t, Success, inj.Armed())
}

func TestInjector_ArmSuccessNeverFires(t *testing.T) {
	c := NewChecker(&memSink{})
	c.Injector().Arm(Success)
	require.NoError(t, c.Check(1, codePower))
}
