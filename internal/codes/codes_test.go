package codes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faultline-io/faultline/internal/fault"
)

const validTable = `
codes: {
	POWER:  1
	SENSOR: 2
	RADIO:  3
	FLASH:  4
}
`

func TestParse_ValidTable(t *testing.T) {
	table, err := Parse("codes.cue", []byte(validTable))
	require.NoError(t, err)

	assert.Equal(t, 4, table.Len())
	assert.Equal(t, "RADIO", table.Name(3))
	assert.Equal(t, []fault.Code{1, 2, 3, 4}, table.Codes())
}

func TestName_Fallbacks(t *testing.T) {
	table, err := Parse("codes.cue", []byte(validTable))
	require.NoError(t, err)

	assert.Equal(t, "NONE", table.Name(fault.Success))
	assert.Equal(t, "UNKNOWN(0xFE)", table.Name(254))
}

func TestNamer_AdaptsToRenderer(t *testing.T) {
	table, err := Parse("codes.cue", []byte(validTable))
	require.NoError(t, err)

	var namer fault.Namer = table.Namer()
	assert.Equal(t, "SENSOR", namer(2))
}

func TestParse_RejectsReservedZero(t *testing.T) {
	_, err := Parse("codes.cue", []byte(`codes: { NONE: 0 }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved for success")
}

func TestParse_RejectsOutOfRange(t *testing.T) {
	_, err := Parse("codes.cue", []byte(`codes: { BIG: 256 }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "codespace")
}

func TestParse_RejectsDuplicateValues(t *testing.T) {
	_, err := Parse("codes.cue", []byte(`
codes: {
	POWER: 1
	PSU:   1
}
`))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Message, "already bound")
}

func TestParse_RejectsNonInteger(t *testing.T) {
	_, err := Parse("codes.cue", []byte(`codes: { POWER: "one" }`))
	require.Error(t, err)
}

func TestParse_MissingCodesField(t *testing.T) {
	_, err := Parse("codes.cue", []byte(`names: { POWER: 1 }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required field")
}

func TestParse_EmptyTable(t *testing.T) {
	_, err := Parse("codes.cue", []byte(`codes: {}`))
	require.Error(t, err)
}

func TestParse_InvalidCUE(t *testing.T) {
	_, err := Parse("codes.cue", []byte(`codes: {`))
	require.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.cue")
	require.NoError(t, os.WriteFile(path, []byte(validTable), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "POWER", table.Name(1))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.cue"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}
