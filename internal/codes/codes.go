// Package codes loads an application error-code table from a CUE file
// and exposes it as the code-to-name mapping the diagnostic renderer
// consumes.
//
// The table format is a single struct of identifier-shaped names bound
// to values in the application codespace:
//
//	codes: {
//		POWER:  1
//		SENSOR: 2
//		RADIO:  3
//	}
//
// Value 0 is reserved for success and may not appear in the table;
// values must be unique and fit the 1..255 codespace.
package codes

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/faultline-io/faultline/internal/fault"
)

// validName matches identifier-shaped code names.
var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadError reports a problem with a code table file.
type LoadError struct {
	Path    string
	Name    string // offending entry, if any
	Message string
}

func (e *LoadError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: codes.%s: %s", e.Path, e.Name, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Table is a validated code-to-name mapping.
type Table struct {
	names map[fault.Code]string
}

// Load reads and validates a CUE code table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("reading file: %v", err)}
	}
	return Parse(path, data)
}

// Parse validates a CUE code table from raw bytes. path is used for
// error reporting only.
func Parse(path string, data []byte) (*Table, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("compiling CUE: %v", err)}
	}

	codesVal := value.LookupPath(cue.ParsePath("codes"))
	if !codesVal.Exists() {
		return nil, &LoadError{Path: path, Message: "missing required field: codes"}
	}

	iter, err := codesVal.Fields()
	if err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("iterating codes: %v", err)}
	}

	names := make(map[fault.Code]string)
	for iter.Next() {
		name := iter.Label()
		if !validName.MatchString(name) {
			return nil, &LoadError{Path: path, Name: name, Message: "name must be identifier-shaped"}
		}

		v, err := iter.Value().Int64()
		if err != nil {
			return nil, &LoadError{Path: path, Name: name, Message: fmt.Sprintf("value must be an integer: %v", err)}
		}
		if v < 1 || v > 255 {
			return nil, &LoadError{Path: path, Name: name, Message: fmt.Sprintf("value %d outside codespace 1..255 (0 is reserved for success)", v)}
		}

		code := fault.Code(v)
		if existing, dup := names[code]; dup {
			return nil, &LoadError{Path: path, Name: name, Message: fmt.Sprintf("value %d already bound to %s", v, existing)}
		}
		names[code] = name
	}

	if len(names) == 0 {
		return nil, &LoadError{Path: path, Message: "codes table is empty"}
	}

	return &Table{names: names}, nil
}

// Name returns the stable name for code: "NONE" for the success code,
// the table entry for known codes, and "UNKNOWN(0xNN)" for codes the
// table does not declare.
func (t *Table) Name(code fault.Code) string {
	if code == fault.Success {
		return "NONE"
	}
	if name, ok := t.names[code]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(code))
}

// Namer adapts the table to the renderer's mapping interface.
func (t *Table) Namer() fault.Namer {
	return t.Name
}

// Len returns the number of declared codes.
func (t *Table) Len() int {
	return len(t.names)
}

// Codes returns the declared codes in ascending numeric order.
func (t *Table) Codes() []fault.Code {
	out := make([]fault.Code, 0, len(t.names))
	for code := range t.names {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
