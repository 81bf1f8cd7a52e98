package fault

import (
	"fmt"
	"io"
)

// Namer maps a numeric code to a stable human-readable name. Supplied
// by the application; must return a defined fallback for unknown codes.
type Namer func(Code) string

// Renderer formats the current failure record for console or telemetry
// output. It is purely observational: it never mutates the record and
// has no bearing on the check protocol.
type Renderer struct {
	store *Store
	name  Namer
}

// NewRenderer binds a renderer to a store and a code-name mapping.
// A nil namer renders codes numerically only.
func NewRenderer(store *Store, name Namer) *Renderer {
	return &Renderer{store: store, name: name}
}

// Render writes a multi-line rendering of the record: a success line
// when no failure has been recorded, otherwise the code (numeric and
// named), inner code, source location, and persistence status.
func (r *Renderer) Render(w io.Writer) error {
	return RenderContext(w, r.store.Snapshot(), r.name)
}

// RenderContext renders a standalone record, e.g. one read back from
// persistent storage after a reset.
func RenderContext(w io.Writer, snap Context, name Namer) error {
	if !snap.Failed() {
		_, err := fmt.Fprintln(w, "no fault recorded")
		return err
	}

	named := ""
	if name != nil {
		named = " " + name(snap.Code)
	}
	persisted := "no"
	if snap.Logged {
		persisted = "yes"
	}

	_, err := fmt.Fprintf(w,
		"=== FAULT RECORD ===\n"+
			"Code      : %d (0x%02X)%s\n"+
			"Inner     : 0x%08X\n"+
			"Location  : %s\n"+
			"Persisted : %s\n"+
			"====================\n",
		snap.Code, uint8(snap.Code), named, snap.Inner, snap.Location(), persisted)
	return err
}
