package nvlog

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/faultline-io/faultline/internal/fault"
)

// WriteContext appends a failure record to the log. Implements
// fault.Sink: the write is synchronous and confirmed before return, so
// the gateway may mark the record persisted.
//
// The success code is rejected rather than stored - a success record is
// never a loggable fault, and the gateway never sends one.
func (l *Log) WriteContext(ctx fault.Context) error {
	if !ctx.Failed() {
		return fmt.Errorf("write fault: refusing to log success code")
	}

	_, err := l.db.Exec(`
		INSERT INTO faults (id, session, code, inner_code, file, line)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		uuid.Must(uuid.NewV7()).String(),
		l.session,
		int(ctx.Code),
		int64(ctx.Inner),
		ctx.File,
		ctx.Line,
	)
	if err != nil {
		return fmt.Errorf("write fault: %w", err)
	}

	return nil
}
