package nvlog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/faultline-io/faultline/internal/fault"
)

// Record is a persisted fault as read back from the log.
type Record struct {
	Seq     int64
	ID      string
	Session string
	Code    fault.Code
	Inner   uint32
	File    string
	Line    int
}

// Context reconstructs the failure record the fault core handed over.
// Logged is true by construction: a record only exists in the log
// because the durable write completed.
func (r Record) Context() fault.Context {
	return fault.Context{
		Code:   r.Code,
		Inner:  r.Inner,
		File:   r.File,
		Line:   r.Line,
		Logged: true,
	}
}

// Last returns the most recently persisted fault. The boolean is false
// when the log is empty.
func (l *Log) Last() (Record, bool, error) {
	row := l.db.QueryRow(`
		SELECT seq, id, session, code, inner_code, file, line
		FROM faults
		ORDER BY seq DESC
		LIMIT 1
	`)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("read last fault: %w", err)
	}
	return rec, true, nil
}

// List returns up to limit faults, newest first. Ordering is
// deterministic: ORDER BY seq DESC, never by timestamp.
//
// Returns an empty slice (not nil) when the log is empty.
func (l *Log) List(limit int) ([]Record, error) {
	rows, err := l.db.Query(`
		SELECT seq, id, session, code, inner_code, file, line
		FROM faults
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query faults: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fault: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faults: %w", err)
	}

	return records, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		rec   Record
		code  int
		inner int64
	)
	if err := s.Scan(&rec.Seq, &rec.ID, &rec.Session, &code, &inner, &rec.File, &rec.Line); err != nil {
		return Record{}, err
	}
	rec.Code = fault.Code(code)
	rec.Inner = uint32(inner)
	return rec, nil
}
