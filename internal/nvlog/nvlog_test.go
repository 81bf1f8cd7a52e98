package nvlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faultline-io/faultline/internal/fault"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "faults.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faults.db")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer l.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if l.Session() == "" {
		t.Error("no session ID assigned")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faults.db")

	var sessions []string
	for i := 0; i < 3; i++ {
		l, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		sessions = append(sessions, l.Session())
		l.Close()
	}

	// Each boot gets its own session.
	if sessions[0] == sessions[1] || sessions[1] == sessions[2] {
		t.Errorf("sessions not unique across opens: %v", sessions)
	}
}

func TestWriteContext_RoundTrip(t *testing.T) {
	l := openTestLog(t)

	in := fault.Context{Code: 3, Inner: 0xDEADBEEF, File: "radio.go", Line: 42}
	if err := l.WriteContext(in); err != nil {
		t.Fatalf("WriteContext() failed: %v", err)
	}

	rec, ok, err := l.Last()
	if err != nil {
		t.Fatalf("Last() failed: %v", err)
	}
	if !ok {
		t.Fatal("Last() found no record after write")
	}

	got := rec.Context()
	if got.Code != in.Code || got.Inner != in.Inner || got.File != in.File || got.Line != in.Line {
		t.Errorf("round-trip mismatch: wrote %+v, read %+v", in, got)
	}
	if !got.Logged {
		t.Error("read-back context must report persisted")
	}
	if rec.Session != l.Session() {
		t.Errorf("record session %q, want %q", rec.Session, l.Session())
	}
}

func TestWriteContext_RejectsSuccess(t *testing.T) {
	l := openTestLog(t)

	if err := l.WriteContext(fault.Context{Code: fault.Success}); err == nil {
		t.Error("expected error writing success code")
	}
}

func TestLast_EmptyLog(t *testing.T) {
	l := openTestLog(t)

	_, ok, err := l.Last()
	if err != nil {
		t.Fatalf("Last() failed: %v", err)
	}
	if ok {
		t.Error("Last() reported a record in an empty log")
	}
}

func TestList_NewestFirst(t *testing.T) {
	l := openTestLog(t)

	for i, code := range []fault.Code{1, 2, 3} {
		err := l.WriteContext(fault.Context{Code: code, File: "boot.go", Line: 10 + i})
		if err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	records, err := l.List(2)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List(2) returned %d records", len(records))
	}
	if records[0].Code != 3 || records[1].Code != 2 {
		t.Errorf("wrong order: got codes %d, %d; want 3, 2", records[0].Code, records[1].Code)
	}
}

func TestList_EmptyLogReturnsEmptySlice(t *testing.T) {
	l := openTestLog(t)

	records, err := l.List(10)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if records == nil {
		t.Error("List() returned nil, want empty slice")
	}
}

func TestLog_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faults.db")

	l1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	c := fault.NewChecker(l1)
	if err := c.Check(0, 3); err == nil {
		t.Fatal("check should have failed")
	}
	if !c.Context().Logged {
		t.Fatal("check did not persist through the gateway")
	}
	l1.Close()

	// Simulated reset: the fault must still be readable.
	l2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer l2.Close()

	rec, ok, err := l2.Last()
	if err != nil {
		t.Fatalf("Last() failed: %v", err)
	}
	if !ok {
		t.Fatal("fault did not survive reopen")
	}
	if rec.Code != 3 {
		t.Errorf("recovered code %d, want 3", rec.Code)
	}
	if rec.File != "nvlog_test.go" {
		t.Errorf("recovered file %q, want nvlog_test.go", rec.File)
	}
}
