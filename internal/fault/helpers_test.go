package fault

import "errors"

// memSink is an in-memory Sink that counts durable writes and can be
// primed to reject a number of leading writes.
type memSink struct {
	writes  []Context
	rejects int
}

func (m *memSink) WriteContext(ctx Context) error {
	if m.rejects > 0 {
		m.rejects--
		return errors.New("sink unavailable")
	}
	m.writes = append(m.writes, ctx)
	return nil
}

// scripted returns an Op that yields the given results in order and
// counts invocations, so tests can assert which guarded calls ran.
func scripted(results ...int) (Op, *int) {
	calls := new(int)
	idx := 0
	return func() int {
		*calls++
		r := results[idx]
		if idx < len(results)-1 {
			idx++
		}
		return r
	}, calls
}

const (
	codePower  Code = 1
	codeSensor Code = 2
	codeRadio  Code = 3
)
