package shell

import (
	"sync"
	"time"
)

// LineKind tags a line in the output log
type LineKind string

const (
	// LineInput is an echoed input line, prefixed with the current path
	LineInput LineKind = "input"
	// LineOutput is a result or error line produced by a command
	LineOutput LineKind = "output"
	// LineClear is never stored; a Cursor reports it when the log was cleared
	LineClear LineKind = "clear"
)

// Line is one entry of the output log
type Line struct {
	Seq  uint64    `json:"seq"`
	Kind LineKind  `json:"kind"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

// Log is the append-only output log of a session. Sequence numbers keep
// increasing across Clear so readers can resume with Since.
type Log struct {
	mu       sync.Mutex
	lines    []Line
	seq      uint64
	clears   uint64
	clearSeq uint64
	watchers map[int]chan struct{}
	nextID   int
	closed   bool
	now      func() time.Time
}

// NewLog creates an empty log. now defaults to time.Now.
func NewLog(now func() time.Time) *Log {
	if now == nil {
		now = time.Now
	}
	return &Log{
		watchers: make(map[int]chan struct{}),
		now:      now,
	}
}

// Append adds lines of one kind in order and returns them.
// Appends to a closed log are dropped.
func (l *Log) Append(kind LineKind, texts ...string) []Line {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || len(texts) == 0 {
		return nil
	}

	added := make([]Line, 0, len(texts))
	for _, text := range texts {
		l.seq++
		line := Line{Seq: l.seq, Kind: kind, Text: text, Time: l.now()}
		l.lines = append(l.lines, line)
		added = append(added, line)
	}
	l.notify()
	return added
}

// Lines returns a copy of the retained lines
func (l *Log) Lines() []Line {
	return l.Since(0)
}

// Since returns retained lines with a sequence number greater than seq
func (l *Log) Since(seq uint64) []Line {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.since(seq)
}

func (l *Log) since(seq uint64) []Line {
	var out []Line
	for _, line := range l.lines {
		if line.Seq > seq {
			out = append(out, line)
		}
	}
	return out
}

// LastSeq returns the sequence number of the most recent line
func (l *Log) LastSeq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// Len returns the number of retained lines
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// Clear drops every retained line and wakes watchers
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.lines = nil
	l.clears++
	l.clearSeq = l.seq
	l.notify()
}

// Watch returns a channel that receives a value whenever the log changes.
// Signals coalesce: one value may stand for any number of appends, so
// watchers read the changes themselves with a Cursor. The channel is
// closed by cancel or Close.
func (l *Log) Watch() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		close(ch)
		return ch, func() {}
	}

	id := l.nextID
	l.nextID++
	l.watchers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if w, ok := l.watchers[id]; ok {
				delete(l.watchers, id)
				close(w)
			}
		})
	}
	return ch, cancel
}

// Close stops the log. Later appends are no-ops and watch channels are
// closed. Retained lines stay readable.
func (l *Log) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	for id, ch := range l.watchers {
		delete(l.watchers, id)
		close(ch)
	}
}

// Closed reports whether Close has been called
func (l *Log) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// notify expects the caller to hold the lock
func (l *Log) notify() {
	for _, ch := range l.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Cursor starts reading the log after seq. Clears that happened before
// this call are not reported.
func (l *Log) Cursor(seq uint64) *Cursor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Cursor{log: l, seq: seq, clears: l.clears}
}

// Cursor reads a log in sequence order without gaps. It is not safe for
// concurrent use.
type Cursor struct {
	log    *Log
	seq    uint64
	clears uint64
}

// Next returns everything appended since the previous call. If the log was
// cleared in between, a single LineClear comes first.
func (c *Cursor) Next() []Line {
	l := c.log
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Line
	if l.clears != c.clears {
		c.clears = l.clears
		out = append(out, Line{Seq: l.clearSeq, Kind: LineClear, Time: l.now()})
		c.seq = max(c.seq, l.clearSeq)
	}
	out = append(out, l.since(c.seq)...)
	c.seq = max(c.seq, l.seq)
	return out
}

// Seq returns the sequence number of the last line returned
func (c *Cursor) Seq() uint64 {
	return c.seq
}
