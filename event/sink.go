package event

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Sink receives rendered event lines.
type Sink interface {
	// Emit publishes a standard NEP-171 event.
	Emit(ev *Event)

	// EmitParams publishes a non-standard activity line.
	EmitParams(typ string, params any)
}

// LogSink writes event lines through a logrus logger at info level.
type LogSink struct {
	log *logrus.Logger
}

var _ Sink = (*LogSink)(nil)

// NewLogSink wraps a logrus logger as an event sink. A nil logger uses the
// logrus standard logger.
func NewLogSink(log *logrus.Logger) *LogSink {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogSink{log: log}
}

func (s *LogSink) Emit(ev *Event) {
	s.log.Info(ev.Line())
}

func (s *LogSink) EmitParams(typ string, params any) {
	s.log.Info(ParamsLine(typ, params))
}

// MemSink collects emitted lines in memory. Test helper.
type MemSink struct {
	mu    sync.Mutex
	lines []string
}

var _ Sink = (*MemSink)(nil)

// NewMemSink returns an empty in-memory sink.
func NewMemSink() *MemSink { return &MemSink{} }

func (s *MemSink) Emit(ev *Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, ev.Line())
}

func (s *MemSink) EmitParams(typ string, params any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, ParamsLine(typ, params))
}

// Lines returns a copy of every line emitted so far.
func (s *MemSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// Reset discards collected lines.
func (s *MemSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}
