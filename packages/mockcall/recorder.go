package mockcall

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// Recorder exposes the calls made to tracked methods.
type Recorder interface {
	// CallCount returns how many times method was invoked.
	CallCount(method string) int
	// Args returns the arguments of the n-th call (zero based) of method.
	Args(method string, n int) ([]any, bool)
}

type mockRecorder struct {
	m *mock.Mock
}

// FromMock adapts a testify mock to a Recorder.
func FromMock(m *mock.Mock) Recorder {
	return mockRecorder{m: m}
}

func (r mockRecorder) CallCount(method string) int {
	count := 0
	for _, c := range r.m.Calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

func (r mockRecorder) Args(method string, n int) ([]any, bool) {
	i := 0
	for _, c := range r.m.Calls {
		if c.Method != method {
			continue
		}
		if i == n {
			return []any(c.Arguments), true
		}
		i++
	}
	return nil, false
}

// Spy records calls of hand written fakes. It is safe for concurrent use.
type Spy struct {
	mu    sync.Mutex
	calls map[string][][]any
}

// Record stores a call of method with args.
func (s *Spy) Record(method string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string][][]any)
	}
	s.calls[method] = append(s.calls[method], append([]any(nil), args...))
}

// CallCount implements Recorder.
func (s *Spy) CallCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls[method])
}

// Args implements Recorder.
func (s *Spy) Args(method string, n int) ([]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := s.calls[method]
	if n < 0 || n >= len(calls) {
		return nil, false
	}
	return append([]any(nil), calls[n]...), true
}

// Reset forgets every recorded call.
func (s *Spy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}
