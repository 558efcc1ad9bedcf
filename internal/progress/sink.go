package progress

import "sync"

// Sink is an unbounded multi-producer/single-consumer update queue
// Producers never block: Emit appends to an internal buffer and a pump
// goroutine forwards updates to the consumer channel in order
// The consumer drains Updates() independently of the worker
type Sink struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []Update
	closed  bool

	out chan Update
}

// NewSink creates a sink and starts its pump goroutine
func NewSink() *Sink {
	s := &Sink{out: make(chan Update)}
	s.cond = sync.NewCond(&s.mu)
	go s.pump()
	return s
}

// Emit enqueues an update without blocking
// Updates emitted after Close are dropped
func (s *Sink) Emit(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = append(s.pending, u)
	s.cond.Signal()
}

// Updates returns the consumer channel
// The channel is closed after Close once all buffered updates are drained
func (s *Sink) Updates() <-chan Update {
	return s.out
}

// Close flushes remaining updates and closes the consumer channel
func (s *Sink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cond.Signal()
	s.mu.Unlock()
}

func (s *Sink) pump() {
	for {
		s.mu.Lock()
		for len(s.pending) == 0 && !s.closed {
			s.cond.Wait()
		}
		batch := s.pending
		s.pending = nil
		closed := s.closed
		s.mu.Unlock()

		for _, u := range batch {
			s.out <- u
		}

		if closed {
			// A final drain: Emit cannot append after closed is set
			close(s.out)
			return
		}
	}
}
