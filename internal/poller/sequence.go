package poller

import "sync"

// sequence orders the responses of one endpoint. Every request takes a token when it is
// issued; a response is rendered only if no newer response has been rendered already.
type sequence struct {
	mu       sync.Mutex
	issued   uint64
	rendered uint64
}

func (s *sequence) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// render runs fn if token is newer than the last rendered token. fn runs under the lock so
// that an older response cannot interleave with a newer one.
func (s *sequence) render(token uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.rendered {
		return false
	}
	s.rendered = token
	fn()
	return true
}
