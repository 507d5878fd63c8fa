package picker

// Slot holds at most one live subscriber. Replacing the subscriber cancels
// the previous one, and a stale cancel func never touches its successor.
type Slot[T any] struct {
	gen uint64
	fn  func(T)
}

// Replace installs fn as the only subscriber and returns its cancel func.
func (s *Slot[T]) Replace(fn func(T)) (cancel func()) {
	s.gen++
	s.fn = fn
	gen := s.gen
	return func() {
		if s.gen == gen {
			s.fn = nil
		}
	}
}

// Notify delivers v to the current subscriber, if any.
func (s *Slot[T]) Notify(v T) bool {
	if s.fn == nil {
		return false
	}
	s.fn(v)
	return true
}

func (s *Slot[T]) Cancel() {
	s.gen++
	s.fn = nil
}

func (s *Slot[T]) Active() bool {
	return s.fn != nil
}
