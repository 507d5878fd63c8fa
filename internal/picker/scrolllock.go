package picker

import (
	"fmt"

	"cloudeng.io/errors"
)

// Scroller is a node of the host layout that may scroll. ScrollParent
// returns nil at the root.
type Scroller interface {
	ScrollParent() Scroller
	ScrollEnabled() bool
	SetScrollEnabled(enabled bool) error
}

type lockedScroller struct {
	node Scroller
	prev bool
}

// ScrollLock suspends scrolling on every ancestor of a scope while leaving
// the scope itself and its siblings scrollable. Apply and Dispose are both
// idempotent.
type ScrollLock struct {
	locked  []lockedScroller
	applied bool
}

func (l *ScrollLock) Applied() bool { return l.applied }

// Apply locks the ancestors of scope. The returned disposer is equivalent to
// calling Dispose. When locking an ancestor fails the lock stays applied for
// the ancestors already locked, so the caller must still dispose it.
func (l *ScrollLock) Apply(scope Scroller) (func() error, error) {
	if l.applied {
		return l.Dispose, nil
	}
	if scope == nil {
		return l.Dispose, nil
	}
	l.applied = true

	errs := &errors.M{}
	for node := scope.ScrollParent(); node != nil; node = node.ScrollParent() {
		prev := node.ScrollEnabled()
		if err := node.SetScrollEnabled(false); err != nil {
			errs.Append(fmt.Errorf("lock scroll: %w", err))
			continue
		}
		l.locked = append(l.locked, lockedScroller{node: node, prev: prev})
	}
	return l.Dispose, errs.Err()
}

// Dispose restores every locked ancestor to its state before Apply. A
// failing or panicking restore does not stop the others; failures are
// returned together.
func (l *ScrollLock) Dispose() error {
	if !l.applied {
		return nil
	}
	locked := l.locked
	l.locked = nil
	l.applied = false

	errs := &errors.M{}
	for i := len(locked) - 1; i >= 0; i-- {
		errs.Append(restore(locked[i]))
	}
	return errs.Err()
}

func restore(ls lockedScroller) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("restore scroll: panic: %v", r)
		}
	}()
	if err := ls.node.SetScrollEnabled(ls.prev); err != nil {
		return fmt.Errorf("restore scroll: %w", err)
	}
	return nil
}
