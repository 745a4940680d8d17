package conda

import (
	"errors"
	"fmt"
)

// strategy is one step of a fallback chain.
type strategy[T any] struct {
	name string
	run  func() (T, error)
}

// firstSuccess runs the strategies in order and returns the first successful value.
// Failures, including panics, are logged and move on to the next strategy.
// When every strategy fails the zero value and false are returned.
func firstSuccess[T any](logger Logger, strategies ...strategy[T]) (T, bool) {
	for _, s := range strategies {
		v, err := s.try()
		if err == nil {
			logger.Debugf("Resolved using %s", s.name)
			return v, true
		}

		if errors.Is(err, ErrUnavailable) {
			logger.Debugf("Skipping %s: %s", s.name, err)
		} else {
			logger.Debugf("Failed resolving using %s: %s", s.name, err)
		}
	}

	var zero T
	return zero, false
}

func (s strategy[T]) try() (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return s.run()
}
