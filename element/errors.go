package element

import (
	"errors"
	"fmt"
)

// ErrDegenerateElement matches every *DegenerateElementError via errors.Is
var ErrDegenerateElement = errors.New("element: degenerate element")

// DegenerateElementError reports a bar whose end nodes coincide (L = 0)
type DegenerateElementError struct {
	Element int
	Nodes   [2]int
	Reason  string
}

func (e *DegenerateElementError) Error() string {
	return fmt.Sprintf("element: degenerate element %d (nodes %d, %d): %s",
		e.Element, e.Nodes[0], e.Nodes[1], e.Reason)
}

func (e *DegenerateElementError) Unwrap() error { return ErrDegenerateElement }
