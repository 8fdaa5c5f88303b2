package expr

import (
	"errors"
	"fmt"
)

// ErrParamOutOfRange is returned when a Parameter index has no value in the
// evaluation context.
var ErrParamOutOfRange = errors.New("parameter index out of range")

// Context holds the ordered parameter values consulted by ParamNode.
// It is append-only and not safe for concurrent mutation.
type Context struct {
	params []float64
}

// NewContext returns a context holding the given parameter values.
func NewContext(params ...float64) *Context {
	c := &Context{}
	for _, v := range params {
		c.Push(v)
	}
	return c
}

// Push appends a parameter value; it becomes index Len()-1.
func (c *Context) Push(v float64) {
	c.params = append(c.params, v)
}

// Len returns the number of parameters.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.params)
}

// Param returns the value at index i.
func (c *Context) Param(i int) (float64, error) {
	if i < 0 || i >= c.Len() {
		return 0, fmt.Errorf("P%d with %d parameters: %w", i, c.Len(), ErrParamOutOfRange)
	}
	return c.params[i], nil
}
