package metrics

import "github.com/san-kum/algoviz/internal/trace"

type Steps struct {
	n int
}

func NewSteps() *Steps { return &Steps{} }

func (s *Steps) Name() string            { return "steps" }
func (s *Steps) Observe(trace.Step, int) { s.n++ }
func (s *Steps) Value() float64          { return float64(s.n) }
func (s *Steps) Reset()                  { s.n = 0 }

// Counter counts steps of one type.
type Counter struct {
	name  string
	typ   trace.StepType
	count int
}

func NewCounter(name string, typ trace.StepType) *Counter {
	return &Counter{
		name: name,
		typ:  typ,
	}
}

func (c *Counter) Name() string {
	return c.name
}

func (c *Counter) Observe(s trace.Step, _ int) {
	if s.StepType() == c.typ {
		c.count++
	}
}

func (c *Counter) Value() float64 {
	return float64(c.count)
}

func (c *Counter) Reset() {
	c.count = 0
}
