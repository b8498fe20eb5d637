package calculator

import (
	"math"
	"time"
)

// Calculator is a power-gated calculator that keeps a log of every
// successful operation. A Calculator is not safe for concurrent use.
type Calculator struct {
	on      bool
	history []HistoryEntry
	now     func() time.Time
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock sets the source of history timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		c.now = now
	}
}

// New returns a calculator that is switched off with an empty history.
func New(opts ...Option) *Calculator {
	c := &Calculator{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TurnOn powers the calculator on and clears the history, even if it was
// already on.
func (c *Calculator) TurnOn() {
	c.on = true
	c.history = nil
}

// TurnOff powers the calculator off. The history is kept.
func (c *Calculator) TurnOff() {
	c.on = false
}

// IsOn reports whether the calculator accepts operations.
func (c *Calculator) IsOn() bool {
	return c.on
}

// Add returns a+b.
func (c *Calculator) Add(a, b float64) (float64, error) {
	return c.binary(OpAdd, a, b, func(a, b float64) float64 { return a + b })
}

// Subtract returns a-b.
func (c *Calculator) Subtract(a, b float64) (float64, error) {
	return c.binary(OpSubtract, a, b, func(a, b float64) float64 { return a - b })
}

// Multiply returns a*b.
func (c *Calculator) Multiply(a, b float64) (float64, error) {
	return c.binary(OpMultiply, a, b, func(a, b float64) float64 { return a * b })
}

// Divide returns a/b. A zero divisor fails with ErrDivisionByZero.
func (c *Calculator) Divide(a, b float64) (float64, error) {
	if !c.on {
		return 0, opError(OpDivide, ErrNotPowered)
	}
	if b == 0 {
		return 0, opError(OpDivide, ErrDivisionByZero)
	}
	return c.record(OpDivide, a/b, a, b), nil
}

// Sqrt returns the principal square root of a. Negative input fails with
// ErrNegativeRadicand.
func (c *Calculator) Sqrt(a float64) (float64, error) {
	if !c.on {
		return 0, opError(OpSqrt, ErrNotPowered)
	}
	if a < 0 {
		return 0, opError(OpSqrt, ErrNegativeRadicand)
	}
	return c.record(OpSqrt, math.Sqrt(a), a), nil
}

// Power returns base**exp with math.Pow semantics.
func (c *Calculator) Power(base, exp float64) (float64, error) {
	return c.binary(OpPower, base, exp, math.Pow)
}

// Apply runs op by name. b is ignored by unary operations.
func (c *Calculator) Apply(op Operation, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return c.Add(a, b)
	case OpSubtract:
		return c.Subtract(a, b)
	case OpMultiply:
		return c.Multiply(a, b)
	case OpDivide:
		return c.Divide(a, b)
	case OpSqrt:
		return c.Sqrt(a)
	case OpPower:
		return c.Power(a, b)
	default:
		return 0, opError(op, ErrUnknownOperation)
	}
}

// History returns a copy of the operation log, oldest entry first.
func (c *Calculator) History() []HistoryEntry {
	out := make([]HistoryEntry, len(c.history))
	for i, e := range c.history {
		out[i] = e.clone()
	}
	return out
}

// LastResult returns the result of the most recent operation. ok is false
// when the history is empty.
func (c *Calculator) LastResult() (result float64, ok bool) {
	if len(c.history) == 0 {
		return 0, false
	}
	return c.history[len(c.history)-1].Result, true
}

// ClearHistory empties the log without changing the power state.
func (c *Calculator) ClearHistory() {
	c.history = nil
}

func (c *Calculator) binary(op Operation, a, b float64, compute func(a, b float64) float64) (float64, error) {
	if !c.on {
		return 0, opError(op, ErrNotPowered)
	}
	return c.record(op, compute(a, b), a, b), nil
}

func (c *Calculator) record(op Operation, result float64, operands ...float64) float64 {
	c.history = append(c.history, HistoryEntry{
		Operation: op,
		Operands:  operands,
		Result:    result,
		Timestamp: c.now(),
	})
	return result
}
