package calculator

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPowered(t *testing.T, opts ...Option) *Calculator {
	t.Helper()
	c := New(opts...)
	c.TurnOn()
	return c
}

func TestNewCalculatorIsOffWithEmptyHistory(t *testing.T) {
	c := New()

	assert.False(t, c.IsOn())
	assert.Empty(t, c.History())

	_, ok := c.LastResult()
	assert.False(t, ok)
}

func TestOperations(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *Calculator) (float64, error)
		want float64
	}{
		{name: "add", run: func(c *Calculator) (float64, error) { return c.Add(5, 3) }, want: 8},
		{name: "add negatives", run: func(c *Calculator) (float64, error) { return c.Add(-5, -3) }, want: -8},
		{name: "add decimals", run: func(c *Calculator) (float64, error) { return c.Add(0.5, 0.25) }, want: 0.75},
		{name: "subtract", run: func(c *Calculator) (float64, error) { return c.Subtract(10, 4) }, want: 6},
		{name: "subtract to negative", run: func(c *Calculator) (float64, error) { return c.Subtract(3, 10) }, want: -7},
		{name: "multiply", run: func(c *Calculator) (float64, error) { return c.Multiply(4, 5) }, want: 20},
		{name: "multiply negatives", run: func(c *Calculator) (float64, error) { return c.Multiply(-3, -4) }, want: 12},
		{name: "multiply by zero", run: func(c *Calculator) (float64, error) { return c.Multiply(7, 0) }, want: 0},
		{name: "divide", run: func(c *Calculator) (float64, error) { return c.Divide(10, 2) }, want: 5},
		{name: "divide negatives", run: func(c *Calculator) (float64, error) { return c.Divide(-10, -2) }, want: 5},
		{name: "divide fraction", run: func(c *Calculator) (float64, error) { return c.Divide(1, 4) }, want: 0.25},
		{name: "sqrt", run: func(c *Calculator) (float64, error) { return c.Sqrt(16) }, want: 4},
		{name: "sqrt zero", run: func(c *Calculator) (float64, error) { return c.Sqrt(0) }, want: 0},
		{name: "power", run: func(c *Calculator) (float64, error) { return c.Power(2, 10) }, want: 1024},
		{name: "power fractional exponent", run: func(c *Calculator) (float64, error) { return c.Power(9, 0.5) }, want: 3},
		{name: "power negative exponent", run: func(c *Calculator) (float64, error) { return c.Power(2, -2) }, want: 0.25},
		{name: "power zero exponent", run: func(c *Calculator) (float64, error) { return c.Power(5, 0) }, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newPowered(t)

			got, err := tt.run(c)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestOperationsRequirePower(t *testing.T) {
	ops := map[Operation]func(c *Calculator) (float64, error){
		OpAdd:      func(c *Calculator) (float64, error) { return c.Add(1, 2) },
		OpSubtract: func(c *Calculator) (float64, error) { return c.Subtract(1, 2) },
		OpMultiply: func(c *Calculator) (float64, error) { return c.Multiply(1, 2) },
		OpDivide:   func(c *Calculator) (float64, error) { return c.Divide(1, 0) },
		OpSqrt:     func(c *Calculator) (float64, error) { return c.Sqrt(-1) },
		OpPower:    func(c *Calculator) (float64, error) { return c.Power(1, 2) },
	}

	for op, run := range ops {
		t.Run(string(op), func(t *testing.T) {
			c := New()

			_, err := run(c)
			require.ErrorIs(t, err, ErrNotPowered)

			var opErr *OperationError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, op, opErr.Op)
			assert.Empty(t, c.History())
		})
	}
}

func TestTurnOffRejectsOperationsButKeepsHistory(t *testing.T) {
	c := newPowered(t)
	_, err := c.Add(1, 1)
	require.NoError(t, err)

	c.TurnOff()

	_, err = c.Multiply(2, 2)
	assert.ErrorIs(t, err, ErrNotPowered)
	assert.Len(t, c.History(), 1)

	last, ok := c.LastResult()
	require.True(t, ok)
	assert.Equal(t, 2.0, last)
}

func TestDivideByZero(t *testing.T) {
	for _, x := range []float64{0, 1, -1, 1e300, math.Inf(1)} {
		c := newPowered(t)

		_, err := c.Divide(x, 0)
		require.ErrorIs(t, err, ErrDivisionByZero)
		assert.Empty(t, c.History())
	}
}

func TestDivideByNegativeZero(t *testing.T) {
	c := newPowered(t)

	_, err := c.Divide(3, math.Copysign(0, -1))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestSqrtNegativeRadicand(t *testing.T) {
	for _, x := range []float64{-1, -0.0001, -4, math.Inf(-1)} {
		c := newPowered(t)

		_, err := c.Sqrt(x)
		require.ErrorIs(t, err, ErrNegativeRadicand)
		assert.Empty(t, c.History())
	}
}

func TestSqrtSquaresBack(t *testing.T) {
	c := newPowered(t)

	for _, x := range []float64{0, 0.01, 1, 2, 10, 12345.678} {
		got, err := c.Sqrt(x)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.InEpsilon(t, x+1, got*got+1, 1e-9)
	}
}

func TestTurnOnClearsHistory(t *testing.T) {
	c := newPowered(t)
	_, _ = c.Add(1, 2)
	_, _ = c.Sqrt(9)

	c.TurnOn()
	assert.Empty(t, c.History(), "turning on while already on")

	_, _ = c.Add(1, 2)
	c.TurnOff()
	c.TurnOn()
	assert.Empty(t, c.History(), "turning on after off")
	assert.True(t, c.IsOn())
}

func TestHistoryRecordsOperationsInOrder(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := newPowered(t, WithClock(func() time.Time { return at }))

	_, err := c.Add(5, 3)
	require.NoError(t, err)
	_, err = c.Divide(1, 0)
	require.Error(t, err)
	_, err = c.Subtract(3, 10)
	require.NoError(t, err)
	_, err = c.Sqrt(16)
	require.NoError(t, err)
	_, err = c.Power(2, -2)
	require.NoError(t, err)

	want := []HistoryEntry{
		{Operation: OpAdd, Operands: []float64{5, 3}, Result: 8, Timestamp: at},
		{Operation: OpSubtract, Operands: []float64{3, 10}, Result: -7, Timestamp: at},
		{Operation: OpSqrt, Operands: []float64{16}, Result: 4, Timestamp: at},
		{Operation: OpPower, Operands: []float64{2, -2}, Result: 0.25, Timestamp: at},
	}
	assert.Equal(t, want, c.History())

	last, ok := c.LastResult()
	require.True(t, ok)
	assert.Equal(t, 0.25, last)
}

func TestHistoryTimestampsFollowClock(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := 0
	c := newPowered(t, WithClock(func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Second)
	}))

	_, _ = c.Add(1, 1)
	_, _ = c.Add(2, 2)

	h := c.History()
	require.Len(t, h, 2)
	assert.True(t, h[1].Timestamp.After(h[0].Timestamp))
}

func TestHistoryReturnsIndependentCopy(t *testing.T) {
	c := newPowered(t)
	_, _ = c.Multiply(2, 3)

	h := c.History()
	h[0].Result = 99
	h[0].Operands[0] = 42
	_ = append(h, HistoryEntry{Operation: OpAdd})

	fresh := c.History()
	require.Len(t, fresh, 1)
	assert.Equal(t, 6.0, fresh[0].Result)
	assert.Equal(t, []float64{2, 3}, fresh[0].Operands)
}

func TestClearHistoryKeepsPower(t *testing.T) {
	c := newPowered(t)
	_, _ = c.Add(1, 1)

	c.ClearHistory()

	assert.Empty(t, c.History())
	assert.True(t, c.IsOn())
	_, ok := c.LastResult()
	assert.False(t, ok)

	_, err := c.Add(2, 2)
	require.NoError(t, err)
	assert.Len(t, c.History(), 1)
}

func TestHistoryLengthMatchesSuccessfulOperations(t *testing.T) {
	c := newPowered(t)

	successes := 0
	for i := -3; i <= 3; i++ {
		if _, err := c.Sqrt(float64(i)); err == nil {
			successes++
		}
		if _, err := c.Divide(10, float64(i)); err == nil {
			successes++
		}
	}

	assert.Len(t, c.History(), successes)
}

func TestOperationErrorMessage(t *testing.T) {
	c := New()

	_, err := c.Add(1, 2)
	require.Error(t, err)
	assert.Equal(t, "add: calculator is off", err.Error())
}

func TestOperationUnary(t *testing.T) {
	assert.True(t, OpSqrt.Unary())
	assert.False(t, OpPower.Unary())
	assert.False(t, OpAdd.Unary())
}

func TestApplyDispatchesByName(t *testing.T) {
	c := newPowered(t)

	got, err := c.Apply(OpMultiply, 6, 7)
	require.NoError(t, err)
	assert.Equal(t, 42.0, got)

	got, err = c.Apply(OpSqrt, 81, 1000)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got)

	h := c.History()
	require.Len(t, h, 2)
	assert.Equal(t, []float64{81}, h[1].Operands)
}

func TestApplyUnknownOperation(t *testing.T) {
	c := newPowered(t)

	_, err := c.Apply(Operation("modulo"), 5, 2)
	require.ErrorIs(t, err, ErrUnknownOperation)
	assert.Equal(t, "modulo: unknown operation", err.Error())
	assert.Empty(t, c.History())
}

func TestNumberJSON(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 2.5, want: `2.5`},
		{in: math.NaN(), want: `"NaN"`},
		{in: math.Inf(1), want: `"+Inf"`},
		{in: math.Inf(-1), want: `"-Inf"`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			b, err := json.Marshal(Number(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))

			var got Number
			require.NoError(t, json.Unmarshal(b, &got))
			if math.IsNaN(tt.in) {
				assert.True(t, math.IsNaN(float64(got)))
			} else {
				assert.Equal(t, tt.in, float64(got))
			}
		})
	}

	var n Number
	assert.Error(t, json.Unmarshal([]byte(`"Infinity"`), &n))
}

func TestHistoryEntryJSONKeepsNonFiniteResults(t *testing.T) {
	c := newPowered(t, WithClock(func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }))
	_, err := c.Power(-8, 1.0/3)
	require.NoError(t, err)

	b, err := json.Marshal(c.History())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"operation":"power","operands":[-8,0.3333333333333333],"result":"NaN","timestamp":"2024-05-01T00:00:00Z"}]`, string(b))

	var back []HistoryEntry
	require.NoError(t, json.Unmarshal(b, &back))
	require.Len(t, back, 1)
	assert.True(t, math.IsNaN(back[0].Result))
	assert.Equal(t, []float64{-8, 1.0 / 3}, back[0].Operands)
}
