package calculator

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"time"
)

// Operation names a calculator operation as recorded in the history log.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
	OpSqrt     Operation = "sqrt"
	OpPower    Operation = "power"
)

// Unary reports whether the operation takes a single operand.
func (o Operation) Unary() bool {
	return o == OpSqrt
}

// HistoryEntry records one completed operation.
type HistoryEntry struct {
	Operation Operation
	Operands  []float64 // call order; one element for unary operations
	Result    float64
	Timestamp time.Time
}

func (e HistoryEntry) clone() HistoryEntry {
	e.Operands = slices.Clone(e.Operands)
	return e
}

type historyEntryJSON struct {
	Operation Operation `json:"operation"`
	Operands  []Number  `json:"operands"`
	Result    Number    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalJSON encodes operands and result as Numbers, so NaN and infinite
// results stay representable.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(historyEntryJSON{
		Operation: e.Operation,
		Operands:  numbers(e.Operands),
		Result:    Number(e.Result),
		Timestamp: e.Timestamp,
	})
}

func (e *HistoryEntry) UnmarshalJSON(b []byte) error {
	var raw historyEntryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	operands := make([]float64, len(raw.Operands))
	for i, n := range raw.Operands {
		operands[i] = float64(n)
	}
	*e = HistoryEntry{
		Operation: raw.Operation,
		Operands:  operands,
		Result:    float64(raw.Result),
		Timestamp: raw.Timestamp,
	}
	return nil
}

// Number is a float64 whose JSON form spells non-finite values as the
// strings "NaN", "+Inf" and "-Inf". Finite values are plain JSON numbers.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(f)
}

func (n *Number) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		switch s {
		case "NaN":
			*n = Number(math.NaN())
		case "+Inf":
			*n = Number(math.Inf(1))
		case "-Inf":
			*n = Number(math.Inf(-1))
		default:
			return fmt.Errorf("invalid number %q", s)
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

func numbers(fs []float64) []Number {
	out := make([]Number, len(fs))
	for i, f := range fs {
		out[i] = Number(f)
	}
	return out
}
