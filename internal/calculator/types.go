package calculator

// BinaryRequest is the JSON body for add, subtract, multiply, divide and power.
// Pointers let the handler reject a missing operand instead of reading it as 0.
type BinaryRequest struct {
	A *float64 `json:"a"`
	B *float64 `json:"b"`
}

// UnaryRequest is the JSON body for sqrt.
type UnaryRequest struct {
	A *float64 `json:"a"`
}

// OperationResponse is the JSON response for a single successful operation.
type OperationResponse struct {
	Operation Operation `json:"operation"`
	Operands  []Number  `json:"operands"`
	Result    Number    `json:"result"`
}

// PowerResponse reports the power state.
type PowerResponse struct {
	On bool `json:"on"`
}

// HistoryResponse is the JSON response for GET /calculator/history.
type HistoryResponse struct {
	Count   int            `json:"count"`
	Entries []HistoryEntry `json:"entries"`
}

// LastResultResponse carries a null result when the history is empty.
type LastResultResponse struct {
	Result *Number `json:"result"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string  `json:"op"`    // any Operation name
	Value float64 `json:"value"` // right-hand operand; ignored by sqrt
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial float64     `json:"initial"`
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial Number        `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  Number        `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     Operation `json:"op"`
	Value  Number    `json:"value"`
	Result Number    `json:"result"`
}
