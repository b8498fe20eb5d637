package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"stateful-calculator/internal/handlers"
	"stateful-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves one shared Calculator over HTTP. Every request holds mu for
// its whole interaction with the calculator, so a chain or a power toggle is
// never interleaved with another request.
type Handler struct {
	mu   sync.Mutex
	calc *Calculator
}

func NewHandler(calc *Calculator) *Handler {
	return &Handler{calc: calc}
}

// statusFor maps calculator errors onto HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, ErrNotPowered) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// ---------------------------------------------------------------------------
// Handlers: power state
// ---------------------------------------------------------------------------

// TurnOn handles POST /calculator/power/on. The history is cleared.
func (h *Handler) TurnOn(w http.ResponseWriter, r *http.Request) {
	h.setPower(w, r, true)
}

// TurnOff handles POST /calculator/power/off.
func (h *Handler) TurnOff(w http.ResponseWriter, r *http.Request) {
	h.setPower(w, r, false)
}

func (h *Handler) setPower(w http.ResponseWriter, r *http.Request, on bool) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.power",
		trace.WithAttributes(attribute.Bool("calculator.power.on", on)),
	)
	defer span.End()

	h.mu.Lock()
	wasOn := h.calc.IsOn()
	cleared := len(h.calc.history)
	if on {
		h.calc.TurnOn()
	} else {
		h.calc.TurnOff()
	}
	h.observeState(ctx)
	h.mu.Unlock()

	if on {
		span.AddEvent("history.cleared", trace.WithAttributes(attribute.Int("entries", cleared)))
	}
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator power changed",
		zap.Bool("was_on", wasOn),
		zap.Bool("on", on),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, PowerResponse{On: on})
}

// PowerState handles GET /calculator/power.
func (h *Handler) PowerState(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	on := h.calc.IsOn()
	h.mu.Unlock()

	handlers.WriteJSON(w, http.StatusOK, PowerResponse{On: on})
}

// ---------------------------------------------------------------------------
// Handlers: operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, OpAdd)
}

// Subtract handles POST /calculator/subtract
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, OpSubtract)
}

// Multiply handles POST /calculator/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, OpMultiply)
}

// Divide handles POST /calculator/divide
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, OpDivide)
}

// Power handles POST /calculator/power
func (h *Handler) Power(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, OpPower)
}

// Sqrt handles POST /calculator/sqrt
func (h *Handler) Sqrt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startOpSpan(r.Context(), OpSqrt)
	defer span.End()

	var req UnaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(ctx, span, w, OpSqrt, "invalid request body", err, http.StatusBadRequest)
		return
	}
	if req.A == nil {
		h.fail(ctx, span, w, OpSqrt, "missing operand", errors.New("a is required"), http.StatusBadRequest)
		return
	}

	h.runOp(ctx, span, w, OpSqrt, *req.A, 0)
}

func (h *Handler) handleBinaryOp(w http.ResponseWriter, r *http.Request, op Operation) {
	ctx, span := startOpSpan(r.Context(), op)
	defer span.End()

	var req BinaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(ctx, span, w, op, "invalid request body", err, http.StatusBadRequest)
		return
	}
	if req.A == nil || req.B == nil {
		h.fail(ctx, span, w, op, "missing operand", errors.New("a and b are required"), http.StatusBadRequest)
		return
	}

	h.runOp(ctx, span, w, op, *req.A, *req.B)
}

func startOpSpan(ctx context.Context, op Operation) (context.Context, trace.Span) {
	return tracer.Start(ctx, fmt.Sprintf("calculator.%s", op),
		trace.WithAttributes(
			attribute.String("calculator.operation", string(op)),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
}

// runOp performs one operation against the shared calculator and writes the
// response. It covers span attributes and events, metrics and the completion
// log for every single-step operation.
func (h *Handler) runOp(ctx context.Context, span trace.Span, w http.ResponseWriter, op Operation, a, b float64) {
	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		h.fail(ctx, span, w, op, "invalid numeric input", fmt.Errorf("a=%g b=%g", a, b), http.StatusBadRequest)
		return
	}

	operands := []float64{a, b}
	if op.Unary() {
		operands = operands[:1]
	}
	span.SetAttributes(attribute.Float64Slice("calculator.operands", operands))

	start := time.Now()
	h.mu.Lock()
	result, err := h.calc.Apply(op, a, b)
	h.observeState(ctx)
	h.mu.Unlock()
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		h.fail(ctx, span, w, op, err.Error(), err, statusFor(err))
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", string(op)))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	observability.LoggerWithTrace(ctx).Info("calculator operation completed",
		zap.String("operation", string(op)),
		zap.Float64s("operands", operands),
		zap.Float64("result", result),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, OperationResponse{
		Operation: op,
		Operands:  numbers(operands),
		Result:    Number(result),
	})
}

func (h *Handler) fail(ctx context.Context, span trace.Span, w http.ResponseWriter, op Operation, msg string, err error, status int) {
	observability.RecordError(ctx, span, observability.LoggerWithTrace(ctx), errorCounter, string(op), msg, err, status, w)
}

// observeState records the power and history gauges. Callers hold mu.
func (h *Handler) observeState(ctx context.Context) {
	var on int64
	if h.calc.IsOn() {
		on = 1
	}
	powerGauge.Record(ctx, on)
	historyGauge.Record(ctx, int64(len(h.calc.history)))
}

// ---------------------------------------------------------------------------
// Handler: chained operations
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. It runs a sequence of operations on a
// running total, creating a child span for every step. Each step goes through
// the shared calculator, so completed steps land in its history even when a
// later step fails.
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "no steps provided", fmt.Errorf("steps array is empty"), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("chain.initial", req.Initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Float64("initial", req.Initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.observeState(ctx)

	running := req.Initial
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		op := Operation(step.Op)

		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op),
				attribute.Float64("chain.step.input", running),
				attribute.Float64("chain.step.value", step.Value),
			),
		)

		stepStart := time.Now()
		prev := running
		result, err := h.calc.Apply(op, running, step.Value)
		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		if err != nil {
			err = fmt.Errorf("step %d: %w", i, err)

			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			span.SetAttributes(attribute.Int("chain.failed_step", i))
			observability.RecordError(ctx, span, logger, errorCounter, string(op), fmt.Sprintf("failed at step %d", i), err, statusFor(err), w)
			return
		}
		running = result

		attrs := metric.WithAttributes(attribute.String("operation", string(op)))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, stepElapsed, attrs)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.Float64("input", prev),
			attribute.Float64("result", running),
		))
		stepSpan.SetAttributes(attribute.Float64("chain.step.result", running))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("chain step completed",
			zap.Int("step", i),
			zap.String("operation", step.Op),
			zap.Float64("input", prev),
			zap.Float64("value", step.Value),
			zap.Float64("result", running),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:     op,
			Value:  Number(step.Value),
			Result: Number(running),
		})
	}

	resultGauge.Record(ctx, running, metric.WithAttributes(attribute.String("operation", "chain")))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", running),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", running))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", req.Initial),
		zap.Float64("result", running),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: Number(req.Initial),
		Steps:   results,
		Result:  Number(running),
	})
}

// ---------------------------------------------------------------------------
// Handlers: history
// ---------------------------------------------------------------------------

// History handles GET /calculator/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	entries := h.calc.History()
	h.mu.Unlock()

	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{
		Count:   len(entries),
		Entries: entries,
	})
}

// ClearHistory handles DELETE /calculator/history.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.mu.Lock()
	cleared := len(h.calc.history)
	h.calc.ClearHistory()
	h.observeState(ctx)
	h.mu.Unlock()

	observability.LoggerWithTrace(ctx).Info("calculator history cleared",
		zap.Int("entries", cleared),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// LastResult handles GET /calculator/history/last.
func (h *Handler) LastResult(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	result, ok := h.calc.LastResult()
	h.mu.Unlock()

	var resp LastResultResponse
	if ok {
		n := Number(result)
		resp.Result = &n
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}
