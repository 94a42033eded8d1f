package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/jammie/rdf/internal/literal"
	"github.com/jammie/rdf/internal/store"
)

// Harness runs scenarios against a store.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Build every literal and store it, in name order
// 2. Verify the canonical round trip of each valid literal
// 3. Evaluate the checks in order
// 4. Replay the batch and compare the stored columns
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})))
}

// RunContext is Run with a caller supplied context and logger.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	st, err := store.Open(":memory:", store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{store: st, logger: logger}

	result := NewResult()
	lits, err := h.putLiterals(ctx, scenario, result)
	if err != nil {
		return nil, fmt.Errorf("failed to store literals: %w", err)
	}

	for i, c := range scenario.Checks {
		actual, checkErr := evaluateCheck(lits, c)
		subjects := c.Literals
		if c.Literal != "" {
			subjects = []string{c.Literal}
		}
		result.AddCheckTrace(c.Type, subjects, actual, checkErr == nil)
		if checkErr != nil {
			h.logger.Debug("check failed", "index", i, "type", c.Type, "error", checkErr)
			result.AddError(fmt.Sprintf("checks[%d]: %v", i, checkErr))
		}
	}

	if err := h.verifyBatch(ctx, scenario.BatchID(), result); err != nil {
		return nil, err
	}

	return result, nil
}

// putLiterals builds and stores each literal, recording a put trace and
// any round-trip failure.
func (h *Harness) putLiterals(ctx context.Context, scenario *Scenario, result *Result) (map[string]literal.Literal, error) {
	batch := scenario.BatchID()
	lits := make(map[string]literal.Literal, len(scenario.Literals))

	for _, name := range scenario.literalNames() {
		lit := scenario.Literals[name].Build()
		lits[name] = lit

		if _, err := h.store.PutLiteral(ctx, batch, lit); err != nil {
			return nil, fmt.Errorf("literal %q: %w", name, err)
		}

		canonical, _ := literal.Canonical(lit)
		result.AddPutTrace(name, lit.Kind().String(), lit.String(), lit.Valid(), canonical)

		if err := checkCanonicalRoundTrip(name, lit); err != nil {
			result.AddError(err.Error())
		}
	}

	return lits, nil
}

// verifyBatch fills the batch hash and reports replay drift as errors.
func (h *Harness) verifyBatch(ctx context.Context, batch string, result *Result) error {
	state, err := h.store.GetBatchState(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to read batch state: %w", err)
	}
	result.BatchHash = state.Hash

	drifts, err := h.store.ReplayBatch(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to replay batch: %w", err)
	}
	for _, d := range drifts {
		result.AddError(fmt.Sprintf("replay drift in %s (seq %d): stored %q, fresh %q",
			d.Field, d.Record.Seq, d.Stored, d.Fresh))
	}
	return nil
}
