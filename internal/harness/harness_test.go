package harness

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalScenario() *Scenario {
	return &Scenario{
		Name:        "minimal",
		Description: "Minimal test scenario",
		Literals: map[string]LiteralSpec{
			"a": {Value: "14:30:00-05:00"},
			"b": {Value: "19:30:00Z"},
		},
		Checks: []Check{
			{Type: CheckEqual, Literals: []string{"a", "b"}},
			{Type: CheckCanonical, Literal: "a", Expect: strPtr("19:30:00Z")},
		},
	}
}

func TestRun_MinimalScenario(t *testing.T) {
	result, err := Run(minimalScenario())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	assert.Len(t, result.BatchHash, 64)

	// Two puts then two checks.
	require.Len(t, result.Trace, 4)
	assert.Equal(t, EventPut, result.Trace[0].Type)
	assert.Equal(t, "a", result.Trace[0].Literal)
	assert.Equal(t, "19:30:00Z", result.Trace[0].Canonical)
	assert.Equal(t, EventPut, result.Trace[1].Type)
	assert.Equal(t, EventCheck, result.Trace[2].Type)
	assert.Equal(t, EventCheck, result.Trace[3].Type)
}

func TestRun_TraceOrder(t *testing.T) {
	scenario := minimalScenario()
	scenario.Literals["0_first"] = LiteralSpec{Value: "00:00:00"}

	result, err := Run(scenario)
	require.NoError(t, err)

	for i, ev := range result.Trace {
		assert.Equal(t, int64(i+1), ev.Seq)
	}
	assert.Equal(t, "0_first", result.Trace[0].Literal)
	assert.Equal(t, "a", result.Trace[1].Literal)
	assert.Equal(t, "b", result.Trace[2].Literal)
}

func TestRun_FailingCheck(t *testing.T) {
	scenario := minimalScenario()
	scenario.Checks = append(scenario.Checks, Check{
		Type:     CheckNotEqual,
		Literals: []string{"a", "b"},
	})

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "checks[2]")
	assert.Contains(t, result.Errors[0], "Check failed: not_equal a, b")

	last := result.Trace[len(result.Trace)-1]
	assert.Equal(t, "true", last.Actual)
	assert.False(t, last.Pass)
}

func TestRun_InvalidLiteralsAreStored(t *testing.T) {
	scenario := &Scenario{
		Name:        "invalid",
		Description: "Invalid literals still run",
		Literals: map[string]LiteralSpec{
			"garbage": {Value: "not a time"},
			"short":   {Value: "10:00"},
		},
		Checks: []Check{
			{Type: CheckCanonicalizeError, Literal: "garbage"},
			{Type: CheckValid, Literal: "short", Valid: boolPtr(false)},
			{Type: CheckCanonical, Literal: "short", Expect: strPtr("10:00:00")},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	assert.False(t, result.Trace[0].Valid)
	assert.Empty(t, result.Trace[0].Canonical)
	assert.Equal(t, "10:00:00", result.Trace[1].Canonical)
}

func TestRun_Deterministic(t *testing.T) {
	first, err := Run(minimalScenario())
	require.NoError(t, err)
	second, err := Run(minimalScenario())
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, first.BatchHash, second.BatchHash)
}

func TestRun_BatchHashIgnoresBatchName(t *testing.T) {
	a := minimalScenario()
	b := minimalScenario()
	b.Batch = "elsewhere"

	ra, err := Run(a)
	require.NoError(t, err)
	rb, err := Run(b)
	require.NoError(t, err)

	assert.Equal(t, ra.BatchHash, rb.BatchHash)
}

func TestRunContext_LogsToGivenLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	scenario := minimalScenario()
	scenario.Checks = append(scenario.Checks, Check{
		Type:    CheckString,
		Literal: "b",
		Expect:  strPtr("nope"),
	})

	result, err := RunContext(context.Background(), scenario, logger)
	require.NoError(t, err)
	assert.False(t, result.Pass)

	assert.Contains(t, buf.String(), "literal stored")
	assert.Contains(t, buf.String(), "check failed")
}

func TestRunContext_NilLogger(t *testing.T) {
	result, err := RunContext(context.Background(), minimalScenario(), nil)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestResult_AddError(t *testing.T) {
	result := NewResult()
	assert.True(t, result.Pass)

	result.AddError("boom")
	assert.False(t, result.Pass)
	assert.Equal(t, []string{"boom"}, result.Errors)
}

func TestResult_AddTrace(t *testing.T) {
	result := NewResult()
	result.AddPutTrace("a", "time", "10:00:00", true, "10:00:00")
	result.AddCheckTrace(CheckValid, []string{"a"}, "true", true)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, int64(2), result.Trace[1].Seq)
	assert.Equal(t, EventCheck, result.Trace[1].Type)
}

func TestRun_ExampleScenarios(t *testing.T) {
	for _, path := range []string{
		"../../testdata/scenarios/time_basics.yaml",
		"../../testdata/scenarios/time_zones.cue",
	} {
		t.Run(path, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}
