package capability

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRecordsEveryProbeOutcome(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	probes := []Probe{
		{ID: CodeSafety, Acquire: func(context.Context) (any, error) { return "code-handle", nil }},
		{ID: Finance, Acquire: func(context.Context) (any, error) { return nil, fmt.Errorf("license missing") }},
		{ID: Legal, Acquire: func(context.Context) (any, error) { return "legal-handle", nil }},
	}

	table := Resolve(context.Background(), probes, logger)

	assert.True(t, table.Available(CodeSafety))
	assert.False(t, table.Available(Finance))
	assert.True(t, table.Available(Legal))

	handle, ok := table.Handle(CodeSafety)
	assert.True(t, ok)
	assert.EqualValues(t, "code-handle", handle)

	_, ok = table.Handle(Finance)
	assert.False(t, ok)

	// One warning for the one failed acquisition.
	assert.EqualValues(t, 1, strings.Count(buf.String(), "backend unavailable"))
	assert.Contains(t, buf.String(), "license missing")

	assert.EqualValues(t, []ID{CodeSafety, Finance, Legal}, table.IDs())
}

func TestResolveFailureDoesNotBlockLaterProbes(t *testing.T) {
	invoked := map[ID]int{}
	probes := []Probe{
		{ID: CodeSafety, Acquire: func(context.Context) (any, error) { invoked[CodeSafety]++; return nil, fmt.Errorf("boom") }},
		{ID: SQLSafety, Acquire: func(context.Context) (any, error) { invoked[SQLSafety]++; return "sql", nil }},
	}

	table := Resolve(context.Background(), probes, slog.New(slog.NewTextHandler(&strings.Builder{}, nil)))

	assert.EqualValues(t, 1, invoked[CodeSafety])
	assert.EqualValues(t, 1, invoked[SQLSafety])
	assert.True(t, table.Available(SQLSafety))
}

func TestNilAndUnknownLookups(t *testing.T) {
	var table *Table
	assert.False(t, table.Available(Commerce))
	_, ok := table.Handle(Commerce)
	assert.False(t, ok)
	assert.Nil(t, table.IDs())

	empty := Resolve(context.Background(), nil, nil)
	assert.False(t, empty.Available(Attestation))
}
