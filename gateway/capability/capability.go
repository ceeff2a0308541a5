// Package capability resolves which optional verification backends are
// available at process start and freezes the outcome in an immutable Table.
// Availability is decided exactly once; there is no re-probing and no runtime
// toggle, so concurrent dispatches can read the table without
// synchronization.
package capability

import (
	"context"
	"log/slog"
)

// ID names one optional backend group.
type ID string

const (
	CodeSafety  ID = "code_safety"
	SQLSafety   ID = "sql_safety"
	Finance     ID = "finance"
	Commerce    ID = "commerce"
	Legal       ID = "legal"
	Attestation ID = "attestation"
)

// Probe acquires one backend group. Acquire is invoked exactly once during
// Resolve; returning an error marks the capability unavailable without
// affecting any other probe.
type Probe struct {
	ID      ID
	Acquire func(ctx context.Context) (any, error)
}

type entry struct {
	available bool
	handle    any
}

// Table is the immutable capability map shared by all dispatches. The zero
// value reports every capability unavailable.
type Table struct {
	entries map[ID]entry
	order   []ID
}

// Resolve runs every probe once and records the outcome. Each unavailable
// backend is logged as a single warning; acquisition failures never abort
// resolution.
func Resolve(ctx context.Context, probes []Probe, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Table{entries: make(map[ID]entry, len(probes))}
	for _, probe := range probes {
		t.order = append(t.order, probe.ID)
		handle, err := probe.Acquire(ctx)
		if err != nil {
			logger.Warn("verification backend unavailable, dependent tools disabled",
				"capability", string(probe.ID), "error", err)
			t.entries[probe.ID] = entry{}
			continue
		}
		t.entries[probe.ID] = entry{available: true, handle: handle}
	}
	return t
}

// Available reports whether the backend group was acquired at startup.
func (t *Table) Available(id ID) bool {
	if t == nil {
		return false
	}
	return t.entries[id].available
}

// Handle returns the opaque backend handle for an available capability.
func (t *Table) Handle(id ID) (any, bool) {
	if t == nil {
		return nil, false
	}
	e := t.entries[id]
	return e.handle, e.available
}

// IDs returns the probed capability identifiers in probe order. The slice is
// a copy.
func (t *Table) IDs() []ID {
	if t == nil {
		return nil
	}
	out := make([]ID, len(t.order))
	copy(out, t.order)
	return out
}
