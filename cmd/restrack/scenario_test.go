package main

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rcerrors "github.com/wippyai/resource-core/errors"
)

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind rcerrors.Kind
	}{
		{"malformed", "resources: [", rcerrors.KindInvalidInput},
		{"missing kind", "resources: [{name: a}]", rcerrors.KindInvalidInput},
		{"missing name", "resources: [{kind: Buffer}]", rcerrors.KindInvalidInput},
		{"duplicate", "resources: [{name: a, kind: Buffer}, {name: a, kind: Buffer}]", rcerrors.KindDuplicateKey},
		{"forward reference", "resources: [{name: a, kind: Buffer, depends_on: [b]}, {name: b, kind: Buffer}]", rcerrors.KindNotFound},
		{"unknown member", "groups: [{name: g, members: [x]}]", rcerrors.KindNotFound},
		{"negative capacity", "groups: [{name: g, capacity: -1}]", rcerrors.KindInvalidInput},
		{"unknown action", "resources: [{name: a, kind: Buffer}]\nsteps: [{action: explode, target: a}]", rcerrors.KindInvalidInput},
		{"unknown group", "steps: [{action: seal, group: g}]", rcerrors.KindNotFound},
		{"unknown expectation", "resources: [{name: a, kind: Buffer}]\nsteps: [{action: dispose, target: a, expect: boom}]", rcerrors.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, rcerrors.IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario("testdata/nope.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, rcerrors.ErrInvalidInput)
}

func TestKindFor_Reuses(t *testing.T) {
	a := kindFor("Widget")
	b := kindFor("Widget")
	assert.Equal(t, a, b)
	assert.Equal(t, "Unnamed Widget", a.DefaultName())
	assert.NotEqual(t, a, kindFor("Gadget"))
}

func TestRun_Level(t *testing.T) {
	sc, err := LoadScenario("testdata/level.yaml")
	require.NoError(t, err)
	assert.Equal(t, "level-load", sc.Name)

	report, err := Run(context.Background(), sc, RunOptions{Metrics: true})
	require.NoError(t, err)

	for _, s := range report.Steps {
		assert.True(t, s.Passed, "step %d %s: %v", s.Index, describeStep(s.Step), s.Err)
	}
	assert.Zero(t, report.Failed())
	assert.Zero(t, report.Edges)

	require.Len(t, report.Entries, 7)
	for _, e := range report.Entries {
		assert.True(t, e.Disposed, e.Name)
	}

	var groupsCreated float64
	for _, m := range report.Metrics {
		if m.Name == "resourcecore_events_total" && m.Labels == "event=group_created" {
			groupsCreated = m.Value
		}
	}
	assert.Equal(t, float64(2), groupsCreated)
}

func TestRun_Failing(t *testing.T) {
	sc, err := LoadScenario("testdata/failing.yaml")
	require.NoError(t, err)

	report, err := Run(context.Background(), sc, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Failed())
	assert.Empty(t, report.Metrics)

	assert.ErrorIs(t, report.Steps[0].Err, rcerrors.ErrPrematureDisposal)
	assert.EqualError(t, report.Steps[1].Err, "b: dependents = 0, want 3")

	var out bytes.Buffer
	printer{w: &out}.Render(report)
	assert.Contains(t, out.String(), "wrong-expectation")
	assert.Contains(t, out.String(), "FAIL  0 dispose a")
	assert.Contains(t, out.String(), "2 steps, 2 failed, 1 edges left")
}

func TestRun_Cancelled(t *testing.T) {
	sc, err := LoadScenario("testdata/level.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, sc, RunOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAll(t *testing.T) {
	failed, err := run(context.Background(), []string{"testdata/level.yaml", "testdata/failing.yaml"}, RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, failed)

	_, err = run(context.Background(), []string{"testdata/level.yaml", "testdata/nope.yaml"}, RunOptions{})
	assert.Error(t, err)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInteractiveModel(t *testing.T) {
	m := newInteractiveModel("testdata/level.yaml")
	assert.Equal(t, "Loading scenario...", m.View())

	m.Update(m.loadScenario())
	require.NoError(t, m.err)
	require.Len(t, m.entries, 7)
	assert.Contains(t, m.View(), "Resource Tracker")

	// tex is still needed by mat and the assets group
	m.Update(key("d"))
	assert.Contains(t, m.status, "premature")
	assert.False(t, m.entries[0].Disposed)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.status, "Material")

	m.Update(key("r"))
	require.Equal(t, stateRename, m.state)
	m.input.SetValue("bricks")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateBrowse, m.state)
	assert.Equal(t, "bricks", m.entries[0].Display)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.rt.IsClosed())
	assert.NoError(t, m.closeErr)
}
