package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/resource-core/internal/native"
	"github.com/wippyai/resource-core/metrics"
	"github.com/wippyai/resource-core/resource"
	"github.com/wippyai/resource-core/runtime"
)

var buffers = resource.RegisterKind("Buffer", "Unnamed Buffer")

func TestObserver_CountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := metrics.NewObserver(reg)
	require.NoError(t, err)

	rt, err := runtime.New(runtime.DefaultConfig())
	require.NoError(t, err)
	rt.Subscribe(obs)

	res := native.New(rt.Tracker(), rt.Notifier())
	a, err := res.Create(buffers, "a")
	require.NoError(t, err)
	b, err := res.Create(buffers, "b", a)
	require.NoError(t, err)

	g, err := rt.CreateGroup(true, "")
	require.NoError(t, err)
	require.NoError(t, g.Add(b))

	assert.Error(t, a.Dispose())

	expected := `
# HELP resourcecore_live_dependency_edges Dependency edges currently registered.
# TYPE resourcecore_live_dependency_edges gauge
resourcecore_live_dependency_edges 2
# HELP resourcecore_live_groups Resource groups created and not yet disposed.
# TYPE resourcecore_live_groups gauge
resourcecore_live_groups 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"resourcecore_live_dependency_edges", "resourcecore_live_groups"))

	require.NoError(t, g.Dispose())

	events := `
# HELP resourcecore_events_total Resource lifecycle events by type.
# TYPE resourcecore_events_total counter
resourcecore_events_total{event="contained_disposed"} 1
resourcecore_events_total{event="dependency_deregistered"} 2
resourcecore_events_total{event="dependency_registered"} 2
resourcecore_events_total{event="group_created"} 1
resourcecore_events_total{event="group_disposed"} 1
resourcecore_events_total{event="group_resource_added"} 1
resourcecore_events_total{event="premature_disposal"} 1
resourcecore_events_total{event="resource_created"} 2
resourcecore_events_total{event="resource_disposed"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(events), "resourcecore_events_total"))

	require.NoError(t, rt.Close())

	drained := `
# HELP resourcecore_live_dependency_edges Dependency edges currently registered.
# TYPE resourcecore_live_dependency_edges gauge
resourcecore_live_dependency_edges 0
# HELP resourcecore_live_groups Resource groups created and not yet disposed.
# TYPE resourcecore_live_groups gauge
resourcecore_live_groups 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(drained),
		"resourcecore_live_dependency_edges", "resourcecore_live_groups"))
}

func TestObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewObserver(reg)
	require.NoError(t, err)

	_, err = metrics.NewObserver(reg)
	assert.Error(t, err)
}

func TestObserver_CloseDrainsLiveGroups(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := metrics.NewObserver(reg)
	require.NoError(t, err)

	for range 2 {
		rt, err := runtime.New(runtime.DefaultConfig())
		require.NoError(t, err)
		rt.Subscribe(obs)

		res := native.New(rt.Tracker(), rt.Notifier())
		a, err := res.Create(buffers, "a")
		require.NoError(t, err)

		g, err := rt.CreateGroup(false, "standard")
		require.NoError(t, err)
		require.NoError(t, g.Add(a))
		_, err = rt.CreateCombinedGroup(false, "combined")
		require.NoError(t, err)

		require.NoError(t, rt.Close())
	}

	expected := `
# HELP resourcecore_live_dependency_edges Dependency edges currently registered.
# TYPE resourcecore_live_dependency_edges gauge
resourcecore_live_dependency_edges 0
# HELP resourcecore_live_groups Resource groups created and not yet disposed.
# TYPE resourcecore_live_groups gauge
resourcecore_live_groups 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"resourcecore_live_dependency_edges", "resourcecore_live_groups"))
}
