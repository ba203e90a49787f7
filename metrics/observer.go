// Package metrics exports resource lifecycle events as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/resource-core/resource"
)

const namespace = "resourcecore"

// Observer is a resource.Observer that counts lifecycle events.
//
//	obs, err := metrics.NewObserver(prometheus.DefaultRegisterer)
//	rt.Subscribe(obs)
type Observer struct {
	events     *prometheus.CounterVec
	edges      prometheus.Gauge
	liveGroups prometheus.Gauge
}

// NewObserver creates an observer and registers its collectors with reg.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Resource lifecycle events by type.",
		}, []string{"event"}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_dependency_edges",
			Help:      "Dependency edges currently registered.",
		}),
		liveGroups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_groups",
			Help:      "Resource groups created and not yet disposed.",
		}),
	}
	for _, c := range []prometheus.Collector{o.events, o.edges, o.liveGroups} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// OnResourceEvent implements resource.Observer.
func (o *Observer) OnResourceEvent(e resource.Event) {
	o.events.WithLabelValues(e.Type.String()).Inc()

	switch e.Type {
	case resource.EventDependencyRegistered,
		resource.EventDependencyDeregistered,
		resource.EventDependenciesErased:
		o.edges.Set(float64(e.Count))
	case resource.EventGroupCreated:
		o.liveGroups.Inc()
	case resource.EventGroupDisposed:
		o.liveGroups.Dec()
	}
}
