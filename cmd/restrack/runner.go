package main

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wippyai/resource-core/errors"
	"github.com/wippyai/resource-core/metrics"
	"github.com/wippyai/resource-core/runtime"
)

// StepResult records the outcome of one scenario step.
type StepResult struct {
	Err    error
	Step   Step
	Index  int
	Passed bool
}

// Sample is one gathered metric value.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Report is the outcome of running a scenario.
type Report struct {
	Scenario string
	Runtime  uuid.UUID
	Steps    []StepResult
	Entries  []Entry
	Metrics  []Sample
	Edges    int
}

// Failed returns the number of steps whose outcome did not match.
func (r *Report) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if !s.Passed {
			n++
		}
	}
	return n
}

// RunOptions configures a scenario run.
type RunOptions struct {
	Logger  *zap.Logger
	Metrics bool
}

// Run executes a scenario in a fresh runtime. The returned error reports
// setup failures; step mismatches are recorded in the report.
func Run(ctx context.Context, sc *Scenario, opts RunOptions) (*Report, error) {
	cfg := runtime.DefaultConfig()
	cfg.Logger = opts.Logger

	rt, err := runtime.New(cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rt.Close() }()

	var reg *prometheus.Registry
	if opts.Metrics {
		reg = prometheus.NewRegistry()
		obs, err := metrics.NewObserver(reg)
		if err != nil {
			return nil, err
		}
		rt.Subscribe(obs)
	}

	w, err := Build(rt, sc)
	if err != nil {
		return nil, err
	}

	report := &Report{Scenario: sc.Name, Runtime: rt.ID()}
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := w.Apply(st)
		report.Steps = append(report.Steps, StepResult{
			Index:  i,
			Step:   st,
			Err:    err,
			Passed: matches(err, st.Expect),
		})
	}

	report.Entries = w.Entries()
	report.Edges = rt.Tracker().EdgeCount()
	if reg != nil {
		report.Metrics, err = gather(reg)
		if err != nil {
			return nil, err
		}
	}
	return report, nil
}

func matches(err error, expect string) bool {
	if expect == "" {
		return err == nil
	}
	return errors.IsKind(err, errors.Kind(expect))
}

func gather(reg *prometheus.Registry) ([]Sample, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, err
	}
	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			s := Sample{Name: mf.GetName()}
			for _, lp := range m.GetLabel() {
				s.Labels += lp.GetName() + "=" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				s.Value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				s.Value = m.GetGauge().GetValue()
			}
			samples = append(samples, s)
		}
	}
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return samples[i].Labels < samples[j].Labels
	})
	return samples, nil
}
