package main

import (
	"fmt"

	"github.com/poiesic/praxis"
	"github.com/poiesic/praxis/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

// metricsSink collects the metrics of one command run and writes them to
// the --metrics-file path in the text exposition format. Without a path
// it records nothing.
type metricsSink struct {
	path     string
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func newMetricsSink(c *cli.Context) (*metricsSink, error) {
	sink := &metricsSink{path: c.String("metrics-file")}
	if sink.path == "" {
		return sink, nil
	}
	sink.registry = prometheus.NewRegistry()
	m, err := metrics.New(sink.registry)
	if err != nil {
		return nil, err
	}
	sink.metrics = m
	return sink, nil
}

func (s *metricsSink) option() praxis.ServiceOption {
	return praxis.WithMetrics(s.metrics)
}

func (s *metricsSink) flush() error {
	if s.path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(s.path, s.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
