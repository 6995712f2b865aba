// Package promcollector exposes the gauges published in a probes manifold
// as Prometheus metrics.
//
// The collector reads snapshots at scrape time; it never samples or resets
// anything. Snapshots of other kinds (captured values, traces) are skipped.
package promcollector

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ygrebnov/probes"
)

var labels = []string{"probe", "outcome", "unit"}

// Collector is a prometheus.Collector over a probes.Inspector.
type Collector struct {
	src probes.Inspector

	count  *prometheus.Desc
	mean   *prometheus.Desc
	stddev *prometheus.Desc
	min    *prometheus.Desc
	max    *prometheus.Desc
}

// New returns a collector reporting every gauge snapshot in src under
// namespace.
func New(src probes.Inspector, namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "probe", name), help, labels, nil)
	}
	return &Collector{
		src:    src,
		count:  desc("count", "Number of samples in the snapshot."),
		mean:   desc("mean", "Mean of the samples."),
		stddev: desc("stddev", "Sample standard deviation of the samples."),
		min:    desc("min", "Smallest sample."),
		max:    desc("max", "Largest sample."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.count
	ch <- c.mean
	ch <- c.stddev
	ch <- c.min
	ch <- c.max
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	all := c.src.All()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cfg, _ := c.src.Describe(name)
		switch s := all[name].(type) {
		case probes.GaugeSnapshot:
			c.collect(ch, s, name, "all", cfg.Unit)
		case probes.ResponseTimeSnapshot:
			c.collect(ch, s.All, name, "all", cfg.Unit)
			c.collect(ch, s.Returned, name, "returned", cfg.Unit)
			c.collect(ch, s.Thrown, name, "thrown", cfg.Unit)
			c.collect(ch, s.Resolved, name, "resolved", cfg.Unit)
			c.collect(ch, s.Rejected, name, "rejected", cfg.Unit)
		}
	}
}

func (c *Collector) collect(ch chan<- prometheus.Metric, s probes.GaugeSnapshot, values ...string) {
	ch <- prometheus.MustNewConstMetric(c.count, prometheus.GaugeValue, float64(s.Count), values...)
	ch <- prometheus.MustNewConstMetric(c.mean, prometheus.GaugeValue, s.Mean, values...)
	ch <- prometheus.MustNewConstMetric(c.stddev, prometheus.GaugeValue, s.StdDev, values...)
	ch <- prometheus.MustNewConstMetric(c.min, prometheus.GaugeValue, s.Min, values...)
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, s.Max, values...)
}
