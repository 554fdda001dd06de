// Package stats reinstates photon/stats.py's TrafficStats, dropped by the
// spec distillation, as a small set of Prometheus counters a host can
// gather without this module running an HTTP server of its own - grounded
// in cmd/strelaypoolsrv/stats.go's makeCounter/makeGauge helpers.
package stats

import "github.com/prometheus/client_golang/prometheus"

// Traffic counts outgoing commands and their bytes by class, mirroring
// TrafficStats' reliable/unreliable/control counters. It keeps no aggregate
// total across classes.
type Traffic struct {
	Registry *prometheus.Registry

	ReliableCommandCount   prometheus.Counter
	UnreliableCommandCount prometheus.Counter
	ControlCommandCount    prometheus.Counter

	ReliableCommandBytes   prometheus.Counter
	UnreliableCommandBytes prometheus.Counter
	ControlCommandBytes    prometheus.Counter
}

// NewTraffic builds a Traffic with its own private registry so embedding a
// Client never collides with metrics the host registers elsewhere.
func NewTraffic() *Traffic {
	t := &Traffic{
		Registry:               prometheus.NewRegistry(),
		ReliableCommandCount:   makeCounter("reliable_command_count", "Number of reliable operation commands sent."),
		UnreliableCommandCount: makeCounter("unreliable_command_count", "Number of unreliable operation commands sent."),
		ControlCommandCount:    makeCounter("control_command_count", "Number of control commands sent (ping, init)."),
		ReliableCommandBytes:   makeCounter("reliable_command_bytes", "Bytes of reliable operation commands sent."),
		UnreliableCommandBytes: makeCounter("unreliable_command_bytes", "Bytes of unreliable operation commands sent."),
		ControlCommandBytes:    makeCounter("control_command_bytes", "Bytes of control commands sent (ping, init)."),
	}
	t.Registry.MustRegister(
		t.ReliableCommandCount, t.UnreliableCommandCount, t.ControlCommandCount,
		t.ReliableCommandBytes, t.UnreliableCommandBytes, t.ControlCommandBytes,
	)
	return t
}

func makeCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "photongo",
		Name:      name,
		Help:      help,
	})
}

// CountOp records one outgoing operation command of size bytes.
func (t *Traffic) CountOp(reliable bool, size int) {
	if reliable {
		t.ReliableCommandCount.Inc()
		t.ReliableCommandBytes.Add(float64(size))
	} else {
		t.UnreliableCommandCount.Inc()
		t.UnreliableCommandBytes.Add(float64(size))
	}
}

// CountControl records one outgoing control command (ping, init) of size
// bytes.
func (t *Traffic) CountControl(size int) {
	t.ControlCommandCount.Inc()
	t.ControlCommandBytes.Add(float64(size))
}
