package probe

import (
	"context"
	"io"
	"sort"

	"github.com/herlein/gocam/pkg/busmap"
	"github.com/herlein/gocam/pkg/transport"
)

// Conn is a closable register channel.
type Conn interface {
	transport.RegisterReadWriter
	io.Closer
}

// Opener opens the register channel for an I2C bus number.
type Opener func(bus int) (Conn, error)

// Target names one device to probe and the bus it sits on.
type Target struct {
	Name string `json:"name"`
	Bus  int    `json:"bus"`
}

// Result is the outcome of probing one target. Exactly one of Report
// and Err is set.
type Result struct {
	Target Target        `json:"target"`
	Report *DeviceReport `json:"report,omitempty"`
	Err    error         `json:"-"`
}

// TargetsFromMapping builds the probe targets from a bus mapping
// table, skipping devices with no detected sensor. Targets come back
// in device-name order so batch runs are deterministic.
func TargetsFromMapping(mapping busmap.Mapping) []Target {
	var targets []Target
	for name, entry := range mapping {
		if entry == nil {
			continue
		}
		targets = append(targets, Target{Name: name, Bus: entry.Bus})
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })
	return targets
}

// ProbeAll probes every target in sequence. Probes are serialized,
// never parallel: each device keeps cursor state behind its index
// registers, and the bus session must have a single driver. A failed
// target is recorded in its Result and the batch continues with the
// next one.
func ProbeAll(ctx context.Context, targets []Target, open Opener, opts ...Option) []Result {
	results := make([]Result, 0, len(targets))
	for _, target := range targets {
		results = append(results, probeOne(ctx, target, open, opts...))
	}
	return results
}

func probeOne(ctx context.Context, target Target, open Opener, opts ...Option) Result {
	conn, err := open(target.Bus)
	if err != nil {
		return Result{Target: target, Err: err}
	}
	defer conn.Close()

	report, err := New(conn, opts...).Probe(ctx)
	if err != nil {
		return Result{Target: target, Err: err}
	}
	return Result{Target: target, Report: report}
}
