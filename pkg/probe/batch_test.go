package probe

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herlein/gocam/pkg/busmap"
	"github.com/herlein/gocam/pkg/transport"
)

func TestProbeAllIsolatesFailures(t *testing.T) {
	targets := []Target{
		{Name: "video0", Bus: 1},
		{Name: "video1", Bus: 2},
		{Name: "video2", Bus: 3},
	}
	open := func(bus int) (Conn, error) {
		if bus == 2 {
			return brokenConn{}, nil
		}
		return newTestDevice(), nil
	}

	results := ProbeAll(context.Background(), targets, open,
		WithRetries(0), WithIterationCeiling(16))
	require.Len(t, results, 3)

	// First and third devices still produce complete reports.
	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Report)
	assert.Len(t, results[0].Report.PixelFormats, 2)

	require.NoError(t, results[2].Err)
	require.NotNil(t, results[2].Report)

	// The second is reported failed with its transport error and the
	// state it aborted in.
	require.Error(t, results[1].Err)
	assert.Nil(t, results[1].Report)
	var terr *transport.Error
	assert.True(t, errors.As(results[1].Err, &terr))
	var perr *Error
	require.ErrorAs(t, results[1].Err, &perr)
	assert.Equal(t, StateIdentifying, perr.State)
}

func TestProbeAllOpenFailure(t *testing.T) {
	open := func(bus int) (Conn, error) {
		return nil, &transport.Error{Op: transport.OpOpen, Bus: bus, Err: fmt.Errorf("no such device")}
	}
	results := ProbeAll(context.Background(), []Target{{Name: "video0", Bus: 7}}, open)
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	var terr *transport.Error
	require.ErrorAs(t, results[0].Err, &terr)
	assert.Equal(t, transport.OpOpen, terr.Op)
}

func TestTargetsFromMapping(t *testing.T) {
	mapping := busmap.Mapping{
		"video2": {Bus: 11, Addr: "0x0c", Sensor: "arducam-pivariety"},
		"video0": {Bus: 13, Addr: "0x0c", Sensor: "arducam-pivariety"},
		"video1": nil, // scanned, no sensor found
	}

	targets := TargetsFromMapping(mapping)
	require.Len(t, targets, 2)
	assert.Equal(t, Target{Name: "video0", Bus: 13}, targets[0])
	assert.Equal(t, Target{Name: "video2", Bus: 11}, targets[1])
}
