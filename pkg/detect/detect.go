// Package detect infers which I2C bus a video device's sensor sits
// on. It clears the kernel log, pushes a few frames through a capture
// pipeline so the sensor driver generates I2C traffic, then pattern
// matches the log for the sensor's bus binding.
package detect

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/herlein/gocam/pkg/busmap"
	"github.com/herlein/gocam/pkg/registers"
)

// SensorNames lists the kernel driver names the scan looks for.
var SensorNames = []string{
	"arducam-pivariety",
}

const (
	// numBuffers is how many frames the trigger pipeline captures.
	numBuffers = 20

	// triggerSettle is the wait after the pipeline exits before the
	// kernel log is read back.
	triggerSettle = 500 * time.Millisecond
)

// execCommand is swapped out in tests.
var execCommand = exec.Command

// ClearKernelLog empties the kernel ring buffer so only traffic from
// the upcoming trigger shows up.
func ClearKernelLog() error {
	if out, err := execCommand("dmesg", "-C").CombinedOutput(); err != nil {
		return fmt.Errorf("failed to clear dmesg: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// TriggerSensor runs a short GStreamer capture on the video device to
// force the sensor driver onto the bus.
func TriggerSensor(videoDev string) error {
	pipeline := execCommand("gst-launch-1.0", "-q",
		"v4l2src", fmt.Sprintf("device=%s", videoDev), fmt.Sprintf("num-buffers=%d", numBuffers),
		"!", "video/x-raw,format=YUY2",
		"!", "fakesink",
	)
	if err := pipeline.Run(); err != nil {
		return fmt.Errorf("gstreamer pipeline failed for %s: %w", videoDev, err)
	}
	time.Sleep(triggerSettle)
	return nil
}

// KernelLog returns the current kernel ring buffer contents.
func KernelLog() (string, error) {
	out, err := execCommand("dmesg").Output()
	if err != nil {
		return "", fmt.Errorf("failed to read dmesg: %w", err)
	}
	return string(out), nil
}

// ParseBuses extracts the I2C bus numbers a sensor driver bound on
// from kernel log output. Driver log lines carry a "<sensor>
// <bus>-<addr>:" prefix.
func ParseBuses(log, sensor string) []int {
	pattern := regexp.MustCompile(regexp.QuoteMeta(sensor) + `\s+(\d+)-[0-9a-fA-F]+:`)
	seen := make(map[int]bool)
	var buses []int
	for _, line := range strings.Split(log, "\n") {
		if !strings.Contains(line, sensor) {
			continue
		}
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		bus, err := strconv.Atoi(m[1])
		if err != nil || seen[bus] {
			continue
		}
		seen[bus] = true
		buses = append(buses, bus)
	}
	return buses
}

// DetectDevice finds the bus bindings for each known sensor behind
// one video device. Sensors with no binding map to nil.
func DetectDevice(videoDev string, sensors []string) (map[string][]int, error) {
	if err := ClearKernelLog(); err != nil {
		return nil, err
	}
	detected := make(map[string][]int, len(sensors))
	if err := TriggerSensor(videoDev); err != nil {
		// Pipeline failure means no traffic was generated; report
		// every sensor undetected rather than parsing a stale log.
		for _, sensor := range sensors {
			detected[sensor] = nil
		}
		return detected, nil
	}

	log, err := KernelLog()
	if err != nil {
		return nil, err
	}
	for _, sensor := range sensors {
		detected[sensor] = ParseBuses(log, sensor)
	}
	return detected, nil
}

// ScanAll scans every /dev/video* capture node and builds the mapping
// table. Devices with no detected sensor get a nil entry so the scan
// result still records them.
func ScanAll(sensors []string) (busmap.Mapping, error) {
	videoDevs, err := filepath.Glob("/dev/video*")
	if err != nil {
		return nil, err
	}

	mapping := make(busmap.Mapping)
	for _, videoDev := range videoDevs {
		if strings.Contains(videoDev, "subdev") {
			continue
		}
		detected, err := DetectDevice(videoDev, sensors)
		if err != nil {
			return nil, err
		}

		var entry *busmap.Entry
		for _, sensor := range sensors {
			if buses := detected[sensor]; len(buses) > 0 {
				entry = &busmap.Entry{
					Bus:    buses[0],
					Addr:   fmt.Sprintf("0x%02x", registers.DefaultI2CAddress),
					Sensor: sensor,
				}
				break
			}
		}
		mapping[filepath.Base(videoDev)] = entry
	}
	return mapping, nil
}
