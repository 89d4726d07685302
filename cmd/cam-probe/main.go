// cam-probe: Probe camera controllers over their I2C register channel
//
// This tool reads the bus mapping table produced by cam-i2c-detect,
// probes each mapped camera for its identity, firmware version, pixel
// formats, resolutions and controls, and prints the report.
//
// Exit codes: 0 all probes succeeded, 1 configuration error or every
// probe failed, 2 some probes failed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/herlein/gocam/pkg/busmap"
	"github.com/herlein/gocam/pkg/capability"
	"github.com/herlein/gocam/pkg/probe"
)

const version = "1.5"

func logInfo(format string, args ...interface{}) {
	fmt.Printf("[INFO]: "+format+"\n", args...)
}

func logWarning(format string, args ...interface{}) {
	fmt.Printf("[WARNING]: "+format+"\n", args...)
}

func logError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "[ERROR]: "+format+"\n", args...)
}

func main() {
	bus := flag.Int("b", -1, "I2C bus number to probe directly")
	device := flag.String("d", "", "Video device to probe (e.g. /dev/video0)")
	listFormats := flag.Bool("list-formats", false, "List pixel formats")
	listFormatsExt := flag.Bool("list-formats-ext", false, "List pixel formats, resolutions and max framerate")
	mappingPath := flag.String("m", busmap.DefaultPath, "Bus mapping table path")
	timeout := flag.Duration("timeout", 30*time.Second, "Per-device probe deadline")
	verbose := flag.Bool("v", false, "Show version banner")
	flag.Parse()

	if *bus >= 0 && *device != "" {
		logError("Options -b and -d are mutually exclusive")
		os.Exit(1)
	}

	if *verbose {
		fmt.Println("=================================")
		fmt.Println("            cam-probe")
		fmt.Println("  camera register probe utility")
		fmt.Printf("            v%s\n", version)
		fmt.Println("=================================")
	}

	logInfo("Loading mapping table from %s", *mappingPath)
	mapping, err := busmap.Load(*mappingPath)
	if err != nil {
		logError("Mapping table not found, please run cam-i2c-detect first (%v)", err)
		os.Exit(1)
	}

	targets, err := selectTargets(mapping, *bus, *device)
	if err != nil {
		logError("%v", err)
		os.Exit(1)
	}

	opts := []probe.Option{probe.WithProbeTimeout(*timeout)}
	ctx := context.Background()

	if *listFormats || *listFormatsExt {
		os.Exit(runListFormats(ctx, targets, *listFormatsExt, opts))
	}
	os.Exit(runProbes(ctx, targets, opts))
}

// selectTargets narrows the mapping to the devices named on the
// command line, or every mapped device when none was given.
func selectTargets(mapping busmap.Mapping, bus int, device string) ([]probe.Target, error) {
	if bus >= 0 {
		return []probe.Target{{Name: "manual", Bus: bus}}, nil
	}
	if device != "" {
		entry, err := mapping.Lookup(device)
		if err != nil {
			return nil, err
		}
		return []probe.Target{{Name: filepath.Base(device), Bus: entry.Bus}}, nil
	}
	targets := probe.TargetsFromMapping(mapping)
	if len(targets) == 0 {
		return nil, fmt.Errorf("mapping table contains no devices with a detected sensor")
	}
	return targets, nil
}

func runProbes(ctx context.Context, targets []probe.Target, opts []probe.Option) int {
	results := probe.ProbeAll(ctx, targets, probe.I2COpener, opts...)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			logWarning("%s (bus %d): %v", result.Target.Name, result.Target.Bus, result.Err)
			continue
		}
		printReport(result.Report)
	}

	switch {
	case failed == 0:
		return 0
	case failed == len(results):
		return 1
	default:
		return 2
	}
}

func printReport(report *probe.DeviceReport) {
	logInfo("Device ID: 0x%02X", report.DeviceID)
	logInfo("Device Version: 0x%02X", report.DeviceVersion)
	logInfo("Sensor ID: 0x%04X", report.SensorID)
	logInfo("ISP FW Version: %s", report.Firmware)
	logInfo("Software FW Version: %s", report.SoftwareVersion)

	for _, format := range report.PixelFormats {
		if order, ok := capability.OrderName(uint32(format.RawType), uint32(format.RawOrder)); ok {
			logInfo("PixelFormat Type: %s, Order: %s, Lanes: %d", format.Name, order, format.Lanes)
		} else {
			logInfo("PixelFormat Type: %s, Lanes: %d", format.Name, format.Lanes)
		}
		for _, res := range format.Resolutions {
			logInfo("index: %d, %dx%d", res.Index, res.Width, res.Height)
			for _, ctrl := range res.Controls {
				logInfo("%s", ctrl)
			}
		}
	}
}

func runListFormats(ctx context.Context, targets []probe.Target, extended bool, opts []probe.Option) int {
	failed := 0
	for _, target := range targets {
		conn, err := probe.I2COpener(target.Bus)
		if err != nil {
			failed++
			logWarning("%s (bus %d): %v", target.Name, target.Bus, err)
			continue
		}
		format, err := probe.New(conn, opts...).ListFormats(ctx)
		conn.Close()
		if err != nil {
			failed++
			logWarning("%s (bus %d): %v", target.Name, target.Bus, err)
			continue
		}
		printFormats(format, extended)
	}

	switch {
	case failed == 0:
		return 0
	case failed == len(targets):
		return 1
	default:
		return 2
	}
}

// printFormats renders the listing in the familiar v4l2-ctl shape.
func printFormats(format *probe.PixelFormat, extended bool) {
	fmt.Println("ioctl: VIDIOC_ENUM_FMT")
	fmt.Println("        Type: Video Capture")
	fmt.Println()

	for _, res := range format.Resolutions {
		fmt.Printf("        [%d]: '%s' (%s)\n", res.Index, format.FourCC, format.Name)
		if !extended {
			continue
		}
		fmt.Printf("                Size: Discrete %dx%d\n", res.Width, res.Height)
		if res.MaxFPS != nil && *res.MaxFPS > 0 {
			fps := float64(*res.MaxFPS)
			fmt.Printf("                        Interval: Discrete %.3fs (%.3f fps)\n", 1.0/fps, fps)
		}
	}
}
