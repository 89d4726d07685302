// cam-i2c-detect: Detect which I2C bus each camera sensor sits on
//
// For every /dev/video* capture node this tool clears the kernel log,
// pushes a few frames through a GStreamer pipeline so the sensor
// driver generates I2C traffic, and parses the log for the driver's
// bus binding. The resulting mapping table feeds cam-probe.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/herlein/gocam/pkg/busmap"
	"github.com/herlein/gocam/pkg/detect"
)

func main() {
	saveTable := flag.Bool("t", false, "Save the mapping table")
	tablePath := flag.String("o", busmap.DefaultPath, "Mapping table output path (.json, .yaml or .yml)")
	flag.Parse()

	// A single positional argument scans just that video device.
	if videoDev := flag.Arg(0); videoDev != "" {
		if _, err := os.Stat(videoDev); err != nil {
			fmt.Printf("[-] %s does not exist\n", videoDev)
			os.Exit(1)
		}
		detected, err := detect.DetectDevice(videoDev, detect.SensorNames)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[-] %v\n", err)
			os.Exit(1)
		}
		for _, sensor := range detect.SensorNames {
			if buses := detected[sensor]; len(buses) > 0 {
				fmt.Printf("[+] %s -> sensor '%s' on bus(es): %v\n", videoDev, sensor, buses)
			} else {
				fmt.Printf("[-] %s -> sensor '%s': bus not detected\n", videoDev, sensor)
			}
		}
		return
	}

	mapping, err := detect.ScanAll(detect.SensorNames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}

	for video, entry := range mapping {
		if entry != nil {
			fmt.Printf("[+] %s -> bus %d, addr %s, sensor %s\n", video, entry.Bus, entry.Addr, entry.Sensor)
		} else {
			fmt.Printf("[-] %s -> no sensor detected\n", video)
		}
	}

	if *saveTable {
		if err := busmap.Save(mapping, *tablePath); err != nil {
			fmt.Fprintf(os.Stderr, "[-] %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[+] Saved mapping table to %s\n", *tablePath)
	}
}
