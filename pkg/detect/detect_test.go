package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleLog = `
[   12.345678] arducam-pivariety 13-000c: firmware version: 0x10002
[   12.345900] arducam-pivariety 13-000c: probe succeeded
[   13.000000] ov5647 10-0036: camera not detected
[   14.100000] arducam-pivariety 4-000c: firmware version: 0x10002
[   14.200000] unrelated line mentioning arducam-pivariety without a bus
`

func TestParseBuses(t *testing.T) {
	buses := ParseBuses(sampleLog, "arducam-pivariety")
	assert.Equal(t, []int{13, 4}, buses)
}

func TestParseBusesDeduplicates(t *testing.T) {
	buses := ParseBuses(sampleLog, "arducam-pivariety")
	assert.Len(t, buses, 2)
}

func TestParseBusesNoMatch(t *testing.T) {
	assert.Empty(t, ParseBuses(sampleLog, "imx477"))
	assert.Empty(t, ParseBuses("", "arducam-pivariety"))
}

func TestParseBusesOtherSensor(t *testing.T) {
	assert.Equal(t, []int{10}, ParseBuses(sampleLog, "ov5647"))
}
