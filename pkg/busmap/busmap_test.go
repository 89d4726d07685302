package busmap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMapping() Mapping {
	return Mapping{
		"video0": {Bus: 13, Addr: "0x0c", Sensor: "arducam-pivariety"},
		"video1": nil,
	}
}

func TestSaveLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, Save(sampleMapping(), path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded["video0"])
	assert.Equal(t, 13, loaded["video0"].Bus)
	assert.Equal(t, "0x0c", loaded["video0"].Addr)
	assert.Equal(t, "arducam-pivariety", loaded["video0"].Sensor)

	// Null entries survive the round trip.
	entry, present := loaded["video1"]
	assert.True(t, present)
	assert.Nil(t, entry)
}

func TestSaveLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	require.NoError(t, Save(sampleMapping(), path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded["video0"])
	assert.Equal(t, 13, loaded["video0"].Bus)
	assert.Nil(t, loaded["video1"])
}

func TestSaveIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(sampleMapping(), dir))

	loaded, err := Load(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	mapping := sampleMapping()

	entry, err := mapping.Lookup("/dev/video0")
	require.NoError(t, err)
	assert.Equal(t, 13, entry.Bus)

	entry, err = mapping.Lookup("video0")
	require.NoError(t, err)
	assert.Equal(t, 13, entry.Bus)

	_, err = mapping.Lookup("/dev/video1")
	assert.ErrorIs(t, err, ErrNoMapping)

	_, err = mapping.Lookup("/dev/video9")
	assert.ErrorIs(t, err, ErrNoMapping)
}
