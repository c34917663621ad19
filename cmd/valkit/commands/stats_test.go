package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupStatsFlags(t *testing.T) {
	fs, flags := SetupStatsFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Empty(t, flags.File)
		assert.Equal(t, 0, flags.Window)
		assert.Equal(t, FormatText, flags.Format)
	})

	t.Run("parse flags", func(t *testing.T) {
		require.NoError(t, fs.Parse([]string{"-file", "data.json", "-window", "3", "-format", "json"}))
		assert.Equal(t, "data.json", flags.File)
		assert.Equal(t, 3, flags.Window)
		assert.Equal(t, "json", flags.Format)
	})
}

func TestHandleStats_MissingFile(t *testing.T) {
	assert.Error(t, HandleStats([]string{}))
}

func TestHandleStats_Help(t *testing.T) {
	assert.NoError(t, HandleStats([]string{"--help"}))
}

func TestHandleStats_Success(t *testing.T) {
	path := writeFile(t, "data.json", `[2, 4, 4, 4, 5, 5, 7, 9]`)
	assert.NoError(t, HandleStats([]string{"-file", path}))
	assert.NoError(t, HandleStats([]string{"-file", path, "-window", "3"}))
	assert.NoError(t, HandleStats([]string{"-file", path, "-format", "json"}))
}

func TestHandleStats_WindowTooLarge(t *testing.T) {
	path := writeFile(t, "data.json", `[1, 2]`)
	assert.Error(t, HandleStats([]string{"-file", path, "-window", "5"}))
}

func TestLoadSeries(t *testing.T) {
	t.Run("JSON array", func(t *testing.T) {
		path := writeFile(t, "data.json", `[1, 2.5, 3]`)
		series, err := loadSeries(path)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2.5, 3}, series)
	})

	t.Run("YAML array", func(t *testing.T) {
		path := writeFile(t, "data.yaml", "- 1\n- 2\n- 3\n")
		series, err := loadSeries(path)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, series)
	})

	t.Run("not an array", func(t *testing.T) {
		path := writeFile(t, "data.json", `{"a": 1}`)
		_, err := loadSeries(path)
		assert.Error(t, err)
	})

	t.Run("non-numeric item", func(t *testing.T) {
		path := writeFile(t, "data.json", `[1, "two"]`)
		_, err := loadSeries(path)
		assert.Error(t, err)
	})
}
