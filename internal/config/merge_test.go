package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/eventcarbon/internal/config"
)

func newDefaultTarget() *config.Config {
	return &config.Config{
		Output:   config.OutputConfig{DefaultFormat: "table", Precision: 2},
		Logging:  config.LoggingConfig{Level: "info", Format: "console", File: "/var/log/ec.log"},
		Store:    config.StoreConfig{DataDir: "/data"},
		Defaults: config.DefaultsConfig{FlightClass: "economy", Travellers: 1},
	}
}

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_KeepsOmittedKeys(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
logging:
  level: debug
`)
	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, "console", target.Logging.Format)
	assert.Equal(t, "/var/log/ec.log", target.Logging.File)

	assert.Equal(t, "table", target.Output.DefaultFormat)
	assert.Equal(t, "/data", target.Store.DataDir)
}

func TestShallowMergeYAML_MultipleSections(t *testing.T) {
	target := newDefaultTarget()
	overlay := writeOverlay(t, `
store:
  data_dir: ./carbon
defaults:
  flight_class: premium_economy
  travellers: 20
unknown_section:
  x: 1
`)
	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "./carbon", target.Store.DataDir)
	assert.Equal(t, "premium_economy", target.Defaults.FlightClass)
	assert.Equal(t, 20, target.Defaults.Travellers)
	assert.Equal(t, 2, target.Output.Precision)
}

func TestShallowMergeYAML_PartialSections(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
		check   func(t *testing.T, c *config.Config)
	}{
		{
			name:    "flight class only keeps travellers",
			overlay: "defaults:\n  flight_class: business\n",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, "business", c.Defaults.FlightClass)
				assert.Equal(t, 1, c.Defaults.Travellers)
			},
		},
		{
			name:    "empty store section keeps data dir",
			overlay: "store: {}\n",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, "/data", c.Store.DataDir)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := newDefaultTarget()
			require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, tt.overlay)))
			tt.check(t, target)
			require.NoError(t, target.Validate())
		})
	}
}

func TestShallowMergeYAML_FailedSectionLeavesTarget(t *testing.T) {
	target := newDefaultTarget()
	err := config.ShallowMergeYAML(target, writeOverlay(t, "defaults:\n  travellers: lots\n"))
	require.Error(t, err)
	assert.Equal(t, newDefaultTarget().Defaults, target.Defaults)
}

func TestShallowMergeYAML_EmptyAndCommentOnly(t *testing.T) {
	for _, content := range []string{"", "# nothing here\n"} {
		target := newDefaultTarget()
		require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, content)))
		assert.Equal(t, newDefaultTarget(), target)
	}
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, "x"))
	require.Error(t, config.ShallowMergeYAML(newDefaultTarget(), filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "output: [")))
	require.Error(t, config.ShallowMergeYAML(newDefaultTarget(), writeOverlay(t, "output:\n  precision: many\n")))
}
