package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/eventcarbon/internal/cli"
	"github.com/rshade/eventcarbon/internal/config"
	"github.com/rshade/eventcarbon/pkg/version"
)

func TestRun(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectDir, filepath.Join(t.TempDir(), config.ProjectDirName))
	t.Setenv(config.EnvLogLevel, "error")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"factors listing", []string{"factors", "accommodation", "--output", "json"}, 0},
		{"unknown command", []string{"launch"}, 1},
		{"bad output format", []string{"factors", "--output", "xml"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ResetGlobalConfigForTest()
			assert.Equal(t, tt.want, run(tt.args))
		})
	}
}

func TestMainComponents(t *testing.T) {
	assert.NotEmpty(t, version.GetVersion())

	root := cli.NewRootCmd(version.GetVersion())
	assert.Equal(t, "eventcarbon", root.Use)
	assert.Equal(t, version.GetVersion(), root.Version)
}
