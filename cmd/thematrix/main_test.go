package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsFlagPaths(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	fs := flag.NewFlagSet("thematrix", flag.ContinueOnError)
	configPath := fs.String("config", "thematrix.toml", "")
	scenePath := fs.String("scene", "", "")
	title := fs.String("title", "", "")
	require.NoError(t, fs.Parse([]string{"-scene", "scenes/room.yaml", "-title", "x/y"}))

	require.NoError(t, absFlagPaths(fs, "config", "scene"))

	assert.Equal(t, filepath.Join(wd, "scenes", "room.yaml"), *scenePath)
	assert.Equal(t, "thematrix.toml", *configPath, "unset flags keep their default")
	assert.Equal(t, "x/y", *title, "unlisted flags are untouched")
}

func TestAbsFlagPathsKeepsAbsoluteAndEmpty(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "my.toml")
	fs := flag.NewFlagSet("thematrix", flag.ContinueOnError)
	configPath := fs.String("config", "thematrix.toml", "")
	scenePath := fs.String("scene", "", "")
	require.NoError(t, fs.Parse([]string{"-config", abs, "-scene", ""}))

	require.NoError(t, absFlagPaths(fs, "config", "scene"))

	assert.Equal(t, abs, *configPath)
	assert.Empty(t, *scenePath)
}
