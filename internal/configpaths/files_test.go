package configpaths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("AppData", "/appdata")

	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("custom.yml")

	require.NotEmpty(t, yamlPaths)
	assert.Equal(t, "custom.yml", yamlPaths[0])
	assert.NotContains(t, jsonPaths, "custom.yml")

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Contains(t, jsonPaths, filepath.Join(dir, "config.json"))
	assert.Contains(t, tomlPaths, filepath.Join(dir, "generate.toml"))
	if runtime.GOOS != "windows" {
		assert.Equal(t, filepath.Join("/xdg", AppName), dir)
		assert.Contains(t, yamlPaths, filepath.Join("/etc", AppName, "scan.yaml"))
	}
}

func TestConfigCandidatePathsRoutesByExtension(t *testing.T) {
	for path, pick := range map[string]func(j, y, t []string) []string{
		"a.json": func(j, _, _ []string) []string { return j },
		"a.toml": func(_, _, t []string) []string { return t },
		"a.conf": func(j, _, _ []string) []string { return j },
	} {
		j, y, tm := ConfigCandidatePaths(path)
		assert.Equal(t, path, pick(j, y, tm)[0], path)
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "yaml", Extension("yml"))
	assert.Equal(t, "toml", Extension("toml"))
	assert.Equal(t, "json", Extension(""))
}
