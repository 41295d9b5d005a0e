package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appConfigData = `
log:
  env: dev
  level: debug
runtime:
  maxprocs: 0
addon:
  name: first
`

type configTest struct {
	AppConfig `yaml:",inline"`
	Addon     *addonConf `yaml:"addon"`
	Missing   *addonConf `yaml:"missing"`
}

type addonConf struct {
	Name   string `yaml:"name"`
	parsed bool
}

func (p *addonConf) Parse() error {
	if p.Name == "" {
		return errors.New("no name")
	}
	p.parsed = true
	return nil
}

func TestLoadYAML(t *testing.T) {
	var config configTest
	require.NoError(t, LoadYAML([]byte(appConfigData), &config))
	require.NotNil(t, config.LogConfig)
	assert.Equal(t, "debug", config.LogConfig.Level)
	require.NotNil(t, config.RuntimeConfig)
	require.NotNil(t, config.Addon)
	assert.Equal(t, "first", config.Addon.Name)
	assert.Nil(t, config.Missing)

	// 空内容不修改配置
	require.NoError(t, LoadYAML(nil, &config))
	assert.Equal(t, "first", config.Addon.Name)

	// 未知的配置项
	err := LoadYAML([]byte("addon:\n  nmae: typo\n"), &config)
	assert.Error(t, err)
}

func TestParseFields(t *testing.T) {
	config := configTest{Addon: &addonConf{Name: "a"}}
	require.NoError(t, ParseFields(&config))
	assert.True(t, config.Addon.parsed)

	config.Addon = &addonConf{}
	err := ParseFields(&config)
	require.Error(t, err)
	assert.Equal(t, "addon: no name", err.Error())

	assert.Error(t, ParseFields(1))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfFileName("test")), []byte("addon:\n  name: second\n"), 0o644))

	var config configTest
	loaded, err := LoadConfig(&config, dir, "test")
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "second", config.Addon.Name)

	loaded, err = LoadConfig(&config, dir, "missing")
	require.NoError(t, err)
	assert.False(t, loaded)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfFileName("bad")), []byte("addon: [1, 2]\n"), 0o644))
	_, err = LoadConfig(&config, dir, "bad")
	assert.Error(t, err)
}
