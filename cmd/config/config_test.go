package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nodeConfig struct {
	ChainID     uint64 `toml:"chain_id" yaml:"chain_id"`
	StoreRoot   string `toml:"store_root" yaml:"store_root"`
	BindAddress string `toml:"bind_address" yaml:"bind_address"`
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatOf("./config.toml"))
	assert.Equal(t, FormatYAML, FormatOf("./config.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("./CONFIG.YML"))
	assert.Equal(t, FormatTOML, FormatOf("./config"))
}

func TestLoadString(t *testing.T) {
	var tc nodeConfig
	require.NoError(t, LoadString(`
chain_id = 7
store_root = "./ndata"
bind_address = ":48000"
`, FormatTOML, &tc))
	assert.Equal(t, uint64(7), tc.ChainID)
	assert.Equal(t, "./ndata", tc.StoreRoot)
	assert.Equal(t, ":48000", tc.BindAddress)

	var yc nodeConfig
	require.NoError(t, LoadString("chain_id: 9\nstore_root: ./ydata\n", FormatYAML, &yc))
	assert.Equal(t, uint64(9), yc.ChainID)
	assert.Equal(t, "./ydata", yc.StoreRoot)

	assert.Error(t, LoadString("unknown_field: 1\n", FormatYAML, &yc))
	assert.Error(t, LoadString("chain_id = ", FormatTOML, &tc))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("bind_address: \":58000\"\n"), 0644))

	var c nodeConfig
	require.NoError(t, LoadFile(path, &c))
	assert.Equal(t, ":58000", c.BindAddress)

	assert.Error(t, LoadFile(filepath.Join(dir, "missing.toml"), &c))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, ioutil.WriteFile(path, []byte("DMCX_TEST_BIND=:7000\nDMCX_TEST_KEPT=file\n"), 0644))

	os.Setenv("DMCX_TEST_KEPT", "process")
	defer os.Unsetenv("DMCX_TEST_KEPT")
	defer os.Unsetenv("DMCX_TEST_BIND")

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, ":7000", Env("DMCX_TEST_BIND", ""))
	assert.Equal(t, "process", Env("DMCX_TEST_KEPT", ""))
	assert.Equal(t, "default", Env("DMCX_TEST_NONE", "default"))
}
