package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcscan/internal/token"
)

func TestLoadDefaults(t *testing.T) {
	v := New()
	v.Set("input", "/evidence")

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Input:     "/evidence",
		OutputDir: ".",
		Workers:   1,
		LogLevel:  "warning",
	}, cfg)
}

func TestLoadNoInput(t *testing.T) {
	_, err := Load(New(), "")
	assert.True(t, errors.Is(err, ErrNoInput))

	v := New()
	v.Set("input", `"\`)
	_, err = Load(v, "")
	assert.True(t, errors.Is(err, ErrNoInput))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("BTCSCAN_INPUT", "/mnt/image.dd")
	t.Setenv("BTCSCAN_WORKERS", "4")
	t.Setenv("BTCSCAN_OUTPUT_DIR", "/cases")
	t.Setenv("BTCSCAN_QUICK", "true")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/mnt/image.dd", cfg.Input)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "/cases", cfg.OutputDir)
	assert.True(t, cfg.Quick)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "btcscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input: /mnt/usb
case: JED-01
workers: 0
keep_empty: true
`), 0o644))
	t.Setenv("BTCSCAN_CASE", "FROM-ENV")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/usb", cfg.Input)
	assert.Equal(t, "FROM-ENV", cfg.Case)
	assert.Equal(t, 1, cfg.Workers)
	assert.True(t, cfg.KeepEmpty)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestBindFlags(t *testing.T) {
	fs := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	fs.StringP("input", "i", "", "")
	fs.BoolP("unicode", "u", false, "")
	fs.String("output-dir", ".", "")
	fs.Int("workers", 1, "")
	require.NoError(t, fs.Parse([]string{"-i", `D:\images\"`, "-u", "--output-dir", "/out"}))

	t.Setenv("BTCSCAN_OUTPUT_DIR", "/env")
	t.Setenv("BTCSCAN_WORKERS", "3")
	v := New()
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, `D:\images\`, cfg.Input)
	assert.True(t, cfg.Unicode)
	assert.Equal(t, "/out", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Workers)
}

func TestCleanInput(t *testing.T) {
	for in, want := range map[string]string{
		"/evidence":      "/evidence",
		`C:\cases\`:      `C:\cases`,
		`C:\cases\"`:     `C:\cases\`,
		`C:\cases"`:      `C:\cases`,
		`"C:\my cases\\`: `"C:\my cases`,
		"":               "",
		`C:\cases\"\`:    `C:\cases\`,
	} {
		assert.Equal(t, want, CleanInput(in), in)
	}
}

func TestMode(t *testing.T) {
	cfg := Config{Quick: true, NonUnicode: true}
	assert.Equal(t, token.Mode{Quick: true, NonUnicodeOnly: true}, cfg.Mode())
}
