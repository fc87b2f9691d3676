package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qcdb/go-qcdb/lib/catalog"
	"github.com/qcdb/go-qcdb/lib/options"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	CfgFile = ""
	t.Cleanup(func() {
		viper.Reset()
		CfgFile = ""
	})
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func yamlViper(t *testing.T, body string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(body)))
	return v
}

// TestCurrentConfigDefaultsRoundTrip verifies that defaults written by
// setDefaults() are read back unchanged by CurrentConfig().
func TestCurrentConfigDefaultsRoundTrip(t *testing.T) {
	resetConfig(t)
	setDefaults()

	cfg := CurrentConfig()
	defaults := Defaults()
	if cfg != defaults {
		t.Errorf("CurrentConfig() = %+v, want %+v", cfg, defaults)
	}
}

func TestInitConfigWithFile(t *testing.T) {
	resetConfig(t)
	CfgFile = writeConfig(t, "verbose: 2\noptions:\n  qcdb:\n    basis: cc-pvdz\n")

	require.NoError(t, InitConfig())
	assert.Equal(t, 2, CurrentConfig().Verbose)
	assert.Equal(t, CfgFile, viper.ConfigFileUsed())
}

func TestInitConfigStrictSetting(t *testing.T) {
	resetConfig(t)
	setDefaults()
	assert.True(t, CurrentConfig().Strict)

	resetConfig(t)
	CfgFile = writeConfig(t, "strict: false\n")
	require.NoError(t, InitConfig())
	assert.False(t, CurrentConfig().Strict)
}

func TestInitConfigMissingNamedFile(t *testing.T) {
	resetConfig(t)
	CfgFile = filepath.Join(t.TempDir(), "absent.yaml")

	err := InitConfig()
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestInitConfigRejectsInvalidVerbose(t *testing.T) {
	resetConfig(t)
	CfgFile = writeConfig(t, "verbose: 7\n")

	err := InitConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose must be between 0 and 2")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Defaults()))

	cfg := Defaults()
	cfg.BaseDir = ""
	assert.Error(t, Validate(cfg))

	cfg = Defaults()
	cfg.BaseDir = "relative/dir"
	assert.Error(t, Validate(cfg))

	cfg = Defaults()
	cfg.Verbose = -1
	err := Validate(cfg)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "configuration validation failed: "))
}

func TestDefaultsPathIsAbsolute(t *testing.T) {
	d := Defaults()
	assert.True(t, filepath.IsAbs(d.BaseDir), "BaseDir %q should be absolute", d.BaseDir)
	assert.Equal(t, GOQCDB_BASE_DIR, filepath.Base(d.BaseDir))
}

func TestApplyUserOptions(t *testing.T) {
	reg := options.NewRegistry()
	require.NoError(t, catalog.LoadDefaults(reg))

	v := yamlViper(t, `
options:
  qcdb:
    basis: cc-pvdz
    scf__maxiter: 250
    memory: 2 gb
    puream: cartesian
`)
	applied, err := ApplyUserOptions(reg, v, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 4, applied)

	want := map[string]any{
		"BASIS":        "CC-PVDZ",
		"SCF__MAXITER": 250,
		"MEMORY":       int64(2_000_000_000),
		"PUREAM":       false,
	}
	for keyword, value := range want {
		opt, err := reg.Lookup("qcdb", keyword)
		require.NoError(t, err)
		got, err := opt.Resolve()
		require.NoError(t, err)
		assert.Equal(t, value, got, keyword)
	}

	// User requirements conflict with a differing driver requirement.
	require.NoError(t, reg.Require("qcdb", "basis", "sto-3g", options.WithTag("driver"), options.WithVerbose(0)))
	opt, err := reg.Lookup("qcdb", "basis")
	require.NoError(t, err)
	_, err = opt.Resolve()
	assert.ErrorIs(t, err, options.ErrConflictingRequirement)
}

func TestApplyUserOptionsStopsAtFirstError(t *testing.T) {
	reg := options.NewRegistry()
	require.NoError(t, catalog.LoadDefaults(reg))

	v := yamlViper(t, `
options:
  qcdb:
    basis: cc-pvdz
    scf__maxiter: -4
    zz_unknown: 1
`)
	applied, err := ApplyUserOptions(reg, v, 0, true)
	assert.Equal(t, 1, applied)
	assert.ErrorIs(t, err, options.ErrValidation)
	assert.Contains(t, err.Error(), "options.qcdb.scf__maxiter")

	v = yamlViper(t, "options:\n  gamess:\n    basis: sto-3g\n")
	_, err = ApplyUserOptions(reg, v, 0, true)
	assert.ErrorIs(t, err, options.ErrDomainNotSupported)
}

func TestApplyUserOptionsLenient(t *testing.T) {
	reg := options.NewRegistry()
	require.NoError(t, catalog.LoadDefaults(reg))

	v := yamlViper(t, "options:\n  qcdb:\n    basis: cc-pvdz\n    scf__maxiter: 250\n")
	applied, err := ApplyUserOptions(reg, v, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	opt, err := reg.Lookup("qcdb", "basis")
	require.NoError(t, err)
	history := opt.(*options.Setting[string]).History()
	require.Len(t, history, 2)
	assert.False(t, history[1].Binding)
	assert.Equal(t, options.TagUser, history[1].Tag)

	got, err := opt.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "CC-PVDZ", got)

	// A driver requirement overrides a lenient user option instead of conflicting.
	require.NoError(t, reg.Require("qcdb", "basis", "sto-3g", options.WithTag("driver"), options.WithVerbose(0)))
	got, err = opt.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "STO-3G", got)

	// Invalid values are still rejected.
	v = yamlViper(t, "options:\n  qcdb:\n    scf__maxiter: -4\n")
	_, err = ApplyUserOptions(reg, v, 0, false)
	assert.ErrorIs(t, err, options.ErrValidation)
}

func TestApplyUserOptionsEmpty(t *testing.T) {
	reg := options.NewRegistry()
	applied, err := ApplyUserOptions(reg, yamlViper(t, "verbose: 1\n"), 0, true)
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestParseAssignment(t *testing.T) {
	a, err := ParseAssignment("qcdb.scf__maxiter=200")
	require.NoError(t, err)
	assert.Equal(t, Assignment{Domain: "qcdb", Keyword: "scf__maxiter", Value: "200"}, a)

	a, err = ParseAssignment(" psi4.basis = cc-pvtz ")
	require.NoError(t, err)
	assert.Equal(t, Assignment{Domain: "psi4", Keyword: "basis", Value: "cc-pvtz"}, a)

	for _, bad := range []string{"basis=sto-3g", "qcdb.basis", ".basis=x", "qcdb.=x", ""} {
		_, err := ParseAssignment(bad)
		assert.Error(t, err, bad)
	}
}
