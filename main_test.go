package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qcdb/go-qcdb/lib/config"
	"github.com/qcdb/go-qcdb/lib/options"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	config.CfgFile = ""
	t.Cleanup(func() {
		viper.Reset()
		config.CfgFile = ""
	})

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestShowPlain(t *testing.T) {
	out, err := run(t, "verbose: 0\noptions:\n  qcdb:\n    basis: cc-pvdz\n", "show", "--plain")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "  <<<  QCDB  >>>", lines[0])
	var basis string
	for _, l := range lines {
		if strings.HasPrefix(l, "  BASIS:") {
			basis = l
		}
	}
	require.NotEmpty(t, basis)
	assert.Contains(t, basis, "CC-PVDZ <> ()")
}

func TestSetFlagsOverrideAsUser(t *testing.T) {
	out, err := run(t, "verbose: 0\n",
		"get", "qcdb", "scf__maxiter", "--set", "qcdb.scf__maxiter=300")
	require.NoError(t, err)
	assert.Contains(t, out, "SCF__MAXITER = 300")
	assert.Contains(t, out, "default: 100")
	assert.Contains(t, out, "Maximum number of iterations.")
}

func TestSuggestFlagLosesToRequirement(t *testing.T) {
	out, err := run(t, "verbose: 0\noptions:\n  qcdb:\n    reference: uhf\n",
		"get", "qcdb", "reference", "--suggest", "qcdb.reference=rohf")
	require.NoError(t, err)
	assert.Contains(t, out, "REFERENCE = UHF")
}

func TestLenientConfigOptionYieldsToSuggestFlag(t *testing.T) {
	out, err := run(t, "verbose: 0\nstrict: false\noptions:\n  qcdb:\n    reference: uhf\n",
		"get", "qcdb", "reference", "--suggest", "qcdb.reference=rohf")
	require.NoError(t, err)
	assert.Contains(t, out, "REFERENCE = ROHF")
}

func TestGetUnknownOption(t *testing.T) {
	_, err := run(t, "verbose: 0\n", "get", "qcdb", "nosuch")
	assert.ErrorIs(t, err, options.ErrOptionNotFound)
}

func TestInvalidUserValue(t *testing.T) {
	_, err := run(t, "verbose: 0\n", "show", "--set", "qcdb.scf__damping_percentage=150")
	assert.ErrorIs(t, err, options.ErrValidation)

	_, err = run(t, "verbose: 0\n", "show", "--set", "scf__maxiter=1")
	assert.Error(t, err)
}

func TestExportYAML(t *testing.T) {
	out, err := run(t, "verbose: 0\n", "export", "--set", "qcdb.memory=4 gb", "--set", "qcdb.puream=cartesian")
	require.NoError(t, err)

	var got map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4_000_000_000, got["QCDB"]["MEMORY"])
	assert.Equal(t, false, got["QCDB"]["PUREAM"])
	assert.Equal(t, 100, got["QCDB"]["SCF__MAXITER"])
}
