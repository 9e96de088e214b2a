package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/videvian/log-in-with-ethos/internal/config"
)

const (
	testAppID  = "cm5l76en107pt1lpl2ve2ocfy"
	testWallet = "0x8ba1f109551bd432803012645ac136ddd64dba72"

	testProfileJSON = `{
		"id": 42,
		"profileId": 7,
		"displayName": "Vitalik",
		"username": "vitalik",
		"description": "builder",
		"score": 2450,
		"status": "ACTIVE",
		"links": {"profile": "https://app.ethos.network/profile/x/vitalik"}
	}`

	testExportJSON = `{
		"id": "did:privy:abc123",
		"linkedAccounts": [
			{"type": "email"},
			{"type": "cross_app", "embeddedWallets": [{"address": "0x8ba1f109551bd432803012645ac136ddd64dba72"}]}
		]
	}`
)

// saveGlobals saves all package-level globals and returns a restore function.
func saveGlobals(t *testing.T) func() {
	t.Helper()
	origCfg := cfg
	origLogger := logger
	origFormatter := formatter
	origHomeDir := homeDir
	origOutputFormat := outputFormat
	origVerbose := verbose
	origLoginFrom := loginFrom
	origConfigForce := configForce
	return func() {
		cfg = origCfg
		logger = origLogger
		formatter = origFormatter
		homeDir = origHomeDir
		outputFormat = origOutputFormat
		verbose = origVerbose
		loginFrom = origLoginFrom
		configForce = origConfigForce
	}
}

// runCLI executes the root command with args and returns what it wrote to
// stdout. NOT parallel-safe: the command tree and its flags are globals.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	restore := saveGlobals(t)
	t.Cleanup(restore)

	homeDir = ""
	outputFormat = "auto"
	verbose = false
	loginFrom = ""
	configForce = false

	// Earlier tests may leave writers on individual commands
	walkCommands(rootCmd, func(c *cobra.Command) {
		c.SetOut(nil)
		c.SetErr(nil)
		c.SetIn(nil)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err != nil {
		cleanup()
	}
	return stdout.String(), err
}

// isolateEnv clears environment overrides that would leak into a run.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvHome, config.EnvAppID, config.EnvAPIURL, config.EnvClientID,
		config.EnvOutputFormat, config.EnvVerbose, config.EnvLogLevel,
		config.EnvSessionTTL, config.EnvOTelEndpoint, config.EnvOTelEnabled,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// newEthosServer serves testProfileJSON for testWallet and null for any other
// wallet, and points the CLI at it.
func newEthosServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.EqualFold(filepath.Base(r.URL.Path), testWallet) {
			_, _ = w.Write([]byte(testProfileJSON))
			return
		}
		_, _ = w.Write([]byte("null"))
	}))
	t.Cleanup(server.Close)
	t.Setenv(config.EnvAPIURL, server.URL)
	return server
}

// writeExport writes a provider user export into dir and returns its path.
func writeExport(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "privy-user.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
