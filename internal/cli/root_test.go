package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videvian/log-in-with-ethos/internal/config"
	"github.com/videvian/log-in-with-ethos/internal/output"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// errTestRandom is used for testing non-ethos error handling.
var errTestRandom = ethoserr.New("TEST_ERROR", "some random error")

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns success", err: nil, want: ethoserr.ExitSuccess},
		{name: "general error", err: ethoserr.ErrGeneral, want: ethoserr.ExitGeneral},
		{name: "invalid input error", err: ethoserr.ErrInvalidInput, want: ethoserr.ExitInput},
		{name: "invalid address error", err: ethoserr.ErrInvalidAddress, want: ethoserr.ExitInput},
		{name: "not authenticated error", err: ethoserr.ErrNotAuthenticated, want: ethoserr.ExitAuth},
		{name: "session expired error", err: ethoserr.ErrSessionExpired, want: ethoserr.ExitAuth},
		{name: "not found error", err: ethoserr.ErrNotFound, want: ethoserr.ExitNotFound},
		{name: "network error", err: ethoserr.ErrNetworkError, want: ethoserr.ExitGeneral},
		{name: "config not found error", err: ethoserr.ErrConfigNotFound, want: ethoserr.ExitNotFound},
		{name: "unknown tier error", err: ethoserr.ErrUnknownTier, want: ethoserr.ExitInput},
		{name: "non-ethos error returns general", err: errTestRandom, want: ethoserr.ExitGeneral},
		{
			name: "wrapped ethos error preserves exit code",
			err:  ethoserr.Wrap(ethoserr.ErrSessionExpired, "failed to log in"),
			want: ethoserr.ExitAuth,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

// TestGlobalGetters tests the Config() and Formatter() getters.
// NOT parallel: mutates package-level globals.
func TestGlobalGetters(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	testCfg := config.Defaults()
	testFmt := output.NewFormatter(output.FormatText, nil, false)

	cfg = testCfg
	formatter = testFmt

	assert.Equal(t, testCfg, Config())
	assert.Equal(t, testFmt, Formatter())
}

func TestCleanup_NilLogger(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	logger = nil
	assert.NotPanics(t, func() { cleanup() })
}

func TestCleanup_CalledTwice(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	logger = config.NullLogger()
	assert.NotPanics(t, func() {
		cleanup()
		cleanup()
	})
	assert.Nil(t, logger)
}

// TestCleanup_LoggerCloseError verifies cleanup doesn't panic when
// logger.Close() returns an error.
func TestCleanup_LoggerCloseError(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	testLogger, err := config.NewLogger(config.ParseLogLevel("debug"), filepath.Join(t.TempDir(), "test.log"))
	require.NoError(t, err)
	require.NoError(t, testLogger.Close())

	logger = testLogger
	assert.NotPanics(t, func() { cleanup() })
}

// --- Tests for initGlobals ---

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestInitGlobals_DefaultConfig(t *testing.T) {
	isolateEnv(t)
	restore := saveGlobals(t)
	defer restore()
	defer cleanup()

	tmpDir := t.TempDir()
	homeDir = tmpDir
	outputFormat = ""
	verbose = false

	require.NoError(t, initGlobals(newInitCmd()))

	require.NotNil(t, cfg)
	require.NotNil(t, logger)
	require.NotNil(t, formatter)

	assert.Equal(t, tmpDir, cfg.Home)
	assert.Equal(t, config.DefaultAPIURL, cfg.GetAPIURL())
	assert.Equal(t, filepath.Join(tmpDir, "session.json"), cfg.GetSessionFile())
}

func TestInitGlobals_VerboseFlag(t *testing.T) {
	isolateEnv(t)
	restore := saveGlobals(t)
	defer restore()
	defer cleanup()

	homeDir = t.TempDir()
	outputFormat = ""
	verbose = true

	require.NoError(t, initGlobals(newInitCmd()))

	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestInitGlobals_OutputFormatFlag(t *testing.T) {
	isolateEnv(t)
	restore := saveGlobals(t)
	defer restore()
	defer cleanup()

	homeDir = t.TempDir()
	outputFormat = "json"
	verbose = false

	require.NoError(t, initGlobals(newInitCmd()))

	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.True(t, formatter.IsJSON())
}

func TestInitGlobals_WithExistingConfig(t *testing.T) {
	isolateEnv(t)
	restore := saveGlobals(t)
	defer restore()
	defer cleanup()

	tmpDir := t.TempDir()
	testCfg := config.Defaults()
	testCfg.Home = tmpDir
	testCfg.Logging.Level = "debug"
	testCfg.Session.AppID = testAppID
	require.NoError(t, config.Save(testCfg, config.Path(tmpDir)))

	homeDir = tmpDir
	outputFormat = ""
	verbose = false

	require.NoError(t, initGlobals(newInitCmd()))

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, testAppID, cfg.GetAppID())
}

func TestInitGlobals_EnvOverridesFile(t *testing.T) {
	isolateEnv(t)
	restore := saveGlobals(t)
	defer restore()
	defer cleanup()

	tmpDir := t.TempDir()
	testCfg := config.Defaults()
	testCfg.Home = tmpDir
	testCfg.Session.AppID = "from-file"
	require.NoError(t, config.Save(testCfg, config.Path(tmpDir)))

	t.Setenv(config.EnvAppID, "from-env")
	homeDir = tmpDir
	outputFormat = ""
	verbose = false

	require.NoError(t, initGlobals(newInitCmd()))
	assert.Equal(t, "from-env", cfg.GetAppID())
}

func TestInitGlobals_EnvHome(t *testing.T) {
	isolateEnv(t)
	restore := saveGlobals(t)
	defer restore()
	defer cleanup()

	tmpDir := t.TempDir()
	homeDir = ""
	outputFormat = ""
	verbose = false
	t.Setenv(config.EnvHome, tmpDir)

	require.NoError(t, initGlobals(newInitCmd()))
	assert.Equal(t, tmpDir, cfg.Home)
}

func TestInitGlobals_InvalidConfig(t *testing.T) {
	isolateEnv(t)
	restore := saveGlobals(t)
	defer restore()
	defer cleanup()

	t.Setenv(config.EnvAPIURL, "not a url")
	homeDir = t.TempDir()
	outputFormat = ""
	verbose = false

	err := initGlobals(newInitCmd())
	require.Error(t, err)
	require.ErrorIs(t, err, ethoserr.ErrConfigInvalid)
}

func TestExecute_Version(t *testing.T) {
	isolateEnv(t)

	out, err := runCLI(t, "", "version", "--home", t.TempDir(), "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "ethos-login")
}

func TestExecute_VersionJSON(t *testing.T) {
	isolateEnv(t)

	out, err := runCLI(t, "", "version", "--home", t.TempDir(), "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
	assert.Contains(t, out, `"go_version"`)
}
