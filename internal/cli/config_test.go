package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videvian/log-in-with-ethos/internal/config"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

func TestConfigKeys_GetDefaults(t *testing.T) {
	c := config.Defaults()

	tests := []struct {
		key  string
		want string
	}{
		{"home", "~/.ethos-login"},
		{"ethos.api_url", config.DefaultAPIURL},
		{"ethos.client_id", config.DefaultClientID},
		{"ethos.timeout_seconds", "30"},
		{"ethos.rate_limit", "5"},
		{"ethos.burst", "5"},
		{"session.app_id", ""},
		{"session.ttl_minutes", "60"},
		{"output.default_format", "auto"},
		{"output.color", "auto"},
		{"output.verbose", "false"},
		{"logging.level", "error"},
		{"telemetry.enabled", "false"},
		{"telemetry.service_name", "ethos-login"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			k, err := lookupConfigKey(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.want, k.get(c))
		})
	}
}

func TestLookupConfigKey_Unknown(t *testing.T) {
	_, err := lookupConfigKey("networks.eth.rpc")
	require.Error(t, err)
	require.ErrorIs(t, err, ethoserr.ErrUnknownConfigKey)

	var ee *ethoserr.EthosError
	require.ErrorAs(t, err, &ee)
	assert.Contains(t, ee.Suggestion, "session.app_id")
}

func TestLookupConfigKey_CaseInsensitive(t *testing.T) {
	_, err := lookupConfigKey("  Session.App_ID ")
	assert.NoError(t, err)
}

func TestConfigKeys_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{name: "app id is trimmed", key: "session.app_id", value: " abc ", want: "abc"},
		{name: "api url is sanitized", key: "ethos.api_url", value: `"https://api.example.com/"`, want: "https://api.example.com"},
		{name: "ttl", key: "session.ttl_minutes", value: "90", want: "90"},
		{name: "ttl not a number", key: "session.ttl_minutes", value: "soon", wantErr: true},
		{name: "rate limit", key: "ethos.rate_limit", value: "2.5", want: "2.5"},
		{name: "rate limit not a number", key: "ethos.rate_limit", value: "fast", wantErr: true},
		{name: "format json", key: "output.default_format", value: "JSON", want: "json"},
		{name: "format yaml rejected", key: "output.default_format", value: "yaml", wantErr: true},
		{name: "color never", key: "output.color", value: "never", want: "never"},
		{name: "color rejected", key: "output.color", value: "rainbow", wantErr: true},
		{name: "verbose", key: "output.verbose", value: "true", want: "true"},
		{name: "verbose rejected", key: "output.verbose", value: "loud", wantErr: true},
		{name: "level debug", key: "logging.level", value: "debug", want: "debug"},
		{name: "level rejected", key: "logging.level", value: "trace", wantErr: true},
		{name: "telemetry endpoint", key: "telemetry.endpoint", value: "http://localhost:4318/", want: "http://localhost:4318"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := config.Defaults()
			k, err := lookupConfigKey(tc.key)
			require.NoError(t, err)

			err = k.set(c, tc.value)
			if tc.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ethoserr.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, k.get(c))
		})
	}
}

func TestDisplayConfigText(t *testing.T) {
	c := config.Defaults()
	c.Session.AppID = testAppID

	var buf bytes.Buffer
	displayConfigText(&buf, c)
	result := buf.String()

	assert.Contains(t, result, "Configuration:")
	assert.Contains(t, result, "Home: ~/.ethos-login")
	assert.Contains(t, result, "Ethos:")
	assert.Contains(t, result, "Session:")
	assert.Contains(t, result, "app_id: "+testAppID)
	assert.Contains(t, result, "endpoint: (not configured)")
}

func TestRunConfigInit(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()

	out, err := runCLI(t, "", "config", "init", "--home", home, "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized")

	loaded, err := config.Load(config.Path(home))
	require.NoError(t, err)
	assert.Equal(t, home, loaded.Home)
	assert.Equal(t, config.DefaultAPIURL, loaded.Ethos.APIURL)
}

func TestRunConfigInit_AlreadyExistsWithoutForce(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()

	_, err := runCLI(t, "", "config", "init", "--home", home)
	require.NoError(t, err)

	_, err = runCLI(t, "", "config", "init", "--home", home)
	require.Error(t, err)
	require.ErrorIs(t, err, ethoserr.ErrInvalidInput)

	_, err = runCLI(t, "", "config", "init", "--home", home, "--force")
	require.NoError(t, err)
}

func TestRunConfigPath(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()

	out, err := runCLI(t, "", "config", "path", "--home", home)
	require.NoError(t, err)
	assert.Equal(t, config.Path(home)+"\n", out)
}

func TestRunConfigShow_JSON(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()
	t.Setenv(config.EnvAppID, testAppID)

	out, err := runCLI(t, "", "config", "show", "--home", home, "-o", "json")
	require.NoError(t, err)

	var values map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Equal(t, testAppID, values["session.app_id"])
	assert.Equal(t, home, values["home"])
	assert.Len(t, values, len(configKeys))
}

func TestRunConfigGet(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()

	out, err := runCLI(t, "", "config", "get", "ethos.client_id", "--home", home)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultClientID+"\n", out)

	_, err = runCLI(t, "", "config", "get", "ethos.nope", "--home", home)
	require.ErrorIs(t, err, ethoserr.ErrUnknownConfigKey)
	assert.Equal(t, ethoserr.ExitInput, ExitCode(err))
}

func TestRunConfigSet(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()

	out, err := runCLI(t, "", "config", "set", "session.app_id", testAppID, "--home", home)
	require.NoError(t, err)
	assert.Contains(t, out, "Set session.app_id = "+testAppID)

	loaded, err := config.Load(config.Path(home))
	require.NoError(t, err)
	assert.Equal(t, testAppID, loaded.Session.AppID)

	out, err = runCLI(t, "", "config", "get", "session.app_id", "--home", home)
	require.NoError(t, err)
	assert.Equal(t, testAppID+"\n", out)
}

func TestRunConfigSet_DoesNotPersistOverrides(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()
	t.Setenv(config.EnvClientID, "from-env")

	_, err := runCLI(t, "", "config", "set", "logging.level", "debug", "--home", home)
	require.NoError(t, err)

	loaded, err := config.Load(config.Path(home))
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.Logging.Level)
	assert.Equal(t, config.DefaultClientID, loaded.Ethos.ClientID)
}

func TestRunConfigSet_RejectsInvalid(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()

	_, err := runCLI(t, "", "config", "set", "session.ttl_minutes", "0", "--home", home)
	require.ErrorIs(t, err, ethoserr.ErrConfigInvalid)

	_, err = runCLI(t, "", "config", "set", "output.color", "rainbow", "--home", home)
	require.ErrorIs(t, err, ethoserr.ErrInvalidInput)

	_, statErr := os.Stat(config.Path(home))
	assert.True(t, os.IsNotExist(statErr), "rejected values must not create the config file")
}
